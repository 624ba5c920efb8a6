package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"vertifarm/internal/models"

	"github.com/xuri/excelize/v2"
)

// exportPageLimit caps how many containers one workbook carries.
const exportPageLimit = 10000

var containerExportHeader = []string{
	"Name",
	"Type",
	"Tenant",
	"Purpose",
	"Status",
	"City",
	"Country",
	"Seed Types",
	"Has Alert",
	"Created",
	"Modified",
}

// Export renders the filtered container list as an XLSX workbook.
func (s *containerService) Export(ctx context.Context, filter *models.ContainerFilter) ([]byte, error) {
	exportFilter := *filter
	exportFilter.Skip = 0
	exportFilter.Limit = exportPageLimit

	containers, _, err := s.containerRepo.List(ctx, &exportFilter)
	if err != nil {
		return nil, err
	}
	return generateContainerWorkbook(containers)
}

func generateContainerWorkbook(containers []*models.Container) ([]byte, error) {
	f := excelize.NewFile()

	sheetName := "Containers"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &containerExportHeader); err != nil {
		f.Close()
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(containerExportHeader))
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	for i, c := range containers {
		var city, country string
		if c.Location != nil {
			city = c.Location.City
			country = c.Location.Country
		}

		seedNames := make([]string, 0, len(c.SeedTypes))
		for _, seed := range c.SeedTypes {
			seedNames = append(seedNames, seed.Name)
		}

		row := []interface{}{
			c.Name,
			c.Type,
			c.Tenant,
			c.Purpose,
			c.Status,
			city,
			country,
			strings.Join(seedNames, ", "),
			c.HasAlert,
			c.Created.Format(time.RFC3339),
			c.Modified.Format(time.RFC3339),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
