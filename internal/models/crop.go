package models

import "time"

// Crop statuses
const (
	CropStatusGerminating = "germinating"
	CropStatusGrowing     = "growing"
	CropStatusHarvested   = "harvested"
)

// Crop is a single planting inside a container. Defined for the schema layer;
// no read/write paths exercise it yet.
type Crop struct {
	ID                       string     `json:"id" db:"id"`
	ContainerID              string     `json:"container_id" db:"container_id"`
	SeedType                 string     `json:"seed_type" db:"seed_type"`
	SeedDate                 *time.Time `json:"seed_date" db:"seed_date"`
	TransplantingDatePlanned *time.Time `json:"transplanting_date_planned" db:"transplanting_date_planned"`
	HarvestingDatePlanned    *time.Time `json:"harvesting_date_planned" db:"harvesting_date_planned"`
	TransplantedDate         *time.Time `json:"transplanted_date" db:"transplanted_date"`
	HarvestingDate           *time.Time `json:"harvesting_date" db:"harvesting_date"`
	Age                      *int       `json:"age" db:"age"`
	Status                   string     `json:"status" db:"status"`
	OverdueDays              *int       `json:"overdue_days" db:"overdue_days"`
	LocationID               *int       `json:"location_id" db:"location_id"`
}

// CropLocation pinpoints a crop within a tray or panel.
type CropLocation struct {
	ID       int     `json:"id" db:"id"`
	Type     string  `json:"type" db:"type"`
	TrayID   *string `json:"tray_id" db:"tray_id"`
	PanelID  *string `json:"panel_id" db:"panel_id"`
	Row      *int    `json:"row" db:"row"`
	Column   *int    `json:"column" db:"column"`
	Channel  *int    `json:"channel" db:"channel"`
	Position *int    `json:"position" db:"position"`
}
