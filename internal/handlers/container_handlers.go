package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"vertifarm/internal/common"
	"vertifarm/internal/models"
	"vertifarm/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ContainerHandlers handles container-related HTTP requests
type ContainerHandlers struct {
	containerService services.ContainerService
}

// NewContainerHandlers creates a new container handlers instance
func NewContainerHandlers(containerService services.ContainerService) *ContainerHandlers {
	return &ContainerHandlers{containerService: containerService}
}

// parseListFilter reads the list/export query parameters. Out-of-range skip
// and limit values are rejected here, before the query builder sees them.
func parseListFilter(c echo.Context) (*models.ContainerFilter, error) {
	filter := &models.ContainerFilter{
		Skip:          0,
		Limit:         defaultPageSize,
		Search:        c.QueryParam("search"),
		TypeFilter:    c.QueryParam("type_filter"),
		TenantFilter:  c.QueryParam("tenant_filter"),
		PurposeFilter: c.QueryParam("purpose_filter"),
		StatusFilter:  c.QueryParam("status_filter"),
	}

	if v := c.QueryParam("skip"); v != "" {
		skip, err := strconv.Atoi(v)
		if err != nil || skip < 0 {
			return nil, fmt.Errorf("skip must be an integer >= 0")
		}
		filter.Skip = skip
	}

	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > maxPageSize {
			return nil, fmt.Errorf("limit must be an integer between 1 and %d", maxPageSize)
		}
		filter.Limit = limit
	}

	if v := c.QueryParam("has_alerts"); v != "" {
		hasAlerts, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("has_alerts must be a boolean")
		}
		filter.HasAlerts = &hasAlerts
	}

	return filter, nil
}

// ListContainers handles the paginated, filtered container listing
func (h *ContainerHandlers) ListContainers(c echo.Context) error {
	filter, err := parseListFilter(c)
	if err != nil {
		return common.SendValidationError(c, "query", err.Error())
	}

	list, err := h.containerService.List(c.Request().Context(), filter)
	if err != nil {
		return common.SendServerError(c, "Failed to list containers")
	}
	return c.JSON(http.StatusOK, list)
}

// GetContainer handles fetching a single container by id
func (h *ContainerHandlers) GetContainer(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return common.SendValidationError(c, "id", "Container ID is required")
	}

	container, err := h.containerService.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrContainerNotFound) {
			return common.SendNotFoundError(c, "Container")
		}
		return common.SendServerError(c, "Failed to fetch container")
	}
	return c.JSON(http.StatusOK, container)
}

func validateCreateRequest(req *models.ContainerCreate) (field, message string) {
	switch {
	case req.Name == "":
		return "name", "name is required"
	case req.Tenant == "":
		return "tenant", "tenant is required"
	case !models.ValidContainerType(req.Type):
		return "type", "type must be one of: physical, virtual"
	case !models.ValidContainerPurpose(req.Purpose):
		return "purpose", "purpose must be one of: development, research, production"
	}
	return "", ""
}

// CreateContainer handles container creation
func (h *ContainerHandlers) CreateContainer(c echo.Context) error {
	var req models.ContainerCreate
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if field, message := validateCreateRequest(&req); field != "" {
		return common.SendValidationError(c, field, message)
	}

	container, err := h.containerService.Create(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateName) {
			return common.SendClientError(c, fmt.Sprintf("Container with name '%s' already exists", req.Name))
		}
		return common.SendServerError(c, "Failed to create container")
	}
	return c.JSON(http.StatusCreated, container)
}

func validateUpdateRequest(patch *models.ContainerUpdate) (field, message string) {
	if patch.Tenant.Set && (!patch.Tenant.Valid || patch.Tenant.Value == "") {
		return "tenant", "tenant cannot be empty"
	}
	if patch.Purpose.Set && (!patch.Purpose.Valid || !models.ValidContainerPurpose(patch.Purpose.Value)) {
		return "purpose", "purpose must be one of: development, research, production"
	}
	if patch.Status.Set && (!patch.Status.Valid || !models.ValidContainerStatus(patch.Status.Value)) {
		return "status", "status must be one of: created, active, maintenance, inactive"
	}
	return "", ""
}

// UpdateContainer handles partial container updates
func (h *ContainerHandlers) UpdateContainer(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return common.SendValidationError(c, "id", "Container ID is required")
	}

	var patch models.ContainerUpdate
	if err := c.Bind(&patch); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if field, message := validateUpdateRequest(&patch); field != "" {
		return common.SendValidationError(c, field, message)
	}

	container, err := h.containerService.Update(c.Request().Context(), id, &patch)
	if err != nil {
		if errors.Is(err, common.ErrContainerNotFound) {
			return common.SendNotFoundError(c, "Container")
		}
		return common.SendServerError(c, "Failed to update container")
	}
	return c.JSON(http.StatusOK, container)
}

// DeleteContainer handles container deletion
func (h *ContainerHandlers) DeleteContainer(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return common.SendValidationError(c, "id", "Container ID is required")
	}

	if err := h.containerService.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, common.ErrContainerNotFound) {
			return common.SendNotFoundError(c, "Container")
		}
		return common.SendServerError(c, "Failed to delete container")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Container deleted successfully",
	})
}

// GetPerformance handles the performance overview endpoint
func (h *ContainerHandlers) GetPerformance(c echo.Context) error {
	typeFilter := c.QueryParam("type_filter")

	performance, err := h.containerService.Performance(c.Request().Context(), typeFilter)
	if err != nil {
		return common.SendServerError(c, "Failed to compute performance metrics")
	}
	return c.JSON(http.StatusOK, performance)
}

// ExportContainers streams the filtered container list as an XLSX workbook
func (h *ContainerHandlers) ExportContainers(c echo.Context) error {
	filter, err := parseListFilter(c)
	if err != nil {
		return common.SendValidationError(c, "query", err.Error())
	}

	data, err := h.containerService.Export(c.Request().Context(), filter)
	if err != nil {
		return common.SendServerError(c, "Failed to export containers")
	}

	filename := fmt.Sprintf("containers_%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
