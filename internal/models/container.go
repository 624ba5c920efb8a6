package models

import (
	"time"

	"github.com/google/uuid"
)

// Container types
const (
	ContainerTypePhysical = "physical"
	ContainerTypeVirtual  = "virtual"
)

// Container purposes
const (
	ContainerPurposeDevelopment = "development"
	ContainerPurposeResearch    = "research"
	ContainerPurposeProduction  = "production"
)

// Container statuses
const (
	ContainerStatusCreated     = "created"
	ContainerStatusActive      = "active"
	ContainerStatusMaintenance = "maintenance"
	ContainerStatusInactive    = "inactive"
)

func ValidContainerType(t string) bool {
	return t == ContainerTypePhysical || t == ContainerTypeVirtual
}

func ValidContainerPurpose(p string) bool {
	return p == ContainerPurposeDevelopment || p == ContainerPurposeResearch || p == ContainerPurposeProduction
}

func ValidContainerStatus(s string) bool {
	return s == ContainerStatusCreated || s == ContainerStatusActive ||
		s == ContainerStatusMaintenance || s == ContainerStatusInactive
}

// Container is the central managed entity: a physical or virtual grow unit.
type Container struct {
	ID                   string     `json:"id" db:"id"`
	Name                 string     `json:"name" db:"name"`
	Type                 string     `json:"type" db:"type"`
	Tenant               string     `json:"tenant" db:"tenant"`
	Purpose              string     `json:"purpose" db:"purpose"`
	Status               string     `json:"status" db:"status"`
	LocationID           *uuid.UUID `json:"location_id" db:"location_id"`
	SeedTypes            []SeedType `json:"seed_types" db:"seed_types"`
	Notes                *string    `json:"notes" db:"notes"`
	HasAlert             bool       `json:"has_alert" db:"has_alert"`
	ShadowServiceEnabled bool       `json:"shadow_service_enabled" db:"shadow_service_enabled"`
	EcosystemConnected   bool       `json:"ecosystem_connected" db:"ecosystem_connected"`
	Created              time.Time  `json:"created" db:"created"`
	Modified             time.Time  `json:"modified" db:"modified"`

	// Location is the joined row for LocationID, populated on reads.
	Location *Location `json:"location,omitempty" db:"-"`
}

// SeedType describes one crop variety planted in a container. The list is
// stored as ordered JSONB on the container row, not normalized into rows.
type SeedType struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Variety  *string `json:"variety,omitempty"`
	Supplier *string `json:"supplier,omitempty"`
	BatchID  *string `json:"batch_id,omitempty"`
}

// ContainerFilter holds search and filter criteria for container list queries.
// Filters are conjunctive; Search matches name, tenant, purpose or status as a
// case-insensitive substring.
type ContainerFilter struct {
	Skip          int    `json:"skip,omitempty"`
	Limit         int    `json:"limit,omitempty"`
	Search        string `json:"search,omitempty"`
	TypeFilter    string `json:"type_filter,omitempty"`
	TenantFilter  string `json:"tenant_filter,omitempty"`
	PurposeFilter string `json:"purpose_filter,omitempty"`
	StatusFilter  string `json:"status_filter,omitempty"`
	HasAlerts     *bool  `json:"has_alerts,omitempty"`
}

// LocationPayload is the wire shape of a container's postal location.
type LocationPayload struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Address *string `json:"address,omitempty"`
}

// ContainerSettings is the settings sub-object of a create payload.
// Ecosystem is only used to derive the ecosystem_connected flag; it is not
// persisted and never round-trips into responses.
type ContainerSettings struct {
	ShadowServiceEnabled      bool           `json:"shadow_service_enabled"`
	CopiedEnvironmentFrom     *string        `json:"copied_environment_from,omitempty"`
	RoboticsSimulationEnabled *bool          `json:"robotics_simulation_enabled,omitempty"`
	Ecosystem                 map[string]any `json:"ecosystem,omitempty"`
}

// ContainerEnvironment is accepted on writes and echoed as a placeholder on
// reads; no environment telemetry is tracked yet.
type ContainerEnvironment struct {
	AirTemperature  *float64       `json:"air_temperature"`
	Humidity        *float64       `json:"humidity"`
	CO2             *float64       `json:"co2"`
	NurseryStation  map[string]any `json:"nursery_station"`
	CultivationArea map[string]any `json:"cultivation_area"`
}

// ContainerCreate is the creation payload.
type ContainerCreate struct {
	Name        string                `json:"name"`
	Type        string                `json:"type"`
	Tenant      string                `json:"tenant"`
	Purpose     string                `json:"purpose"`
	SeedTypes   []SeedType            `json:"seed_types"`
	Location    *LocationPayload      `json:"location,omitempty"`
	Notes       *string               `json:"notes,omitempty"`
	Settings    ContainerSettings     `json:"settings"`
	Environment *ContainerEnvironment `json:"environment,omitempty"`
}

// SettingsPatch is the settings sub-object of an update payload. Both fields
// keep their previous value when absent; ecosystem_connected is recomputed
// only when the ecosystem key is present.
type SettingsPatch struct {
	ShadowServiceEnabled Optional[bool]           `json:"shadow_service_enabled"`
	Ecosystem            Optional[map[string]any] `json:"ecosystem"`
}

// ContainerUpdate is the partial-update payload. Absent fields leave the
// stored values untouched.
type ContainerUpdate struct {
	Tenant      Optional[string]               `json:"tenant"`
	Purpose     Optional[string]               `json:"purpose"`
	Status      Optional[string]               `json:"status"`
	Notes       Optional[string]               `json:"notes"`
	SeedTypes   Optional[[]SeedType]           `json:"seed_types"`
	Location    Optional[LocationPayload]      `json:"location"`
	Settings    Optional[SettingsPatch]        `json:"settings"`
	Environment Optional[ContainerEnvironment] `json:"environment"`
}

// SettingsResponse is the settings block of a container response. Ecosystem
// is always null here: the inbound value is one-way, only its presence is
// recorded (as ecosystem_connected).
type SettingsResponse struct {
	ShadowServiceEnabled      bool           `json:"shadow_service_enabled"`
	CopiedEnvironmentFrom     *string        `json:"copied_environment_from"`
	RoboticsSimulationEnabled *bool          `json:"robotics_simulation_enabled"`
	Ecosystem                 map[string]any `json:"ecosystem"`
}

// ContainerInventory lists tray and panel ids; placeholder until tray/panel
// tracking is wired to live data.
type ContainerInventory struct {
	TrayIDs  []string `json:"tray_ids"`
	PanelIDs []string `json:"panel_ids"`
}

// ContainerMetrics carries computed yield figures; placeholder for now.
type ContainerMetrics struct {
	YieldKg                    *float64 `json:"yield_kg"`
	SpaceUtilizationPercentage *float64 `json:"space_utilization_percentage"`
}

// ContainerResponse is the external representation of a container.
type ContainerResponse struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	Type               string               `json:"type"`
	Tenant             string               `json:"tenant"`
	Purpose            string               `json:"purpose"`
	SeedTypes          []SeedType           `json:"seed_types"`
	Location           *LocationPayload     `json:"location"`
	Notes              *string              `json:"notes"`
	Settings           SettingsResponse     `json:"settings"`
	Environment        ContainerEnvironment `json:"environment"`
	Inventory          ContainerInventory   `json:"inventory"`
	Metrics            ContainerMetrics     `json:"metrics"`
	Status             string               `json:"status"`
	Created            time.Time            `json:"created"`
	Modified           time.Time            `json:"modified"`
	HasAlert           bool                 `json:"has_alert"`
	EcosystemConnected bool                 `json:"ecosystem_connected"`
}

// ContainerListResponse is the paginated list envelope.
type ContainerListResponse struct {
	Containers []*ContainerResponse `json:"containers"`
	Total      int                  `json:"total"`
	Page       int                  `json:"page"`
	Size       int                  `json:"size"`
	Pages      int                  `json:"pages"`
}

// PerformanceGroup aggregates one container type for the performance overview.
// The series values are fixed sample fixtures; only Count is live data.
type PerformanceGroup struct {
	Count           int     `json:"count"`
	AvgYield        float64 `json:"avg_yield"`
	TotalYield      float64 `json:"total_yield"`
	AvgUtilization  float64 `json:"avg_utilization"`
	YieldData       []int   `json:"yield_data"`
	UtilizationData []int   `json:"utilization_data"`
}

// PerformanceResponse is the aggregate returned by the performance endpoint.
type PerformanceResponse struct {
	Physical PerformanceGroup `json:"physical"`
	Virtual  PerformanceGroup `json:"virtual"`
}
