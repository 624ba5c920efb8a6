package models

import "time"

// Panel is a cultivation-area carrier belonging to a container.
type Panel struct {
	ID                    string    `json:"id" db:"id"`
	ContainerID           string    `json:"container_id" db:"container_id"`
	RFIDTag               *string   `json:"rfid_tag" db:"rfid_tag"`
	UtilizationPercentage *int      `json:"utilization_percentage" db:"utilization_percentage"`
	CropCount             *int      `json:"crop_count" db:"crop_count"`
	IsEmpty               bool      `json:"is_empty" db:"is_empty"`
	ProvisionedAt         time.Time `json:"provisioned_at" db:"provisioned_at"`
}

// PanelLocation is a wall slot occupied by a panel.
type PanelLocation struct {
	ID         int    `json:"id" db:"id"`
	Wall       string `json:"wall" db:"wall"`
	SlotNumber int    `json:"slot_number" db:"slot_number"`
	PanelID    string `json:"panel_id" db:"panel_id"`
}
