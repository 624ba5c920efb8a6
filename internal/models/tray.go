package models

import "time"

// Tray is a nursery-station carrier belonging to a container.
type Tray struct {
	ID                    string    `json:"id" db:"id"`
	ContainerID           string    `json:"container_id" db:"container_id"`
	RFIDTag               *string   `json:"rfid_tag" db:"rfid_tag"`
	UtilizationPercentage *int      `json:"utilization_percentage" db:"utilization_percentage"`
	CropCount             *int      `json:"crop_count" db:"crop_count"`
	IsEmpty               bool      `json:"is_empty" db:"is_empty"`
	ProvisionedAt         time.Time `json:"provisioned_at" db:"provisioned_at"`
}

// TrayLocation is a shelf slot occupied by a tray.
type TrayLocation struct {
	ID         int    `json:"id" db:"id"`
	Shelf      string `json:"shelf" db:"shelf"`
	SlotNumber int    `json:"slot_number" db:"slot_number"`
	TrayID     string `json:"tray_id" db:"tray_id"`
}
