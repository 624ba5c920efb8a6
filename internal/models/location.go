package models

import "github.com/google/uuid"

// Location is a postal/site description attached to at most one physical
// container. Virtual containers never own a location.
type Location struct {
	ID      uuid.UUID `json:"id" db:"id"`
	City    string    `json:"city" db:"city"`
	Country string    `json:"country" db:"country"`
	Address *string   `json:"address" db:"address"`
}
