package models

import "time"

// Station statuses.
const (
	StationStatusActive   = "active"
	StationStatusInactive = "inactive"
)

// ChargingStation is a physical charging point.
type ChargingStation struct {
	ID        int64     `db:"id" json:"id"`
	Address   string    `db:"address" json:"address"`
	Latitude  float64   `db:"latitude" json:"latitude"`
	Longitude float64   `db:"longitude" json:"longitude"`
	PowerKW   float64   `db:"power_kw" json:"power_kw"`
	Zone      string    `db:"zone" json:"zone"`
	Status    string    `db:"status" json:"status"`
	Occupied  bool      `db:"-" json:"occupied"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
