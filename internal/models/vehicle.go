package models

import "time"

// Vehicle belongs to a user and is referenced by reservations.
type Vehicle struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	LicensePlate string    `db:"license_plate" json:"license_plate"`
	Model        string    `db:"model" json:"model"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
