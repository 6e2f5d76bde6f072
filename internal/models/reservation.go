package models

import "time"

// Reservation is a time-bounded claim on a station by a user and vehicle.
// The interval is half-open: [StartTime, EndTime). Energy and cost stay
// NULL until a settlement process outside this service fills them in.
type Reservation struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	VehicleID int64     `db:"vehicle_id" json:"vehicle_id"`
	StationID int64     `db:"station_id" json:"station_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	EnergyKWh *float64  `db:"energy_kwh" json:"energy_kwh,omitempty"`
	CostEUR   *float64  `db:"cost_eur" json:"cost_eur,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ReservationDetail is a reservation joined with its owner and vehicle,
// used on the station detail view.
type ReservationDetail struct {
	Reservation
	UserName     string `db:"user_name" json:"user_name,omitempty"`
	UserSurname  string `db:"user_surname" json:"user_surname,omitempty"`
	LicensePlate string `db:"license_plate" json:"license_plate,omitempty"`
}
