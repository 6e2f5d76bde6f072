package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecocharge/internal/models"
)

var (
	// ErrStationOccupied means the requested window overlaps an existing reservation.
	ErrStationOccupied = errors.New("station occupied")
	// ErrStationInactive means the station exists but does not accept bookings.
	ErrStationInactive = errors.New("station inactive")
)

// ReservationRepository persists reservations (charge_sessions table).
type ReservationRepository struct {
	db *sql.DB
}

// NewReservationRepository returns repository instance.
func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Book atomically checks the station for overlap and inserts the reservation.
// The station row is locked FOR UPDATE for the duration of the transaction,
// serializing concurrent bookings per station: the overlap check and the
// insert can never interleave with another booking on the same station.
// Overlap uses half-open [start, end) semantics, so an interval that exactly
// abuts an existing one is allowed.
func (r *ReservationRepository) Book(ctx context.Context, res *models.Reservation) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("book: begin: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM charging_stations WHERE id = $1 FOR UPDATE`,
		res.StationID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrStationNotFound
		}
		return fmt.Errorf("book: lock station: %w", err)
	}
	if status != models.StationStatusActive {
		return ErrStationInactive
	}

	var overlapping int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM charge_sessions
		WHERE station_id = $1 AND start_time < $3 AND end_time > $2
	`, res.StationID, res.StartTime, res.EndTime).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("book: overlap check: %w", err)
	}
	if overlapping > 0 {
		return ErrStationOccupied
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO charge_sessions (user_id, vehicle_id, station_id, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, res.UserID, res.VehicleID, res.StationID, res.StartTime, res.EndTime).
		Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return fmt.Errorf("book: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("book: commit: %w", err)
	}
	return nil
}

// ListByStation returns the most recent reservations for a station, joined
// with the owning user and vehicle.
func (r *ReservationRepository) ListByStation(ctx context.Context, stationID int64, limit int) ([]models.ReservationDetail, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
		SELECT cs.id, cs.user_id, COALESCE(cs.vehicle_id, 0), cs.station_id,
		       cs.start_time, cs.end_time, cs.energy_kwh, cs.cost_eur, cs.created_at,
		       COALESCE(u.name, ''), COALESCE(u.surname, ''), COALESCE(v.license_plate, '')
		FROM charge_sessions cs
		LEFT JOIN users u ON cs.user_id = u.id
		LEFT JOIN vehicles v ON cs.vehicle_id = v.id
		WHERE cs.station_id = $1
		ORDER BY cs.start_time DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, stationID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []models.ReservationDetail
	for rows.Next() {
		var d models.ReservationDetail
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.VehicleID, &d.StationID,
			&d.StartTime, &d.EndTime, &d.EnergyKWh, &d.CostEUR, &d.CreatedAt,
			&d.UserName, &d.UserSurname, &d.LicensePlate,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// ListByUser returns the reservation history of one user, newest first.
func (r *ReservationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Reservation, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
		SELECT id, user_id, COALESCE(vehicle_id, 0), station_id,
		       start_time, end_time, energy_kwh, cost_eur, created_at
		FROM charge_sessions
		WHERE user_id = $1
		ORDER BY start_time DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var res models.Reservation
		if err := rows.Scan(
			&res.ID, &res.UserID, &res.VehicleID, &res.StationID,
			&res.StartTime, &res.EndTime, &res.EnergyKWh, &res.CostEUR, &res.CreatedAt,
		); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}
