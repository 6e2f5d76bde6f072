package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ecocharge/internal/models"
)

// ErrStationNotFound represents missing station rows.
var ErrStationNotFound = errors.New("station not found")

// StationRepository handles CRUD for charging stations.
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository returns repository instance.
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

// List returns all stations with their occupancy computed at the given
// instant using half-open interval semantics: occupied iff a reservation
// satisfies start_time <= at < end_time.
func (r *StationRepository) List(ctx context.Context, at time.Time) ([]models.ChargingStation, error) {
	const query = `
		SELECT s.id, s.address, s.latitude, s.longitude, s.power_kw, s.zone, s.status,
		       s.created_at, s.updated_at,
		       EXISTS(
		           SELECT 1 FROM charge_sessions cs
		           WHERE cs.station_id = s.id AND cs.start_time <= $1 AND cs.end_time > $1
		       ) AS occupied
		FROM charging_stations s
		ORDER BY s.id
	`
	rows, err := r.db.QueryContext(ctx, query, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []models.ChargingStation
	for rows.Next() {
		var s models.ChargingStation
		if err := rows.Scan(
			&s.ID, &s.Address, &s.Latitude, &s.Longitude, &s.PowerKW, &s.Zone, &s.Status,
			&s.CreatedAt, &s.UpdatedAt, &s.Occupied,
		); err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

// GetByID fetches one station including occupancy at the given instant.
func (r *StationRepository) GetByID(ctx context.Context, id int64, at time.Time) (*models.ChargingStation, error) {
	const query = `
		SELECT s.id, s.address, s.latitude, s.longitude, s.power_kw, s.zone, s.status,
		       s.created_at, s.updated_at,
		       EXISTS(
		           SELECT 1 FROM charge_sessions cs
		           WHERE cs.station_id = s.id AND cs.start_time <= $2 AND cs.end_time > $2
		       ) AS occupied
		FROM charging_stations s
		WHERE s.id = $1
	`
	var s models.ChargingStation
	err := r.db.QueryRowContext(ctx, query, id, at).Scan(
		&s.ID, &s.Address, &s.Latitude, &s.Longitude, &s.PowerKW, &s.Zone, &s.Status,
		&s.CreatedAt, &s.UpdatedAt, &s.Occupied,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts a new station.
func (r *StationRepository) Create(ctx context.Context, station *models.ChargingStation) error {
	const query = `
		INSERT INTO charging_stations (address, latitude, longitude, power_kw, zone, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		station.Address,
		station.Latitude,
		station.Longitude,
		station.PowerKW,
		station.Zone,
		station.Status,
	).Scan(&station.ID, &station.CreatedAt, &station.UpdatedAt)
}

// Update rewrites station fields.
func (r *StationRepository) Update(ctx context.Context, station *models.ChargingStation) error {
	const query = `
		UPDATE charging_stations
		SET address = $2, latitude = $3, longitude = $4, power_kw = $5, zone = $6, status = $7,
		    updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		station.ID,
		station.Address,
		station.Latitude,
		station.Longitude,
		station.PowerKW,
		station.Zone,
		station.Status,
	)
	if err != nil {
		return err
	}
	return requireAffected(result, ErrStationNotFound)
}

// Delete removes the station; its reservations cascade.
func (r *StationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM charging_stations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result, ErrStationNotFound)
}
