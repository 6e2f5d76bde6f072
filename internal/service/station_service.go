package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"ecocharge/internal/models"
)

// StationRepository defines the storage contract for station CRUD.
type StationRepository interface {
	List(ctx context.Context, at time.Time) ([]models.ChargingStation, error)
	GetByID(ctx context.Context, id int64, at time.Time) (*models.ChargingStation, error)
	Create(ctx context.Context, station *models.ChargingStation) error
	Update(ctx context.Context, station *models.ChargingStation) error
	Delete(ctx context.Context, id int64) error
}

// ReservationLister reads recent reservations for the station detail view.
type ReservationLister interface {
	ListByStation(ctx context.Context, stationID int64, limit int) ([]models.ReservationDetail, error)
}

// StationService exposes station CRUD and occupancy.
type StationService struct {
	stations     StationRepository
	reservations ReservationLister
	now          func() time.Time
	logger       *zap.Logger
}

// NewStationService builds StationService.
func NewStationService(stations StationRepository, reservations ReservationLister, logger *zap.Logger) *StationService {
	return &StationService{
		stations:     stations,
		reservations: reservations,
		now:          time.Now,
		logger:       logger,
	}
}

// List returns all stations with occupancy evaluated at the current instant.
func (s *StationService) List(ctx context.Context) ([]models.ChargingStation, error) {
	return s.stations.List(ctx, s.now().UTC())
}

// Get returns one station plus its ten most recent reservations.
func (s *StationService) Get(ctx context.Context, id int64) (*models.ChargingStation, []models.ReservationDetail, error) {
	station, err := s.stations.GetByID(ctx, id, s.now().UTC())
	if err != nil {
		return nil, nil, err
	}
	recent, err := s.reservations.ListByStation(ctx, id, 10)
	if err != nil {
		return nil, nil, err
	}
	return station, recent, nil
}

// Create registers a new station; empty status defaults to active.
func (s *StationService) Create(ctx context.Context, station *models.ChargingStation) error {
	if strings.TrimSpace(station.Address) == "" {
		return errors.New("station: address required")
	}
	if station.Status == "" {
		station.Status = models.StationStatusActive
	}
	if err := s.stations.Create(ctx, station); err != nil {
		return err
	}
	s.logger.Info("station created", zap.Int64("station_id", station.ID), zap.String("zone", station.Zone))
	return nil
}

// Update rewrites station fields.
func (s *StationService) Update(ctx context.Context, station *models.ChargingStation) error {
	if strings.TrimSpace(station.Address) == "" {
		return errors.New("station: address required")
	}
	if err := s.stations.Update(ctx, station); err != nil {
		return err
	}
	s.logger.Info("station updated", zap.Int64("station_id", station.ID))
	return nil
}

// Delete removes a station together with its reservations.
func (s *StationService) Delete(ctx context.Context, id int64) error {
	if err := s.stations.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("station deleted", zap.Int64("station_id", id))
	return nil
}
