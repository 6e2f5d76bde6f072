package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"ecocharge/internal/models"
	"ecocharge/internal/repository"
)

// ErrInvalidDuration means the requested duration is non-positive or above
// the administrative maximum.
var ErrInvalidDuration = errors.New("booking: invalid duration")

// ReservationStore defines the storage contract for bookings. Book must be
// atomic with respect to concurrent bookings on the same station.
type ReservationStore interface {
	Book(ctx context.Context, res *models.Reservation) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.Reservation, error)
}

// VehicleRepository reads vehicles for ownership checks and listings.
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Vehicle, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Vehicle, error)
}

// BookingService grants reservations while preserving single occupancy per
// station.
type BookingService struct {
	reservations ReservationStore
	vehicles     VehicleRepository
	maxDuration  time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

// NewBookingService builds BookingService with the given maximum duration.
func NewBookingService(reservations ReservationStore, vehicles VehicleRepository, maxDuration time.Duration, logger *zap.Logger) *BookingService {
	if maxDuration <= 0 {
		maxDuration = 24 * time.Hour
	}
	return &BookingService{
		reservations: reservations,
		vehicles:     vehicles,
		maxDuration:  maxDuration,
		now:          time.Now,
		logger:       logger,
	}
}

// Book reserves a station for the user starting now, for the requested
// number of minutes. The overlap check and insert happen in one atomic store
// operation; on any conflict nothing is written.
func (s *BookingService) Book(ctx context.Context, userID, stationID, vehicleID int64, durationMinutes int) (*models.Reservation, error) {
	duration := time.Duration(durationMinutes) * time.Minute
	if durationMinutes <= 0 || duration > s.maxDuration {
		return nil, ErrInvalidDuration
	}

	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	// A vehicle of another user is indistinguishable from an unknown one.
	if vehicle.UserID != userID {
		return nil, repository.ErrVehicleNotFound
	}

	start := s.now().UTC()
	res := &models.Reservation{
		UserID:    userID,
		VehicleID: vehicleID,
		StationID: stationID,
		StartTime: start,
		EndTime:   start.Add(duration),
	}

	if err := s.reservations.Book(ctx, res); err != nil {
		return nil, err
	}

	s.logger.Info("station booked",
		zap.Int64("station_id", stationID),
		zap.Int64("user_id", userID),
		zap.Time("start_time", res.StartTime),
		zap.Time("end_time", res.EndTime),
	)
	return res, nil
}

// History returns the caller's reservations, newest first.
func (s *BookingService) History(ctx context.Context, userID int64) ([]models.Reservation, error) {
	return s.reservations.ListByUser(ctx, userID, 50)
}

// Vehicles returns the vehicles the caller may book with.
func (s *BookingService) Vehicles(ctx context.Context, userID int64) ([]models.Vehicle, error) {
	return s.vehicles.ListByUser(ctx, userID)
}
