package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"ecocharge/internal/models"
	"ecocharge/internal/repository"
)

// fakeReservationStore mirrors the transactional semantics of the real
// store: the overlap check and insert run under one lock.
type fakeReservationStore struct {
	mu            sync.Mutex
	stationStatus map[int64]string
	reservations  []models.Reservation
	nextID        int64
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{stationStatus: make(map[int64]string)}
}

func (f *fakeReservationStore) Book(_ context.Context, res *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	status, ok := f.stationStatus[res.StationID]
	if !ok {
		return repository.ErrStationNotFound
	}
	if status != models.StationStatusActive {
		return repository.ErrStationInactive
	}
	for _, existing := range f.reservations {
		if existing.StationID != res.StationID {
			continue
		}
		if existing.StartTime.Before(res.EndTime) && existing.EndTime.After(res.StartTime) {
			return repository.ErrStationOccupied
		}
	}

	f.nextID++
	res.ID = f.nextID
	f.reservations = append(f.reservations, *res)
	return nil
}

func (f *fakeReservationStore) ListByUser(_ context.Context, userID int64, _ int) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, res := range f.reservations {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeReservationStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reservations)
}

type fakeVehicleRepo struct {
	vehicles map[int64]models.Vehicle
}

func (f *fakeVehicleRepo) GetByID(_ context.Context, id int64) (*models.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, repository.ErrVehicleNotFound
	}
	return &v, nil
}

func (f *fakeVehicleRepo) ListByUser(_ context.Context, userID int64) ([]models.Vehicle, error) {
	var out []models.Vehicle
	for _, v := range f.vehicles {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func newBookingFixture() (*BookingService, *fakeReservationStore, *time.Time) {
	store := newFakeReservationStore()
	store.stationStatus[1] = models.StationStatusActive
	store.stationStatus[2] = models.StationStatusInactive
	vehicles := &fakeVehicleRepo{vehicles: map[int64]models.Vehicle{
		10: {ID: 10, UserID: 100, LicensePlate: "AB123CD"},
		11: {ID: 11, UserID: 200, LicensePlate: "EF456GH"},
	}}

	current := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	at := &current
	svc := NewBookingService(store, vehicles, 24*time.Hour, zap.NewNop())
	svc.now = func() time.Time { return *at }
	return svc, store, at
}

func TestBookRejectsInvalidDuration(t *testing.T) {
	svc, store, _ := newBookingFixture()

	for _, duration := range []int{0, -30, 24*60 + 1} {
		if _, err := svc.Book(context.Background(), 100, 1, 10, duration); !errors.Is(err, ErrInvalidDuration) {
			t.Fatalf("duration %d: expected ErrInvalidDuration, got %v", duration, err)
		}
	}
	if store.count() != 0 {
		t.Fatalf("no reservation should have been written")
	}
}

func TestBookOverlapAndAbutting(t *testing.T) {
	svc, store, at := newBookingFixture()

	// 10:00 for 60 minutes succeeds, ends at 11:00.
	first, err := svc.Book(context.Background(), 100, 1, 10, 60)
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	wantEnd := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	if !first.EndTime.Equal(wantEnd) {
		t.Fatalf("expected end %v, got %v", wantEnd, first.EndTime)
	}

	// 10:30 for 30 minutes overlaps and is rejected.
	*at = time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	if _, err := svc.Book(context.Background(), 100, 1, 10, 30); !errors.Is(err, repository.ErrStationOccupied) {
		t.Fatalf("expected ErrStationOccupied, got %v", err)
	}

	// Exactly 11:00 abuts the first interval and succeeds.
	*at = wantEnd
	if _, err := svc.Book(context.Background(), 100, 1, 10, 30); err != nil {
		t.Fatalf("abutting booking: %v", err)
	}

	if store.count() != 2 {
		t.Fatalf("expected 2 reservations, got %d", store.count())
	}
}

func TestBookStationStates(t *testing.T) {
	svc, _, _ := newBookingFixture()

	if _, err := svc.Book(context.Background(), 100, 2, 10, 30); !errors.Is(err, repository.ErrStationInactive) {
		t.Fatalf("expected ErrStationInactive, got %v", err)
	}
	if _, err := svc.Book(context.Background(), 100, 99, 10, 30); !errors.Is(err, repository.ErrStationNotFound) {
		t.Fatalf("expected ErrStationNotFound, got %v", err)
	}
}

func TestBookVehicleOwnership(t *testing.T) {
	svc, store, _ := newBookingFixture()

	// Vehicle 11 belongs to user 200, not 100.
	if _, err := svc.Book(context.Background(), 100, 1, 11, 30); !errors.Is(err, repository.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound for foreign vehicle, got %v", err)
	}
	if _, err := svc.Book(context.Background(), 100, 1, 999, 30); !errors.Is(err, repository.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound for unknown vehicle, got %v", err)
	}
	if store.count() != 0 {
		t.Fatalf("no reservation should have been written")
	}
}

func TestBookConcurrentOverlappingRequests(t *testing.T) {
	svc, store, _ := newBookingFixture()

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Book(context.Background(), 100, 1, 10, 60)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, occupied int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, repository.ErrStationOccupied):
			occupied++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 || occupied != 1 {
		t.Fatalf("expected exactly one success and one rejection, got %d/%d", successes, occupied)
	}
	if store.count() != 1 {
		t.Fatalf("expected exactly one reservation row, got %d", store.count())
	}
}

func TestHistoryReturnsOwnReservations(t *testing.T) {
	svc, _, at := newBookingFixture()

	if _, err := svc.Book(context.Background(), 100, 1, 10, 30); err != nil {
		t.Fatalf("booking: %v", err)
	}
	*at = at.Add(time.Hour)
	if _, err := svc.Book(context.Background(), 200, 1, 11, 30); err != nil {
		t.Fatalf("booking: %v", err)
	}

	history, err := svc.History(context.Background(), 100)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].UserID != 100 {
		t.Fatalf("unexpected history %+v", history)
	}
}
