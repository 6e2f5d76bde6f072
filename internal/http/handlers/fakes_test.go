package handlers

import (
	"context"
	"errors"
	"sync"

	"ecocharge/internal/models"
	"ecocharge/internal/repository"
)

type fakeUserRepo struct {
	byEmail map[string]models.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = int64(len(f.byEmail) + 1)
	f.byEmail[user.Email] = *user
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return &user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, user := range f.byEmail {
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	f.byEmail[user.Email] = *user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	for email, user := range f.byEmail {
		if user.ID == id {
			delete(f.byEmail, email)
			return nil
		}
	}
	return repository.ErrUserNotFound
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func (f *fakeSessionRepo) Insert(_ context.Context, session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.Token] = *session
	return nil
}

func (f *fakeSessionRepo) GetByToken(_ context.Context, token string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[token]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return &session, nil
}

func (f *fakeSessionRepo) DeleteByToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "h:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "h:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeReservationStore struct {
	mu            sync.Mutex
	stationStatus map[int64]string
	reservations  []models.Reservation
	nextID        int64
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
