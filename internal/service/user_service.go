package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"ecocharge/internal/models"
	"ecocharge/internal/password"
	"ecocharge/internal/repository"
)

// ErrEmailInUse is returned when creating or renaming to a taken email.
var ErrEmailInUse = errors.New("user: email already registered")

// UserService contains admin-side user management.
type UserService struct {
	users  UserRepository
	hasher password.Hasher
	logger *zap.Logger
}

// NewUserService builds UserService.
func NewUserService(users UserRepository, hasher password.Hasher, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Create registers a new account with a hashed password. Empty role
// defaults to user.
func (s *UserService) Create(ctx context.Context, user *models.User, plainPassword string) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" {
		return errors.New("user: email required")
	}
	if plainPassword == "" {
		return errors.New("user: password required")
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	if _, err := s.users.GetByEmail(ctx, user.Email); err == nil {
		return ErrEmailInUse
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := s.users.Create(ctx, user); err != nil {
		return err
	}
	s.logger.Info("user created", zap.Int64("user_id", user.ID), zap.String("role", user.Role))
	return nil
}

// Update rewrites profile fields; a non-empty plainPassword replaces the
// stored hash, an empty one keeps it.
func (s *UserService) Update(ctx context.Context, user *models.User, plainPassword string) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" {
		return errors.New("user: email required")
	}

	if existing, err := s.users.GetByEmail(ctx, user.Email); err == nil {
		if existing.ID != user.ID {
			return ErrEmailInUse
		}
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	user.PasswordHash = ""
	if plainPassword != "" {
		hash, err := s.hasher.Hash(plainPassword)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info("user updated", zap.Int64("user_id", user.ID))
	return nil
}

// Delete removes the account; sessions, vehicles and reservations cascade.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}
