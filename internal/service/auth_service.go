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

var (
	// ErrUnknownIdentity means no account exists for the email.
	ErrUnknownIdentity = errors.New("auth: unknown identity")
	// ErrInvalidCredentials means the password did not match.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

// UserRepository defines the storage contract shared by auth and user admin.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

// ActivityTracker mirrors the idle-activity guard; nil disables it.
type ActivityTracker interface {
	Start(ctx context.Context, token string) error
	Clear(ctx context.Context, token string) error
}

// AuthService handles login and logout.
type AuthService struct {
	users    UserRepository
	hasher   password.Hasher
	sessions *SessionService
	activity ActivityTracker
	logger   *zap.Logger
}

// NewAuthService builds AuthService. activity may be nil.
func NewAuthService(users UserRepository, hasher password.Hasher, sessions *SessionService, activity ActivityTracker, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		activity: activity,
		logger:   logger,
	}
}

// Login verifies credentials and issues a session. No session row is created
// on any failure path.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*models.Session, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plainPassword == "" {
		return nil, nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrUnknownIdentity
		}
		return nil, nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.sessions.Issue(ctx, user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}

	if s.activity != nil {
		if err := s.activity.Start(ctx, session.Token); err != nil {
			s.logger.Warn("failed to start activity tracking", zap.Error(err))
		}
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID), zap.String("role", user.Role))
	return session, user, nil
}

// Logout revokes the session. Idempotent: an already revoked or unknown
// token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return err
	}
	if s.activity != nil {
		if err := s.activity.Clear(ctx, token); err != nil {
			s.logger.Warn("failed to clear activity tracking", zap.Error(err))
		}
	}
	return nil
}
