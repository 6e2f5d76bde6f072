package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ecocharge/internal/models"
	"ecocharge/internal/repository"
)

// ErrSessionInvalid covers both unknown and expired tokens. Callers must not
// be able to tell the two apart.
var ErrSessionInvalid = errors.New("session: invalid or expired token")

// 32 random bytes, hex encoded: 256 bits of entropy per token.
const sessionTokenBytes = 32

// SessionRepository defines the storage contract used by the service.
type SessionRepository interface {
	Insert(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

// SessionService issues, validates and revokes store-backed bearer tokens.
type SessionService struct {
	repo   SessionRepository
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// NewSessionService builds SessionService with the given absolute TTL.
func NewSessionService(repo SessionRepository, ttl time.Duration, logger *zap.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &SessionService{
		repo:   repo,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Issue generates an opaque token for the user and persists the session.
// The role is frozen into the row; later role edits on the user do not
// affect already issued sessions.
func (s *SessionService) Issue(ctx context.Context, userID int64, role string) (*models.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := &models.Session{
		Token:     token,
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.repo.Insert(ctx, session); err != nil {
		return nil, fmt.Errorf("session: issue: %w", err)
	}

	s.logger.Info("session issued",
		zap.Int64("user_id", userID),
		zap.String("role", role),
		zap.Time("expires_at", session.ExpiresAt),
	)
	return session, nil
}

// Validate resolves a token to its session. A token is valid iff its row
// exists and the current time is before the absolute expiry; the expiry is
// never extended. Store failures propagate as-is so the edge layer can
// answer 5xx instead of treating them as unauthenticated.
func (s *SessionService) Validate(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}

	session, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, fmt.Errorf("session: lookup: %w", err)
	}

	if !s.now().UTC().Before(session.ExpiresAt) {
		return nil, ErrSessionInvalid
	}
	return session, nil
}

// Revoke deletes the session row. Revoking an unknown token succeeds.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repo.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("session: revoke: %w", err)
	}
	return nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session: token entropy: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
