package repository

import (
	"context"
	"database/sql"
	"errors"

	"ecocharge/internal/models"
)

// ErrSessionNotFound indicates an unknown token.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists login sessions keyed by bearer token.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository returns repository instance.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Insert stores a freshly issued session.
func (r *SessionRepository) Insert(ctx context.Context, session *models.Session) error {
	const query = `
		INSERT INTO sessions (token, user_id, role, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		session.Token,
		session.UserID,
		session.Role,
		session.CreatedAt,
		session.ExpiresAt,
	)
	return err
}

// GetByToken fetches a session row. Expiry is NOT checked here; the caller
// compares ExpiresAt against its own clock.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	const query = `
		SELECT token, user_id, role, created_at, expires_at
		FROM sessions
		WHERE token = $1
	`
	var s models.Session
	err := r.db.QueryRowContext(ctx, query, token).
		Scan(&s.Token, &s.UserID, &s.Role, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// DeleteByToken removes a session. Deleting an absent token is not an error.
func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

// DeleteExpired garbage-collects rows past their absolute expiry. Expired
// rows are inert either way; this only keeps the table small.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
