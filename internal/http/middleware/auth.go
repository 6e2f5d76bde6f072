package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"ecocharge/internal/models"
	"ecocharge/internal/service"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionValidator resolves bearer tokens to sessions.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*models.Session, error)
}

// ActivityGuard is the edge-layer idle timeout; nil disables it.
type ActivityGuard interface {
	Touch(ctx context.Context, token string) (bool, error)
}

// RequireRole builds the authorization gate applied to protected routes.
// It validates the bearer token, refreshes the idle guard and checks the
// session role against requiredRole. An empty requiredRole accepts any valid
// session. The response never distinguishes unknown from expired tokens.
func RequireRole(sessions SessionValidator, guard ActivityGuard, requiredRole string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			session, err := sessions.Validate(r.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrSessionInvalid) {
					writeError(w, http.StatusUnauthorized, "unauthorized")
					return
				}
				// Store failure is not "unauthenticated".
				logger.Error("session validation failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if guard != nil {
				alive, guardErr := guard.Touch(r.Context(), token)
				switch {
				case guardErr != nil:
					// The idle guard is a courtesy layer; absolute expiry
					// still holds, so fail open.
					logger.Warn("idle guard unavailable", zap.Error(guardErr))
				case !alive:
					writeError(w, http.StatusUnauthorized, "unauthorized")
					return
				}
			}

			if requiredRole != "" && session.Role != requiredRole {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// WithSession returns a context carrying the authenticated session.
func WithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext retrieves the authenticated session placed by RequireRole.
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*models.Session)
	return session, ok
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
