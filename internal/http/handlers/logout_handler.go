package handlers

import (
	"net/http"

	"ecocharge/internal/http/middleware"
	"ecocharge/internal/service"
)

// NewLogoutHandler handles POST /api/logout. Logout is idempotent: revoking
// an unknown or already revoked token still succeeds. Only a missing header
// is an error.
func NewLogoutHandler(authService *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := middleware.BearerToken(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "missing bearer token")
			return
		}

		if err := authService.Logout(r.Context(), token); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to logout")
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
