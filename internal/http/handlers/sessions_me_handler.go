package handlers

import (
	"net/http"

	"ecocharge/internal/http/middleware"
	"ecocharge/internal/service"
)

// NewSessionsMeHandler handles GET /api/sessions/me: the caller's
// reservation history.
func NewSessionsMeHandler(bookingService *service.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		reservations, err := bookingService.History(r.Context(), session.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch reservations")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"sessions": reservations,
		})
	}
}
