package handlers

import (
	"net/http"

	"ecocharge/internal/http/middleware"
	"ecocharge/internal/service"
)

// NewVehiclesMeHandler handles GET /api/vehicles/me.
func NewVehiclesMeHandler(bookingService *service.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		vehicles, err := bookingService.Vehicles(r.Context(), session.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch vehicles")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"vehicles": vehicles,
		})
	}
}
