package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ecocharge/internal/http/middleware"
	"ecocharge/internal/repository"
	"ecocharge/internal/service"
)

// NewBookHandler handles POST /api/book for user-role sessions.
func NewBookHandler(bookingService *service.BookingService) http.HandlerFunc {
	type request struct {
		StationID int64 `json:"station_id"`
		VehicleID int64 `json:"vehicle_id"`
		Duration  int   `json:"duration"`
	}
	type response struct {
		Success   bool   `json:"success"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		res, err := bookingService.Book(r.Context(), session.UserID, req.StationID, req.VehicleID, req.Duration)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidDuration):
				writeError(w, http.StatusBadRequest, "invalid duration")
			case errors.Is(err, repository.ErrStationOccupied):
				writeError(w, http.StatusBadRequest, "station occupied")
			case errors.Is(err, repository.ErrStationInactive):
				writeError(w, http.StatusBadRequest, "station unavailable")
			case errors.Is(err, repository.ErrStationNotFound):
				writeError(w, http.StatusNotFound, "station not found")
			case errors.Is(err, repository.ErrVehicleNotFound):
				writeError(w, http.StatusBadRequest, "vehicle not found")
			default:
				writeError(w, http.StatusInternalServerError, "failed to book station")
			}
			return
		}

		writeJSON(w, http.StatusOK, response{
			Success:   true,
			StartTime: res.StartTime.Format(time.RFC3339),
			EndTime:   res.EndTime.Format(time.RFC3339),
		})
	}
}
