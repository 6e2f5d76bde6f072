package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"ecocharge/internal/models"
	"ecocharge/internal/repository"
	"ecocharge/internal/service"
)

// StationsHandlers groups station endpoints.
type StationsHandlers struct {
	svc    *service.StationService
	logger *zap.Logger
}

// NewStationsHandlers builds handlers.
func NewStationsHandlers(svc *service.StationService, logger *zap.Logger) *StationsHandlers {
	return &StationsHandlers{svc: svc, logger: logger}
}

type stationPayload struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PowerKW   float64 `json:"power_kw"`
	Zone      string  `json:"zone"`
	Status    string  `json:"status"`
}

// List handles GET /api/stations.
func (h *StationsHandlers) List(w http.ResponseWriter, r *http.Request) {
	stations, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list stations", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list stations")
		return
	}
	if stations == nil {
		stations = []models.ChargingStation{}
	}
	writeJSON(w, http.StatusOK, stations)
}

// Get handles GET /api/stations/{id}.
func (h *StationsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	station, recent, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			writeError(w, http.StatusNotFound, "station not found")
			return
		}
		h.logger.Error("failed to fetch station", zap.Int64("station_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch station")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"station":         station,
		"recent_sessions": recent,
	})
}

// Create handles POST /api/stations (admin).
func (h *StationsHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req stationPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	station := &models.ChargingStation{
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		PowerKW:   req.PowerKW,
		Zone:      req.Zone,
		Status:    req.Status,
	}
	if err := h.svc.Create(r.Context(), station); err != nil {
		h.logger.Error("failed to create station", zap.Error(err))
		writeError(w, http.StatusBadRequest, "failed to create station")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      station.ID,
	})
}

// Update handles PUT /api/stations/{id} (admin).
func (h *StationsHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req stationPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	station := &models.ChargingStation{
		ID:        id,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		PowerKW:   req.PowerKW,
		Zone:      req.Zone,
		Status:    req.Status,
	}
	if err := h.svc.Update(r.Context(), station); err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			writeError(w, http.StatusNotFound, "station not found")
			return
		}
		h.logger.Error("failed to update station", zap.Int64("station_id", id), zap.Error(err))
		writeError(w, http.StatusBadRequest, "failed to update station")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Delete handles DELETE /api/stations/{id} (admin).
func (h *StationsHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			writeError(w, http.StatusNotFound, "station not found")
			return
		}
		h.logger.Error("failed to delete station", zap.Int64("station_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete station")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
