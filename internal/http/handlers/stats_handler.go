package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"ecocharge/internal/models"
	"ecocharge/internal/service"
)

// NewStatsHandler handles GET /api/stats?zone=&days= for administrators.
func NewStatsHandler(statsService *service.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zone := strings.TrimSpace(r.URL.Query().Get("zone"))
		if zone == "" {
			writeError(w, http.StatusBadRequest, "zone parameter is required")
			return
		}

		days := 0
		if raw := r.URL.Query().Get("days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid days parameter")
				return
			}
			days = parsed
		}

		counts, err := statsService.ZoneUsage(r.Context(), zone, days)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to fetch statistics")
			return
		}
		if counts == nil {
			counts = []models.DailyCount{}
		}

		writeJSON(w, http.StatusOK, counts)
	}
}
