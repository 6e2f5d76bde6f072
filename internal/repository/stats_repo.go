package repository

import (
	"context"
	"database/sql"
	"time"

	"ecocharge/internal/models"
)

// StatsRepository aggregates reservation counts for the admin dashboard.
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository returns repository instance.
func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// DailyCounts returns per-day reservation counts for stations in a zone over
// the trailing number of days.
func (r *StatsRepository) DailyCounts(ctx context.Context, zone string, days int) ([]models.DailyCount, error) {
	const query = `
		SELECT cs.start_time::date AS day, COUNT(*) AS charges_count
		FROM charge_sessions cs
		JOIN charging_stations s ON cs.station_id = s.id
		WHERE s.zone = $1 AND cs.start_time >= NOW() - make_interval(days => $2)
		GROUP BY day
		ORDER BY day
	`
	rows, err := r.db.QueryContext(ctx, query, zone, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.DailyCount
	for rows.Next() {
		var c models.DailyCount
		var day time.Time
		if err := rows.Scan(&day, &c.Count); err != nil {
			return nil, err
		}
		c.Day = day.Format("2006-01-02")
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
