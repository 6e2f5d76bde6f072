package service

import (
	"context"

	"ecocharge/internal/models"
)

const (
	defaultStatsDays = 30
	maxStatsDays     = 365
)

// StatsRepository defines the aggregation contract.
type StatsRepository interface {
	DailyCounts(ctx context.Context, zone string, days int) ([]models.DailyCount, error)
}

// StatsService serves usage statistics for administrators.
type StatsService struct {
	stats StatsRepository
}

// NewStatsService builds StatsService.
func NewStatsService(stats StatsRepository) *StatsService {
	return &StatsService{stats: stats}
}

// ZoneUsage returns per-day reservation counts for a zone over the trailing
// days window, clamped to a year.
func (s *StatsService) ZoneUsage(ctx context.Context, zone string, days int) ([]models.DailyCount, error) {
	if days <= 0 {
		days = defaultStatsDays
	}
	if days > maxStatsDays {
		days = maxStatsDays
	}
	return s.stats.DailyCounts(ctx, zone, days)
}
