package service

import (
	"context"
	"fmt"

	"parcel-api/internal/metrics"
	"parcel-api/internal/models"

	"github.com/rs/zerolog/log"
)

const statsCacheKey = "parcel:stats"

// StatsService aggregates dashboard statistics, optionally fronted by a cache
type StatsService struct {
	repo  StatsRepository
	cache StatsCache
}

// StatsRepository interface for dependency injection
type StatsRepository interface {
	GetParcelStats(ctx context.Context) (*models.ParcelStats, error)
}

// StatsCache is an optional read-through cache for the stats payload. A nil
// cache disables caching entirely.
type StatsCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
}

// NewStatsService creates a new stats service. cache may be nil.
func NewStatsService(repo StatsRepository, cache StatsCache) *StatsService {
	return &StatsService{repo: repo, cache: cache}
}

// Stats returns the current aggregate view of the parcel set. The underlying
// aggregation runs as independent queries with no shared snapshot, so the
// result may be slightly stale under concurrent ingestion; that is acceptable
// for a dashboard.
func (s *StatsService) Stats(ctx context.Context) (*models.ParcelStats, error) {
	if s.cache != nil {
		var cached models.ParcelStats
		if s.cache.Get(ctx, statsCacheKey, &cached) {
			metrics.CacheHitsTotal.Inc()
			return &cached, nil
		}
		metrics.CacheMissesTotal.Inc()
	}

	metrics.QueriesTotal.WithLabelValues("stats").Inc()
	stats, err := s.repo.GetParcelStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to aggregate stats: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, statsCacheKey, stats)
		log.Debug().Int64("total_parcels", stats.TotalParcels).Msg("stats cached")
	}

	return stats, nil
}
