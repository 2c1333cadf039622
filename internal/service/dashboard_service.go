package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campushub/college-api/internal/models"
	appErrors "github.com/campushub/college-api/pkg/errors"
)

const dashboardStatsCacheKey = "dashboard:stats"

type dashboardRepository interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// DashboardService serves headline counts, cached in Redis to keep the
// aggregate query off the hot path.
type DashboardService struct {
	repo     dashboardRepository
	cache    *redis.Client
	metrics  *MetricsService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewDashboardService constructs a DashboardService instance. The cache
// client may be nil, in which case every call hits the database.
func NewDashboardService(repo dashboardRepository, cache *redis.Client, metrics *MetricsService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &DashboardService{repo: repo, cache: cache, metrics: metrics, cacheTTL: cacheTTL, logger: logger}
}

// Stats returns the dashboard counts, from cache when fresh.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if s.cache != nil {
		start := time.Now()
		raw, err := s.cache.Get(ctx, dashboardStatsCacheKey).Result()
		if err == nil {
			var cached models.DashboardStats
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				s.metrics.RecordCacheOperation(true, time.Since(start))
				return &cached, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
		s.metrics.RecordCacheOperation(false, time.Since(start))
	}

	queryStart := time.Now()
	stats, err := s.repo.Stats(ctx)
	s.metrics.ObserveDBQuery("dashboard_stats", time.Since(queryStart))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dashboard stats")
	}

	if s.cache != nil {
		if payload, jsonErr := json.Marshal(stats); jsonErr == nil {
			if err := s.cache.Set(ctx, dashboardStatsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("dashboard cache write failed", zap.Error(err))
			}
		}
	}

	return stats, nil
}

// Invalidate drops the cached counts, forcing the next read to recompute.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, dashboardStatsCacheKey).Err(); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}
