package distribution

import (
	"context"
	"time"

	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
	"github.com/binhbb2204/movie-stats-viz/pkg/metrics"
	"github.com/binhbb2204/movie-stats-viz/pkg/models"
)

const cacheKeyPrefix = "distribution:"

// Cache is the subset of the redis cache the service needs.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *logger.Logger
}

// NewService wraps repo. cache may be nil, in which case every call hits the
// repository.
func NewService(repo Repository, cache Cache, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   logger.GetLogger().WithContext("component", "distribution"),
	}
}

func (s *Service) Distribution(ctx context.Context, category models.Category) ([]models.DataPoint, error) {
	key := cacheKeyPrefix + string(category)

	if s.cache != nil {
		var cached []models.DataPoint
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("cache_read_failed", "category", category, "error", err.Error())
		} else if found {
			metrics.IncrementCacheHits()
			return cached, nil
		}
		metrics.IncrementCacheMisses()
	}

	points, err := s.repo.Distribution(ctx, category)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, points, s.ttl); err != nil {
			s.log.Warn("cache_write_failed", "category", category, "error", err.Error())
		}
	}

	return points, nil
}

// Invalidate drops the cached aggregates for every category.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	keys := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		keys = append(keys, cacheKeyPrefix+string(c))
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		return err
	}
	s.log.Info("cache_invalidated", "keys", len(keys))
	return nil
}
