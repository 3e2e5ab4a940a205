package course

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/educa-hq/educa/internal/shared"
)

const statsCacheTTL = 5 * time.Minute

// StatsStore is the persistence surface the stats reader needs.
type StatsStore interface {
	GetStats(ctx context.Context, courseID int64) (Stats, error)
	RefreshStats(ctx context.Context, courseID int64) (Stats, error)
}

// StatsReader serves course aggregates through a redis cache, collapsing
// concurrent recomputations with singleflight.
type StatsReader struct {
	repo  StatsStore
	cache *redis.Client
	group singleflight.Group
}

// NewStatsReader constructs a StatsReader. cache may be nil.
func NewStatsReader(repo StatsStore, cache *redis.Client) *StatsReader {
	return &StatsReader{repo: repo, cache: cache}
}

func statsCacheKey(courseID int64) string {
	return fmt.Sprintf("educa:course_stats:%d", courseID)
}

// Get returns the aggregates for a course, computing them on first
// access.
func (s *StatsReader) Get(ctx context.Context, courseID int64) (Stats, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, statsCacheKey(courseID)).Bytes(); err == nil {
			var cached Stats
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	value, err, _ := s.group.Do(statsCacheKey(courseID), func() (any, error) {
		stats, err := s.repo.GetStats(ctx, courseID)
		if errors.Is(err, shared.ErrNotFound) {
			stats, err = s.repo.RefreshStats(ctx, courseID)
		}
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if raw, err := json.Marshal(stats); err == nil {
				s.cache.Set(ctx, statsCacheKey(courseID), raw, statsCacheTTL)
			}
		}
		return stats, nil
	})
	if err != nil {
		return Stats{}, err
	}
	return value.(Stats), nil
}

// Invalidate drops the cached entry after a refresh.
func (s *StatsReader) Invalidate(ctx context.Context, courseID int64) {
	if s.cache != nil {
		s.cache.Del(ctx, statsCacheKey(courseID))
	}
}
