package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/cf-tools/cf-insight/internal/domain/rank"
	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

// Leaderboard ranks every registered profile by the metric. For the solved
// metric this lazily loads each profile's submissions one profile at a
// time; the source's fetch pacing is what spaces those calls, and the loop
// must stay sequential so that pacing actually governs the burst.
//
// When a snapshot cache is wired, a fresh-enough snapshot short-circuits
// the whole fetch.
func (s *Service) Leaderboard(ctx context.Context, metric rank.Metric) (*rank.Snapshot, error) {
	if s.cache != nil {
		snap, err := s.cache.Get(ctx, metric)
		if err == nil {
			return snap, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("leaderboard cache read failed", "metric", metric, "error", err)
		}
	}
	return s.RebuildLeaderboard(ctx, metric)
}

// RebuildLeaderboard recomputes the snapshot unconditionally and refreshes
// the cache. The periodic worker uses this to keep snapshots warm.
func (s *Service) RebuildLeaderboard(ctx context.Context, metric rank.Metric) (*rank.Snapshot, error) {
	profiles := s.registry.All()

	if metric == rank.MetricSolved {
		for _, p := range profiles {
			if p.SubmissionsLoaded() {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if _, err := s.EnsureSubmissions(ctx, p); err != nil {
				return nil, fmt.Errorf("load submissions for %s: %w", p.Handle, err)
			}
		}
	}

	entries, err := rank.Rank(profiles, metric)
	if err != nil {
		return nil, err
	}

	snap := rank.NewSnapshot(metric, entries)
	if s.cache != nil {
		if err := s.cache.Set(ctx, snap); err != nil {
			s.logger.Warn("leaderboard cache write failed", "metric", metric, "error", err)
		}
	}
	return snap, nil
}

// InvalidateLeaderboard drops a cached snapshot, forcing the next request
// to recompute.
func (s *Service) InvalidateLeaderboard(ctx context.Context, metric rank.Metric) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, metric)
}
