// Package rank produces ordered leaderboards over user profiles.
package rank

import (
	"fmt"
	"math"
	"sort"

	"github.com/cf-tools/cf-insight/internal/domain/profile"
	"github.com/cf-tools/cf-insight/internal/domain/shared"
	"github.com/cf-tools/cf-insight/internal/domain/stats"
)

// Metric selects the value profiles are ranked by.
type Metric string

const (
	// MetricRating ranks by current rating.
	MetricRating Metric = "rating"

	// MetricMaxRating ranks by historical peak rating.
	MetricMaxRating Metric = "max_rating"

	// MetricSolved ranks by accepted submission count. Every profile's
	// submission sequence must be loaded before ranking by this metric.
	MetricSolved Metric = "solved"
)

// Valid reports whether the metric is one of the supported values.
func (m Metric) Valid() bool {
	switch m {
	case MetricRating, MetricMaxRating, MetricSolved:
		return true
	}
	return false
}

// absentValue sorts profiles without a metric value below every real one.
// Real ratings are small integers, so MinInt cannot collide.
const absentValue = math.MinInt

// Entry is one leaderboard row.
type Entry struct {
	// Position is the 1-based rank.
	Position int

	// Profile is the ranked profile.
	Profile *profile.UserProfile

	// Value is the metric value, or the minimum sentinel when absent.
	Value int
}

// Rank orders profiles by the metric, descending. The sort is stable:
// profiles with equal values keep the order they were supplied in, with no
// secondary key. This tie-break is an observable contract, not an accident.
func Rank(profiles []*profile.UserProfile, metric Metric) ([]Entry, error) {
	if !metric.Valid() {
		return nil, shared.NewDomainError("rank", "Rank", shared.ErrMalformedRecord,
			fmt.Sprintf("unsupported metric %q", metric))
	}

	entries := make([]Entry, 0, len(profiles))
	for _, p := range profiles {
		value, err := metricValue(p, metric)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Profile: p, Value: value})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries, nil
}

func metricValue(p *profile.UserProfile, metric Metric) (int, error) {
	switch metric {
	case MetricRating:
		if p.Rating == nil {
			return absentValue, nil
		}
		return *p.Rating, nil
	case MetricMaxRating:
		if p.MaxRating == nil {
			return absentValue, nil
		}
		return *p.MaxRating, nil
	case MetricSolved:
		subs, err := p.Submissions()
		if err != nil {
			return 0, shared.WrapError("rank", "Rank", shared.ErrNotLoaded,
				fmt.Sprintf("submissions for %s must be loaded before ranking by solved count", p.Handle), err)
		}
		return stats.SolvedCount(subs), nil
	}
	return 0, shared.NewDomainError("rank", "Rank", shared.ErrMalformedRecord,
		fmt.Sprintf("unsupported metric %q", metric))
}
