package application

import (
	"context"
	"fmt"

	"github.com/cf-tools/cf-insight/internal/chart"
	"github.com/cf-tools/cf-insight/internal/domain/profile"
	"github.com/cf-tools/cf-insight/internal/domain/stats"
)

// RatingTrajectoryChart renders the registered user's rating line chart,
// optionally against comparison handles. Comparison profiles are fetched
// fresh and their histories loaded one at a time; the chart engine itself
// drops any comparison that duplicates the primary handle.
func (s *Service) RatingTrajectoryChart(ctx context.Context, userID int64, compareHandles []string) ([]byte, error) {
	primary, err := s.registry.Get(userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.EnsureRatingChanges(ctx, primary); err != nil {
		return nil, err
	}
	primaryChanges, err := primary.RatingChanges()
	if err != nil {
		return nil, err
	}

	comparisons, err := s.comparisonProfiles(ctx, primary, compareHandles)
	if err != nil {
		return nil, err
	}

	series := make([]chart.Series, 0, len(comparisons))
	for _, p := range comparisons {
		changes, err := s.EnsureRatingChanges(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("load rating history for %s: %w", p.Handle, err)
		}
		series = append(series, chart.SeriesFromRatingChanges(p.Handle, changes))
	}

	return chart.RatingTrajectory(
		chart.SeriesFromRatingChanges(primary.Handle, primaryChanges), series)
}

// RatingBarsChart renders the current-vs-max bar comparison for the
// registered user against comparison handles.
func (s *Service) RatingBarsChart(ctx context.Context, userID int64, compareHandles []string) ([]byte, error) {
	primary, err := s.registry.Get(userID)
	if err != nil {
		return nil, err
	}

	comparisons, err := s.comparisonProfiles(ctx, primary, compareHandles)
	if err != nil {
		return nil, err
	}

	subjects := make([]chart.Subject, 0, len(comparisons))
	for _, p := range comparisons {
		subjects = append(subjects, chart.SubjectFromProfile(p))
	}
	return chart.RatingBars(chart.SubjectFromProfile(primary), subjects)
}

// VerdictPieChart renders the verdict distribution of the registered
// user's submissions.
func (s *Service) VerdictPieChart(ctx context.Context, userID int64) ([]byte, error) {
	p, err := s.registry.Get(userID)
	if err != nil {
		return nil, err
	}
	subs, err := s.EnsureSubmissions(ctx, p)
	if err != nil {
		return nil, err
	}
	histogram, err := stats.VerdictHistogram(subs)
	if err != nil {
		return nil, err
	}
	return chart.VerdictPie(histogram)
}

// comparisonProfiles materializes ephemeral profiles for comparison
// handles in one batch fetch. They are not registered and are discarded
// with the chart; the primary's cached state is never touched by them.
func (s *Service) comparisonProfiles(ctx context.Context, primary *profile.UserProfile, handles []string) ([]*profile.UserProfile, error) {
	if len(handles) == 0 {
		return nil, nil
	}

	records, err := s.source.GetProfiles(ctx, handles)
	if err != nil {
		return nil, err
	}
	return profile.ProfilesFromRecords(handles, records)
}
