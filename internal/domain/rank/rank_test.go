package rank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cf-tools/cf-insight/internal/domain/contest"
	"github.com/cf-tools/cf-insight/internal/domain/profile"
	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

func ratedProfile(handle string, rating int) *profile.UserProfile {
	r := rating
	return &profile.UserProfile{Handle: handle, Rating: &r}
}

func TestRank_DescendingStableTieBreak(t *testing.T) {
	// A and B tie at 1500; supplied order A-before-B must survive the sort.
	profiles := []*profile.UserProfile{
		ratedProfile("A", 1500),
		ratedProfile("B", 1500),
		ratedProfile("C", 1600),
	}

	entries, err := Rank(profiles, MetricRating)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "C", entries[0].Profile.Handle)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, "A", entries[1].Profile.Handle)
	assert.Equal(t, 2, entries[1].Position)
	assert.Equal(t, "B", entries[2].Profile.Handle)
	assert.Equal(t, 3, entries[2].Position)
}

func TestRank_AbsentValueSortsLast(t *testing.T) {
	unrated := &profile.UserProfile{Handle: "fresh"}
	profiles := []*profile.UserProfile{
		unrated,
		ratedProfile("low", -5), // negative but real, still beats absent
		ratedProfile("high", 2400),
	}

	entries, err := Rank(profiles, MetricRating)
	require.NoError(t, err)

	assert.Equal(t, "high", entries[0].Profile.Handle)
	assert.Equal(t, "low", entries[1].Profile.Handle)
	assert.Equal(t, "fresh", entries[2].Profile.Handle)
	assert.Equal(t, math.MinInt, entries[2].Value)
}

func TestRank_MaxRatingMetric(t *testing.T) {
	maxA, maxB := 2100, 1900
	profiles := []*profile.UserProfile{
		{Handle: "a", MaxRating: &maxA},
		{Handle: "b", MaxRating: &maxB},
	}

	entries, err := Rank(profiles, MetricMaxRating)
	require.NoError(t, err)
	assert.Equal(t, "a", entries[0].Profile.Handle)
	assert.Equal(t, 2100, entries[0].Value)
}

func TestRank_SolvedMetric(t *testing.T) {
	a := &profile.UserProfile{Handle: "a"}
	a.SetSubmissions([]contest.Submission{
		{Verdict: contest.VerdictAccepted},
		{Verdict: contest.VerdictAccepted},
		{Verdict: "WRONG_ANSWER"},
	})
	b := &profile.UserProfile{Handle: "b"}
	b.SetSubmissions([]contest.Submission{
		{Verdict: contest.VerdictAccepted},
	})

	entries, err := Rank([]*profile.UserProfile{b, a}, MetricSolved)
	require.NoError(t, err)
	assert.Equal(t, "a", entries[0].Profile.Handle)
	assert.Equal(t, 2, entries[0].Value)
	assert.Equal(t, "b", entries[1].Profile.Handle)
	assert.Equal(t, 1, entries[1].Value)
}

func TestRank_SolvedRequiresLoadedSubmissions(t *testing.T) {
	_, err := Rank([]*profile.UserProfile{{Handle: "a"}}, MetricSolved)
	assert.ErrorIs(t, err, shared.ErrNotLoaded)
}

func TestRank_InvalidMetric(t *testing.T) {
	_, err := Rank(nil, Metric("elo"))
	assert.ErrorIs(t, err, shared.ErrMalformedRecord)
}

func TestMetric_Valid(t *testing.T) {
	assert.True(t, MetricRating.Valid())
	assert.True(t, MetricMaxRating.Valid())
	assert.True(t, MetricSolved.Valid())
	assert.False(t, Metric("").Valid())
	assert.False(t, Metric("elo").Valid())
}

func TestNewSnapshot(t *testing.T) {
	entries := []Entry{
		{Position: 1, Profile: ratedProfile("a", 1600), Value: 1600},
		{Position: 2, Profile: ratedProfile("b", 1500), Value: 1500},
	}

	snap := NewSnapshot(MetricRating, entries)

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, MetricRating, snap.Metric)
	assert.False(t, snap.GeneratedAt.IsZero())
	require.Len(t, snap.Entries, 2)
	assert.Equal(t, SnapshotEntry{Position: 1, Handle: "a", Value: 1600}, snap.Entries[0])
	assert.Equal(t, SnapshotEntry{Position: 2, Handle: "b", Value: 1500}, snap.Entries[1])
}
