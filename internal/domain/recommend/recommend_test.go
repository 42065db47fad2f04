package recommend

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cf-tools/cf-insight/internal/domain/contest"
	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

func ratedProblem(index string, rating int) contest.Problem {
	r := rating
	return contest.Problem{Index: index, Name: index, Type: "PROGRAMMING", Rating: &r}
}

func catalogOf(problems ...contest.Problem) *contest.Catalog {
	return &contest.Catalog{Problems: problems}
}

func seeded() *Engine {
	return New(rand.New(rand.NewSource(1)))
}

func TestRecommend_BandIsClosedInterval(t *testing.T) {
	catalog := catalogOf(
		ratedProblem("below", 1699),
		ratedProblem("low-edge", 1700),
		ratedProblem("mid", 1750),
		ratedProblem("high-edge", 1800),
		ratedProblem("above", 1801),
	)

	engine := seeded()
	inBand := map[string]bool{"low-edge": true, "mid": true, "high-edge": true}
	for i := 0; i < 200; i++ {
		p, err := engine.Recommend(catalog, 1500)
		require.NoError(t, err)
		assert.True(t, inBand[p.Index], "picked out-of-band problem %q", p.Index)
	}
}

func TestRecommend_UnratedProblemsNeverEligible(t *testing.T) {
	unrated := contest.Problem{Index: "U", Name: "U", Type: "PROGRAMMING"}
	catalog := catalogOf(unrated, ratedProblem("R", 1750))

	engine := seeded()
	for i := 0; i < 50; i++ {
		p, err := engine.Recommend(catalog, 1500)
		require.NoError(t, err)
		assert.Equal(t, "R", p.Index)
	}
}

func TestRecommend_NoCandidates(t *testing.T) {
	catalog := catalogOf(ratedProblem("hard", 1900))

	_, err := seeded().Recommend(catalog, 1500)
	assert.ErrorIs(t, err, shared.ErrNoCandidates)
	assert.True(t, shared.IsNoCandidates(err))
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	_, err := seeded().Recommend(&contest.Catalog{}, 1500)
	assert.ErrorIs(t, err, shared.ErrNoCandidates)
}

func TestRecommend_EventuallyCoversBand(t *testing.T) {
	catalog := catalogOf(
		ratedProblem("a", 1700),
		ratedProblem("b", 1750),
		ratedProblem("c", 1800),
	)

	engine := seeded()
	picked := make(map[string]bool)
	for i := 0; i < 500; i++ {
		p, err := engine.Recommend(catalog, 1500)
		require.NoError(t, err)
		picked[p.Index] = true
	}
	assert.Len(t, picked, 3, "uniform choice must reach every eligible problem")
}

func TestRecommendFor_NilRatingUsesDefault(t *testing.T) {
	// Default 800 puts the band at [1000, 1100].
	catalog := catalogOf(
		ratedProblem("in", 1050),
		ratedProblem("out", 1750),
	)

	p, err := seeded().RecommendFor(catalog, nil)
	require.NoError(t, err)
	assert.Equal(t, "in", p.Index)
}

func TestRecommendFor_ExplicitRating(t *testing.T) {
	catalog := catalogOf(ratedProblem("in", 1750))
	rating := 1500

	p, err := seeded().RecommendFor(catalog, &rating)
	require.NoError(t, err)
	assert.Equal(t, "in", p.Index)
}
