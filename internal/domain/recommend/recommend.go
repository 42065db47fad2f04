// Package recommend picks practice problems matched to a user's skill band.
package recommend

import (
	"math/rand"

	"github.com/cf-tools/cf-insight/internal/domain/contest"
	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

// DefaultRating substitutes for a profile with no rating yet.
const DefaultRating = 800

// The band is deliberately above the user's level: hard enough to learn
// from, not so hard it is demoralizing.
const (
	bandLow  = 200
	bandHigh = 300
)

// Engine recommends problems from a catalog snapshot. The zero value is
// not usable; construct with New.
type Engine struct {
	rng *rand.Rand
}

// New creates an Engine drawing randomness from rng. Pass a seeded source
// in tests for determinism; pass nil to use a time-seeded one.
func New(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Engine{rng: rng}
}

// Recommend returns one uniformly random problem whose rating lies in the
// closed interval [userRating+200, userRating+300]. Unrated problems are
// never eligible. When nothing is in band it returns ErrNoCandidates,
// which is a normal outcome, not a failure of the engine.
func (e *Engine) Recommend(catalog *contest.Catalog, userRating int) (contest.Problem, error) {
	low := userRating + bandLow
	high := userRating + bandHigh

	var eligible []contest.Problem
	for _, p := range catalog.Problems {
		if !p.Rated() {
			continue
		}
		if r := *p.Rating; r >= low && r <= high {
			eligible = append(eligible, p)
		}
	}

	if len(eligible) == 0 {
		return contest.Problem{}, shared.NewDomainError("recommend", "Recommend",
			shared.ErrNoCandidates, "no problems in rating band")
	}
	return eligible[e.rng.Intn(len(eligible))], nil
}

// RecommendFor resolves the effective rating for a possibly unrated user
// before filtering. A nil rating falls back to DefaultRating.
func (e *Engine) RecommendFor(catalog *contest.Catalog, userRating *int) (contest.Problem, error) {
	rating := DefaultRating
	if userRating != nil {
		rating = *userRating
	}
	return e.Recommend(catalog, rating)
}
