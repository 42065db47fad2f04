package contest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

func TestProblemFromRecord_RoundTrip(t *testing.T) {
	rec := Record{
		"contestId": float64(1700),
		"index":     "B",
		"name":      "Palindromic Doubling",
		"type":      "PROGRAMMING",
		"rating":    float64(1100),
		"tags":      []any{"greedy", "math"},
	}

	p, err := ProblemFromRecord(rec)
	require.NoError(t, err)

	require.NotNil(t, p.ContestID)
	assert.Equal(t, 1700, *p.ContestID)
	assert.Equal(t, "B", p.Index)
	assert.Equal(t, "Palindromic Doubling", p.Name)
	assert.Equal(t, "PROGRAMMING", p.Type)
	require.NotNil(t, p.Rating)
	assert.Equal(t, 1100, *p.Rating)
	assert.Equal(t, []string{"greedy", "math"}, p.Tags)
	assert.Nil(t, p.ProblemsetName)
	assert.True(t, p.Rated())
	assert.Equal(t, "https://codeforces.com/problemset/problem/1700/B", p.URL())
}

func TestProblemFromRecord_AbsentOptionalsStayAbsent(t *testing.T) {
	rec := Record{
		"index": "A",
		"name":  "Theatre Square",
		"type":  "PROGRAMMING",
	}

	p, err := ProblemFromRecord(rec)
	require.NoError(t, err)

	// Absent must be distinguishable from any real value, zero included.
	assert.Nil(t, p.ContestID)
	assert.Nil(t, p.Rating)
	assert.Nil(t, p.ProblemsetName)
	assert.False(t, p.Rated())
	assert.Equal(t, "", p.URL())
}

func TestProblemFromRecord_MissingRequiredField(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
	}{
		{"no index", Record{"name": "X", "type": "PROGRAMMING"}},
		{"no name", Record{"index": "A", "type": "PROGRAMMING"}},
		{"no type", Record{"index": "A", "name": "X"}},
		{"index wrong type", Record{"index": float64(3), "name": "X", "type": "PROGRAMMING"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProblemFromRecord(tt.rec)
			assert.ErrorIs(t, err, shared.ErrMalformedRecord)
		})
	}
}

func TestProblemStatisticsFromRecord(t *testing.T) {
	s, err := ProblemStatisticsFromRecord(Record{
		"contestId":   float64(1700),
		"index":       "B",
		"solvedCount": float64(12345),
	})
	require.NoError(t, err)
	assert.Equal(t, 1700, *s.ContestID)
	assert.Equal(t, "B", s.Index)
	assert.Equal(t, 12345, s.SolvedCount)

	_, err = ProblemStatisticsFromRecord(Record{"index": "B"})
	assert.ErrorIs(t, err, shared.ErrMalformedRecord)
}

func TestCatalogFromRecords(t *testing.T) {
	problems := []Record{
		{"index": "A", "name": "One", "type": "PROGRAMMING", "rating": float64(800)},
		{"index": "B", "name": "Two", "type": "PROGRAMMING"},
	}
	statistics := []Record{
		{"index": "A", "solvedCount": float64(10)},
		{"index": "B", "solvedCount": float64(5)},
	}

	c, err := CatalogFromRecords(problems, statistics)
	require.NoError(t, err)
	assert.Len(t, c.Problems, 2)
	assert.Len(t, c.Statistics, 2)
}

func TestCatalogFromRecords_FailsOnFirstBadRecord(t *testing.T) {
	problems := []Record{
		{"index": "A", "name": "One", "type": "PROGRAMMING"},
		{"name": "missing index", "type": "PROGRAMMING"},
	}

	_, err := CatalogFromRecords(problems, nil)
	assert.ErrorIs(t, err, shared.ErrMalformedRecord)
}
