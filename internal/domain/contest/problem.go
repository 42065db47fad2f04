package contest

import (
	"fmt"

	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

// Problem is a single entry of the problemset catalog. Identity is the
// (ContestID, Index, ProblemsetName) triple; ContestID and ProblemsetName
// may be absent for problems outside regular contests.
type Problem struct {
	ContestID      *int
	ProblemsetName *string
	Index          string
	Name           string
	Type           string
	Rating         *int
	Tags           []string
}

// ProblemFromRecord constructs a Problem from one raw catalog record.
// A missing required field is a hard construction failure.
func ProblemFromRecord(rec Record) (Problem, error) {
	index, err := requiredString(rec, "index")
	if err != nil {
		return Problem{}, err
	}
	name, err := requiredString(rec, "name")
	if err != nil {
		return Problem{}, err
	}
	typ, err := requiredString(rec, "type")
	if err != nil {
		return Problem{}, err
	}

	return Problem{
		ContestID:      optionalInt(rec, "contestId"),
		ProblemsetName: optionalString(rec, "problemsetName"),
		Index:          index,
		Name:           name,
		Type:           typ,
		Rating:         optionalInt(rec, "rating"),
		Tags:           optionalStrings(rec, "tags"),
	}, nil
}

// Rated reports whether the problem carries a difficulty rating. Unrated
// problems never satisfy a rating-band filter.
func (p Problem) Rated() bool {
	return p.Rating != nil
}

// URL returns the public problem page address.
func (p Problem) URL() string {
	if p.ContestID == nil {
		return ""
	}
	return fmt.Sprintf("https://codeforces.com/problemset/problem/%d/%s", *p.ContestID, p.Index)
}

// ProblemStatistics carries the solve count for one catalog problem. It is
// a parallel record to Problem, linked only by matching (ContestID, Index).
type ProblemStatistics struct {
	ContestID   *int
	Index       string
	SolvedCount int
}

// ProblemStatisticsFromRecord constructs ProblemStatistics from one raw record.
func ProblemStatisticsFromRecord(rec Record) (ProblemStatistics, error) {
	index, err := requiredString(rec, "index")
	if err != nil {
		return ProblemStatistics{}, err
	}
	solved, err := requiredInt(rec, "solvedCount")
	if err != nil {
		return ProblemStatistics{}, err
	}

	return ProblemStatistics{
		ContestID:   optionalInt(rec, "contestId"),
		Index:       index,
		SolvedCount: int(solved),
	}, nil
}

// Catalog is one full snapshot of the problemset: problems and their solve
// statistics as two parallel sequences from the same fetch. It is refreshed
// only by re-fetching the whole catalog.
type Catalog struct {
	Problems   []Problem
	Statistics []ProblemStatistics
}

// CatalogFromRecords constructs a Catalog from the two raw record sequences
// of one problemset fetch. Construction fails on the first malformed record.
func CatalogFromRecords(problems, statistics []Record) (*Catalog, error) {
	c := &Catalog{
		Problems:   make([]Problem, 0, len(problems)),
		Statistics: make([]ProblemStatistics, 0, len(statistics)),
	}
	for _, rec := range problems {
		p, err := ProblemFromRecord(rec)
		if err != nil {
			return nil, shared.WrapError("contest", "CatalogFromRecords",
				shared.ErrMalformedRecord, "bad problem record", err)
		}
		c.Problems = append(c.Problems, p)
	}
	for _, rec := range statistics {
		s, err := ProblemStatisticsFromRecord(rec)
		if err != nil {
			return nil, shared.WrapError("contest", "CatalogFromRecords",
				shared.ErrMalformedRecord, "bad problem statistics record", err)
		}
		c.Statistics = append(c.Statistics, s)
	}
	return c, nil
}
