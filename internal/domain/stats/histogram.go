// Package stats derives verdict distributions and solved counts from raw
// submission sequences.
package stats

import (
	"sort"

	"github.com/cf-tools/cf-insight/internal/domain/contest"
	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

// OthersLabel is the synthetic bucket that absorbs rare verdicts.
const OthersLabel = "Others"

// mergeShare is the exclusive threshold below which a verdict is folded
// into the Others bucket. A verdict at exactly 1% keeps its own bucket.
const mergeShare = 0.01

// VerdictCount is one absorbed (verdict, count) pair kept for display
// inside the Others bucket.
type VerdictCount struct {
	Verdict string
	Count   int
}

// Bucket is one slice of the verdict histogram.
type Bucket struct {
	// Label is the verdict name, or OthersLabel for the merged bucket.
	Label string

	// Count is the number of submissions in the bucket.
	Count int

	// Share is Count divided by the total submission count.
	Share float64

	// Absorbed lists the rare verdicts merged into an Others bucket,
	// ordered by descending count. Empty for regular buckets.
	Absorbed []VerdictCount
}

// Histogram is the verdict distribution of one submission sequence.
type Histogram struct {
	Buckets []Bucket
	Total   int
}

// VerdictHistogram counts submissions per verdict label. Verdicts whose
// share of the total is strictly below 1% merge into a single Others
// bucket that remembers what it absorbed. Buckets come back ordered by
// descending count, with Others positioned by its merged count like any
// other bucket. Verdicts are an open set; no label is special-cased.
func VerdictHistogram(submissions []contest.Submission) (*Histogram, error) {
	if len(submissions) == 0 {
		return nil, shared.NewDomainError("stats", "VerdictHistogram",
			shared.ErrEmptyDataset, "no submissions to bucket")
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, sub := range submissions {
		if _, seen := counts[sub.Verdict]; !seen {
			order = append(order, sub.Verdict)
		}
		counts[sub.Verdict]++
	}

	total := len(submissions)
	buckets := make([]Bucket, 0, len(order))
	var absorbed []VerdictCount
	othersCount := 0

	for _, verdict := range order {
		count := counts[verdict]
		if float64(count)/float64(total) < mergeShare {
			othersCount += count
			absorbed = append(absorbed, VerdictCount{Verdict: verdict, Count: count})
			continue
		}
		buckets = append(buckets, Bucket{
			Label: verdict,
			Count: count,
			Share: float64(count) / float64(total),
		})
	}

	if othersCount > 0 {
		sort.SliceStable(absorbed, func(i, j int) bool {
			return absorbed[i].Count > absorbed[j].Count
		})
		buckets = append(buckets, Bucket{
			Label:    OthersLabel,
			Count:    othersCount,
			Share:    float64(othersCount) / float64(total),
			Absorbed: absorbed,
		})
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})

	return &Histogram{Buckets: buckets, Total: total}, nil
}

// SolvedCount returns the number of accepted submissions. Duplicate
// accepted submissions for the same problem each count: this counts
// submissions, not unique solved problems, which is what the leaderboard
// metric is defined on.
func SolvedCount(submissions []contest.Submission) int {
	solved := 0
	for _, sub := range submissions {
		if sub.Accepted() {
			solved++
		}
	}
	return solved
}
