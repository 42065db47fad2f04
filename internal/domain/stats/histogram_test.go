package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cf-tools/cf-insight/internal/domain/contest"
	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

func subs(verdicts map[string]int) []contest.Submission {
	var out []contest.Submission
	for verdict, n := range verdicts {
		for i := 0; i < n; i++ {
			out = append(out, contest.Submission{Verdict: verdict})
		}
	}
	return out
}

func bucketCounts(h *Histogram) map[string]int {
	counts := make(map[string]int, len(h.Buckets))
	for _, b := range h.Buckets {
		counts[b.Label] = b.Count
	}
	return counts
}

func TestVerdictHistogram_Empty(t *testing.T) {
	_, err := VerdictHistogram(nil)
	assert.ErrorIs(t, err, shared.ErrEmptyDataset)
}

func TestVerdictHistogram_NoMergeBelowThreshold(t *testing.T) {
	h, err := VerdictHistogram(subs(map[string]int{
		"OK":            6,
		"WRONG_ANSWER":  3,
		"RUNTIME_ERROR": 1, // 10% of 10, well above the merge threshold
	}))
	require.NoError(t, err)

	assert.Equal(t, 10, h.Total)
	require.Len(t, h.Buckets, 3)
	assert.Equal(t, "OK", h.Buckets[0].Label)
	assert.Equal(t, 6, h.Buckets[0].Count)
	assert.InDelta(t, 0.6, h.Buckets[0].Share, 1e-9)
	assert.Equal(t, "WRONG_ANSWER", h.Buckets[1].Label)
	assert.Equal(t, "RUNTIME_ERROR", h.Buckets[2].Label)
	for _, b := range h.Buckets {
		assert.Empty(t, b.Absorbed)
	}
}

func TestVerdictHistogram_RareVerdictsMergeIntoOthers(t *testing.T) {
	// 1000 total: 0.3% and 0.2% merge, everything else stays.
	h, err := VerdictHistogram(subs(map[string]int{
		"OK":                    600,
		"WRONG_ANSWER":          395,
		"MEMORY_LIMIT_EXCEEDED": 3,
		"IDLENESS_LIMIT":        2,
	}))
	require.NoError(t, err)

	require.Len(t, h.Buckets, 3)
	others := h.Buckets[2]
	assert.Equal(t, OthersLabel, others.Label)
	assert.Equal(t, 5, others.Count)
	require.Len(t, others.Absorbed, 2)
	assert.Equal(t, VerdictCount{Verdict: "MEMORY_LIMIT_EXCEEDED", Count: 3}, others.Absorbed[0])
	assert.Equal(t, VerdictCount{Verdict: "IDLENESS_LIMIT", Count: 2}, others.Absorbed[1])
}

func TestVerdictHistogram_ExactlyOnePercentKept(t *testing.T) {
	// 1 of 100 is exactly 1%: below-strictly is the merge rule, so it stays.
	h, err := VerdictHistogram(subs(map[string]int{
		"OK":            99,
		"RUNTIME_ERROR": 1,
	}))
	require.NoError(t, err)

	counts := bucketCounts(h)
	assert.Equal(t, 1, counts["RUNTIME_ERROR"])
	assert.NotContains(t, counts, OthersLabel)
}

func TestVerdictHistogram_JustUnderOnePercentMerged(t *testing.T) {
	// 1 of 101 is ~0.99%: merged.
	h, err := VerdictHistogram(subs(map[string]int{
		"OK":            100,
		"RUNTIME_ERROR": 1,
	}))
	require.NoError(t, err)

	counts := bucketCounts(h)
	assert.NotContains(t, counts, "RUNTIME_ERROR")
	assert.Equal(t, 1, counts[OthersLabel])
}

func TestVerdictHistogram_OthersPositionedByCount(t *testing.T) {
	// Others absorbs 90 rare submissions and outweighs the 1% bucket, so it
	// sorts ahead of it instead of being pinned last.
	verdicts := map[string]int{
		"OK":           900,
		"WRONG_ANSWER": 10,
	}
	for i := 0; i < 30; i++ {
		verdicts["RARE_"+string(rune('A'+i))] = 3
	}

	h, err := VerdictHistogram(subs(verdicts))
	require.NoError(t, err)

	require.Len(t, h.Buckets, 3)
	assert.Equal(t, "OK", h.Buckets[0].Label)
	assert.Equal(t, OthersLabel, h.Buckets[1].Label)
	assert.Equal(t, 90, h.Buckets[1].Count)
	assert.Equal(t, "WRONG_ANSWER", h.Buckets[2].Label)
}

func TestVerdictHistogram_CountsSumToTotal(t *testing.T) {
	h, err := VerdictHistogram(subs(map[string]int{
		"OK":            500,
		"WRONG_ANSWER":  300,
		"TIME_LIMIT":    150,
		"RUNTIME_ERROR": 47,
		"RARE_ONE":      2,
		"RARE_TWO":      1,
	}))
	require.NoError(t, err)

	sum := 0
	for _, b := range h.Buckets {
		sum += b.Count
	}
	assert.Equal(t, h.Total, sum)
	assert.Equal(t, 1000, h.Total)
}

func TestSolvedCount_CountsEveryAcceptedSubmission(t *testing.T) {
	one := 1
	sameProblem := contest.Problem{ContestID: &one, Index: "A"}
	submissions := []contest.Submission{
		{Verdict: contest.VerdictAccepted, Problem: sameProblem},
		{Verdict: contest.VerdictAccepted, Problem: sameProblem}, // resubmission counts again
		{Verdict: "WRONG_ANSWER", Problem: sameProblem},
		{Verdict: contest.VerdictAccepted, Problem: contest.Problem{Index: "B"}},
	}

	assert.Equal(t, 3, SolvedCount(submissions))
	assert.Equal(t, 0, SolvedCount(nil))
}
