package contest

import (
	"time"

	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

// VerdictAccepted is the sentinel verdict value for an accepted submission.
// Verdicts are an open set of labels; this is the only one the core
// attaches meaning to.
const VerdictAccepted = "OK"

// Submission is one judged (or judging) attempt at a problem. Verdict is a
// free-form label from the source; unknown values are tolerated, never
// rejected.
type Submission struct {
	ID                  int64
	ContestID           *int
	CreatedAt           time.Time
	RelativeTimeSeconds int64
	Problem             Problem
	ProgrammingLanguage string
	Verdict             string
	Testset             string
	PassedTestCount     int
	TimeConsumedMillis  int64
	MemoryConsumedBytes int64
	Points              *float64
}

// Accepted reports whether the submission passed all tests.
func (s Submission) Accepted() bool {
	return s.Verdict == VerdictAccepted
}

// SubmissionFromRecord constructs a Submission from one raw record.
func SubmissionFromRecord(rec Record) (Submission, error) {
	id, err := requiredInt(rec, "id")
	if err != nil {
		return Submission{}, err
	}
	created, err := requiredInt(rec, "creationTimeSeconds")
	if err != nil {
		return Submission{}, err
	}
	relative, err := requiredInt(rec, "relativeTimeSeconds")
	if err != nil {
		return Submission{}, err
	}
	language, err := requiredString(rec, "programmingLanguage")
	if err != nil {
		return Submission{}, err
	}
	verdict, err := requiredString(rec, "verdict")
	if err != nil {
		return Submission{}, err
	}
	testset, err := requiredString(rec, "testset")
	if err != nil {
		return Submission{}, err
	}
	passed, err := requiredInt(rec, "passedTestCount")
	if err != nil {
		return Submission{}, err
	}
	timeMillis, err := requiredInt(rec, "timeConsumedMillis")
	if err != nil {
		return Submission{}, err
	}
	memoryBytes, err := requiredInt(rec, "memoryConsumedBytes")
	if err != nil {
		return Submission{}, err
	}

	problemRaw, ok := rec["problem"]
	if !ok {
		return Submission{}, shared.WrapError("contest", "SubmissionFromRecord",
			shared.ErrMalformedRecord, `missing required field "problem"`, nil)
	}
	problemRec, ok := toRecord(problemRaw)
	if !ok {
		return Submission{}, shared.WrapError("contest", "SubmissionFromRecord",
			shared.ErrMalformedRecord, `field "problem" is not a record`, nil)
	}
	problem, err := ProblemFromRecord(problemRec)
	if err != nil {
		return Submission{}, err
	}

	return Submission{
		ID:                  id,
		ContestID:           optionalInt(rec, "contestId"),
		CreatedAt:           time.Unix(created, 0).UTC(),
		RelativeTimeSeconds: relative,
		Problem:             problem,
		ProgrammingLanguage: language,
		Verdict:             verdict,
		Testset:             testset,
		PassedTestCount:     int(passed),
		TimeConsumedMillis:  timeMillis,
		MemoryConsumedBytes: memoryBytes,
		Points:              optionalFloat(rec, "points"),
	}, nil
}

// SubmissionsFromRecords constructs the submission sequence for one handle,
// failing on the first malformed record.
func SubmissionsFromRecords(recs []Record) ([]Submission, error) {
	subs := make([]Submission, 0, len(recs))
	for _, rec := range recs {
		s, err := SubmissionFromRecord(rec)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, nil
}

func toRecord(v any) (Record, bool) {
	switch m := v.(type) {
	case Record:
		return m, true
	case map[string]any:
		return Record(m), true
	}
	return nil, false
}
