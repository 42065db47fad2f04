package contest

import "time"

// RatingChange is the result of one rated contest for one handle: the rank
// achieved and the rating transition, stamped with the rating update time.
// The source usually returns these in chronological order, but the core
// never assumes it and sorts by timestamp before any time-series use.
type RatingChange struct {
	ContestID   int
	ContestName string
	Handle      string
	Rank        int
	UpdatedAt   time.Time
	OldRating   int
	NewRating   int
}

// RatingChangeFromRecord constructs a RatingChange from one raw record.
func RatingChangeFromRecord(rec Record) (RatingChange, error) {
	contestID, err := requiredInt(rec, "contestId")
	if err != nil {
		return RatingChange{}, err
	}
	contestName, err := requiredString(rec, "contestName")
	if err != nil {
		return RatingChange{}, err
	}
	handle, err := requiredString(rec, "handle")
	if err != nil {
		return RatingChange{}, err
	}
	rank, err := requiredInt(rec, "rank")
	if err != nil {
		return RatingChange{}, err
	}
	updated, err := requiredInt(rec, "ratingUpdateTimeSeconds")
	if err != nil {
		return RatingChange{}, err
	}
	oldRating, err := requiredInt(rec, "oldRating")
	if err != nil {
		return RatingChange{}, err
	}
	newRating, err := requiredInt(rec, "newRating")
	if err != nil {
		return RatingChange{}, err
	}

	return RatingChange{
		ContestID:   int(contestID),
		ContestName: contestName,
		Handle:      handle,
		Rank:        int(rank),
		UpdatedAt:   time.Unix(updated, 0).UTC(),
		OldRating:   int(oldRating),
		NewRating:   int(newRating),
	}, nil
}

// Delta returns the rating change of the contest.
func (rc RatingChange) Delta() int {
	return rc.NewRating - rc.OldRating
}

// RatingChangesFromRecords constructs the full sequence for one handle,
// failing on the first malformed record.
func RatingChangesFromRecords(recs []Record) ([]RatingChange, error) {
	changes := make([]RatingChange, 0, len(recs))
	for _, rec := range recs {
		rc, err := RatingChangeFromRecord(rec)
		if err != nil {
			return nil, err
		}
		changes = append(changes, rc)
	}
	return changes, nil
}
