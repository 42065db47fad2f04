// Package profile contains the UserProfile entity, its lazily cached
// contest history, the rating tier bands, and the registry repository
// contract for persisting chat-user to handle links.
package profile

import (
	"fmt"
	"sort"
	"time"

	"github.com/cf-tools/cf-insight/internal/domain/contest"
	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

// UserProfile is one registered competitive programmer, identified by the
// case-sensitive handle. Demographic fields and ratings come from a whole
// profile fetch; the rating-change and submission sequences are populated
// lazily and retained until the profile is refreshed or discarded.
//
// The cached sequences do not feed back into Rating: the displayed current
// rating changes only when the profile record itself is refreshed.
type UserProfile struct {
	Handle string

	FirstName     *string
	LastName      *string
	Email         *string
	Country       *string
	City          *string
	Organization  *string
	Contribution  *int
	Rank          *string
	Rating        *int
	MaxRank       *string
	MaxRating     *int
	LastOnlineAt  *time.Time
	RegisteredAt  *time.Time
	FriendOfCount *int
	Avatar        *string
	TitlePhoto    *string

	ratingChanges []contest.RatingChange
	ratingsLoaded bool
	submissions   []contest.Submission
	subsLoaded    bool
}

// ProfileFromRecord constructs a UserProfile for the given handle from one
// raw user record. Every attribute the source may omit stays absent rather
// than defaulting.
func ProfileFromRecord(handle string, rec contest.Record) (*UserProfile, error) {
	if handle == "" {
		return nil, shared.NewDomainError("profile", "ProfileFromRecord",
			shared.ErrMalformedRecord, "empty handle")
	}

	p := &UserProfile{Handle: handle}
	p.FirstName = recString(rec, "firstName")
	p.LastName = recString(rec, "lastName")
	p.Email = recString(rec, "email")
	p.Country = recString(rec, "country")
	p.City = recString(rec, "city")
	p.Organization = recString(rec, "organization")
	p.Contribution = recInt(rec, "contribution")
	p.Rank = recString(rec, "rank")
	p.Rating = recInt(rec, "rating")
	p.MaxRank = recString(rec, "maxRank")
	p.MaxRating = recInt(rec, "maxRating")
	p.LastOnlineAt = recTime(rec, "lastOnlineTimeSeconds")
	p.RegisteredAt = recTime(rec, "registrationTimeSeconds")
	p.FriendOfCount = recInt(rec, "friendOfCount")
	p.Avatar = recString(rec, "avatar")
	p.TitlePhoto = recString(rec, "titlePhoto")
	return p, nil
}

// ProfilesFromRecords zips handles positionally with the raw records of one
// batch fetch. A count mismatch fails fast before any construction.
func ProfilesFromRecords(handles []string, recs []contest.Record) ([]*UserProfile, error) {
	if len(handles) != len(recs) {
		return nil, shared.NewDomainError("profile", "ProfilesFromRecords",
			shared.ErrMalformedRecord,
			fmt.Sprintf("got %d records for %d handles", len(recs), len(handles)))
	}
	profiles := make([]*UserProfile, 0, len(handles))
	for i, handle := range handles {
		p, err := ProfileFromRecord(handle, recs[i])
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// RatingChanges returns the cached rating-change sequence, sorted by
// update time. ErrNotLoaded until SetRatingChanges has run.
func (p *UserProfile) RatingChanges() ([]contest.RatingChange, error) {
	if !p.ratingsLoaded {
		return nil, shared.WrapError("profile", "RatingChanges", shared.ErrNotLoaded,
			fmt.Sprintf("rating changes for %s not loaded", p.Handle), nil)
	}
	return p.ratingChanges, nil
}

// RatingChangesLoaded reports whether the rating-change cache is populated.
func (p *UserProfile) RatingChangesLoaded() bool {
	return p.ratingsLoaded
}

// SetRatingChanges populates the rating-change cache. The sequence is
// sorted chronologically here so every time-series consumer sees ordered
// events regardless of source order. An empty sequence is a valid load.
func (p *UserProfile) SetRatingChanges(changes []contest.RatingChange) {
	sorted := make([]contest.RatingChange, len(changes))
	copy(sorted, changes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.Before(sorted[j].UpdatedAt)
	})
	p.ratingChanges = sorted
	p.ratingsLoaded = true
}

// Submissions returns the cached submission sequence, most recent first as
// returned by the source. ErrNotLoaded until SetSubmissions has run.
func (p *UserProfile) Submissions() ([]contest.Submission, error) {
	if !p.subsLoaded {
		return nil, shared.WrapError("profile", "Submissions", shared.ErrNotLoaded,
			fmt.Sprintf("submissions for %s not loaded", p.Handle), nil)
	}
	return p.submissions, nil
}

// SubmissionsLoaded reports whether the submission cache is populated.
func (p *UserProfile) SubmissionsLoaded() bool {
	return p.subsLoaded
}

// SetSubmissions populates the submission cache.
func (p *UserProfile) SetSubmissions(subs []contest.Submission) {
	p.submissions = subs
	p.subsLoaded = true
}

// InvalidateCaches drops both cached sequences. This is the only
// invalidation trigger and runs as part of a whole-profile refresh.
func (p *UserProfile) InvalidateCaches() {
	p.ratingChanges = nil
	p.ratingsLoaded = false
	p.submissions = nil
	p.subsLoaded = false
}

// CurrentTier classifies the profile's current rating; unrated profiles
// fall into the lowest band.
func (p *UserProfile) CurrentTier() Tier {
	if p.Rating == nil {
		return Tiers[len(Tiers)-1]
	}
	return TierFor(*p.Rating)
}

// DisplayName returns "FirstName LastName" when present, else the handle.
func (p *UserProfile) DisplayName() string {
	switch {
	case p.FirstName != nil && p.LastName != nil:
		return *p.FirstName + " " + *p.LastName
	case p.FirstName != nil:
		return *p.FirstName
	default:
		return p.Handle
	}
}

// Record field helpers. User records carry almost everything as optional;
// reuse of the contest record coercion keeps behavior uniform.

func recString(rec contest.Record, key string) *string {
	v, ok := rec[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func recInt(rec contest.Record, key string) *int {
	v, ok := rec[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		i := int(n)
		return &i
	case int:
		i := n
		return &i
	case int64:
		i := int(n)
		return &i
	}
	return nil
}

func recTime(rec contest.Record, key string) *time.Time {
	n := recInt(rec, key)
	if n == nil {
		return nil
	}
	t := time.Unix(int64(*n), 0).UTC()
	return &t
}
