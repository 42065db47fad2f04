package rank

import (
	"time"

	"github.com/google/uuid"
)

// SnapshotEntry is one frozen leaderboard row.
type SnapshotEntry struct {
	// Position is the 1-based rank.
	Position int `json:"position"`

	// Handle identifies the profile.
	Handle string `json:"handle"`

	// Value is the metric value at snapshot time.
	Value int `json:"value"`
}

// Snapshot is a frozen, ordered leaderboard. Computing one may involve a
// paced fetch over every registered profile, so snapshots are what the
// cache layer stores.
type Snapshot struct {
	// ID uniquely identifies this snapshot.
	ID string `json:"id"`

	// Metric is the ranking metric the snapshot was computed with.
	Metric Metric `json:"metric"`

	// GeneratedAt is when the snapshot was computed.
	GeneratedAt time.Time `json:"generated_at"`

	// Entries are the ordered leaderboard rows.
	Entries []SnapshotEntry `json:"entries"`
}

// NewSnapshot freezes ranking entries into a snapshot.
func NewSnapshot(metric Metric, entries []Entry) *Snapshot {
	snap := &Snapshot{
		ID:          uuid.NewString(),
		Metric:      metric,
		GeneratedAt: time.Now().UTC(),
		Entries:     make([]SnapshotEntry, 0, len(entries)),
	}
	for _, e := range entries {
		snap.Entries = append(snap.Entries, SnapshotEntry{
			Position: e.Position,
			Handle:   e.Profile.Handle,
			Value:    e.Value,
		})
	}
	return snap
}
