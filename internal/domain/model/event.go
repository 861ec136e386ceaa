// Package model contains domain models passed between layers.
package model

import "time"

// Event represents one scheduled game parsed from the signup sheet.
// Events are built fresh on every ingestion pass and never mutated
// after construction.
type Event struct {
	ID       string // signup sheet game id, never empty
	Name     string // game title, never empty
	Status   string // e.g. "FULL", "OPEN"; unknown values pass through
	StartDay string // day name as it appeared on the sheet
	StartAt  string // canonical "HH:MM:SS" time of day
	EndDay   string
	EndAt    string // canonical "HH:MM:SS" time of day
	Duration string
	Location string // table/room label, may be empty

	// Players holds cleaned participant names in slot-column order.
	// Duplicate names are kept; the sheet is the source of truth.
	Players []string
}

// Snapshot is the immutable unit held by the cache: the full sorted
// event list, the player index derived from it, and its provenance.
// A snapshot is replaced wholesale, never edited in place.
type Snapshot struct {
	ID          string // uuid, stable for the snapshot's lifetime
	Events      []*Event
	Index       map[string][]*Event
	GeneratedAt time.Time
}

// Age reports how long ago the snapshot was built.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.GeneratedAt)
}
