// Package chrono imposes the convention's chronological order on events.
package chrono

import (
	"sort"

	"github.com/bottoscon/consched/internal/domain/model"
)

// DefaultDays is the convention's day order.
var DefaultDays = []string{"Thursday", "Friday", "Saturday", "Sunday"}

// DayRank returns the position of day within days. Unrecognized day
// names rank strictly after every known day so they sort last.
func DayRank(day string, days []string) int {
	for i, d := range days {
		if d == day {
			return i
		}
	}
	return len(days)
}

// Sort orders events by start day, then by canonical start time. The
// canonical "HH:MM:SS" form is fixed-width zero-padded, so a plain
// string comparison is chronological. The sort is stable: events tied
// on day and time keep their source order, making every pass over the
// same payload reproduce the same order.
func Sort(events []*model.Event, days []string) {
	sort.SliceStable(events, func(i, j int) bool {
		ri, rj := DayRank(events[i].StartDay, days), DayRank(events[j].StartDay, days)
		if ri != rj {
			return ri < rj
		}
		return events[i].StartAt < events[j].StartAt
	})
}
