package model

import "time"

// dateLayout is the calendar-date half of the composed stamp.
const dateLayout = "2006-01-02"

// DayDates maps each recognized day name to its calendar date, offset
// day-by-day from the convention start date. The convention runs on
// consecutive days, first recognized day = start date.
func DayDates(start time.Time, days []string) map[string]string {
	dates := make(map[string]string, len(days))
	for i, day := range days {
		dates[day] = start.AddDate(0, 0, i).Format(dateLayout)
	}
	return dates
}

// StartStamp composes the event's start as "<date>T<HH:MM:SS>". The
// boolean is false when the event's day is not a recognized one, in
// which case no stamp can be composed and none is returned.
func (e *Event) StartStamp(dates map[string]string) (string, bool) {
	return composeStamp(dates, e.StartDay, e.StartAt)
}

// EndStamp composes the event's end the same way StartStamp does,
// falling back to the start day when the end day is unrecognized.
func (e *Event) EndStamp(dates map[string]string) (string, bool) {
	if stamp, ok := composeStamp(dates, e.EndDay, e.EndAt); ok {
		return stamp, true
	}
	return composeStamp(dates, e.StartDay, e.EndAt)
}

func composeStamp(dates map[string]string, day, clock string) (string, bool) {
	date, ok := dates[day]
	if !ok {
		return "", false
	}
	return date + "T" + clock, true
}
