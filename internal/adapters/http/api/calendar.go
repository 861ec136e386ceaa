// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/bottoscon/consched/internal/domain/model"
)

// stampLayout parses the composed "<date>T<HH:MM:SS>" stamps.
const stampLayout = "2006-01-02T15:04:05"

// CalendarHandler serves ICS feeds for the whole convention or one
// player. Events on unrecognized days cannot be anchored to a calendar
// date and are omitted rather than emitted with a broken stamp.
type CalendarHandler struct {
	deps  Dependencies
	dates map[string]string
}

// NewCalendarHandler creates a new calendar handler. dates maps each
// recognized day name to its calendar date.
func NewCalendarHandler(deps Dependencies, dates map[string]string) *CalendarHandler {
	return &CalendarHandler{deps: deps, dates: dates}
}

// HandleGetCalendar handles GET /calendar/all.ics and
// GET /calendar/{player}.ics requests.
func (h *CalendarHandler) HandleGetCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/calendar/")
	if !strings.HasSuffix(name, ".ics") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	name = strings.TrimSuffix(name, ".ics")
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "no_data", err)
		return
	}

	events := snap.Events
	calName := "All Games"
	if name != "all" {
		games, ok := snap.Index[name]
		if !ok {
			writeError(w, http.StatusNotFound, "unknown_player",
				fmt.Errorf("%w: %q", ErrUnknownPlayer, name))
			return
		}
		events = games
		calName = name
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	_, _ = w.Write([]byte(h.buildCalendar(calName, events)))
}

func (h *CalendarHandler) buildCalendar(name string, events []*model.Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(name)

	for _, ev := range events {
		start, ok := h.stampTime(ev.StartStamp)
		if !ok {
			continue
		}
		ve := cal.AddEvent(ev.ID)
		ve.SetSummary(ev.Name)
		ve.SetStartAt(start)
		if end, ok := h.stampTime(ev.EndStamp); ok && !end.Before(start) {
			ve.SetEndAt(end)
		}
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if ev.Status != "" {
			ve.SetDescription("Status: " + ev.Status)
		}
	}
	return cal.Serialize()
}

// stampTime composes and parses one event stamp via the given
// composer (StartStamp or EndStamp).
func (h *CalendarHandler) stampTime(compose func(map[string]string) (string, bool)) (time.Time, bool) {
	stamp, ok := compose(h.dates)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(stampLayout, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
