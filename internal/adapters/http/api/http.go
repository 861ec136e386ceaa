// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bottoscon/consched/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the cache service.
type Dependencies interface {
	// Snapshot returns the current schedule, rebuilding if expired.
	Snapshot(ctx context.Context) (*model.Snapshot, error)

	// ForceRefresh rebuilds unconditionally; the prior snapshot
	// survives a failure.
	ForceRefresh(ctx context.Context) (*model.Snapshot, error)

	// Days returns the recognized convention days in order.
	Days() []string

	// Stats returns cache statistics for monitoring.
	Stats() map[string]interface{}
}

// Server wires HTTP routes for the schedule API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	playersHandler  *PlayersHandler
	scheduleHandler *ScheduleHandler
	gamesHandler    *GamesHandler
	refreshHandler  *RefreshHandler
	calendarHandler *CalendarHandler
}

// NewServer creates a new API server with all handlers. start anchors
// composed calendar stamps to the convention's first day.
func NewServer(deps Dependencies, start time.Time) *Server {
	dates := model.DayDates(start, deps.Days())
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(deps),
		playersHandler:  NewPlayersHandler(deps),
		scheduleHandler: NewScheduleHandler(deps),
		gamesHandler:    NewGamesHandler(deps),
		refreshHandler:  NewRefreshHandler(deps),
		calendarHandler: NewCalendarHandler(deps, dates),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandleGetPlayers, "players"))
	mux.HandleFunc("/schedule/", MetricsMiddleware(s.scheduleHandler.HandleGetSchedule, "schedule"))
	mux.HandleFunc("/games", MetricsMiddleware(s.gamesHandler.HandleGetGames, "games"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandleRefresh, "refresh"))
	mux.HandleFunc("/calendar/", MetricsMiddleware(s.calendarHandler.HandleGetCalendar, "calendar"))
}

// gameResponse mirrors the read shape of one event.
type gameResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Status    string   `json:"status"`
	StartDay  string   `json:"start_day"`
	StartTime string   `json:"start_time"`
	EndDay    string   `json:"end_day"`
	EndTime   string   `json:"end_time"`
	Duration  string   `json:"duration"`
	Location  string   `json:"location"`
	Players   []string `json:"players"`
}

func toGameResponse(ev *model.Event) gameResponse {
	return gameResponse{
		ID:        ev.ID,
		Name:      ev.Name,
		Status:    ev.Status,
		StartDay:  ev.StartDay,
		StartTime: ev.StartAt,
		EndDay:    ev.EndDay,
		EndTime:   ev.EndAt,
		Duration:  ev.Duration,
		Location:  ev.Location,
		Players:   ev.Players,
	}
}

func toGameResponses(events []*model.Event) []gameResponse {
	out := make([]gameResponse, len(events))
	for i, ev := range events {
		out[i] = toGameResponse(ev)
	}
	return out
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
