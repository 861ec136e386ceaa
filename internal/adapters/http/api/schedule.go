// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strings"
)

// ScheduleHandler serves one player's chronological schedule.
type ScheduleHandler struct {
	deps Dependencies
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(deps Dependencies) *ScheduleHandler {
	return &ScheduleHandler{deps: deps}
}

type scheduleResponse struct {
	Player string         `json:"player"`
	Games  []gameResponse `json:"games"`
}

// HandleGetSchedule handles GET /schedule/{player} requests.
func (h *ScheduleHandler) HandleGetSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	player := strings.TrimPrefix(r.URL.Path, "/schedule/")
	if player == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "no_data", err)
		return
	}
	games, ok := snap.Index[player]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_player",
			fmt.Errorf("%w: %q", ErrUnknownPlayer, player))
		return
	}
	writeJSON(w, http.StatusOK, scheduleResponse{Player: player, Games: toGameResponses(games)})
}
