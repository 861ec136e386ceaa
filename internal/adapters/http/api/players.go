// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/bottoscon/consched/internal/domain/roster"
)

// PlayersHandler handles the player listing.
type PlayersHandler struct {
	deps Dependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// playersResponse lists every known player alphabetically.
type playersResponse struct {
	Players []string `json:"players"`
	Count   int      `json:"count"`
}

// HandleGetPlayers handles GET /players requests.
func (h *PlayersHandler) HandleGetPlayers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "no_data", err)
		return
	}
	players := roster.Players(snap.Index)
	writeJSON(w, http.StatusOK, playersResponse{Players: players, Count: len(players)})
}
