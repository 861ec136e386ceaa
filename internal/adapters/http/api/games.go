// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// GamesHandler serves the full chronological game list.
type GamesHandler struct {
	deps Dependencies
}

// NewGamesHandler creates a new games handler.
func NewGamesHandler(deps Dependencies) *GamesHandler {
	return &GamesHandler{deps: deps}
}

type gamesResponse struct {
	Games []gameResponse `json:"games"`
	Count int            `json:"count"`
}

// HandleGetGames handles GET /games requests.
func (h *GamesHandler) HandleGetGames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "no_data", err)
		return
	}
	writeJSON(w, http.StatusOK, gamesResponse{
		Games: toGameResponses(snap.Events),
		Count: len(snap.Events),
	})
}
