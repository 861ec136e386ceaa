// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// RefreshHandler handles the manual cache refresh entry point.
type RefreshHandler struct {
	deps Dependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps Dependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

type refreshResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HandleRefresh handles POST /refresh requests. A failed refresh keeps
// the prior snapshot; the ack only reports whether the rebuild ran.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if _, err := h.deps.ForceRefresh(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, refreshResponse{
			Success: false,
			Message: "error refreshing: " + err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{
		Success: true,
		Message: "schedule data refreshed successfully",
	})
}
