package api

import (
	"net/http"
	"time"

	"github.com/koratime/server/internal/dashboard"
)

// GetDashboard returns the home-screen projections: the next upcoming match
// and the collected-funds pool. Both are recomputed from current state on
// every call.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	matches, err := h.store.ListMatches(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"next_match":      dashboard.NextMatch(matches, time.Now()),
		"total_collected": dashboard.TotalCollected(matches),
	})
}
