package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/koratime/server/internal/models"
	"github.com/koratime/server/internal/roster"
)

// ListMatches returns all matches with their rosters.
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.store.ListMatches(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if matches == nil {
		matches = []models.Match{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

// CreateMatch schedules a new match. The roster is snapshotted from the
// current player registry: one entry per player, present by default,
// nothing paid yet. The roster is fixed from this point on.
func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var match models.Match
	if err := decodeJSON(r, &match); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	match.ID = ""
	match.Roster = nil
	if err := match.Validate(); err != nil {
		respondError(w, err)
		return
	}

	players, err := h.store.ListPlayers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	for _, p := range players {
		match.Roster = append(match.Roster, models.RosterEntry{
			PlayerID: p.ID,
			Present:  true,
		})
	}

	if err := h.store.CreateMatch(r.Context(), &match); err != nil {
		respondError(w, err)
		return
	}
	slog.Info("Match created", "match_id", match.ID, "date", match.Date, "players", len(match.Roster))
	writeJSON(w, http.StatusCreated, map[string]any{"match": match})
}

// ReplaceMatch overwrites the whole match document, roster included. This
// is the last-write-wins persistence path; concurrent editors of the same
// match can overwrite each other.
func (h *Handler) ReplaceMatch(w http.ResponseWriter, r *http.Request) {
	var match models.Match
	if err := decodeJSON(r, &match); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	match.ID = mux.Vars(r)["matchID"]
	if err := match.Validate(); err != nil {
		respondError(w, err)
		return
	}

	if err := h.store.ReplaceMatch(r.Context(), &match); err != nil {
		respondError(w, err)
		return
	}
	h.hub.NotifyMatch(match.ID)
	writeJSON(w, http.StatusOK, map[string]any{"match": match})
}

// DeleteMatch removes a match and its roster.
func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchID"]
	if err := h.store.DeleteMatch(r.Context(), matchID); err != nil {
		respondError(w, err)
		return
	}
	h.reconciler.Forget(matchID)
	h.hub.NotifyMatch(matchID)
	w.WriteHeader(http.StatusNoContent)
}

// GetMatchStats returns the derived attendance and money statistics.
func (h *Handler) GetMatchStats(w http.ResponseWriter, r *http.Request) {
	match, err := h.store.GetMatch(r.Context(), mux.Vars(r)["matchID"])
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": roster.ComputeStats(match)})
}
