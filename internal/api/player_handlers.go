package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/koratime/server/internal/models"
)

// ListPlayers returns the whole player registry.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.store.ListPlayers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if players == nil {
		players = []models.Player{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": players})
}

// CreatePlayer registers a new player in the pool.
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var player models.Player
	if err := decodeJSON(r, &player); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := player.Validate(); err != nil {
		respondError(w, err)
		return
	}

	if err := h.store.CreatePlayer(r.Context(), &player); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"player": player})
}

// UpdatePlayer replaces a player record. Past match rosters keep their
// snapshot of the old values.
func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var player models.Player
	if err := decodeJSON(r, &player); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	player.ID = mux.Vars(r)["playerID"]
	if err := player.Validate(); err != nil {
		respondError(w, err)
		return
	}
	if player.Position == "" {
		player.Position = models.PositionAttacker
	}
	if player.Skill == 0 {
		player.Skill = models.DefaultSkill
	}

	if err := h.store.UpdatePlayer(r.Context(), &player); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"player": player})
}

// DeletePlayer removes a player from the registry. Existing rosters are
// left untouched; they are snapshots.
func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePlayer(r.Context(), mux.Vars(r)["playerID"]); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
