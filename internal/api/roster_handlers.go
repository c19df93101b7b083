package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/koratime/server/internal/models"
	"github.com/koratime/server/internal/roster"
)

// TogglePresence flips a player's attendance on the match sheet.
func (h *Handler) TogglePresence(w http.ResponseWriter, r *http.Request) {
	h.mutateRoster(w, r, func(matchID, playerID string) (*models.Match, error) {
		return h.reconciler.TogglePresence(r.Context(), matchID, playerID)
	})
}

// TogglePaid flips a player's payment, recording the current per-player
// share on payment and clearing it on un-payment.
func (h *Handler) TogglePaid(w http.ResponseWriter, r *http.Request) {
	h.mutateRoster(w, r, func(matchID, playerID string) (*models.Match, error) {
		return h.reconciler.TogglePaid(r.Context(), matchID, playerID)
	})
}

type setAmountRequest struct {
	// Amount is taken as raw text; non-numeric input counts as zero and
	// negatives clamp to zero.
	Amount string `json:"amount"`
}

// SetAmount records an explicit payment amount for a player.
func (h *Handler) SetAmount(w http.ResponseWriter, r *http.Request) {
	var req setAmountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.mutateRoster(w, r, func(matchID, playerID string) (*models.Match, error) {
		return h.reconciler.SetAmount(r.Context(), matchID, playerID, req.Amount)
	})
}

// mutateRoster runs one reconciler mutation and responds with the resulting
// match and its fresh statistics. The reconciler reads the match under its
// own per-match lock. A rolled-back mutation reports the persistence fault;
// the canonical state has already been restored by re-read.
func (h *Handler) mutateRoster(w http.ResponseWriter, r *http.Request, mutate func(matchID, playerID string) (*models.Match, error)) {
	vars := mux.Vars(r)
	updated, err := mutate(vars["matchID"], vars["playerID"])
	if err != nil {
		var pe *roster.PersistenceError
		if errors.As(err, &pe) {
			writeError(w, http.StatusBadGateway, pe.Error())
			return
		}
		respondError(w, err)
		return
	}

	h.hub.NotifyMatch(updated.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"match": updated,
		"stats": roster.ComputeStats(updated),
	})
}
