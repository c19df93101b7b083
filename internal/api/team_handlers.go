package api

import (
	"errors"
	"math/rand"
	"net/http"

	"github.com/koratime/server/internal/models"
	"github.com/koratime/server/internal/teams"
)

type generateTeamsRequest struct {
	// Policy selects the split: "zher" (random) or "mizan" (balanced).
	Policy string `json:"policy"`

	// PlayerIDs optionally restricts the pool to a subset of the registry.
	// Empty means the whole registry.
	PlayerIDs []string `json:"player_ids,omitempty"`

	// MatchID, when set, restricts the pool to the players marked present on
	// that match's sheet. Takes precedence over PlayerIDs.
	MatchID string `json:"match_id,omitempty"`

	// FavoritesA and FavoritesB pin players to a side (zher only).
	FavoritesA []string `json:"favorites_a,omitempty"`
	FavoritesB []string `json:"favorites_b,omitempty"`

	// Seed fixes the zher shuffle for reproducible splits. Nil means a
	// fresh random draw.
	Seed *int64 `json:"seed,omitempty"`
}

// GenerateTeams partitions the player pool into two sides.
func (h *Handler) GenerateTeams(w http.ResponseWriter, r *http.Request) {
	var req generateTeamsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	players, err := h.store.ListPlayers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	pool := players
	if req.MatchID != "" {
		match, err := h.store.GetMatch(r.Context(), req.MatchID)
		if err != nil {
			respondError(w, err)
			return
		}
		pool = filterPool(players, presentPlayerIDs(match))
	} else if len(req.PlayerIDs) > 0 {
		pool = filterPool(players, req.PlayerIDs)
	}

	var result *teams.Result
	switch req.Policy {
	case "zher", "":
		var rng *rand.Rand
		if req.Seed != nil {
			rng = rand.New(rand.NewSource(*req.Seed))
		}
		result, err = teams.Random(pool, req.FavoritesA, req.FavoritesB, rng)
	case "mizan":
		result, err = teams.Balanced(pool)
	default:
		writeError(w, http.StatusBadRequest, "policy must be zher or mizan")
		return
	}
	if err != nil {
		if errors.Is(err, teams.ErrInsufficientPlayers) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// presentPlayerIDs lists the players marked present on the match sheet.
func presentPlayerIDs(m *models.Match) []string {
	var ids []string
	for _, e := range m.Roster {
		if e.Present {
			ids = append(ids, e.PlayerID)
		}
	}
	return ids
}

// filterPool keeps registry order while restricting to the requested IDs.
// An empty ID list yields an empty pool.
func filterPool(players []models.Player, ids []string) []models.Player {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var pool []models.Player
	for _, p := range players {
		if wanted[p.ID] {
			pool = append(pool, p)
		}
	}
	return pool
}
