// Package roster implements the match ledger: attendance and payment
// statistics plus the optimistic mutation discipline for roster state.
//
// Mutations apply to an in-memory copy of the match first, then persist by
// replacing the whole stored roster. If persistence fails, the copy is
// discarded and the canonical state is re-read from the store; rollback is
// a re-read, never an inverse operation. Mutations on the same match are
// serialized, and the match is read inside that critical section so queued
// mutations always see their predecessor's write. Different matches are
// independent documents and may be edited concurrently.
package roster

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"

	"github.com/koratime/server/internal/metrics"
	"github.com/koratime/server/internal/models"
	"github.com/koratime/server/internal/storage"
)

// PersistenceError wraps a store failure during a roster mutation. The
// mutation has been rolled back by re-reading the canonical match state.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: persistence failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Reconciler applies presence and payment mutations to match rosters.
type Reconciler struct {
	store storage.MatchStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewReconciler creates a reconciler persisting through the given store.
func NewReconciler(store storage.MatchStore) *Reconciler {
	return &Reconciler{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

// TogglePresence flips the Present flag on the entry for playerID. Payment
// state is left untouched. Unknown players are a silent no-op.
func (r *Reconciler) TogglePresence(ctx context.Context, matchID, playerID string) (*models.Match, error) {
	return r.apply(ctx, matchID, playerID, "toggle presence", func(_ *models.Match, e *models.RosterEntry) {
		e.Present = !e.Present
	})
}

// TogglePaid flips the Paid flag on the entry for playerID. Turning payment
// on records the per-player share computed from the present count before
// the toggle; turning it off resets the amount to zero. Unknown players are
// a silent no-op.
func (r *Reconciler) TogglePaid(ctx context.Context, matchID, playerID string) (*models.Match, error) {
	return r.apply(ctx, matchID, playerID, "toggle paid", func(m *models.Match, e *models.RosterEntry) {
		share := perPlayerShare(m.TotalCost, countPresent(m.Roster))
		e.Paid = !e.Paid
		if e.Paid {
			e.AmountPaid = share
		} else {
			e.AmountPaid = 0
		}
	})
}

// SetAmount records an explicit payment for playerID. The raw input parses
// leniently: anything non-numeric or non-finite counts as zero, negatives
// clamp to zero. A positive amount implies Paid, zero implies not Paid.
// Unknown players are a silent no-op.
func (r *Reconciler) SetAmount(ctx context.Context, matchID, playerID, rawAmount string) (*models.Match, error) {
	amount, err := strconv.ParseFloat(rawAmount, 64)
	// ParseFloat accepts "NaN" and "Inf"; neither is a payment.
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	if amount < 0 {
		amount = 0
	}
	return r.apply(ctx, matchID, playerID, "set amount", func(_ *models.Match, e *models.RosterEntry) {
		e.AmountPaid = amount
		e.Paid = amount > 0
	})
}

// Forget discards the serialization state for a match. Call after the match
// is deleted; a later mutation on the same ID just fails its read.
func (r *Reconciler) Forget(matchID string) {
	r.mu.Lock()
	delete(r.locks, matchID)
	r.mu.Unlock()
}

// apply runs one mutation under the optimistic-update discipline: read the
// canonical match, mutate a copy, submit the whole roster, re-read on
// failure. The read happens under the per-match lock, so mutations queued
// on the same match each start from the previous one's result.
func (r *Reconciler) apply(ctx context.Context, matchID, playerID, op string, mutate func(*models.Match, *models.RosterEntry)) (*models.Match, error) {
	unlock := r.lockMatch(matchID)
	defer unlock()

	match, err := r.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range match.Roster {
		if match.Roster[i].PlayerID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Tolerate stale snapshots: a mutation against a player missing
		// from the roster is a documented no-op, not a failure.
		slog.Debug("roster mutation skipped, player not on sheet",
			"op", op, "match_id", matchID, "player_id", playerID)
		return match, nil
	}

	updated := match.Clone()
	mutate(updated, &updated.Roster[idx])

	if err := r.store.ReplaceMatch(ctx, updated); err != nil {
		metrics.RosterRollbacksTotal.Inc()
		slog.Error("roster mutation failed to persist, rolling back",
			"op", op, "match_id", matchID, "player_id", playerID, "error", err)

		canonical, refetchErr := r.store.GetMatch(ctx, matchID)
		if refetchErr != nil {
			slog.Error("rollback re-read failed", "match_id", matchID, "error", refetchErr)
			return nil, &PersistenceError{Op: op, Err: err}
		}
		return canonical, &PersistenceError{Op: op, Err: err}
	}

	return updated, nil
}

// lockMatch serializes mutations per match id. Distinct matches proceed
// concurrently; they are independent documents.
func (r *Reconciler) lockMatch(matchID string) func() {
	r.mu.Lock()
	l, ok := r.locks[matchID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[matchID] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func countPresent(roster []models.RosterEntry) int {
	n := 0
	for _, e := range roster {
		if e.Present {
			n++
		}
	}
	return n
}
