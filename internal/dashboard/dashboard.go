// Package dashboard computes cross-match read-only projections.
// Results are always recomputed from the matches passed in; nothing here
// caches or stores state.
package dashboard

import (
	"time"

	"github.com/koratime/server/internal/models"
)

// NextMatch returns the match with the earliest kickoff at or after now,
// or nil when none qualifies. Ties keep the first match in input order.
// Matches with unparsable date/time are skipped.
func NextMatch(matches []models.Match, now time.Time) *models.Match {
	var next *models.Match
	var nextKickoff time.Time

	for i := range matches {
		kickoff, err := matches[i].Kickoff(now.Location())
		if err != nil {
			continue
		}
		if kickoff.Before(now) {
			continue
		}
		if next == nil || kickoff.Before(nextKickoff) {
			next = &matches[i]
			nextKickoff = kickoff
		}
	}

	return next
}

// TotalCollected sums the recorded payments of paid roster entries across
// all matches: the running collected-funds pool.
func TotalCollected(matches []models.Match) float64 {
	total := 0.0
	for i := range matches {
		for _, e := range matches[i].Roster {
			if e.Paid {
				total += e.AmountPaid
			}
		}
	}
	return total
}
