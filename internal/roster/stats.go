package roster

import (
	"math"

	"github.com/koratime/server/internal/models"
)

// Stats summarizes the attendance and money state of one match.
type Stats struct {
	// PresentCount is the number of roster entries marked present.
	PresentCount int `json:"present_count"`

	// PaidCount is the number of roster entries marked paid.
	PaidCount int `json:"paid_count"`

	// TotalCollected is the sum of recorded payments over all entries,
	// present or not.
	TotalCollected float64 `json:"total_collected"`

	// Remaining is the venue cost minus collected payments. Negative when
	// the match is overcollected.
	Remaining float64 `json:"remaining"`

	// CostPerPresentPlayer is the venue cost split evenly among present
	// players, rounded to the nearest unit. Zero when nobody is present.
	// The rounded shares need not sum exactly to the total; the drift is
	// accepted, not corrected.
	CostPerPresentPlayer float64 `json:"cost_per_present_player"`
}

// ComputeStats derives the attendance and financial statistics for a match.
func ComputeStats(m *models.Match) Stats {
	var stats Stats
	for _, e := range m.Roster {
		if e.Present {
			stats.PresentCount++
		}
		if e.Paid {
			stats.PaidCount++
		}
		stats.TotalCollected += e.AmountPaid
	}
	stats.Remaining = m.TotalCost - stats.TotalCollected
	stats.CostPerPresentPlayer = perPlayerShare(m.TotalCost, stats.PresentCount)
	return stats
}

// perPlayerShare is the venue cost divided among present players, rounded
// to the nearest unit. Zero when nobody is present.
func perPlayerShare(totalCost float64, presentCount int) float64 {
	if presentCount <= 0 {
		return 0
	}
	return math.Round(totalCost / float64(presentCount))
}
