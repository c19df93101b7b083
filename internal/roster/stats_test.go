package roster

import (
	"math"
	"testing"

	"github.com/koratime/server/internal/models"
)

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name  string
		match models.Match
		want  Stats
	}{
		{
			name: "four present all paid covers the cost exactly",
			match: models.Match{
				TotalCost: 300,
				Roster: []models.RosterEntry{
					{PlayerID: "p1", Present: true, Paid: true, AmountPaid: 75},
					{PlayerID: "p2", Present: true, Paid: true, AmountPaid: 75},
					{PlayerID: "p3", Present: true, Paid: true, AmountPaid: 75},
					{PlayerID: "p4", Present: true, Paid: true, AmountPaid: 75},
				},
			},
			want: Stats{
				PresentCount:         4,
				PaidCount:            4,
				TotalCollected:       300,
				Remaining:            0,
				CostPerPresentPlayer: 75,
			},
		},
		{
			name: "nobody present gives a zero share",
			match: models.Match{
				TotalCost: 300,
				Roster: []models.RosterEntry{
					{PlayerID: "p1"},
					{PlayerID: "p2"},
				},
			},
			want: Stats{
				PresentCount:         0,
				PaidCount:            0,
				TotalCollected:       0,
				Remaining:            300,
				CostPerPresentPlayer: 0,
			},
		},
		{
			name: "absent payers still count toward the pot",
			match: models.Match{
				TotalCost: 200,
				Roster: []models.RosterEntry{
					{PlayerID: "p1", Present: true},
					{PlayerID: "p2", Present: false, Paid: true, AmountPaid: 50},
					{PlayerID: "p3", Present: true, Paid: true, AmountPaid: 200},
				},
			},
			want: Stats{
				PresentCount:         2,
				PaidCount:            2,
				TotalCollected:       250,
				Remaining:            -50,
				CostPerPresentPlayer: 100,
			},
		},
		{
			name: "share rounds to the nearest unit",
			match: models.Match{
				TotalCost: 100,
				Roster: []models.RosterEntry{
					{PlayerID: "p1", Present: true},
					{PlayerID: "p2", Present: true},
					{PlayerID: "p3", Present: true},
				},
			},
			want: Stats{
				PresentCount:         3,
				CostPerPresentPlayer: 33,
				Remaining:            100,
			},
		},
		{
			name: "rounded shares may overshoot the total",
			match: models.Match{
				TotalCost: 200,
				Roster: []models.RosterEntry{
					{PlayerID: "p1", Present: true},
					{PlayerID: "p2", Present: true},
					{PlayerID: "p3", Present: true},
				},
			},
			want: Stats{
				PresentCount:         3,
				CostPerPresentPlayer: 67, // 66.67 rounds up; 3x67=201, drift accepted
				Remaining:            200,
			},
		},
		{
			name:  "empty roster",
			match: models.Match{TotalCost: 150},
			want:  Stats{Remaining: 150},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStats(&tt.match)
			if got != tt.want {
				t.Errorf("ComputeStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeStatsInvariants(t *testing.T) {
	match := models.Match{
		TotalCost: 330,
		Roster: []models.RosterEntry{
			{PlayerID: "p1", Present: true, Paid: true, AmountPaid: 110},
			{PlayerID: "p2", Present: true, Paid: true, AmountPaid: 120},
			{PlayerID: "p3", Present: true},
			{PlayerID: "p4", Present: false, Paid: true, AmountPaid: 40},
		},
	}
	stats := ComputeStats(&match)

	// Collected is the sum over all entries regardless of presence, and
	// remaining is the straight difference from the venue cost.
	wantCollected := 110.0 + 120.0 + 40.0
	if stats.TotalCollected != wantCollected {
		t.Errorf("TotalCollected = %v, want %v", stats.TotalCollected, wantCollected)
	}
	if got, want := stats.Remaining, match.TotalCost-wantCollected; got != want {
		t.Errorf("Remaining = %v, want %v", got, want)
	}

	// The share stays within one rounding step of an even split.
	exact := match.TotalCost / float64(stats.PresentCount)
	if math.Abs(stats.CostPerPresentPlayer-exact) > 0.5 {
		t.Errorf("CostPerPresentPlayer = %v, more than half a unit from %v", stats.CostPerPresentPlayer, exact)
	}
}
