// Package teams partitions a player pool into two sides.
//
// Two policies exist: Zher, a uniform random split, and Mizan, a greedy
// skill-balanced split. Both are pure and synchronous; given a fixed input
// (and, for Zher, a fixed random source) they are deterministic. Teams are
// transient: they exist for one balancing request and are never persisted.
package teams

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/koratime/server/internal/models"
)

// ErrInsufficientPlayers is returned when the pool holds fewer than two
// players; no teams are produced.
var ErrInsufficientPlayers = errors.New("need at least two players to form teams")

// warningThreshold is the skill-sum gap beyond which Mizan flags the split.
const warningThreshold = 2

// BalanceWarning signals that the two sides' skill sums diverge beyond the
// threshold. It is non-fatal: the computed teams are still returned.
type BalanceWarning struct {
	Diff int `json:"diff"`
}

func (w *BalanceWarning) Error() string {
	return fmt.Sprintf("team skill sums differ by %d", w.Diff)
}

// Team is one side of a split: an ordered player list with aggregate skill.
type Team struct {
	Players []models.Player `json:"players"`

	// SkillSum is the total of the players' skill ratings.
	SkillSum int `json:"skill_sum"`

	// SkillMean is the average rating, rounded to one decimal.
	SkillMean float64 `json:"skill_mean"`
}

// Result holds the two computed sides and, for Mizan, an optional warning.
type Result struct {
	A       Team            `json:"team_a"`
	B       Team            `json:"team_b"`
	Warning *BalanceWarning `json:"warning,omitempty"`
}

// Random implements the Zher policy: unpinned players are shuffled
// uniformly and split at ceil(n/2) into side A, remainder into side B.
// Players listed in favoritesA or favoritesB are pinned and prepended to
// their side without entering the shuffle. A nil rng selects a
// time-seeded source; tests pass a fixed one for deterministic output.
func Random(pool []models.Player, favoritesA, favoritesB []string, rng *rand.Rand) (*Result, error) {
	if len(pool) < 2 {
		return nil, ErrInsufficientPlayers
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	pinned := make(map[string]byte, len(favoritesA)+len(favoritesB))
	for _, id := range favoritesA {
		pinned[id] = 'A'
	}
	for _, id := range favoritesB {
		pinned[id] = 'B'
	}

	var a, b, unpinned []models.Player
	for _, p := range pool {
		switch pinned[p.ID] {
		case 'A':
			a = append(a, p)
		case 'B':
			b = append(b, p)
		default:
			unpinned = append(unpinned, p)
		}
	}

	rng.Shuffle(len(unpinned), func(i, j int) {
		unpinned[i], unpinned[j] = unpinned[j], unpinned[i]
	})

	mid := (len(unpinned) + 1) / 2
	a = append(a, unpinned[:mid]...)
	b = append(b, unpinned[mid:]...)

	return &Result{A: newTeam(a), B: newTeam(b)}, nil
}

// Balanced implements the Mizan policy: players are sorted by skill
// descending (stable, so ties keep their original order) and assigned
// greedily to whichever side has the lower skill sum, side A on an exact
// tie. The greedy split does not guarantee equal sums; when the final gap
// exceeds the threshold a BalanceWarning accompanies the result, which is
// returned regardless.
func Balanced(pool []models.Player) (*Result, error) {
	if len(pool) < 2 {
		return nil, ErrInsufficientPlayers
	}

	sorted := make([]models.Player, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Skill > sorted[j].Skill
	})

	var a, b []models.Player
	sumA, sumB := 0, 0
	for _, p := range sorted {
		if sumA <= sumB {
			a = append(a, p)
			sumA += p.Skill
		} else {
			b = append(b, p)
			sumB += p.Skill
		}
	}

	result := &Result{A: newTeam(a), B: newTeam(b)}
	if diff := abs(sumA - sumB); diff > warningThreshold {
		result.Warning = &BalanceWarning{Diff: diff}
	}
	return result, nil
}

func newTeam(players []models.Player) Team {
	sum := 0
	for _, p := range players {
		sum += p.Skill
	}
	t := Team{Players: players, SkillSum: sum}
	if len(players) > 0 {
		t.SkillMean = math.Round(float64(sum)/float64(len(players))*10) / 10
	}
	return t
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
