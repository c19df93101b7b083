package models

// Position is a player's preferred role on the pitch.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionAttacker   Position = "ATT"
)

// Valid reports whether p is one of the known positions.
func (p Position) Valid() bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionAttacker:
		return true
	}
	return false
}

// Skill rating bounds. Ratings are self/peer-assessed star counts.
const (
	MinSkill = 1
	MaxSkill = 5

	// DefaultSkill is assigned when a player is created without a rating.
	DefaultSkill = 3
)

// Player represents a member of the shared player pool.
// Identity is stable across matches: rosters reference players by ID.
type Player struct {
	// ID is the unique identifier for the player (UUID format).
	ID string `json:"id"`

	// Name is the display name of the player.
	Name string `json:"name"`

	// Position is the player's preferred role (GK, DEF, ATT).
	Position Position `json:"position"`

	// Skill is the 1-5 rating used for team balancing.
	Skill int `json:"skill"`

	// Traits is a free-text note about the player's style.
	Traits string `json:"traits"`

	// CreatedAt is the Unix timestamp when the player was registered.
	CreatedAt int64 `json:"created_at"`
}

// Validate checks the player's fields, returning a ValidationError on the
// first problem found. A zero Position or Skill is allowed; the store fills
// in defaults on create.
func (p *Player) Validate() error {
	if p.Name == "" {
		return invalid("name", "required")
	}
	if p.Position != "" && !p.Position.Valid() {
		return invalid("position", "must be GK, DEF or ATT")
	}
	if p.Skill != 0 && (p.Skill < MinSkill || p.Skill > MaxSkill) {
		return invalid("skill", "must be between 1 and 5")
	}
	return nil
}
