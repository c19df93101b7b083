package models

import "time"

// Date and time layouts accepted on match creation and edits.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Location is an optional venue geolocation. Absence is represented by a nil
// pointer on the match, never by zero coordinates.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RosterEntry links one player to attendance and payment state for a match.
// Entries are created as a snapshot when the match is created and are never
// added or removed individually afterwards.
type RosterEntry struct {
	// PlayerID references a player in the registry at snapshot time.
	PlayerID string `json:"player_id"`

	// Present marks whether the player showed up.
	Present bool `json:"present"`

	// Paid marks whether the player settled their share.
	Paid bool `json:"paid"`

	// AmountPaid is the recorded payment, always >= 0.
	// Paid and AmountPaid move together: a positive amount implies Paid,
	// a zero amount implies not Paid.
	AmountPaid float64 `json:"amount_paid"`
}

// Match represents one scheduled pickup game.
type Match struct {
	// ID is the unique identifier for the match (UUID format).
	ID string `json:"id"`

	// Name is the display name. Auto-generated from the date if empty.
	Name string `json:"name"`

	// Date is the calendar date in YYYY-MM-DD form.
	Date string `json:"date"`

	// Time is the local kickoff time in 24-hour HH:MM form.
	Time string `json:"time"`

	// Venue is the pitch name.
	Venue string `json:"venue"`

	// TotalCost is the shared venue cost split among present players.
	TotalCost float64 `json:"total_cost"`

	// Location is the optional venue geolocation.
	Location *Location `json:"location,omitempty"`

	// Roster is the ordered attendance sheet, one entry per player in the
	// registry at creation time.
	Roster []RosterEntry `json:"roster"`

	// CreatedAt is the Unix timestamp when the match was created.
	CreatedAt int64 `json:"created_at"`
}

// Validate checks the match's fields syntactically, returning a
// ValidationError on the first problem found.
func (m *Match) Validate() error {
	if m.Date == "" {
		return invalid("date", "required")
	}
	if _, err := time.Parse(DateLayout, m.Date); err != nil {
		return invalid("date", "must be YYYY-MM-DD")
	}
	if m.Time == "" {
		return invalid("time", "required")
	}
	// time.Parse takes single-digit hours for "15"; require the full HH:MM.
	if len(m.Time) != len(TimeLayout) {
		return invalid("time", "must be HH:MM")
	}
	if _, err := time.Parse(TimeLayout, m.Time); err != nil {
		return invalid("time", "must be HH:MM")
	}
	if m.TotalCost < 0 {
		return invalid("total_cost", "must not be negative")
	}
	for i := range m.Roster {
		if m.Roster[i].AmountPaid < 0 {
			return invalid("roster", "amount paid must not be negative")
		}
	}
	return nil
}

// Kickoff combines the match date and time into a point in time within loc.
// The date and time must already be validated.
func (m *Match) Kickoff(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, m.Date+" "+m.Time, loc)
}

// CloneRoster returns a deep copy of the roster so mutations can be applied
// optimistically without touching the caller's snapshot.
func (m *Match) CloneRoster() []RosterEntry {
	if m.Roster == nil {
		return nil
	}
	out := make([]RosterEntry, len(m.Roster))
	copy(out, m.Roster)
	return out
}

// Clone returns a deep copy of the match, including roster and location.
func (m *Match) Clone() *Match {
	out := *m
	out.Roster = m.CloneRoster()
	if m.Location != nil {
		loc := *m.Location
		out.Location = &loc
	}
	return &out
}
