package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/koratime/server/internal/models"
	"github.com/koratime/server/internal/storage"
)

// CreateMatch persists a new match together with its roster snapshot.
func (s *SQLiteStore) CreateMatch(ctx context.Context, match *models.Match) error {
	// Generate ID and fill defaults if not set
	if match.ID == "" {
		match.ID = uuid.New().String()
	}
	if match.CreatedAt == 0 {
		match.CreatedAt = time.Now().Unix()
	}
	if match.Name == "" {
		match.Name = generateName(match.Date)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	lat, lng := locationColumns(match.Location)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO matches (id, name, match_date, match_time, venue, total_cost, latitude, longitude, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		match.ID, match.Name, match.Date, match.Time, match.Venue, match.TotalCost, lat, lng, match.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}

	if err := insertRoster(ctx, tx, match.ID, match.Roster); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetMatch retrieves a match by ID, including its roster.
func (s *SQLiteStore) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	match := &models.Match{}
	var lat, lng sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, match_date, match_time, venue, total_cost, latitude, longitude, created_at
		 FROM matches WHERE id = ?`,
		id,
	).Scan(&match.ID, &match.Name, &match.Date, &match.Time, &match.Venue, &match.TotalCost, &lat, &lng, &match.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	match.Location = locationFromColumns(lat, lng)

	roster, err := s.loadRoster(ctx, match.ID)
	if err != nil {
		return nil, err
	}
	match.Roster = roster

	return match, nil
}

// ListMatches returns all matches with their rosters, in creation order.
func (s *SQLiteStore) ListMatches(ctx context.Context) ([]models.Match, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, match_date, match_time, venue, total_cost, latitude, longitude, created_at
		 FROM matches ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []models.Match
	for rows.Next() {
		var m models.Match
		var lat, lng sql.NullFloat64
		if err := rows.Scan(&m.ID, &m.Name, &m.Date, &m.Time, &m.Venue, &m.TotalCost, &lat, &lng, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		m.Location = locationFromColumns(lat, lng)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}

	for i := range matches {
		roster, err := s.loadRoster(ctx, matches[i].ID)
		if err != nil {
			return nil, err
		}
		matches[i].Roster = roster
	}

	return matches, nil
}

// ReplaceMatch overwrites the whole stored match document, roster included.
// The previous roster rows are dropped and reinserted; the last write wins.
func (s *SQLiteStore) ReplaceMatch(ctx context.Context, match *models.Match) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	lat, lng := locationColumns(match.Location)
	res, err := tx.ExecContext(ctx,
		`UPDATE matches SET name = ?, match_date = ?, match_time = ?, venue = ?, total_cost = ?, latitude = ?, longitude = ?
		 WHERE id = ?`,
		match.Name, match.Date, match.Time, match.Venue, match.TotalCost, lat, lng, match.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("match %s: %w", match.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM roster_entries WHERE match_id = ?", match.ID); err != nil {
		return fmt.Errorf("failed to clear roster: %w", err)
	}
	if err := insertRoster(ctx, tx, match.ID, match.Roster); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteMatch removes a match; roster entries cascade.
func (s *SQLiteStore) DeleteMatch(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM matches WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("match %s: %w", id, storage.ErrNotFound)
	}

	return nil
}

// loadRoster returns the ordered roster for one match.
func (s *SQLiteStore) loadRoster(ctx context.Context, matchID string) ([]models.RosterEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT player_id, present, paid, amount_paid FROM roster_entries WHERE match_id = ? ORDER BY slot",
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}
	defer rows.Close()

	var roster []models.RosterEntry
	for rows.Next() {
		var e models.RosterEntry
		if err := rows.Scan(&e.PlayerID, &e.Present, &e.Paid, &e.AmountPaid); err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		roster = append(roster, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster: %w", err)
	}

	return roster, nil
}

// insertRoster writes the roster entries for a match inside tx, keeping the
// original order via the slot column.
func insertRoster(ctx context.Context, tx *sql.Tx, matchID string, roster []models.RosterEntry) error {
	for i, e := range roster {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO roster_entries (match_id, player_id, slot, present, paid, amount_paid) VALUES (?, ?, ?, ?, ?, ?)",
			matchID, e.PlayerID, i, e.Present, e.Paid, e.AmountPaid,
		)
		if err != nil {
			return fmt.Errorf("failed to insert roster entry: %w", err)
		}
	}
	return nil
}

// locationColumns maps an optional location to nullable columns.
func locationColumns(loc *models.Location) (lat, lng sql.NullFloat64) {
	if loc == nil {
		return
	}
	return sql.NullFloat64{Float64: loc.Latitude, Valid: true},
		sql.NullFloat64{Float64: loc.Longitude, Valid: true}
}

// locationFromColumns restores an optional location; both columns must be
// set for a location to exist, absence stays nil rather than zero coords.
func locationFromColumns(lat, lng sql.NullFloat64) *models.Location {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	return &models.Location{Latitude: lat.Float64, Longitude: lng.Float64}
}

// generateName creates an auto-generated match name from the date.
func generateName(date string) string {
	if d, err := time.Parse(models.DateLayout, date); err == nil {
		return fmt.Sprintf("Match - %s", d.Format("Jan 2, 2006"))
	}
	return "Match"
}
