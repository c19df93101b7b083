package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/koratime/server/internal/models"
	"github.com/koratime/server/internal/storage"
)

// ListPlayers returns all registered players in creation order.
func (s *SQLiteStore) ListPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, position, skill, traits, created_at FROM players ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Position, &p.Skill, &p.Traits, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}

	return players, nil
}

// CreatePlayer persists a new player to the database.
func (s *SQLiteStore) CreatePlayer(ctx context.Context, player *models.Player) error {
	// Generate ID and fill defaults if not set
	if player.ID == "" {
		player.ID = uuid.New().String()
	}
	if player.CreatedAt == 0 {
		player.CreatedAt = time.Now().Unix()
	}
	if player.Position == "" {
		player.Position = models.PositionAttacker
	}
	if player.Skill == 0 {
		player.Skill = models.DefaultSkill
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO players (id, name, position, skill, traits, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		player.ID, player.Name, player.Position, player.Skill, player.Traits, player.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}

	return nil
}

// UpdatePlayer replaces an existing player record.
func (s *SQLiteStore) UpdatePlayer(ctx context.Context, player *models.Player) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE players SET name = ?, position = ?, skill = ?, traits = ? WHERE id = ?",
		player.Name, player.Position, player.Skill, player.Traits, player.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("player %s: %w", player.ID, storage.ErrNotFound)
	}

	return nil
}

// DeletePlayer removes a player from the registry. Roster snapshots in past
// matches keep their entries; only the registry record goes away.
func (s *SQLiteStore) DeletePlayer(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM players WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("player %s: %w", id, storage.ErrNotFound)
	}

	return nil
}
