// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/koratime/server/internal/models"
)

// ErrNotFound is returned when a referenced player, match or user does not
// exist in the store.
var ErrNotFound = errors.New("not found")

// PlayerStore defines the persistence operations for the player registry.
type PlayerStore interface {
	// ListPlayers returns all registered players in creation order.
	ListPlayers(ctx context.Context) ([]models.Player, error)

	// CreatePlayer persists a new player. The ID, CreatedAt and default
	// position/skill fields are populated by the store.
	CreatePlayer(ctx context.Context, player *models.Player) error

	// UpdatePlayer replaces an existing player record.
	// Returns ErrNotFound if the player does not exist.
	UpdatePlayer(ctx context.Context, player *models.Player) error

	// DeletePlayer removes a player from the registry. Past match rosters
	// keep their snapshot entries for the deleted player.
	// Returns ErrNotFound if the player does not exist.
	DeletePlayer(ctx context.Context, id string) error
}

// MatchStore defines the persistence operations for matches.
// No ordering is mandated for ListMatches; callers sort as needed.
type MatchStore interface {
	// ListMatches returns all matches with their rosters.
	ListMatches(ctx context.Context) ([]models.Match, error)

	// GetMatch retrieves one match by ID, including its roster.
	// Returns ErrNotFound if the match does not exist.
	GetMatch(ctx context.Context, id string) (*models.Match, error)

	// CreateMatch persists a new match together with its roster snapshot.
	// The ID and CreatedAt fields are populated by the store.
	CreateMatch(ctx context.Context, match *models.Match) error

	// ReplaceMatch overwrites the whole stored match document, roster
	// included. This is a last-write-wins replacement, not a merge.
	// Returns ErrNotFound if the match does not exist.
	ReplaceMatch(ctx context.Context, match *models.Match) error

	// DeleteMatch removes a match and its roster.
	// Returns ErrNotFound if the match does not exist.
	DeleteMatch(ctx context.Context, id string) error
}

// UserStore defines the persistence operations for organizer accounts.
type UserStore interface {
	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	// Returns nil, nil if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns nil, nil if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store is the full persistence surface of the server. The abstraction
// allows swapping storage backends (SQLite, PostgreSQL, etc.) without
// changing the engine or API layers.
type Store interface {
	PlayerStore
	MatchStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
