package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/koratime/server/internal/models"
	"github.com/koratime/server/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "koratime-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestPlayerStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreatePlayer generates ID and fills defaults", func(t *testing.T) {
		player := &models.Player{Name: "Yassine"}

		if err := store.CreatePlayer(ctx, player); err != nil {
			t.Fatalf("CreatePlayer failed: %v", err)
		}

		if player.ID == "" {
			t.Error("Expected player ID to be generated")
		}
		if player.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		if player.Position != models.PositionAttacker {
			t.Errorf("Expected default position ATT, got %s", player.Position)
		}
		if player.Skill != models.DefaultSkill {
			t.Errorf("Expected default skill %d, got %d", models.DefaultSkill, player.Skill)
		}
	})

	t.Run("ListPlayers returns players in creation order", func(t *testing.T) {
		a := &models.Player{Name: "Hamza", Position: models.PositionGoalkeeper, Skill: 2, CreatedAt: 100}
		b := &models.Player{Name: "Omar", Position: models.PositionDefender, Skill: 5, CreatedAt: 200}
		for _, p := range []*models.Player{a, b} {
			if err := store.CreatePlayer(ctx, p); err != nil {
				t.Fatalf("CreatePlayer failed: %v", err)
			}
		}

		players, err := store.ListPlayers(ctx)
		if err != nil {
			t.Fatalf("ListPlayers failed: %v", err)
		}
		if len(players) < 2 {
			t.Fatalf("Expected at least 2 players, got %d", len(players))
		}
		if players[0].Name != "Hamza" || players[1].Name != "Omar" {
			t.Errorf("Unexpected order: got %s, %s", players[0].Name, players[1].Name)
		}
		if players[1].Position != models.PositionDefender || players[1].Skill != 5 {
			t.Errorf("Player fields not round-tripped: %+v", players[1])
		}
	})

	t.Run("UpdatePlayer replaces fields", func(t *testing.T) {
		player := &models.Player{Name: "Karim", Skill: 2}
		if err := store.CreatePlayer(ctx, player); err != nil {
			t.Fatalf("CreatePlayer failed: %v", err)
		}

		player.Name = "Karim B"
		player.Skill = 4
		player.Position = models.PositionGoalkeeper
		if err := store.UpdatePlayer(ctx, player); err != nil {
			t.Fatalf("UpdatePlayer failed: %v", err)
		}

		players, err := store.ListPlayers(ctx)
		if err != nil {
			t.Fatalf("ListPlayers failed: %v", err)
		}
		var found *models.Player
		for i := range players {
			if players[i].ID == player.ID {
				found = &players[i]
			}
		}
		if found == nil {
			t.Fatal("Updated player not found")
		}
		if found.Name != "Karim B" || found.Skill != 4 || found.Position != models.PositionGoalkeeper {
			t.Errorf("Update not applied: %+v", found)
		}
	})

	t.Run("UpdatePlayer returns ErrNotFound for unknown ID", func(t *testing.T) {
		err := store.UpdatePlayer(ctx, &models.Player{ID: "nonexistent-id", Name: "Ghost"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeletePlayer removes the registry record", func(t *testing.T) {
		player := &models.Player{Name: "Temp"}
		if err := store.CreatePlayer(ctx, player); err != nil {
			t.Fatalf("CreatePlayer failed: %v", err)
		}

		if err := store.DeletePlayer(ctx, player.ID); err != nil {
			t.Fatalf("DeletePlayer failed: %v", err)
		}
		if err := store.DeletePlayer(ctx, player.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestMatchStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	newMatch := func(roster []models.RosterEntry) *models.Match {
		return &models.Match{
			Date:      "2025-12-10",
			Time:      "20:00",
			Venue:     "City Pitch",
			TotalCost: 300,
			Roster:    roster,
		}
	}

	t.Run("CreateMatch generates ID and name", func(t *testing.T) {
		match := newMatch(nil)

		if err := store.CreateMatch(ctx, match); err != nil {
			t.Fatalf("CreateMatch failed: %v", err)
		}

		if match.ID == "" {
			t.Error("Expected match ID to be generated")
		}
		if match.Name != "Match - Dec 10, 2025" {
			t.Errorf("Unexpected auto-generated name: %s", match.Name)
		}
		if match.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetMatch retrieves roster in snapshot order", func(t *testing.T) {
		match := newMatch([]models.RosterEntry{
			{PlayerID: "p-c", Present: true},
			{PlayerID: "p-a", Present: true, Paid: true, AmountPaid: 75},
			{PlayerID: "p-b", Present: false},
		})
		if err := store.CreateMatch(ctx, match); err != nil {
			t.Fatalf("CreateMatch failed: %v", err)
		}

		retrieved, err := store.GetMatch(ctx, match.ID)
		if err != nil {
			t.Fatalf("GetMatch failed: %v", err)
		}
		if len(retrieved.Roster) != 3 {
			t.Fatalf("Expected 3 roster entries, got %d", len(retrieved.Roster))
		}
		for i, want := range []string{"p-c", "p-a", "p-b"} {
			if retrieved.Roster[i].PlayerID != want {
				t.Errorf("Roster slot %d: got %s, want %s", i, retrieved.Roster[i].PlayerID, want)
			}
		}
		if !retrieved.Roster[1].Paid || retrieved.Roster[1].AmountPaid != 75 {
			t.Errorf("Payment state not round-tripped: %+v", retrieved.Roster[1])
		}
		if retrieved.Roster[2].Present {
			t.Error("Expected p-b to stay absent")
		}
	})

	t.Run("GetMatch returns ErrNotFound for unknown ID", func(t *testing.T) {
		_, err := store.GetMatch(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Location round-trips, absence stays nil", func(t *testing.T) {
		located := newMatch(nil)
		located.Location = &models.Location{Latitude: 33.5731, Longitude: -7.5898}
		if err := store.CreateMatch(ctx, located); err != nil {
			t.Fatalf("CreateMatch failed: %v", err)
		}

		got, err := store.GetMatch(ctx, located.ID)
		if err != nil {
			t.Fatalf("GetMatch failed: %v", err)
		}
		if got.Location == nil || got.Location.Latitude != 33.5731 || got.Location.Longitude != -7.5898 {
			t.Errorf("Location not round-tripped: %+v", got.Location)
		}

		bare := newMatch(nil)
		if err := store.CreateMatch(ctx, bare); err != nil {
			t.Fatalf("CreateMatch failed: %v", err)
		}
		got, err = store.GetMatch(ctx, bare.ID)
		if err != nil {
			t.Fatalf("GetMatch failed: %v", err)
		}
		if got.Location != nil {
			t.Errorf("Expected nil location, got %+v", got.Location)
		}
	})

	t.Run("ReplaceMatch overwrites the whole document", func(t *testing.T) {
		match := newMatch([]models.RosterEntry{
			{PlayerID: "p1", Present: true},
			{PlayerID: "p2", Present: true},
		})
		if err := store.CreateMatch(ctx, match); err != nil {
			t.Fatalf("CreateMatch failed: %v", err)
		}

		replacement := match.Clone()
		replacement.Venue = "Beach Court"
		replacement.TotalCost = 400
		replacement.Roster[1].Present = false
		replacement.Roster[0].Paid = true
		replacement.Roster[0].AmountPaid = 200

		if err := store.ReplaceMatch(ctx, replacement); err != nil {
			t.Fatalf("ReplaceMatch failed: %v", err)
		}

		got, err := store.GetMatch(ctx, match.ID)
		if err != nil {
			t.Fatalf("GetMatch failed: %v", err)
		}
		if got.Venue != "Beach Court" || got.TotalCost != 400 {
			t.Errorf("Match fields not replaced: %+v", got)
		}
		if got.Roster[1].Present {
			t.Error("Expected p2 to be absent after replace")
		}
		if !got.Roster[0].Paid || got.Roster[0].AmountPaid != 200 {
			t.Errorf("Payment not replaced: %+v", got.Roster[0])
		}
	})

	t.Run("ReplaceMatch is last write wins", func(t *testing.T) {
		match := newMatch([]models.RosterEntry{{PlayerID: "p1", Present: true}})
		if err := store.CreateMatch(ctx, match); err != nil {
			t.Fatalf("CreateMatch failed: %v", err)
		}

		first := match.Clone()
		first.Roster[0].Paid = true
		first.Roster[0].AmountPaid = 300
		second := match.Clone()
		second.Roster[0].Present = false

		if err := store.ReplaceMatch(ctx, first); err != nil {
			t.Fatalf("ReplaceMatch failed: %v", err)
		}
		if err := store.ReplaceMatch(ctx, second); err != nil {
			t.Fatalf("ReplaceMatch failed: %v", err)
		}

		got, err := store.GetMatch(ctx, match.ID)
		if err != nil {
			t.Fatalf("GetMatch failed: %v", err)
		}
		// Second writer never saw the payment, so it is gone.
		if got.Roster[0].Paid || got.Roster[0].AmountPaid != 0 {
			t.Errorf("Expected second write to win entirely, got %+v", got.Roster[0])
		}
		if got.Roster[0].Present {
			t.Error("Expected p1 absent after second write")
		}
	})

	t.Run("ReplaceMatch returns ErrNotFound for unknown ID", func(t *testing.T) {
		match := newMatch(nil)
		match.ID = "nonexistent-id"
		match.Name = "Ghost Match"
		if err := store.ReplaceMatch(ctx, match); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteMatch cascades to roster entries", func(t *testing.T) {
		match := newMatch([]models.RosterEntry{
			{PlayerID: "p1", Present: true},
			{PlayerID: "p2", Present: true},
		})
		if err := store.CreateMatch(ctx, match); err != nil {
			t.Fatalf("CreateMatch failed: %v", err)
		}

		if err := store.DeleteMatch(ctx, match.ID); err != nil {
			t.Fatalf("DeleteMatch failed: %v", err)
		}
		if _, err := store.GetMatch(ctx, match.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}

		var count int
		err := store.db.QueryRow("SELECT COUNT(*) FROM roster_entries WHERE match_id = ?", match.ID).Scan(&count)
		if err != nil {
			t.Fatalf("Counting roster entries failed: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected roster entries to cascade, %d left", count)
		}
	})

	t.Run("Deleting a player keeps past roster snapshots", func(t *testing.T) {
		player := &models.Player{Name: "Leaver"}
		if err := store.CreatePlayer(ctx, player); err != nil {
			t.Fatalf("CreatePlayer failed: %v", err)
		}

		match := newMatch([]models.RosterEntry{{PlayerID: player.ID, Present: true, Paid: true, AmountPaid: 300}})
		if err := store.CreateMatch(ctx, match); err != nil {
			t.Fatalf("CreateMatch failed: %v", err)
		}

		if err := store.DeletePlayer(ctx, player.ID); err != nil {
			t.Fatalf("DeletePlayer failed: %v", err)
		}

		got, err := store.GetMatch(ctx, match.ID)
		if err != nil {
			t.Fatalf("GetMatch failed: %v", err)
		}
		if len(got.Roster) != 1 || got.Roster[0].PlayerID != player.ID {
			t.Errorf("Roster snapshot lost after player deletion: %+v", got.Roster)
		}
		if !got.Roster[0].Paid || got.Roster[0].AmountPaid != 300 {
			t.Errorf("Payment record lost after player deletion: %+v", got.Roster[0])
		}
	})
}

func TestUserStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser and lookup by email", func(t *testing.T) {
		user := &models.User{
			Email:        "sara@example.com",
			FullName:     "Sara M",
			PasswordHash: "$2a$10$hash",
		}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == "" {
			t.Error("Expected user ID to be generated")
		}

		got, err := store.GetUserByEmail(ctx, "sara@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got == nil || got.ID != user.ID || got.FullName != "Sara M" {
			t.Errorf("Unexpected user: %+v", got)
		}
	})

	t.Run("GetUserByEmail returns nil for unknown email", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil user, got %+v", got)
		}
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		user := &models.User{Email: "dup@example.com", FullName: "First", PasswordHash: "h"}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		dup := &models.User{Email: "dup@example.com", FullName: "Second", PasswordHash: "h"}
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("Expected duplicate email to fail")
		}
	})

	t.Run("GetUserByID round-trips", func(t *testing.T) {
		user := &models.User{Email: "id@example.com", FullName: "By ID", PasswordHash: "h"}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got == nil || got.Email != "id@example.com" {
			t.Errorf("Unexpected user: %+v", got)
		}
	})
}
