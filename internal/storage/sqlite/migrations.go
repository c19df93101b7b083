package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Roster entries reference matches with ON DELETE CASCADE so deleting a
// match removes its sheet; player references are plain IDs (snapshots),
// so deleting a player never touches past rosters.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    full_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS players (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    position TEXT NOT NULL,
    skill INTEGER NOT NULL,
    traits TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS matches (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    match_date TEXT NOT NULL,
    match_time TEXT NOT NULL,
    venue TEXT NOT NULL DEFAULT '',
    total_cost REAL NOT NULL,
    latitude REAL,
    longitude REAL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS roster_entries (
    match_id TEXT NOT NULL,
    player_id TEXT NOT NULL,
    slot INTEGER NOT NULL,
    present INTEGER NOT NULL DEFAULT 1,
    paid INTEGER NOT NULL DEFAULT 0,
    amount_paid REAL NOT NULL DEFAULT 0,
    PRIMARY KEY (match_id, player_id),
    FOREIGN KEY (match_id) REFERENCES matches(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_roster_entries_match_id ON roster_entries(match_id);
CREATE INDEX IF NOT EXISTS idx_matches_date ON matches(match_date, match_time);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
