// Package storage provides SQLite-based persistence for recorded replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/arcade-classics/internal/replay"
)

// ErrNotFound is returned when a replay ID does not exist.
var ErrNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for replay persistence.
// It is safe for concurrent use; SSH sessions share one Store.
type Store struct {
	db *sql.DB
}

// ReplaySummary is a replay row without its events, for listings.
type ReplaySummary struct {
	ID        int64
	GameID    string
	Seed      int64
	Ticks     uint64
	Outcome   string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			screen_w INTEGER NOT NULL,
			screen_h INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			config TEXT NOT NULL DEFAULT '',
			events TEXT NOT NULL,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_game_id ON replays(game_id);
		CREATE INDEX IF NOT EXISTS idx_replays_recent ON replays(game_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a finished recording.
// Returns the ID of the inserted record.
func (s *Store) SaveReplay(rec replay.Recording) (int64, error) {
	events, err := replay.EncodeEvents(rec.Events)
	if err != nil {
		return 0, fmt.Errorf("storage: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO replays (game_id, seed, screen_w, screen_h, ticks, config, events, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.GameID, rec.Seed, rec.ScreenW, rec.ScreenH, int64(rec.Ticks),
		string(rec.Config), string(events), rec.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Replay loads a full recording by ID.
// Returns ErrNotFound if it does not exist.
func (s *Store) Replay(id int64) (replay.Recording, error) {
	var (
		rec       replay.Recording
		ticks     int64
		config    string
		events    string
		createdAt any
	)

	err := s.db.QueryRow(
		`SELECT id, game_id, seed, screen_w, screen_h, ticks, config, events, outcome, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(
		&rec.ID,
		&rec.GameID,
		&rec.Seed,
		&rec.ScreenW,
		&rec.ScreenH,
		&ticks,
		&config,
		&events,
		&rec.Outcome,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Recording{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return replay.Recording{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	rec.Ticks = uint64(ticks)
	if config != "" {
		rec.Config = []byte(config)
	}
	if events != "" {
		rec.Events, err = replay.DecodeEvents([]byte(events))
		if err != nil {
			return replay.Recording{}, fmt.Errorf("storage: replay %d: %w", id, err)
		}
	}
	rec.CreatedAt = parseTime(createdAt)

	return rec, nil
}

// RecentReplays lists the newest replays, optionally for a single game.
// An empty gameID lists all games.
func (s *Store) RecentReplays(gameID string, limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, game_id, seed, ticks, outcome, created_at FROM replays`
	args := []any{}
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var entries []ReplaySummary
	for rows.Next() {
		var e ReplaySummary
		var ticks int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Seed, &ticks, &e.Outcome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// OutcomeCounts returns how often each outcome occurred for a game,
// e.g. {"you win": 3, "draw": 5}. An empty gameID counts all games.
func (s *Store) OutcomeCounts(gameID string) (map[string]int, error) {
	query := `SELECT outcome, COUNT(*) FROM replays`
	args := []any{}
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` GROUP BY outcome`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count outcomes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		counts[outcome] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return counts, nil
}

// DeleteReplay removes a replay. Deleting a missing ID returns ErrNotFound.
func (s *Store) DeleteReplay(id int64) error {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
