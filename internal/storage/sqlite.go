// Package storage provides SQLite-based persistence for player profiles
// and score records. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies. Score rows are append-only: the game writes wins and
// reads them back for aggregation, nothing here updates or deletes them.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-memory/internal/rank"
)

// ErrProfileExists is returned when creating a profile whose username is
// already taken (usernames are case-insensitively unique).
var ErrProfileExists = errors.New("storage: username already exists")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Profile is one registered player.
type Profile struct {
	ID        string
	Username  string
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE COLLATE NOCASE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			level INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			time_seconds INTEGER NOT NULL,
			points INTEGER NOT NULL DEFAULT 0,
			date TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_username ON scores(username);
		CREATE INDEX IF NOT EXISTS idx_scores_date ON scores(date);
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

// AppendScore records one winning run. Returns the inserted row ID.
func (s *Store) AppendScore(rec rank.Record) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO scores (username, level, moves, time_seconds, points, date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Username, rec.Level, rec.Moves, rec.ElapsedSeconds, rec.Points, rec.DateKey,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// AllScores retrieves every score record in insertion order, the order
// the ranking aggregator uses for its tie-breaks.
func (s *Store) AllScores() ([]rank.Record, error) {
	return s.queryScores(`SELECT username, level, moves, time_seconds, points, date
		 FROM scores ORDER BY id`)
}

// ScoresOn retrieves the records written on the given calendar day.
func (s *Store) ScoresOn(dateKey string) ([]rank.Record, error) {
	return s.queryScores(`SELECT username, level, moves, time_seconds, points, date
		 FROM scores WHERE date = ? ORDER BY id`, dateKey)
}

func (s *Store) queryScores(query string, args ...any) ([]rank.Record, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var records []rank.Record
	for rows.Next() {
		var rec rank.Record
		if err := rows.Scan(&rec.Username, &rec.Level, &rec.Moves,
			&rec.ElapsedSeconds, &rec.Points, &rec.DateKey); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// UserMaxLevel returns the highest level the user has ever won, or 0
// when they have no history. Used to resume progression at max+1.
func (s *Store) UserMaxLevel(username string) (int, error) {
	var lvl sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(level) FROM scores WHERE username = ?",
		username,
	).Scan(&lvl)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query max level: %w", err)
	}

	if !lvl.Valid {
		return 0, nil
	}

	return int(lvl.Int64), nil
}

// CreateProfile registers a new player. Usernames are unique ignoring
// case; a taken name returns ErrProfileExists.
func (s *Store) CreateProfile(username string) (Profile, error) {
	existing, err := s.FindProfile(username)
	if err != nil {
		return Profile{}, err
	}
	if existing != nil {
		return Profile{}, fmt.Errorf("%w: %s", ErrProfileExists, username)
	}

	p := Profile{ID: uuid.NewString(), Username: username, CreatedAt: time.Now()}
	if _, err := s.db.Exec(
		"INSERT INTO profiles (id, username) VALUES (?, ?)",
		p.ID, p.Username,
	); err != nil {
		return Profile{}, fmt.Errorf("storage: cannot create profile: %w", err)
	}

	return p, nil
}

// FindProfile looks up a profile by username (case-insensitive).
// Returns nil when no such profile exists.
func (s *Store) FindProfile(username string) (*Profile, error) {
	var p Profile
	var createdAt any

	err := s.db.QueryRow(
		"SELECT id, username, created_at FROM profiles WHERE username = ? COLLATE NOCASE",
		username,
	).Scan(&p.ID, &p.Username, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profile: %w", err)
	}

	p.CreatedAt = parseTimestamp(createdAt)
	return &p, nil
}

// EnsureProfile resolves a username to its profile ID, registering the
// profile if it doesn't exist yet. SSH sessions use this so first-time
// connections land on the leaderboard without a separate signup step.
func (s *Store) EnsureProfile(username string) (string, error) {
	existing, err := s.FindProfile(username)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}

	p, err := s.CreateProfile(username)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

// Profiles lists all registered players, oldest first.
func (s *Store) Profiles() ([]Profile, error) {
	rows, err := s.db.Query("SELECT id, username, created_at FROM profiles ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		var createdAt any
		if err := rows.Scan(&p.ID, &p.Username, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CreatedAt = parseTimestamp(createdAt)
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return profiles, nil
}

// parseTimestamp handles the driver returning either time.Time or a
// datetime string.
func parseTimestamp(v any) time.Time {
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
