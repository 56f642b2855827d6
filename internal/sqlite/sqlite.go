// Package sqlite provides an embedded SQLite store for the wellness journal.
// It backs single-node deployments and the test suites of the service and
// web packages.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/glebarez/go-sqlite"

	"github.com/justestif/wellness-journal/internal/journal"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// timeLayout is fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// DB wraps a SQLite connection.
type DB struct {
	conn *sql.DB
}

// New opens the database at path and applies the schema.
func New(ctx context.Context, path string) (*DB, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection serialises writers and keeps :memory: databases alive.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating: %w", err)
	}
	return db, nil
}

func (db *DB) migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			category TEXT NOT NULL,
			emoji TEXT NOT NULL,
			background_color TEXT NOT NULL,
			text_color TEXT NOT NULL,
			stickers TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS notes_user_id_updated_at_idx ON notes (user_id, updated_at DESC)`,
		`CREATE TABLE IF NOT EXISTS moods (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			date TEXT NOT NULL,
			mood_emoji TEXT NOT NULL,
			mood_color TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE (user_id, date)
		)`,
	}

	for _, q := range queries {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("executing schema: %w", err)
		}
	}
	return nil
}

// Migrate is a no-op; the schema is applied when the database is opened.
func (db *DB) Migrate(ctx context.Context) error {
	return nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Users returns the user repository.
func (db *DB) Users() journal.UserStore {
	return &UserRepository{conn: db.conn}
}

// Notes returns the note repository.
func (db *DB) Notes() journal.NoteStore {
	return &NoteRepository{conn: db.conn}
}

// Moods returns the mood repository.
func (db *DB) Moods() journal.MoodStore {
	return &MoodRepository{conn: db.conn}
}

var _ journal.Store = (*DB)(nil)

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
