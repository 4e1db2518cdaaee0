package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sukalov/lyricplayer/internal/utils"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

const schema = `
CREATE TABLE IF NOT EXISTS lyrics (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	artist     TEXT,
	lines      TEXT NOT NULL,
	pauses     TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// Store keeps songs in the lyrics table of a libsql (Turso) database.
type Store struct {
	db *sql.DB
}

// Open connects using TURSO_DATABASE_URL and TURSO_AUTH_TOKEN and makes
// sure the lyrics table exists.
func Open(ctx context.Context) (*Store, error) {
	env, err := utils.LoadEnv([]string{"TURSO_DATABASE_URL", "TURSO_AUTH_TOKEN"})
	if err != nil {
		return nil, fmt.Errorf("failed to load db env: %w", err)
	}
	url := fmt.Sprintf("%s?authToken=%s", env["TURSO_DATABASE_URL"], env["TURSO_AUTH_TOKEN"])

	database, err := sql.Open("libsql", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", env["TURSO_DATABASE_URL"], err)
	}

	database.SetMaxOpenConns(25)
	database.SetMaxIdleConns(25)
	database.SetConnMaxLifetime(5 * time.Minute)

	store := New(database)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}

	return store, nil
}

// New wraps an already opened database.
func New(database *sql.DB) *Store {
	return &Store{db: database}
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create lyrics table: %w", err)
	}
	return nil
}

// Close closes the database connection safely
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
