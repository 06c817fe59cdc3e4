package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the write-mostly ledger of name generations. It is never read back
// into a conversation turn.
type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS name_generations (
		id          uuid PRIMARY KEY,
		session_id  text NOT NULL,
		model       text NOT NULL,
		slots       jsonb NOT NULL,
		created_at  timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS name_generations_session_idx ON name_generations (session_id)`,
	`CREATE TABLE IF NOT EXISTS generated_names (
		id                uuid PRIMARY KEY,
		generation_id     uuid NOT NULL REFERENCES name_generations (id) ON DELETE CASCADE,
		position          int NOT NULL,
		name              text NOT NULL,
		pronunciation     text NOT NULL DEFAULT '',
		meaning           text NOT NULL DEFAULT '',
		style_tags        text[] NOT NULL DEFAULT '{}',
		popularity        text NOT NULL DEFAULT '',
		chinese_relation  text NOT NULL DEFAULT '',
		reason            text NOT NULL DEFAULT ''
	)`,
}

// Migrate creates the ledger tables when they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
