package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionsSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	players    JSONB       NOT NULL DEFAULT '[]'::jsonb,
	boards     JSONB       NOT NULL DEFAULT '{}'::jsonb,
	game_key   TEXT        NOT NULL DEFAULT '',
	status     TEXT        NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_game_key_idx ON sessions (game_key) WHERE game_key <> '';
CREATE INDEX IF NOT EXISTS sessions_created_at_idx ON sessions (created_at);
`

// NewPostgres - opens a connection pool and checks the connection.
func NewPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return pool, nil
}

// InitPostgres - creates the sessions table if it does not exist yet.
func InitPostgres(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, sessionsSchema); err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}
