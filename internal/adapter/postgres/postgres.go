// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements the domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, nickname TEXT NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, user_agent TEXT NOT NULL DEFAULT '', expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
		"CREATE TABLE IF NOT EXISTS weight_entries (id BIGSERIAL PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, day TEXT NOT NULL, weight DOUBLE PRECISION NOT NULL CHECK(weight > 0), created_at TIMESTAMPTZ NOT NULL, UNIQUE(user_id, day));",
		"CREATE INDEX IF NOT EXISTS idx_weight_entries_user_day ON weight_entries(user_id, day);",
		"CREATE TABLE IF NOT EXISTS goals (id BIGSERIAL PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, title TEXT NOT NULL, start_weight DOUBLE PRECISION NOT NULL, target_weight DOUBLE PRECISION NOT NULL, start_date TIMESTAMPTZ NOT NULL, end_date TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_goals_user_id ON goals(user_id);",
		"CREATE TABLE IF NOT EXISTS battle_rooms (id BIGSERIAL PRIMARY KEY, entry_code TEXT UNIQUE NOT NULL, name TEXT NOT NULL, description TEXT NOT NULL DEFAULT '', password_hash TEXT NOT NULL, host_id BIGINT NOT NULL REFERENCES users(id), status TEXT NOT NULL CHECK(status IN ('WAITING','IN_PROGRESS','ENDED','CANCELLED')), max_participants INT NOT NULL CHECK(max_participants BETWEEN 2 AND 4), duration_days INT NOT NULL CHECK(duration_days >= 1), started_at TIMESTAMPTZ, ends_at TIMESTAMPTZ, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_battle_rooms_status_ends_at ON battle_rooms(status, ends_at);",
		"CREATE TABLE IF NOT EXISTS battle_participants (id BIGSERIAL PRIMARY KEY, room_id BIGINT NOT NULL REFERENCES battle_rooms(id) ON DELETE CASCADE, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, nickname TEXT NOT NULL, goal_type TEXT CHECK(goal_type IN ('WEIGHT_LOSS','WEIGHT_GAIN','MAINTAIN')), target_weight DOUBLE PRECISION, starting_weight DOUBLE PRECISION, ready BOOLEAN NOT NULL DEFAULT FALSE, joined_at TIMESTAMPTZ NOT NULL, UNIQUE(room_id, user_id));",
		"CREATE INDEX IF NOT EXISTS idx_battle_participants_user_id ON battle_participants(user_id);",
		"CREATE TABLE IF NOT EXISTS invites (token TEXT PRIMARY KEY, room_id BIGINT NOT NULL REFERENCES battle_rooms(id) ON DELETE CASCADE, entry_code TEXT NOT NULL, created_by BIGINT NOT NULL REFERENCES users(id), expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_invites_expires_at ON invites(expires_at);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
