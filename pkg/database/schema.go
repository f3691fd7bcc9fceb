package database

import (
	"context"
	"fmt"
)

// schema is applied idempotently before the first publish
var schema = []string{
	`CREATE TABLE IF NOT EXISTS leaderboard_runs (
		run_id      TEXT PRIMARY KEY,
		season      INTEGER NOT NULL,
		division    TEXT NOT NULL,
		config_hash TEXT NOT NULL,
		players     INTEGER NOT NULL,
		diagnostics JSONB NOT NULL,
		model_id    TEXT NOT NULL DEFAULT '',
		config_yaml TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	// 이전 스키마로 생성된 테이블 보강
	`ALTER TABLE leaderboard_runs ADD COLUMN IF NOT EXISTS model_id TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE leaderboard_runs ADD COLUMN IF NOT EXISTS config_yaml TEXT NOT NULL DEFAULT ''`,
	`CREATE TABLE IF NOT EXISTS leaderboard_entries (
		season      INTEGER NOT NULL,
		division    TEXT NOT NULL,
		rank        INTEGER NOT NULL,
		player_name TEXT NOT NULL,
		team_name   TEXT NOT NULL,
		games       INTEGER NOT NULL,
		off_value   DOUBLE PRECISION NOT NULL,
		def_value   DOUBLE PRECISION NOT NULL,
		overall     DOUBLE PRECISION NOT NULL,
		run_id      TEXT NOT NULL REFERENCES leaderboard_runs (run_id),
		PRIMARY KEY (season, division, rank)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leaderboard_runs_partition
		ON leaderboard_runs (season, division, created_at DESC)`,
}

// EnsureSchema creates the leaderboard tables when missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
