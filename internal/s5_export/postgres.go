package s5_export

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/pkg/database"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

// PostgresSink replaces the (season, division) slice of leaderboard_entries
// ⭐ SSOT: 리더보드 DB 저장은 여기서만
type PostgresSink struct {
	db     *database.DB
	logger *logger.Logger
}

// NewPostgresSink creates a sink over an open pool
func NewPostgresSink(db *database.DB, log *logger.Logger) *PostgresSink {
	return &PostgresSink{db: db, logger: log}
}

// Name implements contracts.Publisher
func (s *PostgresSink) Name() string {
	return "postgres"
}

// runArgs are the leaderboard_runs column values; the model snapshot is optional
func runArgs(result *contracts.PartitionResult) ([]interface{}, error) {
	diagJSON, err := json.Marshal(result.Diagnostics)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal diagnostics: %w", err)
	}

	var modelID, configYAML string
	if snap := result.Snapshot; snap != nil {
		modelID, configYAML = snap.ModelID, snap.ConfigYAML
	}

	return []interface{}{
		result.RunID, result.Season, result.Division, result.ConfigHash, result.Players, diagJSON,
		modelID, configYAML,
	}, nil
}

// Publish records the run with its model snapshot and swaps the partition's rows in one transaction
func (s *PostgresSink) Publish(ctx context.Context, result *contracts.PartitionResult) error {
	args, err := runArgs(result)
	if err != nil {
		return err
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO leaderboard_runs
			(run_id, season, division, config_hash, players, diagnostics, model_id, config_yaml)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, args...)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	_, err = tx.Exec(ctx, "DELETE FROM leaderboard_entries WHERE season = $1 AND division = $2",
		result.Season, result.Division)
	if err != nil {
		return fmt.Errorf("failed to delete old entries: %w", err)
	}

	if len(result.Rows) > 0 {
		batch := &pgx.Batch{}
		query := `
			INSERT INTO leaderboard_entries
				(season, division, rank, player_name, team_name, games, off_value, def_value, overall, run_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

		for _, r := range result.Rows {
			batch.Queue(query, result.Season, result.Division, r.Rank, r.PlayerName, r.TeamName,
				r.Games, r.Offense, r.Defense, r.Overall, result.RunID)
		}

		br := tx.SendBatch(ctx, batch)
		for range result.Rows {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("failed to insert entry: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"run_id":   result.RunID,
		"division": result.Division,
		"season":   result.Season,
		"rows":     len(result.Rows),
	}).Info("Leaderboard published to postgres")

	return nil
}
