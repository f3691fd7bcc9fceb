package s5_export

import (
	"context"
	"fmt"
	"time"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/pkg/logger"
	"github.com/vivekpatel25/acac-war/pkg/redis"
)

// Meta describes one published leaderboard
type Meta struct {
	Division   string    `json:"division"`
	Season     int       `json:"season"`
	RunID      string    `json:"run_id,omitempty"`
	ConfigHash string    `json:"config_hash,omitempty"`
	Rows       int       `json:"rows"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RedisSink caches exported rows and their metadata for the read API
type RedisSink struct {
	cache  *redis.Cache
	logger *logger.Logger
}

// NewRedisSink creates a sink over a leaderboard cache
func NewRedisSink(cache *redis.Cache, log *logger.Logger) *RedisSink {
	return &RedisSink{cache: cache, logger: log}
}

// Name implements contracts.Publisher
func (s *RedisSink) Name() string {
	return "redis"
}

// Publish overwrites the cached partition
func (s *RedisSink) Publish(ctx context.Context, result *contracts.PartitionResult) error {
	rows := result.Rows
	if rows == nil {
		rows = []contracts.LeaderboardRow{}
	}

	if err := s.cache.Set(ctx, redis.LeaderboardKey(result.Season, result.Division), rows, redis.TTLDaily); err != nil {
		return fmt.Errorf("failed to cache rows: %w", err)
	}

	meta := Meta{
		Division:   result.Division,
		Season:     result.Season,
		RunID:      result.RunID,
		ConfigHash: result.ConfigHash,
		Rows:       len(rows),
		UpdatedAt:  result.StartedAt.Add(result.Duration),
	}
	if err := s.cache.Set(ctx, redis.LeaderboardMetaKey(result.Season, result.Division), meta, redis.TTLDaily); err != nil {
		return fmt.Errorf("failed to cache meta: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"division": result.Division,
		"season":   result.Season,
		"rows":     len(rows),
	}).Debug("Leaderboard cached")

	return nil
}
