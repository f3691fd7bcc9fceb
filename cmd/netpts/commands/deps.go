package commands

import (
	"context"
	"fmt"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/internal/modelconfig"
	"github.com/vivekpatel25/acac-war/internal/pipeline"
	"github.com/vivekpatel25/acac-war/internal/s5_export"
	"github.com/vivekpatel25/acac-war/pkg/config"
	"github.com/vivekpatel25/acac-war/pkg/database"
	"github.com/vivekpatel25/acac-war/pkg/logger"
	"github.com/vivekpatel25/acac-war/pkg/redis"
)

// cachePrefix namespaces every key this service writes to Redis
const cachePrefix = "netpts"

// sinks holds the optional outputs opened for a command
type sinks struct {
	db         *database.DB
	redis      *redis.Client
	publishers []contracts.Publisher
}

// Close releases every open connection
func (s *sinks) Close() {
	if s.db != nil {
		s.db.Close()
	}
	if s.redis != nil {
		_ = s.redis.Close()
	}
}

// Cache returns a cache over the Redis client, disabled when Redis is off
func (s *sinks) Cache() *redis.Cache {
	if s.redis == nil {
		return redis.NewCache(redis.Disabled(), cachePrefix)
	}
	return redis.NewCache(s.redis, cachePrefix)
}

// openSinks connects the configured sinks.
// PostgreSQL is opt-in per command; Redis follows REDIS_ENABLED and is skipped with a warning when unreachable.
func openSinks(ctx context.Context, cfg *config.Config, log *logger.Logger, publishDB bool) (*sinks, error) {
	s := &sinks{}

	if publishDB {
		if !cfg.Database.Enabled() {
			return nil, fmt.Errorf("--publish-db requires DATABASE_URL")
		}
		db, err := database.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		s.db = db
		s.publishers = append(s.publishers, s5_export.NewPostgresSink(db, log))
		log.Info("Connected to database")
	}

	if cfg.Redis.Enabled {
		client, err := redis.New(ctx, cfg)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, skipping cache sink")
		} else {
			s.redis = client
			s.publishers = append(s.publishers, s5_export.NewRedisSink(s.Cache(), log))
			log.Info("Connected to redis")
		}
	}

	return s, nil
}

// newRunner builds the pipeline runner with the model from MODEL_CONFIG
func newRunner(cfg *config.Config, log *logger.Logger, publishers []contracts.Publisher) (*pipeline.Runner, error) {
	model, modelYAML, err := modelconfig.LoadOrDefault(cfg.Pipeline.ModelConfig)
	if err != nil {
		return nil, fmt.Errorf("load model config: %w", err)
	}
	for _, w := range modelconfig.Warn(model) {
		log.WithField("code", w.Code).Warn(w.Message)
	}

	return pipeline.NewRunner(pipeline.Options{
		DataDir:    cfg.Pipeline.DataDir,
		OutputDir:  cfg.Pipeline.OutputDir,
		Season:     cfg.Pipeline.Season,
		Model:      model,
		ModelYAML:  modelYAML,
		Publishers: publishers,
	}, log)
}
