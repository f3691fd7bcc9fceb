package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/internal/modelconfig"
	"github.com/vivekpatel25/acac-war/internal/s0_source"
	"github.com/vivekpatel25/acac-war/internal/s1_normalize"
	"github.com/vivekpatel25/acac-war/internal/s2_teamgame"
	"github.com/vivekpatel25/acac-war/internal/s3_allocation"
	"github.com/vivekpatel25/acac-war/internal/s4_season"
	"github.com/vivekpatel25/acac-war/internal/s5_export"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

// Options configure a leaderboard run. Model must already be validated.
type Options struct {
	DataDir   string
	OutputDir string
	Season    int
	Model     *modelconfig.Config

	// ModelYAML is the model as loaded; rendered from Model when empty
	ModelYAML []byte

	// Publishers receive every successfully exported partition (optional)
	Publishers []contracts.Publisher
}

// Runner executes S0 → S5 once per partition
// ⭐ SSOT: 파이프라인 조율은 여기서만
type Runner struct {
	opts       Options
	configHash string
	logger     *logger.Logger
}

// NewRunner creates a runner; the model hash is computed once for all partitions
func NewRunner(opts Options, log *logger.Logger) (*Runner, error) {
	if opts.Model == nil {
		opts.Model = modelconfig.Default()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = opts.DataDir
	}

	hash, err := modelconfig.Hash(opts.Model)
	if err != nil {
		return nil, fmt.Errorf("hash model config: %w", err)
	}
	if len(opts.ModelYAML) == 0 {
		if opts.ModelYAML, err = modelconfig.Render(opts.Model); err != nil {
			return nil, err
		}
	}

	return &Runner{opts: opts, configHash: hash, logger: log}, nil
}

// ConfigHash returns the hash recorded in every result
func (r *Runner) ConfigHash() string {
	return r.configHash
}

// Run computes the leaderboard for one division.
// The returned result is never nil; on failure it carries the error text and the stages that completed.
func (r *Runner) Run(ctx context.Context, division string) (*contracts.PartitionResult, error) {
	result := &contracts.PartitionResult{
		RunID:      uuid.New().String(),
		Division:   division,
		Season:     r.opts.Season,
		ConfigHash: r.configHash,
		StartedAt:  time.Now(),
		Stages:     make([]contracts.StageResult, 0, len(contracts.AllStages())),
	}
	log := r.logger.ForPartition(result.RunID, division, r.opts.Season)

	log.WithField("config_hash", r.configHash).Info("Starting partition run")

	snap, err := modelconfig.NewRunSnapshot(r.opts.Model, r.opts.ModelYAML, division, r.opts.Season)
	if err != nil {
		result.Error = err.Error()
		return result, fmt.Errorf("snapshot model config: %w", err)
	}
	result.Snapshot = snap

	err = r.run(ctx, result, log)
	result.Duration = time.Since(result.StartedAt)

	if err != nil {
		result.Error = err.Error()
		log.WithError(err).Error("Partition run failed")
		return result, err
	}

	fields := result.Diagnostics.AsFields()
	fields["players"] = result.Players
	fields["output"] = result.OutputPath
	fields["duration_ms"] = result.Duration.Milliseconds()
	log.WithFields(fields).Info("Partition run completed")

	r.publish(ctx, result, log)
	return result, nil
}

func (r *Runner) run(ctx context.Context, result *contracts.PartitionResult, log *logger.Logger) error {
	diag := &result.Diagnostics
	division := result.Division

	// S0: 원본 파일
	var src *s0_source.Sources
	err := r.stage(ctx, result, contracts.StageSource, func() (int, int, error) {
		var err error
		src, err = s0_source.NewLoader(r.opts.DataDir, log).Load(division, diag)
		return diag.FilesRead + diag.FilesSkipped, diag.FilesRead, err
	})
	if err != nil {
		return err
	}

	// S1: 정규화
	var records *contracts.NormalizedRecords
	err = r.stage(ctx, result, contracts.StageNormalize, func() (int, int, error) {
		in := 0
		for _, t := range src.BoxScores {
			in += len(t.Rows)
		}
		for _, t := range src.TeamStats {
			in += len(t.Rows)
		}
		records = s1_normalize.NewNormalizer(r.opts.Season, log).Normalize(src, diag)
		return in, len(records.Players) + len(records.Teams), nil
	})
	if err != nil {
		return err
	}

	// S2: 팀 경기
	var games []contracts.TeamGame
	err = r.stage(ctx, result, contracts.StageTeamGame, func() (int, int, error) {
		var err error
		games, err = s2_teamgame.NewResolver(r.opts.Model, log).Resolve(records, diag)
		return len(records.Teams), len(games), err
	})
	if err != nil {
		return err
	}

	// S3: 선수 배분
	var contribs []contracts.PlayerGameContribution
	err = r.stage(ctx, result, contracts.StageAllocation, func() (int, int, error) {
		contribs = s3_allocation.NewEngine(r.opts.Model, log).Allocate(games, records.Players, diag)
		return len(records.Players), len(contribs), nil
	})
	if err != nil {
		return err
	}

	// S4: 시즌 집계 (+ 레이팅)
	var totals []contracts.PlayerSeasonTotal
	err = r.stage(ctx, result, contracts.StageSeason, func() (int, int, error) {
		totals = s4_season.NewAggregator(log).Aggregate(contribs)
		if r.opts.Model.Rating.Enabled {
			result.Ratings = s4_season.NewRater(r.opts.Model.Rating, log).Rate(games, contribs)
		}
		return len(contribs), len(totals), nil
	})
	if err != nil {
		return err
	}

	// S5: 출력
	return r.stage(ctx, result, contracts.StageExport, func() (int, int, error) {
		exporter := s5_export.NewExporter(r.opts.OutputDir, r.opts.Model.Export.RoundingPrecision, log)
		path, rows, err := exporter.Export(division, r.opts.Season, totals)
		if err != nil {
			return len(totals), 0, err
		}
		result.OutputPath = path
		result.Rows = rows
		result.Players = len(rows)

		if r.opts.Model.Rating.Enabled {
			ratingPath, err := exporter.ExportRatings(division, r.opts.Season, result.Ratings, r.opts.Model.Rating.RoundingPrecision)
			if err != nil {
				return len(totals), len(rows), err
			}
			result.RatingPath = ratingPath
		}
		return len(totals), len(rows), nil
	})
}

// stage times fn and records its counts. Cancellation is checked before each stage.
func (r *Runner) stage(ctx context.Context, result *contracts.PartitionResult, stage contracts.Stage, fn func() (in, out int, err error)) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", stage.ShortName(), err)
	}

	start := time.Now()
	in, out, err := fn()
	if err != nil {
		return fmt.Errorf("%s failed: %w", stage.ShortName(), err)
	}
	r.logger.ForPartition(result.RunID, result.Division, result.Season).
		ForStage(stage.ShortName()).
		WithFields(map[string]interface{}{"in": in, "out": out}).
		Debug("Stage completed")

	result.Stages = append(result.Stages, contracts.StageResult{
		Stage:       stage,
		InputCount:  in,
		OutputCount: out,
		Duration:    time.Since(start).Milliseconds(),
	})
	return nil
}

// publish hands the result to every sink. The CSV is already written, so sink
// failures are logged and do not fail the partition.
func (r *Runner) publish(ctx context.Context, result *contracts.PartitionResult, log *logger.Logger) {
	for _, p := range r.opts.Publishers {
		if err := p.Publish(ctx, result); err != nil {
			log.WithError(err).WithField("sink", p.Name()).Error("Publish failed")
			continue
		}
		log.WithField("sink", p.Name()).Debug("Published")
	}
}

// RunAll runs every division, sequentially or one goroutine per division.
// A failed partition is logged and recorded; the others proceed.
// Results are returned in the order of divisions.
func (r *Runner) RunAll(ctx context.Context, divisions []string, parallel bool) []*contracts.PartitionResult {
	results := make([]*contracts.PartitionResult, len(divisions))

	if !parallel {
		for i, d := range divisions {
			results[i], _ = r.Run(ctx, d)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(len(divisions))
	for i, d := range divisions {
		i, d := i, d
		g.Go(func() error {
			results[i], _ = r.Run(ctx, d)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Summary counts succeeded and failed partitions
func Summary(results []*contracts.PartitionResult) (succeeded, failed int) {
	for _, res := range results {
		if res.Success() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
