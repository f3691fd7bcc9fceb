package jobs

import (
	"context"
	"fmt"

	"github.com/vivekpatel25/acac-war/internal/contracts"
	"github.com/vivekpatel25/acac-war/internal/pipeline"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

// ComputeJobName is the registered name of the recompute job
const ComputeJobName = "compute_leaderboards"

// Runner is the part of pipeline.Runner the job needs
type Runner interface {
	RunAll(ctx context.Context, divisions []string, parallel bool) []*contracts.PartitionResult
}

// ComputeJob recomputes every division's leaderboard
type ComputeJob struct {
	runner    Runner
	divisions []string
	parallel  bool
	schedule  string
	logger    *logger.Logger

	// OnComplete is called with every run's results, failures included (optional)
	OnComplete func(results []*contracts.PartitionResult)
}

// NewComputeJob creates the recompute job
func NewComputeJob(runner Runner, divisions []string, parallel bool, schedule string, log *logger.Logger) *ComputeJob {
	return &ComputeJob{
		runner:    runner,
		divisions: divisions,
		parallel:  parallel,
		schedule:  schedule,
		logger:    log,
	}
}

// Name returns the job name
func (j *ComputeJob) Name() string {
	return ComputeJobName
}

// Schedule returns the cron expression
func (j *ComputeJob) Schedule() string {
	return j.schedule
}

// Run computes all divisions. It fails when any partition failed.
func (j *ComputeJob) Run(ctx context.Context) error {
	results := j.runner.RunAll(ctx, j.divisions, j.parallel)

	if j.OnComplete != nil {
		j.OnComplete(results)
	}

	ok, failed := pipeline.Summary(results)
	j.logger.WithFields(map[string]interface{}{
		"succeeded": ok,
		"failed":    failed,
	}).Info("Leaderboards recomputed")

	if failed > 0 {
		return fmt.Errorf("%d of %d partitions failed", failed, len(results))
	}
	return nil
}
