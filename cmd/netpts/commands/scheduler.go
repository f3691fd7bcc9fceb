package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vivekpatel25/acac-war/internal/scheduler"
	"github.com/vivekpatel25/acac-war/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `리더보드 재계산 스케줄러를 시작하거나 작업을 즉시 실행합니다.

Subcommands:
  start   - 스케줄러 시작 (COMPUTE_SCHEDULE)
  run     - 작업 즉시 실행

Example:
  go run ./cmd/netpts scheduler start
  go run ./cmd/netpts scheduler run compute_leaderboards`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 작업을 스케줄합니다.

등록되는 작업:
- compute_leaderboards: COMPUTE_SCHEDULE (기본 매일 오전 6시)

이전 실행이 끝나지 않았으면 다음 실행은 건너뜁니다.`,
		RunE: runSchedulerStart,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job]",
		Short: "작업 즉시 실행",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSchedulerRun,
	}

	schedulerPublishDB bool
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)

	schedulerCmd.PersistentFlags().BoolVar(&schedulerPublishDB, "publish-db", false, "PostgreSQL에 결과 저장")
}

// buildScheduler registers the compute job over the configured sinks
func buildScheduler(ctx context.Context) (*scheduler.Scheduler, *sinks, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	out, err := openSinks(ctx, cfg, log, schedulerPublishDB)
	if err != nil {
		return nil, nil, err
	}

	runner, err := newRunner(cfg, log, out.publishers)
	if err != nil {
		out.Close()
		return nil, nil, err
	}

	job := jobs.NewComputeJob(runner, cfg.Pipeline.Divisions, cfg.Pipeline.Parallel, cfg.Pipeline.Schedule, log)
	job.OnComplete = PrintPartitionResults

	sched := scheduler.New(log)
	if err := sched.AddJob(job); err != nil {
		out.Close()
		return nil, nil, fmt.Errorf("register compute job: %w", err)
	}
	return sched, out, nil
}

func runSchedulerStart(cmd *cobra.Command, args []string) error {
	sched, out, err := buildScheduler(context.Background())
	if err != nil {
		return err
	}
	defer out.Close()

	sched.Start()

	PrintHeader("Scheduler started")
	stats := sched.Stats()
	for _, name := range sched.JobNames() {
		PrintKeyValue(name, stats[name].Schedule, 22)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	PrintSuccess("Scheduler stopped")
	return nil
}

func runSchedulerRun(cmd *cobra.Command, args []string) error {
	name := jobs.ComputeJobName
	if len(args) == 1 {
		name = args[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched, out, err := buildScheduler(ctx)
	if err != nil {
		return err
	}
	defer out.Close()

	result, err := sched.RunNow(ctx, name)
	if err != nil {
		return err
	}

	PrintSeparator()
	if !result.Success {
		PrintError(fmt.Sprintf("%s failed after %s: %s", name, result.Duration, result.Error))
		return fmt.Errorf("%s failed: %s", name, result.Error)
	}
	PrintSuccess(fmt.Sprintf("%s completed in %s", name, result.Duration))
	return nil
}
