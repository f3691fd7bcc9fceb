package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vivekpatel25/acac-war/internal/pipeline"
)

// computeCmd represents the compute command
var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "리더보드 계산",
	Long: `디비전별 파이프라인(S0 → S5)을 실행하고 리더보드 CSV를 씁니다.

이 명령어는:
- <data-dir>/{boxscores,teamstats}/<division>/*.csv 읽기
- 선수별 공격/수비 순득점 계산
- leaderboard_<division>_<season>.csv 원자적 쓰기
- (선택) PostgreSQL, Redis 발행

한 디비전이 실패해도 나머지 디비전은 계속 실행됩니다.

Example:
  go run ./cmd/netpts compute
  go run ./cmd/netpts compute --division men --division women --parallel
  go run ./cmd/netpts compute --season 2024 --publish-db`,
	RunE: runCompute,
}

var (
	computeDivisions []string
	computeParallel  bool
	computePublishDB bool
)

func init() {
	rootCmd.AddCommand(computeCmd)

	// Flags
	computeCmd.Flags().StringSliceVar(&computeDivisions, "division", nil, "디비전 (default: DIVISIONS)")
	computeCmd.Flags().BoolVar(&computeParallel, "parallel", false, "디비전 병렬 실행")
	computeCmd.Flags().BoolVar(&computePublishDB, "publish-db", false, "PostgreSQL에 결과 저장")
}

func runCompute(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	divisions := cfg.Pipeline.Divisions
	if len(computeDivisions) > 0 {
		divisions = computeDivisions
	}
	parallel := cfg.Pipeline.Parallel || computeParallel

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := openSinks(ctx, cfg, log, computePublishDB)
	if err != nil {
		return err
	}
	defer out.Close()

	runner, err := newRunner(cfg, log, out.publishers)
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Net Points Leaderboard · season %d", cfg.Pipeline.Season))
	PrintKeyValue("data", cfg.Pipeline.DataDir, 8)
	PrintKeyValue("output", cfg.Pipeline.OutputDir, 8)
	PrintKeyValue("model", runner.ConfigHash()[:12], 8)
	PrintSeparator()

	results := runner.RunAll(ctx, divisions, parallel)

	PrintPartitionResults(results)
	for _, r := range results {
		if r.Diagnostics.Excluded() > 0 || r.Diagnostics.FilesSkipped > 0 {
			PrintSeparator()
			fmt.Printf("  %s diagnostics\n", r.Division)
			PrintDiagnostics(r.Diagnostics)
		}
	}
	PrintSeparator()

	succeeded, failed := pipeline.Summary(results)
	if failed > 0 {
		PrintError(fmt.Sprintf("%d of %d divisions failed", failed, succeeded+failed))
		return fmt.Errorf("%d of %d divisions failed", failed, succeeded+failed)
	}

	PrintSuccess(fmt.Sprintf("%d divisions computed", succeeded))
	return nil
}
