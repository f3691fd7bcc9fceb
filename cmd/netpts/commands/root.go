package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vivekpatel25/acac-war/pkg/config"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

var (
	// Global flags
	dataDirFlag   string
	outputDirFlag string
	modelFlag     string
	seasonFlag    int
	verbose       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "netpts",
	Short: "ACAC 농구 순득점 리더보드",
	Long: `ACAC net points leaderboard CLI

박스스코어 CSV에서 선수별 공격/수비 순득점을 계산합니다.
디비전마다 S0 → S5 파이프라인을 한 번씩 실행합니다.

Usage:
  go run ./cmd/netpts [command]

Examples:
  go run ./cmd/netpts compute
  go run ./cmd/netpts compute --division men --season 2025
  go run ./cmd/netpts serve
  go run ./cmd/netpts model validate --model model.yaml`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "입력 데이터 디렉토리 (default: DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&outputDirFlag, "output-dir", "", "리더보드 출력 디렉토리 (default: OUTPUT_DIR)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "모델 YAML 경로 (default: MODEL_CONFIG or built-in)")
	rootCmd.PersistentFlags().IntVar(&seasonFlag, "season", 0, "시즌 (default: SEASON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the environment config and applies global flag overrides
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if dataDirFlag != "" {
		// 출력 디렉토리가 입력을 따라가던 경우 함께 이동
		if cfg.Pipeline.OutputDir == cfg.Pipeline.DataDir && outputDirFlag == "" {
			cfg.Pipeline.OutputDir = dataDirFlag
		}
		cfg.Pipeline.DataDir = dataDirFlag
	}
	if outputDirFlag != "" {
		cfg.Pipeline.OutputDir = outputDirFlag
	}
	if modelFlag != "" {
		cfg.Pipeline.ModelConfig = modelFlag
	}
	if seasonFlag > 0 {
		cfg.Pipeline.Season = seasonFlag
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, logger.New(cfg), nil
}
