package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vivekpatel25/acac-war/internal/s5_export"
	"github.com/vivekpatel25/acac-war/pkg/config"
	"github.com/vivekpatel25/acac-war/pkg/database"
	"github.com/vivekpatel25/acac-war/pkg/redis"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "리더보드 및 연결 상태",
	Long: `현재 설정, 출력된 리더보드, 선택 sink 연결 상태를 보여줍니다.

표시 정보:
- 데이터/출력 디렉토리, 시즌, 디비전
- 디비전별 리더보드 파일 (선수 수, 갱신 시각)
- PostgreSQL 상태 (DATABASE_URL 설정 시)
- Redis 상태 (REDIS_ENABLED=true 시)

Example:
  go run ./cmd/netpts status
  go run ./cmd/netpts status --season 2024`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	PrintHeader("Net Points Leaderboard Status")
	PrintKeyValue("env", cfg.Env, 10)
	PrintKeyValue("data", cfg.Pipeline.DataDir, 10)
	PrintKeyValue("output", cfg.Pipeline.OutputDir, 10)
	PrintKeyValue("season", strconv.Itoa(cfg.Pipeline.Season), 10)
	model := cfg.Pipeline.ModelConfig
	if model == "" {
		model = "(built-in)"
	}
	PrintKeyValue("model", model, 10)

	PrintSeparator()
	printLeaderboardFiles(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	PrintSeparator()
	printDatabaseStatus(ctx, cfg)
	printRedisStatus(ctx, cfg)
	return nil
}

func printLeaderboardFiles(cfg *config.Config) {
	widths := []int{10, 8, 20, 40}
	PrintTableHeader([]string{"DIVISION", "PLAYERS", "UPDATED", "FILE"}, widths)

	for _, division := range cfg.Pipeline.Divisions {
		path := s5_export.OutputPath(cfg.Pipeline.OutputDir, division, cfg.Pipeline.Season)

		info, err := os.Stat(path)
		if err != nil {
			PrintTableRow([]string{division, "-", "missing", path}, widths)
			continue
		}

		players := "?"
		if rows, err := s5_export.ReadLeaderboard(path); err == nil {
			players = strconv.Itoa(len(rows))
		}
		PrintTableRow([]string{division, players, info.ModTime().Format("2006-01-02 15:04:05"), path}, widths)
	}
}

func printDatabaseStatus(ctx context.Context, cfg *config.Config) {
	if !cfg.Database.Enabled() {
		PrintKeyValue("postgres", "disabled", 10)
		return
	}

	db, err := database.New(ctx, cfg)
	if err != nil {
		PrintError(fmt.Sprintf("postgres: %v", err))
		return
	}
	defer db.Close()

	health, err := db.HealthCheck(ctx)
	if err != nil {
		PrintError(fmt.Sprintf("postgres: %v", err))
		return
	}
	PrintKeyValue("postgres", fmt.Sprintf("healthy (%s, %d conns)", health.ResponseTime.Round(time.Microsecond), health.TotalConns), 10)
}

func printRedisStatus(ctx context.Context, cfg *config.Config) {
	if !cfg.Redis.Enabled {
		PrintKeyValue("redis", "disabled", 10)
		return
	}

	// New pings before returning
	client, err := redis.New(ctx, cfg)
	if err != nil {
		PrintError(fmt.Sprintf("redis: %v", err))
		return
	}
	defer client.Close()

	PrintKeyValue("redis", fmt.Sprintf("healthy (%s:%s)", cfg.Redis.Host, cfg.Redis.Port), 10)
}
