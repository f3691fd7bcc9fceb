package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vivekpatel25/acac-war/internal/api"
	"github.com/vivekpatel25/acac-war/internal/api/handlers"
	"github.com/vivekpatel25/acac-war/internal/api/ws"
	"github.com/vivekpatel25/acac-war/internal/scheduler"
	"github.com/vivekpatel25/acac-war/internal/scheduler/jobs"
	"github.com/vivekpatel25/acac-war/pkg/redis"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "리더보드 API 서버 시작",
	Long: `출력된 리더보드 CSV를 읽어 REST API로 제공합니다.

이 명령어는:
- HTTP API 서버 시작
- Redis 캐시 (REDIS_ENABLED=true일 때)
- WebSocket으로 갱신 이벤트 전송
- (선택) COMPUTE_SCHEDULE에 따라 재계산

Endpoints:
  GET  /health                                   - Health check
  GET  /ws                                       - 갱신 이벤트 구독
  GET  /api/leaderboards                         - 디비전 목록
  GET  /api/leaderboards/{division}              - 리더보드 조회
  GET  /api/leaderboards/{division}/meta         - 메타 정보

Example:
  go run ./cmd/netpts serve
  go run ./cmd/netpts serve --port 9000 --recompute`,
	RunE: runServe,
}

var (
	servePort      string
	serveRecompute bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Flags
	serveCmd.Flags().StringVar(&servePort, "port", "", "API 서버 포트 (default: PORT)")
	serveCmd.Flags().BoolVar(&serveRecompute, "recompute", false, "서버 안에서 스케줄 재계산 실행")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Net Points Leaderboard API ===")

	// 1. Load config
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.API.Port = servePort
	}

	log.WithFields(map[string]interface{}{
		"port":   cfg.API.Port,
		"env":    cfg.Env,
		"output": cfg.Pipeline.OutputDir,
	}).Info("Initializing API server")

	// 2. Connect sinks (Redis only; the API never writes to PostgreSQL)
	ctx := context.Background()
	out, err := openSinks(ctx, cfg, log, false)
	if err != nil {
		return err
	}
	defer out.Close()

	// 3. Rate limiter: Redis 공유 윈도우, 없으면 프로세스 로컬 토큰 버킷
	bucket := api.NewTokenBucket(cfg.API.RateLimit, cfg.API.RateBurst)
	var limiter api.Limiter = bucket
	if out.redis != nil {
		limiter = api.NewSharedWindow(redis.NewRateLimiter(out.redis, cachePrefix), cfg.API.RateBurst, bucket, log)
	}

	// 4. Create handlers and router
	hub := ws.NewHub(log)
	lb := handlers.NewLeaderboardHandler(cfg.Pipeline.OutputDir, cfg.Pipeline.Season, out.Cache(), log)
	router := api.NewRouter(lb, hub, limiter, log)

	// 5. Optional in-process recompute, publishing to the hub and the cache
	var sched *scheduler.Scheduler
	if serveRecompute {
		runner, err := newRunner(cfg, log, append(out.publishers, hub))
		if err != nil {
			return err
		}
		sched = scheduler.New(log)
		if err := sched.AddJob(jobs.NewComputeJob(runner, cfg.Pipeline.Divisions, cfg.Pipeline.Parallel, cfg.Pipeline.Schedule, log)); err != nil {
			return fmt.Errorf("register compute job: %w", err)
		}
		sched.Start()
	}

	// 6. Start server with graceful shutdown
	server := api.New(cfg, log, router)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.API.Port)
	if sched != nil {
		fmt.Printf("   Recompute schedule: %s\n", cfg.Pipeline.Schedule)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal or a failed listener
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	log.Info("Shutting down server...")
	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
