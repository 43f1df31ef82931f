package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/vcreview/backend/internal/api"
	"github.com/wonny/vcreview/backend/internal/api/handlers"
	"github.com/wonny/vcreview/backend/internal/funds"
	"github.com/wonny/vcreview/backend/internal/matching"
	"github.com/wonny/vcreview/backend/pkg/config"
	"github.com/wonny/vcreview/backend/pkg/database"
	"github.com/wonny/vcreview/backend/pkg/logger"
	"github.com/wonny/vcreview/backend/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

Endpoints:
  GET  /health                  - Health check
  POST /api/fund-match          - 딜-펀드 매칭
  POST /api/fund-match/extract  - 딜 시그널 정규화
  GET  /api/funds               - 펀드 목록
  GET  /api/funds/stats         - 카탈로그 통계
  GET  /api/funds/sectors       - 섹터 목록
  GET  /api/funds/{asct_id}     - 펀드 상세
  GET  /api/vcs                 - VC 운용사 목록
  GET  /api/vcs/{company}       - VC 운용사 상세

Example:
  go run ./cmd/vcreview api
  go run ./cmd/vcreview api --port 8090`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT env)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== VCReview API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Connected to database")

	// 4. Redis (optional, stats 캐시용)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	var statsCache *redis.Cache
	if redisClient.Enabled() {
		statsCache = redis.NewCache(redisClient, "vcreview")
		log.Info("Connected to Redis")
	}

	// 5. Create repository and matcher
	repo := funds.NewRepository(db.Pool)
	matcher := matching.New(matching.DefaultWeights(), log)

	// 6. Create handlers
	matchHandler := handlers.NewMatchHandler(repo, matcher, cfg.Match.DefaultLimit, log)
	fundHandler := handlers.NewFundHandler(repo, statsCache, cfg.Match.StatsCacheTTL, log)
	vcHandler := handlers.NewVCHandler(repo, log)

	// 7. Create router and server
	router := api.NewRouter(matchHandler, fundHandler, vcHandler, log)
	server := api.New(cfg, log, router)

	// 8. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
