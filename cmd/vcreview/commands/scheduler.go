package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/vcreview/backend/internal/external/kvic"
	"github.com/wonny/vcreview/backend/internal/funds"
	"github.com/wonny/vcreview/backend/internal/scheduler"
	"github.com/wonny/vcreview/backend/internal/scheduler/jobs"
	"github.com/wonny/vcreview/backend/pkg/config"
	"github.com/wonny/vcreview/backend/pkg/database"
	"github.com/wonny/vcreview/backend/pkg/httputil"
	"github.com/wonny/vcreview/backend/pkg/logger"
	"github.com/wonny/vcreview/backend/pkg/redis"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 데몬 시작",
	Long: `수집/상태갱신 작업을 cron 스케줄로 실행하는 데몬을 시작합니다.

Jobs:
  status_refresh   매일 05:00 - is_active / lifecycle 재계산
  fund_collection  매일 06:00 - KVIC 공시 수집 + upsert

Example:
  go run ./cmd/vcreview scheduler`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== VCReview Scheduler ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	var statsCache *redis.Cache
	if redisClient.Enabled() {
		statsCache = redis.NewCache(redisClient, "vcreview")
	}

	httpClient := httputil.New(cfg.KVIC.HTTPTimeout, log)
	kvicClient := kvic.NewClient(cfg.KVIC, httpClient, log)
	repo := funds.NewRepository(db.Pool)

	sched := scheduler.New(log)

	if err := sched.AddJob(jobs.NewRefreshJob(repo, statsCache, log)); err != nil {
		return fmt.Errorf("add refresh job: %w", err)
	}
	if err := sched.AddJob(jobs.NewCollectJob(kvicClient, repo, log)); err != nil {
		return fmt.Errorf("add collect job: %w", err)
	}

	sched.Start()
	fmt.Println("\n✅ Scheduler running. Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
