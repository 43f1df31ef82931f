package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/vcreview/backend/internal/external/kvic"
	"github.com/wonny/vcreview/backend/internal/funds"
	"github.com/wonny/vcreview/backend/internal/scheduler/jobs"
	"github.com/wonny/vcreview/backend/pkg/config"
	"github.com/wonny/vcreview/backend/pkg/database"
	"github.com/wonny/vcreview/backend/pkg/httputil"
	"github.com/wonny/vcreview/backend/pkg/logger"
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "KVIC 공시 수집 후 카탈로그 갱신",
	Long: `KVIC 공시 목록 전체를 수집하고 태깅 후 DB에 upsert합니다.

Example:
  go run ./cmd/vcreview collect`,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	fmt.Println("=== VCReview Fund Collection ===")

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

	httpClient := httputil.New(cfg.KVIC.HTTPTimeout, log)
	kvicClient := kvic.NewClient(cfg.KVIC, httpClient, log)
	repo := funds.NewRepository(db.Pool)

	job := jobs.NewCollectJob(kvicClient, repo, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		return fmt.Errorf("collection failed: %w", err)
	}

	fmt.Printf("\n✅ Collection completed in %s\n", time.Since(start).Round(time.Second))
	return nil
}
