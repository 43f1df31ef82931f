package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/vcreview/backend/internal/funds"
	"github.com/wonny/vcreview/backend/pkg/config"
	"github.com/wonny/vcreview/backend/pkg/database"
	"github.com/wonny/vcreview/backend/pkg/logger"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "펀드 상태 플래그 재계산",
	Long: `오늘 날짜 기준으로 is_active / lifecycle을 재계산합니다.

결성일과 만기일은 바뀌지 않지만 경과 년수는 매일 달라지므로
스케줄러가 매일 실행하는 작업을 수동으로 돌릴 때 사용합니다.

Example:
  go run ./cmd/vcreview refresh`,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
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

	repo := funds.NewRepository(db.Pool)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	updated, err := repo.RefreshStatus(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	log.WithField("updated", updated).Info("Fund status refreshed")
	fmt.Printf("✅ %d funds updated\n", updated)
	return nil
}
