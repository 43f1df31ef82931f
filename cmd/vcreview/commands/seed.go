package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/vcreview/backend/internal/funds"
	"github.com/wonny/vcreview/backend/internal/tagging"
	"github.com/wonny/vcreview/backend/pkg/config"
	"github.com/wonny/vcreview/backend/pkg/database"
	"github.com/wonny/vcreview/backend/pkg/logger"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "JSON 파일로 카탈로그 시드",
	Long: `공시 레코드 JSON 파일을 읽어 태깅 후 DB에 upsert합니다.

네트워크 없이 로컬 덤프로 카탈로그를 채울 때 사용합니다.

Example:
  go run ./cmd/vcreview seed --file data/funds.json`,
	RunE: runSeed,
}

var seedFile string

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedFile, "file", "data/funds.json", "공시 레코드 JSON 파일")
}

func runSeed(cmd *cobra.Command, args []string) error {
	fmt.Println("=== VCReview Catalog Seed ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	raw, err := os.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var records []tagging.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("seed file %s contains no records", seedFile)
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	now := time.Now()
	items := make([]funds.Fund, 0, len(records))
	for _, rec := range records {
		items = append(items, tagging.Enrich(rec, now))
	}

	repo := funds.NewRepository(db.Pool)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	upserted, err := repo.UpsertAll(ctx, items)
	if err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"file":     seedFile,
		"records":  len(records),
		"upserted": upserted,
	}).Info("Catalog seeded")

	fmt.Printf("✅ %d funds seeded from %s\n", upserted, seedFile)
	return nil
}
