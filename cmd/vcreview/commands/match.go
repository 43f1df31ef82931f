package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/vcreview/backend/internal/funds"
	"github.com/wonny/vcreview/backend/internal/matching"
	"github.com/wonny/vcreview/backend/pkg/config"
	"github.com/wonny/vcreview/backend/pkg/database"
	"github.com/wonny/vcreview/backend/pkg/logger"
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "딜 시그널로 펀드 매칭 실행",
	Long: `커맨드라인에서 바로 딜-펀드 매칭을 돌려봅니다.

섹터/스테이지 키워드는 API와 같은 규칙으로 정규화됩니다.

Example:
  go run ./cmd/vcreview match --sectors "AI,핀테크" --stage seed
  go run ./cmd/vcreview match --sectors 바이오 --amount 50 --limit 5`,
	RunE: runMatch,
}

var (
	matchSectors string
	matchStage   string
	matchAmount  float64
	matchLimit   int
	matchGovt    bool
)

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVar(&matchSectors, "sectors", "", "쉼표 구분 섹터 키워드 (필수)")
	matchCmd.Flags().StringVar(&matchStage, "stage", "", "스테이지 키워드 (기본: 초기투자)")
	matchCmd.Flags().Float64Var(&matchAmount, "amount", 0, "투자 희망 금액 (억)")
	matchCmd.Flags().IntVar(&matchLimit, "limit", 0, "결과 개수 (기본: config)")
	matchCmd.Flags().BoolVar(&matchGovt, "govt", false, "모태 매칭 펀드만")
}

func runMatch(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(matchSectors) == "" {
		return fmt.Errorf("--sectors is required")
	}

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

	sectors := make([]string, 0)
	for _, s := range strings.Split(matchSectors, ",") {
		if s = strings.TrimSpace(s); s != "" {
			sectors = append(sectors, s)
		}
	}

	signals := matching.ExtractDealSignals(matching.DealAnalysis{
		Sectors:       sectors,
		Stage:         matchStage,
		FundingAmount: matchAmount,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := funds.NewRepository(db.Pool)
	pool, err := repo.MatchPool(ctx, true, matchGovt)
	if err != nil {
		return fmt.Errorf("load match pool: %w", err)
	}

	opts := matching.DefaultOptions()
	opts.Limit = cfg.Match.DefaultLimit
	if matchLimit > 0 {
		opts.Limit = matchLimit
	}
	opts.GovtOnly = matchGovt

	matcher := matching.New(matching.DefaultWeights(), log)
	matches := matcher.Match(signals, pool, opts)

	fmt.Printf("\n딜 시그널: sectors=%v stage=%s amount=%.0f억\n", signals.Sectors, signals.Stage, signals.AmountNeeded)
	fmt.Printf("매칭 결과: %d건 (풀 %d개)\n\n", len(matches), len(pool))

	for i, m := range matches {
		fmt.Printf("%2d. [%3d점] %s | %s (%d억)\n", i+1, m.MatchScore, m.CompanyName, m.FundName, m.Amount)
		for _, reason := range m.MatchReasons {
			fmt.Printf("       · %s (+%d)\n", reason.Description, reason.Score)
		}
	}

	return nil
}
