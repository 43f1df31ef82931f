package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/vcreview/backend/internal/external/kvic"
	"github.com/wonny/vcreview/backend/internal/funds"
	"github.com/wonny/vcreview/backend/internal/tagging"
	"github.com/wonny/vcreview/backend/pkg/logger"
)

// CollectJob fetches the full KVIC disclosure list, enriches each
// record with tags and upserts the catalog. 회원사 명부 프로필도
// 같은 사이클에서 갱신한다.
type CollectJob struct {
	client *kvic.Client
	repo   *funds.Repository
	logger *logger.Logger
}

// NewCollectJob creates a new disclosure collection job
func NewCollectJob(client *kvic.Client, repo *funds.Repository, log *logger.Logger) *CollectJob {
	return &CollectJob{
		client: client,
		repo:   repo,
		logger: log,
	}
}

// Name returns the job name
func (j *CollectJob) Name() string {
	return "fund_collection"
}

// Schedule returns the cron schedule (every day at 6 AM KST)
// 공시 갱신은 영업일 오전이므로 새벽 수집이면 충분하다
func (j *CollectJob) Schedule() string {
	return "0 0 6 * * *"
}

// Run executes the collection
func (j *CollectJob) Run(ctx context.Context) error {
	j.logger.Info("Starting fund disclosure collection")

	records, err := j.client.FetchAllFunds(ctx)
	if err != nil {
		return fmt.Errorf("disclosure fetch failed: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("disclosure list came back empty")
	}

	now := time.Now()
	items := make([]funds.Fund, 0, len(records))
	for _, rec := range records {
		items = append(items, tagging.Enrich(rec, now))
	}

	upserted, err := j.repo.UpsertAll(ctx, items)
	if err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}

	// 명부 프로필 갱신 실패는 경고만. 공시 수집 자체는 성공이다.
	profiles := 0
	if fetched, err := j.client.FetchDirectory(ctx); err != nil {
		j.logger.WithError(err).Warn("VC directory fetch failed, keeping existing profiles")
	} else if len(fetched) > 0 {
		if profiles, err = j.repo.UpsertProfiles(ctx, fetched); err != nil {
			j.logger.WithError(err).Warn("VC profile upsert failed")
			profiles = 0
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"fetched":  len(records),
		"upserted": upserted,
		"profiles": profiles,
	}).Info("Fund disclosure collection completed")

	return nil
}
