package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/vcreview/backend/internal/funds"
	"github.com/wonny/vcreview/backend/pkg/logger"
	"github.com/wonny/vcreview/backend/pkg/redis"
)

// statsCacheKey must match the fund stats handler's cache key
const statsCacheKey = "funds:stats"

// RefreshJob recomputes lifecycle and active flags from the current
// date. 결성일/만기일은 고정이지만 경과 년수는 매일 달라진다.
type RefreshJob struct {
	repo   *funds.Repository
	cache  *redis.Cache
	logger *logger.Logger
}

// NewRefreshJob creates a new status refresh job
func NewRefreshJob(repo *funds.Repository, cache *redis.Cache, log *logger.Logger) *RefreshJob {
	return &RefreshJob{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "status_refresh"
}

// Schedule returns the cron schedule (every day at 5 AM KST, before collection)
func (j *RefreshJob) Schedule() string {
	return "0 0 5 * * *"
}

// Run executes the refresh
func (j *RefreshJob) Run(ctx context.Context) error {
	j.logger.Info("Starting fund status refresh")

	updated, err := j.repo.RefreshStatus(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("status refresh failed: %w", err)
	}

	// 상태가 바뀌면 통계 캐시는 구식이 된다
	if j.cache != nil {
		if err := j.cache.Delete(ctx, statsCacheKey); err != nil {
			j.logger.WithError(err).Warn("Failed to invalidate stats cache")
		}
	}

	j.logger.WithField("updated", updated).Info("Fund status refresh completed")
	return nil
}
