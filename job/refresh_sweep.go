package job

import (
	"context"

	"skim/config"
	"skim/usecase/sync_feed_usecase"
	"skim/utils/logger"
)

// NewRefreshSweepJob builds the periodic "refresh stale feeds" sweep. Each
// run asks the orchestrator for a staleness-checked, capped pass over every
// active feed; feeds fetched within the refresh interval are skipped inside
// the pipeline, so an aggressive sweep interval stays cheap.
func NewRefreshSweepJob(syncUsecase *sync_feed_usecase.SyncFeedUsecase, cfg config.SyncConfig) Job {
	return Job{
		Name:     "refresh-sweep",
		Interval: cfg.SweepInterval,
		Timeout:  cfg.RunTimeout,
		Fn: func(ctx context.Context) error {
			report, err := syncUsecase.SyncAllActiveFeeds(ctx, cfg.AdminFeedCap)
			if err != nil {
				return err
			}

			logger.SafeInfo("refresh sweep completed",
				"succeeded", report.Succeeded,
				"failed", report.Failed,
				"skipped", report.Skipped)

			return nil
		},
	}
}
