// Package sync_feed_usecase orchestrates the ingestion pipeline: it selects
// feeds, runs fetch → parse → upsert per feed with isolation, and aggregates
// a per-run report. One feed's failure never aborts its siblings.
package sync_feed_usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"skim/config"
	"skim/domain"
	"skim/parser"
	"skim/port/feed_store_port"
	"skim/port/fetch_source_port"
	"skim/port/item_store_port"
	"skim/utils/logger"
)

// ParserFactory yields the parser for a source kind. Injected so source-kind
// configuration stays explicit and tests can substitute fixtures.
type ParserFactory func(kind domain.SourceKind) parser.Parser

type SyncFeedUsecase struct {
	feedStore feed_store_port.FeedStorePort
	itemStore item_store_port.ItemStorePort
	fetcher   fetch_source_port.FetchSourcePort
	parserFor ParserFactory
	cfg       config.SyncConfig

	normalizer *itemNormalizer
	locks      *feedLocks
}

func NewSyncFeedUsecase(
	feedStore feed_store_port.FeedStorePort,
	itemStore item_store_port.ItemStorePort,
	fetcher fetch_source_port.FetchSourcePort,
	cfg config.SyncConfig,
) *SyncFeedUsecase {
	return &SyncFeedUsecase{
		feedStore: feedStore,
		itemStore: itemStore,
		fetcher:   fetcher,
		parserFor: func(kind domain.SourceKind) parser.Parser {
			return parser.ForKind(kind, cfg.MaxItems)
		},
		cfg:        cfg,
		normalizer: newItemNormalizer(cfg.DescriptionMax),
		locks:      newFeedLocks(),
	}
}

// WithParserFactory overrides parser construction; used by tests.
func (u *SyncFeedUsecase) WithParserFactory(factory ParserFactory) *SyncFeedUsecase {
	u.parserFor = factory
	return u
}

// SyncFeed syncs one feed immediately, bypassing the staleness check.
func (u *SyncFeedUsecase) SyncFeed(ctx context.Context, feedID uuid.UUID) (domain.SyncResult, error) {
	feed, err := u.feedStore.GetFeed(ctx, feedID)
	if err != nil {
		return domain.SyncResult{}, err
	}

	return u.syncOne(ctx, feed, false), nil
}

// SyncDueFeedsForUser syncs the user's stale feeds in bounded batches.
func (u *SyncFeedUsecase) SyncDueFeedsForUser(ctx context.Context, userID uuid.UUID) (*domain.SyncReport, error) {
	feeds, err := u.feedStore.ListDueFeeds(ctx, &userID, u.cfg.RefreshInterval, 0)
	if err != nil {
		return nil, err
	}

	return u.syncBatches(ctx, feeds), nil
}

// SyncAllActiveFeeds syncs every active feed system-wide, staleness-checked,
// capped to at most cap feeds per invocation (0 falls back to the configured
// administrative cap).
func (u *SyncFeedUsecase) SyncAllActiveFeeds(ctx context.Context, cap int) (*domain.SyncReport, error) {
	if cap <= 0 || cap > u.cfg.AdminFeedCap {
		cap = u.cfg.AdminFeedCap
	}

	feeds, err := u.feedStore.ListActiveFeeds(ctx, cap)
	if err != nil {
		return nil, err
	}

	return u.syncBatches(ctx, feeds), nil
}

// syncBatches runs feeds through the pipeline in batches of cfg.BatchSize
// with a short pause between batches. Batch N+1 does not start until every
// feed in batch N has settled. The whole run is bounded by cfg.RunTimeout.
func (u *SyncFeedUsecase) syncBatches(ctx context.Context, feeds []*domain.Feed) *domain.SyncReport {
	runCtx, cancel := context.WithTimeout(ctx, u.cfg.RunTimeout)
	defer cancel()

	report := &domain.SyncReport{}
	start := time.Now()

	for batchStart := 0; batchStart < len(feeds); batchStart += u.cfg.BatchSize {
		if runCtx.Err() != nil {
			logger.SafeWarn("sync run budget exhausted",
				"processed", len(report.Results), "total", len(feeds))
			for _, feed := range feeds[batchStart:] {
				report.Add(domain.SyncResult{
					FeedID: feed.ID,
					Status: domain.SyncSkipped,
					Error:  runCtx.Err().Error(),
				})
			}
			break
		}

		end := batchStart + u.cfg.BatchSize
		if end > len(feeds) {
			end = len(feeds)
		}
		batch := feeds[batchStart:end]

		results := make([]domain.SyncResult, len(batch))
		group, groupCtx := errgroup.WithContext(runCtx)
		for i, feed := range batch {
			group.Go(func() error {
				// Pipeline errors land in the result, never in the group:
				// sibling feeds must not be cancelled.
				results[i] = u.syncOne(groupCtx, feed, true)
				return nil
			})
		}
		_ = group.Wait()

		for _, result := range results {
			report.Add(result)
		}

		// Deliberate throttle between batches so a big sweep does not burst
		// against source-side rate limits.
		if end < len(feeds) {
			select {
			case <-runCtx.Done():
			case <-time.After(u.cfg.BatchPause):
			}
		}
	}

	logger.SafeInfo("sync run finished",
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"duration_ms", time.Since(start).Milliseconds())

	return report
}

// syncOne runs a single feed's pipeline: fetch → parse → upsert. Runs for the
// same feed are serialized on a per-feed lock; the unique constraint on
// (feed_id, external_id) remains the backstop across processes.
//
// last_fetched_at is stamped when the attempt settles, success or failure
// alike; a permanently broken feed must not be re-selected every cycle.
// Skips stamp nothing.
func (u *SyncFeedUsecase) syncOne(ctx context.Context, feed *domain.Feed, sweep bool) domain.SyncResult {
	unlock := u.locks.lock(feed.ID)
	defer unlock()

	result := domain.SyncResult{FeedID: feed.ID}

	if !feed.IsSyncable() {
		result.Status = domain.SyncSkipped
		return result
	}
	if sweep && !feed.IsStale(time.Now(), u.cfg.RefreshInterval) {
		result.Status = domain.SyncSkipped
		return result
	}

	raw, err := u.fetcher.Fetch(ctx, feed.URL, feed.SourceKind)
	if err != nil {
		return u.settleFailure(ctx, result, feed, "fetch", err)
	}

	parsed, err := u.parserFor(feed.SourceKind).Parse(raw.Body)
	if err != nil {
		return u.settleFailure(ctx, result, feed, "parse", err)
	}

	added, skipped, err := u.normalizer.normalizeAndUpsert(ctx, u.itemStore, feed, parsed.Items)
	result.ItemsAdded = added
	result.ItemsSkipped = skipped
	if err != nil {
		return u.settleFailure(ctx, result, feed, "upsert", err)
	}

	if err := u.feedStore.UpdateFeedMetadata(ctx, feed.ID, parsed.Title, parsed.Description, parsed.IconURL); err != nil {
		logger.SafeWarn("failed to refresh feed metadata", "feed_id", feed.ID, "error", err)
	}

	u.stampFetched(ctx, feed.ID)
	if added > 0 {
		if err := u.feedStore.MarkFeedUpdated(ctx, feed.ID); err != nil {
			logger.SafeWarn("failed to stamp feed update time", "feed_id", feed.ID, "error", err)
		}
	}

	result.Status = domain.SyncSucceeded
	logger.SafeInfo("feed synced",
		"feed_id", feed.ID, "added", added, "skipped", skipped)

	return result
}

func (u *SyncFeedUsecase) settleFailure(ctx context.Context, result domain.SyncResult, feed *domain.Feed, stage string, err error) domain.SyncResult {
	logger.SafeError("feed sync failed", "feed_id", feed.ID, "stage", stage, "error", err)
	u.stampFetched(ctx, feed.ID)

	result.Status = domain.SyncFailed
	result.Error = stage + ": " + err.Error()
	return result
}

func (u *SyncFeedUsecase) stampFetched(ctx context.Context, feedID uuid.UUID) {
	if err := u.feedStore.TouchFeedFetchTimestamp(ctx, feedID); err != nil {
		logger.SafeWarn("failed to stamp feed fetch time", "feed_id", feedID, "error", err)
	}
}
