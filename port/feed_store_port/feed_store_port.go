package feed_store_port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"skim/domain"
)

// FeedStorePort is the pipeline's view of feed storage: selection of
// syncable feeds and the fetch/update timestamp stamps.
type FeedStorePort interface {
	GetFeed(ctx context.Context, feedID uuid.UUID) (*domain.Feed, error)
	ListDueFeeds(ctx context.Context, ownerID *uuid.UUID, refreshInterval time.Duration, limit int) ([]*domain.Feed, error)
	ListActiveFeeds(ctx context.Context, limit int) ([]*domain.Feed, error)
	TouchFeedFetchTimestamp(ctx context.Context, feedID uuid.UUID) error
	MarkFeedUpdated(ctx context.Context, feedID uuid.UUID) error
	UpdateFeedMetadata(ctx context.Context, feedID uuid.UUID, title, description, iconURL string) error
}
