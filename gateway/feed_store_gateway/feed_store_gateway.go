package feed_store_gateway

import (
	"context"
	"time"

	"github.com/google/uuid"

	"skim/domain"
	"skim/driver/skim_db"
	apperrors "skim/utils/errors"
)

type FeedStoreGateway struct {
	repo *skim_db.SkimDBRepository
}

// NewFeedStoreGateway wraps the repository; a nil db leaves the gateway
// without a repository and every call fails with a database error.
func NewFeedStoreGateway(db skim_db.DBTX) *FeedStoreGateway {
	g := &FeedStoreGateway{}
	if db != nil {
		g.repo = skim_db.NewSkimDBRepository(db)
	}
	return g
}

func errNoDatabase() error {
	return apperrors.DatabaseError("database connection not available", nil, nil)
}

func (g *FeedStoreGateway) GetFeed(ctx context.Context, feedID uuid.UUID) (*domain.Feed, error) {
	if g.repo == nil {
		return nil, errNoDatabase()
	}
	return g.repo.GetFeed(ctx, feedID)
}

func (g *FeedStoreGateway) ListDueFeeds(ctx context.Context, ownerID *uuid.UUID, refreshInterval time.Duration, limit int) ([]*domain.Feed, error) {
	if g.repo == nil {
		return nil, errNoDatabase()
	}
	return g.repo.ListDueFeeds(ctx, ownerID, refreshInterval, limit)
}

func (g *FeedStoreGateway) ListActiveFeeds(ctx context.Context, limit int) ([]*domain.Feed, error) {
	if g.repo == nil {
		return nil, errNoDatabase()
	}
	return g.repo.ListActiveFeeds(ctx, limit)
}

func (g *FeedStoreGateway) TouchFeedFetchTimestamp(ctx context.Context, feedID uuid.UUID) error {
	if g.repo == nil {
		return errNoDatabase()
	}
	return g.repo.TouchFeedFetchTimestamp(ctx, feedID)
}

func (g *FeedStoreGateway) MarkFeedUpdated(ctx context.Context, feedID uuid.UUID) error {
	if g.repo == nil {
		return errNoDatabase()
	}
	return g.repo.MarkFeedUpdated(ctx, feedID)
}

func (g *FeedStoreGateway) UpdateFeedMetadata(ctx context.Context, feedID uuid.UUID, title, description, iconURL string) error {
	if g.repo == nil {
		return errNoDatabase()
	}
	return g.repo.UpdateFeedMetadata(ctx, feedID, title, description, iconURL)
}
