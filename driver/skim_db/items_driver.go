package skim_db

import (
	"context"
	"errors"

	"skim/domain"
	"skim/utils/logger"
)

// UpsertItem inserts an item if no item with the same (feed_id, external_id)
// exists, and reports whether a row was actually written. The unique
// constraint is the sole mechanism preventing duplicate inserts under
// concurrent syncs, so a conflict is an expected, silently-absorbed outcome.
func (r *SkimDBRepository) UpsertItem(ctx context.Context, item *domain.Item) (bool, error) {
	query := `
		INSERT INTO items (id, feed_id, external_id, title, description, link,
			thumbnail_url, author, published_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP)
		ON CONFLICT (feed_id, external_id) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query,
		item.ID,
		item.FeedID,
		item.ExternalID,
		item.Title,
		item.Description,
		item.Link,
		item.ThumbnailURL,
		item.Author,
		item.PublishedAt,
	)
	if err != nil {
		classified := classifyStorageError(err)
		var storageErr *domain.StorageError
		if errors.As(classified, &storageErr) && storageErr.Kind == domain.StorageConflict {
			// Race with a concurrent sync of the same feed; the item is there.
			return false, nil
		}
		logger.SafeError("Error upserting item",
			"error", err, "feed_id", item.FeedID, "external_id", item.ExternalID)
		return false, classified
	}

	return tag.RowsAffected() == 1, nil
}
