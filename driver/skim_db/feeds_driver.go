package skim_db

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"skim/domain"
	"skim/utils/logger"
)

const feedColumns = `id, owner_id, url, source_kind, title, description, icon_url,
	category, is_active, last_fetched_at, last_updated_at, created_at, deleted_at`

// GetFeed loads a single feed by ID. Soft-deleted feeds are invisible to the
// pipeline, so they come back as not found.
func (r *SkimDBRepository) GetFeed(ctx context.Context, feedID uuid.UUID) (*domain.Feed, error) {
	query := `SELECT ` + feedColumns + ` FROM feeds WHERE id = $1 AND deleted_at IS NULL`

	row := r.db.QueryRow(ctx, query, feedID)
	feed, err := scanFeed(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFeedNotFound
		}
		logger.SafeError("Error querying feed", "error", err, "feed_id", feedID)
		return nil, classifyStorageError(err)
	}

	return feed, nil
}

// ListDueFeeds selects active, non-deleted feeds whose last fetch is either
// absent or older than the refresh interval. A nil ownerID selects
// system-wide; limit 0 means no cap.
func (r *SkimDBRepository) ListDueFeeds(ctx context.Context, ownerID *uuid.UUID, refreshInterval time.Duration, limit int) ([]*domain.Feed, error) {
	query := `SELECT ` + feedColumns + ` FROM feeds
		WHERE deleted_at IS NULL
		  AND is_active
		  AND (last_fetched_at IS NULL OR last_fetched_at < $1)`

	args := []any{time.Now().Add(-refreshInterval)}
	if ownerID != nil {
		query += ` AND owner_id = $2`
		args = append(args, *ownerID)
	}
	query += ` ORDER BY last_fetched_at ASC NULLS FIRST`
	if limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.SafeError("Error listing due feeds", "error", err)
		return nil, classifyStorageError(err)
	}
	defer rows.Close()

	var feeds []*domain.Feed
	for rows.Next() {
		feed, err := scanFeed(rows)
		if err != nil {
			return nil, classifyStorageError(err)
		}
		feeds = append(feeds, feed)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStorageError(err)
	}

	return feeds, nil
}

// ListActiveFeeds selects every active, non-deleted feed regardless of
// staleness. The administrative sweep caps the result.
func (r *SkimDBRepository) ListActiveFeeds(ctx context.Context, limit int) ([]*domain.Feed, error) {
	query := `SELECT ` + feedColumns + ` FROM feeds
		WHERE deleted_at IS NULL AND is_active
		ORDER BY last_fetched_at ASC NULLS FIRST`
	if limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(limit)
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		logger.SafeError("Error listing active feeds", "error", err)
		return nil, classifyStorageError(err)
	}
	defer rows.Close()

	var feeds []*domain.Feed
	for rows.Next() {
		feed, err := scanFeed(rows)
		if err != nil {
			return nil, classifyStorageError(err)
		}
		feeds = append(feeds, feed)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStorageError(err)
	}

	return feeds, nil
}

// TouchFeedFetchTimestamp stamps last_fetched_at after a fetch attempt
// settles, success or failure alike, so a broken feed is not retried every
// cycle. Skipped feeds are never stamped.
func (r *SkimDBRepository) TouchFeedFetchTimestamp(ctx context.Context, feedID uuid.UUID) error {
	query := `UPDATE feeds SET last_fetched_at = CURRENT_TIMESTAMP WHERE id = $1 AND deleted_at IS NULL`

	if _, err := r.db.Exec(ctx, query, feedID); err != nil {
		logger.SafeError("Error touching feed fetch timestamp", "error", err, "feed_id", feedID)
		return classifyStorageError(err)
	}

	return nil
}

// MarkFeedUpdated stamps last_updated_at; called only when a sync actually
// added items.
func (r *SkimDBRepository) MarkFeedUpdated(ctx context.Context, feedID uuid.UUID) error {
	query := `UPDATE feeds SET last_updated_at = CURRENT_TIMESTAMP WHERE id = $1 AND deleted_at IS NULL`

	if _, err := r.db.Exec(ctx, query, feedID); err != nil {
		logger.SafeError("Error marking feed updated", "error", err, "feed_id", feedID)
		return classifyStorageError(err)
	}

	return nil
}

// UpdateFeedMetadata refreshes the feed's presentational fields from the
// latest successful parse. Empty values leave the stored ones alone.
func (r *SkimDBRepository) UpdateFeedMetadata(ctx context.Context, feedID uuid.UUID, title, description, iconURL string) error {
	query := `UPDATE feeds SET
			title = COALESCE(NULLIF($2, ''), title),
			description = COALESCE(NULLIF($3, ''), description),
			icon_url = COALESCE(NULLIF($4, ''), icon_url)
		WHERE id = $1 AND deleted_at IS NULL`

	if _, err := r.db.Exec(ctx, query, feedID, title, description, iconURL); err != nil {
		logger.SafeError("Error updating feed metadata", "error", err, "feed_id", feedID)
		return classifyStorageError(err)
	}

	return nil
}

func scanFeed(row pgx.Row) (*domain.Feed, error) {
	var feed domain.Feed
	err := row.Scan(
		&feed.ID,
		&feed.OwnerID,
		&feed.URL,
		&feed.SourceKind,
		&feed.Title,
		&feed.Description,
		&feed.IconURL,
		&feed.Category,
		&feed.IsActive,
		&feed.LastFetchedAt,
		&feed.LastUpdatedAt,
		&feed.CreatedAt,
		&feed.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &feed, nil
}

