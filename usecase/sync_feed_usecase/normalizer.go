package sync_feed_usecase

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"skim/domain"
	"skim/port/item_store_port"
)

// itemNormalizer maps parsed items onto canonical storage records. Safe for
// concurrent use across feeds; per-feed serialization is the caller's job.
type itemNormalizer struct {
	sanitizer      *bluemonday.Policy
	descriptionMax int
}

func newItemNormalizer(descriptionMax int) *itemNormalizer {
	return &itemNormalizer{
		sanitizer:      bluemonday.StrictPolicy(),
		descriptionMax: descriptionMax,
	}
}

// normalizeAndUpsert inserts each parsed item unless an item with the same
// (feed_id, external_id) already exists. Existing items are never updated:
// a republished GUID with changed text does not overwrite.
func (n *itemNormalizer) normalizeAndUpsert(ctx context.Context, store item_store_port.ItemStorePort, feed *domain.Feed, parsedItems []domain.ParsedItem) (added, skipped int, err error) {
	now := time.Now()

	for i := range parsedItems {
		item := n.normalize(feed.ID, &parsedItems[i], now)

		inserted, err := store.UpsertItem(ctx, item)
		if err != nil {
			return added, skipped, err
		}
		if inserted {
			added++
		} else {
			skipped++
		}
	}

	return added, skipped, nil
}

func (n *itemNormalizer) normalize(feedID uuid.UUID, parsed *domain.ParsedItem, now time.Time) *domain.Item {
	publishedAt := parsed.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = now
	}

	return &domain.Item{
		ID:           uuid.New(),
		FeedID:       feedID,
		ExternalID:   parsed.ExternalID(),
		Title:        strings.TrimSpace(parsed.Title),
		Description:  n.cleanDescription(parsed.Description),
		Link:         parsed.Link,
		ThumbnailURL: parsed.ThumbnailURL,
		Author:       strings.TrimSpace(parsed.Author),
		PublishedAt:  publishedAt,
	}
}

// cleanDescription strips markup from a source-provided description and caps
// its length so verbose feeds do not balloon storage.
func (n *itemNormalizer) cleanDescription(description string) string {
	cleaned := html.UnescapeString(n.sanitizer.Sanitize(description))
	cleaned = strings.TrimSpace(cleaned)

	runes := []rune(cleaned)
	if len(runes) > n.descriptionMax {
		return string(runes[:n.descriptionMax])
	}
	return cleaned
}
