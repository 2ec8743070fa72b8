package item_store_port

import (
	"context"

	"skim/domain"
)

// ItemStorePort writes normalized items. UpsertItem must be an atomic
// unique-or-noop insert on (feed_id, external_id); it reports whether a row
// was actually inserted.
type ItemStorePort interface {
	UpsertItem(ctx context.Context, item *domain.Item) (bool, error)
}
