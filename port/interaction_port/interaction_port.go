package interaction_port

import (
	"context"

	"github.com/google/uuid"

	"skim/domain"
)

// InteractionPort upserts a single per-user flag on an item.
type InteractionPort interface {
	UpsertInteraction(ctx context.Context, userID, itemID uuid.UUID, itemKind domain.ItemKind, field domain.InteractionField, value bool) error
}
