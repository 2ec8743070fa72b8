package interaction_usecase

import (
	"context"

	"github.com/google/uuid"

	"skim/domain"
	"skim/port/interaction_port"
	"skim/utils/errors"
)

// InteractionUsecase reconciles user actions (read, favorite, read-later)
// onto per-user interaction state. Orphaned items are tolerated: feed
// deletion and interaction cleanup are decoupled, so no existence check is
// made against the item's feed here.
type InteractionUsecase struct {
	interactionGateway interaction_port.InteractionPort
}

func NewInteractionUsecase(interactionGateway interaction_port.InteractionPort) *InteractionUsecase {
	return &InteractionUsecase{interactionGateway: interactionGateway}
}

// SetInteraction sets one flag for the calling user on an item, creating the
// state row on first interaction. Applying the same value twice is a no-op.
func (u *InteractionUsecase) SetInteraction(ctx context.Context, itemID uuid.UUID, itemKind domain.ItemKind, field domain.InteractionField, value bool) error {
	user, err := domain.GetUserFromContext(ctx)
	if err != nil {
		return err
	}

	if !field.Valid() {
		return errors.ValidationError("unknown interaction field",
			map[string]interface{}{"field": string(field)})
	}
	if !itemKind.Valid() {
		return errors.ValidationError("unknown item kind",
			map[string]interface{}{"item_kind": string(itemKind)})
	}

	return u.interactionGateway.UpsertInteraction(ctx, user.UserID, itemID, itemKind, field, value)
}
