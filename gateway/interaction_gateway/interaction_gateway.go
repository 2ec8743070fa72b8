package interaction_gateway

import (
	"context"

	"github.com/google/uuid"

	"skim/domain"
	"skim/driver/skim_db"
	apperrors "skim/utils/errors"
)

type InteractionGateway struct {
	repo *skim_db.SkimDBRepository
}

// NewInteractionGateway wraps the repository; a nil db leaves the gateway
// without a repository and every call fails with a database error.
func NewInteractionGateway(db skim_db.DBTX) *InteractionGateway {
	g := &InteractionGateway{}
	if db != nil {
		g.repo = skim_db.NewSkimDBRepository(db)
	}
	return g
}

func (g *InteractionGateway) UpsertInteraction(ctx context.Context, userID, itemID uuid.UUID, itemKind domain.ItemKind, field domain.InteractionField, value bool) error {
	if g.repo == nil {
		return apperrors.DatabaseError("database connection not available", nil, nil)
	}
	return g.repo.UpsertInteraction(ctx, userID, itemID, itemKind, field, value)
}
