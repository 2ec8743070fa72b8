package item_store_gateway

import (
	"context"

	"skim/domain"
	"skim/driver/skim_db"
	apperrors "skim/utils/errors"
)

type ItemStoreGateway struct {
	repo *skim_db.SkimDBRepository
}

// NewItemStoreGateway wraps the repository; a nil db leaves the gateway
// without a repository and every call fails with a database error.
func NewItemStoreGateway(db skim_db.DBTX) *ItemStoreGateway {
	g := &ItemStoreGateway{}
	if db != nil {
		g.repo = skim_db.NewSkimDBRepository(db)
	}
	return g
}

func (g *ItemStoreGateway) UpsertItem(ctx context.Context, item *domain.Item) (bool, error) {
	if g.repo == nil {
		return false, apperrors.DatabaseError("database connection not available", nil, nil)
	}
	return g.repo.UpsertItem(ctx, item)
}
