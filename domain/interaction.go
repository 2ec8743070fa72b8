package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItemKind distinguishes article items from video items in interaction rows.
type ItemKind string

const (
	ItemKindArticle ItemKind = "article"
	ItemKindVideo   ItemKind = "video"
)

func (k ItemKind) Valid() bool {
	return k == ItemKindArticle || k == ItemKindVideo
}

// InteractionField names one of the per-user flags on an item.
type InteractionField string

const (
	FieldIsRead      InteractionField = "is_read"
	FieldIsFavorite  InteractionField = "is_favorite"
	FieldIsReadLater InteractionField = "is_read_later"
)

func (f InteractionField) Valid() bool {
	switch f {
	case FieldIsRead, FieldIsFavorite, FieldIsReadLater:
		return true
	}
	return false
}

// InteractionState holds one user's read/favorite/read-later flags for one
// item. Rows are created lazily on first interaction, never pre-populated.
type InteractionState struct {
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	ItemID      uuid.UUID `json:"item_id" db:"item_id"`
	ItemKind    ItemKind  `json:"item_kind" db:"item_kind"`
	IsRead      bool      `json:"is_read" db:"is_read"`
	IsFavorite  bool      `json:"is_favorite" db:"is_favorite"`
	IsReadLater bool      `json:"is_read_later" db:"is_read_later"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
