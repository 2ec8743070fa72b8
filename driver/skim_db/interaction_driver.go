package skim_db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"skim/domain"
	"skim/utils/logger"
)

// UpsertInteraction sets one flag on the (user, item) interaction row,
// creating the row with defaults on first interaction. Idempotent: setting
// the same value twice changes nothing. The field name is interpolated into
// the SQL, so it is validated against the closed set of flag columns first.
func (r *SkimDBRepository) UpsertInteraction(ctx context.Context, userID, itemID uuid.UUID, itemKind domain.ItemKind, field domain.InteractionField, value bool) error {
	if !field.Valid() {
		return fmt.Errorf("invalid interaction field: %q", field)
	}
	if !itemKind.Valid() {
		return fmt.Errorf("invalid item kind: %q", itemKind)
	}

	query := fmt.Sprintf(`
		INSERT INTO interaction_states (user_id, item_id, item_kind, %[1]s, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, item_id) DO UPDATE
		SET %[1]s = EXCLUDED.%[1]s, updated_at = CURRENT_TIMESTAMP
	`, string(field))

	if _, err := r.db.Exec(ctx, query, userID, itemID, itemKind, value); err != nil {
		logger.SafeError("Error upserting interaction state",
			"error", err, "user_id", userID, "item_id", itemID, "field", field)
		return classifyStorageError(err)
	}

	logger.SafeInfo("interaction state updated",
		"user_id", userID, "item_id", itemID, "field", field, "value", value)

	return nil
}
