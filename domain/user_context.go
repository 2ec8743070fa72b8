package domain

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// UserContext represents the authenticated user context for requests. The
// identity provider in front of this service resolves the session; by the
// time a request reaches the pipeline only the stable user ID matters.
type UserContext struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email,omitempty"`
}

// IsValid checks that the context carries a usable user ID.
func (uc *UserContext) IsValid() bool {
	return uc.UserID != uuid.Nil
}

// コンテキストキー
type contextKey string

const UserContextKey contextKey = "user_context"

// GetUserFromContext extracts the authenticated user from the request context.
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(UserContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, fmt.Errorf("user context not found")
	}

	if !user.IsValid() {
		return nil, ErrInvalidUserContext
	}

	return user, nil
}

func SetUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}
