package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"skim/domain"
)

// UserIDHeader carries the stable user identifier resolved by the identity
// provider in front of this service. The pipeline never performs
// authentication itself.
const UserIDHeader = "X-Skim-User-Id"

const userEmailHeader = "X-Skim-User-Email"

type AuthMiddleware struct {
	logger *slog.Logger
}

func NewAuthMiddleware(logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{logger: logger}
}

// RequireAuth turns the trusted identity headers into a domain user context,
// rejecting requests that carry no usable user ID.
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawUserID := c.Request().Header.Get(UserIDHeader)
			if rawUserID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			userID, err := uuid.Parse(rawUserID)
			if err != nil || userID == uuid.Nil {
				if m.logger != nil {
					m.logger.Warn("rejected request with malformed user id", "user_id", rawUserID)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
			}

			user := &domain.UserContext{
				UserID: userID,
				Email:  c.Request().Header.Get(userEmailHeader),
			}

			ctx := domain.SetUserContext(c.Request().Context(), user)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
