package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"skim/utils/logger"
)

// LoggingMiddleware assigns each request an ID, stamps it and the caller's
// user ID into the request context for downstream log enrichment, and records
// method, path, status, and latency once the request settles.
func LoggingMiddleware(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			ctx := context.WithValue(c.Request().Context(), logger.RequestIDKey, requestID)
			if rawUserID := c.Request().Header.Get(UserIDHeader); rawUserID != "" {
				ctx = context.WithValue(ctx, logger.UserIDKey, rawUserID)
			}
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			if log != nil {
				logger.NewContextLogger(log).WithContext(ctx).Info("request handled",
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"status", c.Response().Status,
					"duration_ms", time.Since(start).Milliseconds(),
				)
			}

			return err
		}
	}
}
