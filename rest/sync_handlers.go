package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"skim/di"
	"skim/domain"
	middleware_custom "skim/middleware"
	"skim/utils/logger"
)

func registerSyncRoutes(v1 *echo.Group, container *di.ApplicationComponents) {
	authMiddleware := middleware_custom.NewAuthMiddleware(logger.Logger)

	feeds := v1.Group("/feeds", authMiddleware.RequireAuth())
	// Manual sync of one feed always proceeds regardless of staleness.
	feeds.POST("/:id/sync", handleSyncFeed(container))

	sync := v1.Group("/sync", authMiddleware.RequireAuth())
	sync.POST("/due", handleSyncDueFeeds(container))

	admin := v1.Group("/admin", authMiddleware.RequireAuth())
	admin.POST("/sync", handleSyncAllFeeds(container))
}

func handleSyncFeed(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		feedID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return handleValidationError(c, "Invalid feed id", "id", c.Param("id"))
		}

		start := time.Now()
		result, err := container.SyncFeedUsecase.SyncFeed(c.Request().Context(), feedID)
		if err != nil {
			return handleError(c, err, "sync_feed")
		}
		logDuration(c, "sync_feed", start)

		return c.JSON(http.StatusOK, result)
	}
}

func handleSyncDueFeeds(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := domain.GetUserFromContext(c.Request().Context())
		if err != nil {
			return handleError(c, err, "sync_due_feeds")
		}

		start := time.Now()
		report, err := container.SyncFeedUsecase.SyncDueFeedsForUser(c.Request().Context(), user.UserID)
		if err != nil {
			return handleError(c, err, "sync_due_feeds")
		}
		logDuration(c, "sync_due_feeds", start)

		return c.JSON(http.StatusOK, report)
	}
}

func handleSyncAllFeeds(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := 0
		if rawLimit := c.QueryParam("limit"); rawLimit != "" {
			parsed, err := strconv.Atoi(rawLimit)
			if err != nil || parsed < 1 {
				return handleValidationError(c, "Invalid limit parameter", "limit", rawLimit)
			}
			limit = parsed
		}

		start := time.Now()
		report, err := container.SyncFeedUsecase.SyncAllActiveFeeds(c.Request().Context(), limit)
		if err != nil {
			return handleError(c, err, "sync_all_feeds")
		}
		logDuration(c, "sync_all_feeds", start)

		return c.JSON(http.StatusOK, report)
	}
}
