package rest

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"skim/config"
	"skim/di"
	middleware_custom "skim/middleware"
	"skim/utils/logger"
)

func RegisterRoutes(e *echo.Echo, container *di.ApplicationComponents, cfg *config.Config) {
	e.Use(middleware.Recover())
	e.Use(middleware_custom.LoggingMiddleware(logger.Logger))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Skipper: isSyncRoute,
		Timeout: cfg.Server.WriteTimeout,
	}))

	v1 := e.Group("/v1")

	v1.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	registerSyncRoutes(v1, container)
	registerInteractionRoutes(v1, container)
}

// isSyncRoute exempts the sync endpoints from the request timeout. A sync run
// is bounded by its own run timeout, which is far longer than the request
// timeout, and its aggregate report must reach the caller even when the run
// only partially succeeded.
func isSyncRoute(c echo.Context) bool {
	path := c.Request().URL.Path
	if strings.HasPrefix(path, "/v1/sync") || strings.HasPrefix(path, "/v1/admin/sync") {
		return true
	}
	return strings.HasPrefix(path, "/v1/feeds/") && strings.HasSuffix(path, "/sync")
}
