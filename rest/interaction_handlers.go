package rest

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"skim/di"
	"skim/domain"
	middleware_custom "skim/middleware"
	"skim/utils/logger"
)

type interactionRequest struct {
	ItemKind string `json:"item_kind"`
	Field    string `json:"field"`
	Value    bool   `json:"value"`
}

func registerInteractionRoutes(v1 *echo.Group, container *di.ApplicationComponents) {
	authMiddleware := middleware_custom.NewAuthMiddleware(logger.Logger)

	items := v1.Group("/items", authMiddleware.RequireAuth())
	items.POST("/:id/interaction", handleSetInteraction(container))
}

func handleSetInteraction(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		itemID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return handleValidationError(c, "Invalid item id", "id", c.Param("id"))
		}

		var req interactionRequest
		if err := c.Bind(&req); err != nil {
			return handleValidationError(c, "Invalid request body", "body", err.Error())
		}

		err = container.InteractionUsecase.SetInteraction(
			c.Request().Context(),
			itemID,
			domain.ItemKind(req.ItemKind),
			domain.InteractionField(req.Field),
			req.Value,
		)
		if err != nil {
			return handleError(c, err, "set_interaction")
		}

		return c.NoContent(http.StatusNoContent)
	}
}
