package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"skim/domain"
	apperrors "skim/utils/errors"
	"skim/utils/logger"
)

// handleError maps pipeline and storage errors onto HTTP responses. A sync
// run that partially failed is not an error at this layer; only errors that
// prevented producing a report end up here.
func handleError(c echo.Context, err error, operation string) error {
	apperrors.LogError(logger.Logger, err, operation)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.HTTPStatusCode(), appErr.ToHTTPResponse())
	}

	switch {
	case errors.Is(err, domain.ErrFeedNotFound), errors.Is(err, domain.ErrItemNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidUserContext):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	var fetchErr *domain.FetchError
	if errors.As(err, &fetchErr) {
		if fetchErr.Kind == domain.FetchTimeout {
			return echo.NewHTTPError(http.StatusGatewayTimeout, fetchErr.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, fetchErr.Error())
	}

	var parseErr *domain.ParseError
	if errors.As(err, &parseErr) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, parseErr.Error())
	}

	var storageErr *domain.StorageError
	if errors.As(err, &storageErr) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "storage unavailable")
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

// logDuration records how long a handler's pipeline run took, enriched with
// the request and user IDs the logging middleware stamped into the context.
func logDuration(c echo.Context, operation string, start time.Time) {
	if logger.Logger == nil {
		return
	}
	logger.NewContextLogger(logger.Logger).
		LogDuration(c.Request().Context(), operation, time.Since(start))
}

func handleValidationError(c echo.Context, message, field, value string) error {
	appErr := apperrors.ValidationError(message,
		map[string]interface{}{field: value})
	return c.JSON(appErr.HTTPStatusCode(), appErr.ToHTTPResponse())
}
