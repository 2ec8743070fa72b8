package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skim/domain"
)

func runAuth(t *testing.T, headers map[string]string) (*httptest.ResponseRecorder, *domain.UserContext) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured *domain.UserContext
	handler := NewAuthMiddleware(nil).RequireAuth()(func(c echo.Context) error {
		user, err := domain.GetUserFromContext(c.Request().Context())
		if err == nil {
			captured = user
		}
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, captured
}

func TestRequireAuth_ValidUser(t *testing.T) {
	userID := uuid.New()
	rec, user := runAuth(t, map[string]string{
		UserIDHeader:        userID.String(),
		"X-Skim-User-Email": "alice@example.com",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, user)
	assert.Equal(t, userID, user.UserID)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	rec, user := runAuth(t, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, user)
}

func TestRequireAuth_MalformedUserID(t *testing.T) {
	rec, user := runAuth(t, map[string]string{UserIDHeader: "not-a-uuid"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, user)
}

func TestRequireAuth_NilUUIDRejected(t *testing.T) {
	rec, user := runAuth(t, map[string]string{UserIDHeader: uuid.Nil.String()})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, user)
}
