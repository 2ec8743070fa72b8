package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skim/config"
	"skim/di"
	"skim/domain"
	middleware_custom "skim/middleware"
	"skim/usecase/interaction_usecase"
	"skim/usecase/sync_feed_usecase"
)

// slowFeedStore delays feed selection past the request timeout so tests can
// tell whether a sync endpoint outlives it.
type slowFeedStore struct {
	delay time.Duration
}

func (s *slowFeedStore) GetFeed(context.Context, uuid.UUID) (*domain.Feed, error) {
	return nil, domain.ErrFeedNotFound
}

func (s *slowFeedStore) ListDueFeeds(ctx context.Context, _ *uuid.UUID, _ time.Duration, _ int) ([]*domain.Feed, error) {
	select {
	case <-ctx.Done():
	case <-time.After(s.delay):
	}
	return nil, nil
}

func (s *slowFeedStore) ListActiveFeeds(context.Context, int) ([]*domain.Feed, error) {
	return nil, nil
}

func (s *slowFeedStore) TouchFeedFetchTimestamp(context.Context, uuid.UUID) error { return nil }
func (s *slowFeedStore) MarkFeedUpdated(context.Context, uuid.UUID) error         { return nil }
func (s *slowFeedStore) UpdateFeedMetadata(context.Context, uuid.UUID, string, string, string) error {
	return nil
}

type noopItemStore struct{}

func (noopItemStore) UpsertItem(context.Context, *domain.Item) (bool, error) { return false, nil }

type noopFetcher struct{}

func (noopFetcher) Fetch(context.Context, string, domain.SourceKind) (*domain.RawContent, error) {
	return &domain.RawContent{}, nil
}

type slowInteractionPort struct {
	delay time.Duration
}

func (s *slowInteractionPort) UpsertInteraction(context.Context, uuid.UUID, uuid.UUID, domain.ItemKind, domain.InteractionField, bool) error {
	time.Sleep(s.delay)
	return nil
}

func newTimeoutTestServer(handlerDelay time.Duration) *echo.Echo {
	syncCfg := config.SyncConfig{
		RefreshInterval: 30 * time.Minute,
		BatchSize:       3,
		BatchPause:      time.Millisecond,
		MaxItems:        50,
		DescriptionMax:  500,
		AdminFeedCap:    100,
		RunTimeout:      5 * time.Second,
	}
	cfg := &config.Config{
		Server: config.ServerConfig{WriteTimeout: 50 * time.Millisecond},
		Sync:   syncCfg,
	}

	container := &di.ApplicationComponents{
		SyncFeedUsecase: sync_feed_usecase.NewSyncFeedUsecase(
			&slowFeedStore{delay: handlerDelay}, noopItemStore{}, noopFetcher{}, syncCfg),
		InteractionUsecase: interaction_usecase.NewInteractionUsecase(
			&slowInteractionPort{delay: handlerDelay}),
	}

	e := echo.New()
	RegisterRoutes(e, container, cfg)
	return e
}

func TestSyncRouteOutlivesRequestTimeout(t *testing.T) {
	e := newTimeoutTestServer(150 * time.Millisecond)

	req := httptest.NewRequest(http.MethodPost, "/v1/sync/due", nil)
	req.Header.Set(middleware_custom.UserIDHeader, uuid.NewString())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// The run took three times the request timeout; its report must still
	// arrive instead of a timeout response.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"succeeded"`)
}

func TestNonSyncRouteHonorsRequestTimeout(t *testing.T) {
	e := newTimeoutTestServer(150 * time.Millisecond)

	body := strings.NewReader(`{"item_kind":"article","field":"is_read","value":true}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/items/"+uuid.NewString()+"/interaction", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(middleware_custom.UserIDHeader, uuid.NewString())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestIsSyncRoute(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/v1/sync/due", true},
		{"/v1/admin/sync", true},
		{"/v1/feeds/" + uuid.NewString() + "/sync", true},
		{"/v1/health", false},
		{"/v1/items/" + uuid.NewString() + "/interaction", false},
		{"/v1/feeds/" + uuid.NewString(), false},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			c := e.NewContext(req, httptest.NewRecorder())
			assert.Equal(t, tt.want, isSyncRoute(c))
		})
	}
}
