package fetch_source_gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skim/domain"
	apperrors "skim/utils/errors"
	"skim/utils/rate_limiter"
)

func TestFetch_AbortedRateLimitWait(t *testing.T) {
	limiter := rate_limiter.NewHostRateLimiter(time.Minute)
	g := NewFetchSourceGateway(nil, limiter, nil)

	// Burn the host's burst token, then wait with a canceled context so the
	// limiter wait fails instead of blocking for the full interval.
	require.NoError(t, limiter.WaitForHost(context.Background(), "https://example.com/feed"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Fetch(ctx, "https://example.com/feed", domain.SourceKindRSS)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeRateLimit, appErr.Code)
}

func TestIsScrapeURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/feeds/videos.xml?channel_id=UC123", false},
		{"https://www.youtube.com/channel/UC123", true},
		{"https://www.youtube.com/@somechannel", true},
		{"https://www.youtube.com/@somechannel/videos", true},
		{"://bad-url", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, isScrapeURL(tt.url))
		})
	}
}
