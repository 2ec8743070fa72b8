package fetch_source_gateway

import (
	"context"
	"net/url"
	"strings"

	"skim/domain"
	"skim/driver/feed_fetch_driver"
	"skim/driver/robots_txt_driver"
	apperrors "skim/utils/errors"
	"skim/utils/logger"
	"skim/utils/rate_limiter"
)

// FetchSourceGateway wraps the raw fetch driver with per-host rate limiting
// and, for the channel-page scrape path, a robots.txt check.
type FetchSourceGateway struct {
	driver      *feed_fetch_driver.FeedFetchDriver
	rateLimiter *rate_limiter.HostRateLimiter
	robots      *robots_txt_driver.RobotsTxtDriver
}

func NewFetchSourceGateway(driver *feed_fetch_driver.FeedFetchDriver, rateLimiter *rate_limiter.HostRateLimiter, robots *robots_txt_driver.RobotsTxtDriver) *FetchSourceGateway {
	return &FetchSourceGateway{
		driver:      driver,
		rateLimiter: rateLimiter,
		robots:      robots,
	}
}

func (g *FetchSourceGateway) Fetch(ctx context.Context, rawURL string, kind domain.SourceKind) (*domain.RawContent, error) {
	if g.rateLimiter != nil {
		if err := g.rateLimiter.WaitForHost(ctx, rawURL); err != nil {
			logger.SafeError("rate limiting failed for feed fetch", "url", rawURL, "error", err)
			return nil, apperrors.RateLimitError("fetch rate limiting aborted", err,
				map[string]interface{}{"url": rawURL})
		}
	}

	if g.robots != nil && kind == domain.SourceKindYouTube && isScrapeURL(rawURL) {
		if !g.robots.Allowed(ctx, rawURL) {
			logger.SafeWarn("channel page scrape blocked by robots.txt", "url", rawURL)
			return nil, domain.ErrScrapeDisallowed
		}
	}

	return g.driver.Fetch(ctx, rawURL, kind)
}

// isScrapeURL reports whether the URL is a channel HTML page rather than the
// public video-feed XML endpoint. Only the scrape path is robots-gated.
func isScrapeURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	return !strings.HasPrefix(parsed.Path, "/feeds/")
}
