// Package robots_txt_driver checks robots.txt before the HTML-scrape path
// touches a channel page. Results are cached per host so a sync sweep does
// not refetch robots.txt for every feed on the same host.
package robots_txt_driver

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"

	"skim/utils/logger"
)

const cacheTTL = 1 * time.Hour

type cachedRobots struct {
	data      *robotstxt.RobotsData
	fetchedAt time.Time
}

type RobotsTxtDriver struct {
	client    *http.Client
	userAgent string

	mu    sync.Mutex
	cache map[string]cachedRobots
}

func NewRobotsTxtDriver(client *http.Client, userAgent string) *RobotsTxtDriver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RobotsTxtDriver{
		client:    client,
		userAgent: userAgent,
		cache:     make(map[string]cachedRobots),
	}
}

// Allowed reports whether the configured user agent may fetch rawURL.
// An unreachable robots.txt counts as permission, per convention.
func (d *RobotsTxtDriver) Allowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}

	data := d.robotsForHost(ctx, parsed.Scheme, parsed.Host)
	if data == nil {
		return true
	}

	return data.TestAgent(parsed.Path, d.userAgent)
}

func (d *RobotsTxtDriver) robotsForHost(ctx context.Context, scheme, host string) *robotstxt.RobotsData {
	d.mu.Lock()
	cached, ok := d.cache[host]
	d.mu.Unlock()
	if ok && time.Since(cached.fetchedAt) < cacheTTL {
		return cached.data
	}

	data := d.fetchRobots(ctx, scheme, host)

	d.mu.Lock()
	d.cache[host] = cachedRobots{data: data, fetchedAt: time.Now()}
	d.mu.Unlock()

	return data
}

func (d *RobotsTxtDriver) fetchRobots(ctx context.Context, scheme, host string) *robotstxt.RobotsData {
	robotsURL := scheme + "://" + host + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		logger.SafeWarn("robots.txt unreachable", "host", host, "error", err)
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		logger.SafeWarn("robots.txt unparseable", "host", host, "error", err)
		return nil
	}

	return data
}
