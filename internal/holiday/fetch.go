package holiday

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrInvalidFeed is returned when a fetched body is not a calendar document.
var ErrInvalidFeed = errors.New("invalid calendar feed format")

// Calendar feeds are often served without permissive CORS headers, so the
// original deployment fetched them through public relays. The CLI keeps the
// same ordered fallback: direct first, relays only when direct access fails.
// DefaultRelayRoutes is the single source of truth for the route list; the
// app config defaults point here.
var DefaultRelayRoutes = []string{
	"https://corsproxy.io/?{url}",
	"https://api.allorigins.win/raw?url={url}",
}

// FeedFetcher fetches and parses a calendar feed, trying the direct address
// first and then each relay route in order. The first success wins; if every
// route fails, the last failure is returned.
type FeedFetcher struct {
	httpClient *http.Client
	relays     []string
	logger     *zap.Logger
}

// NewFeedFetcher creates a feed fetcher. A nil relays slice selects the
// default relay routes; zero timeout selects the default. Each relay route
// is a URL template with a "{url}" placeholder for the escaped feed address.
func NewFeedFetcher(relays []string, timeout time.Duration, logger *zap.Logger) *FeedFetcher {
	if relays == nil {
		relays = DefaultRelayRoutes
	}
	if timeout == 0 {
		timeout = defaultHTTPTimeout
	}

	return &FeedFetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		relays: relays,
		logger: logger,
	}
}

// Fetch retrieves the feed at feedURL and parses it into company holidays
func (f *FeedFetcher) Fetch(feedURL string) ([]Holiday, error) {
	routes := append([]string{""}, f.relays...)

	var lastErr error
	for _, route := range routes {
		target := feedURL
		if route != "" {
			target = strings.ReplaceAll(route, "{url}", url.QueryEscape(feedURL))
		}

		holidays, err := f.fetchOnce(target)
		if err != nil {
			lastErr = err
			f.logger.Warn("Feed route failed",
				zap.String("target", target),
				zap.Error(err))
			continue
		}

		f.logger.Info("Calendar feed fetched",
			zap.String("url", feedURL),
			zap.Int("count", len(holidays)))
		return holidays, nil
	}

	return nil, lastErr
}

func (f *FeedFetcher) fetchOnce(target string) ([]Holiday, error) {
	resp, err := f.httpClient.Get(target)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	if !strings.Contains(string(body), "BEGIN:VCALENDAR") {
		return nil, ErrInvalidFeed
	}

	return ParseFeed(string(body))
}
