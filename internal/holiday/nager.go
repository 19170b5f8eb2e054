package holiday

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL     = "https://date.nager.at/api/v3"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour
)

// countryNameOverrides replaces the source's display names with nicer ones
// for common codes. Matches the names users actually search for.
var countryNameOverrides = map[string]string{
	"DE": "Germany",
	"AT": "Austria",
	"CH": "Switzerland",
	"NL": "Netherlands",
	"BE": "Belgium",
	"JP": "Japan",
	"KR": "South Korea",
	"CN": "China",
	"BR": "Brazil",
	"MX": "Mexico",
	"ES": "Spain",
	"PT": "Portugal",
	"IT": "Italy",
	"FR": "France",
	"PL": "Poland",
	"CZ": "Czech Republic",
	"SE": "Sweden",
	"NO": "Norway",
	"DK": "Denmark",
	"FI": "Finland",
}

// Client fetches public holidays and available countries from a
// Nager.Date-compatible API, with a TTL cache on holiday lookups.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	cacheTTL   time.Duration
	cacheMu    sync.RWMutex
	cache      map[string]*cachedHolidays
}

type cachedHolidays struct {
	holidays  []PublicHoliday
	fetchedAt time.Time
}

// NewClient creates a public-holiday source client. Empty baseURL, zero
// timeout and zero cacheTTL select the defaults.
func NewClient(baseURL string, timeout, cacheTTL time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout == 0 {
		timeout = defaultHTTPTimeout
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:   logger,
		cacheTTL: cacheTTL,
		cache:    make(map[string]*cachedHolidays),
	}
}

// PublicHolidays fetches the public holidays for a year and country code
func (c *Client) PublicHolidays(year int, country string) ([]PublicHoliday, error) {
	cacheKey := fmt.Sprintf("%d/%s", year, country)

	c.cacheMu.RLock()
	if cached, ok := c.cache[cacheKey]; ok {
		if time.Since(cached.fetchedAt) < c.cacheTTL {
			c.cacheMu.RUnlock()
			c.logger.Debug("Using cached public holidays",
				zap.String("key", cacheKey))
			return cached.holidays, nil
		}
	}
	c.cacheMu.RUnlock()

	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", c.baseURL, year, country)

	c.logger.Debug("Fetching public holidays",
		zap.String("url", url),
		zap.Int("year", year),
		zap.String("country", country))

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch public holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday API returned status %d for %s", resp.StatusCode, country)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var holidays []PublicHoliday
	if err := json.Unmarshal(body, &holidays); err != nil {
		return nil, fmt.Errorf("failed to parse holiday response: %w", err)
	}

	c.cacheMu.Lock()
	c.cache[cacheKey] = &cachedHolidays{
		holidays:  holidays,
		fetchedAt: time.Now(),
	}
	c.cacheMu.Unlock()

	c.logger.Info("Public holidays fetched",
		zap.Int("year", year),
		zap.String("country", country),
		zap.Int("count", len(holidays)))

	return holidays, nil
}

// Countries fetches the available countries, applies the display-name
// overrides and sorts alphabetically by the resulting name.
func (c *Client) Countries() ([]Country, error) {
	url := c.baseURL + "/AvailableCountries"

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch countries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("country API returned status %d", resp.StatusCode)
	}

	var countries []Country
	if err := json.NewDecoder(resp.Body).Decode(&countries); err != nil {
		return nil, fmt.Errorf("failed to parse country response: %w", err)
	}

	for i := range countries {
		if name, ok := countryNameOverrides[countries[i].Code]; ok {
			countries[i].Name = name
		}
	}

	sort.Slice(countries, func(i, j int) bool {
		return countries[i].Name < countries[j].Name
	})

	c.logger.Info("Countries fetched", zap.Int("count", len(countries)))

	return countries, nil
}

// ClearCache drops all cached holiday lookups
func (c *Client) ClearCache() {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	c.cache = make(map[string]*cachedHolidays)
	c.logger.Info("Holiday cache cleared")
}
