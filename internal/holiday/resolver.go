package holiday

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// PublicSource provides public holidays for a year and country
type PublicSource interface {
	PublicHolidays(year int, country string) ([]PublicHoliday, error)
}

// FeedSource provides company holidays from a calendar feed address
type FeedSource interface {
	Fetch(feedURL string) ([]Holiday, error)
}

// Request selects what to resolve. Region and FeedURL may be empty.
type Request struct {
	Year    int
	Country string
	Region  string
	FeedURL string
}

// Resolution is the outcome of one resolve pass: the date-keyed holiday map,
// the region codes available for the selected country/year, and a non-fatal
// warning when the feed could not be fetched or had nothing for the year.
type Resolution struct {
	Holidays map[string]Holiday
	Regions  []string
	Warning  string
}

// Resolver combines the public-holiday source and the optional calendar
// feed into a single per-date holiday map.
type Resolver struct {
	public PublicSource
	feed   FeedSource
	logger *zap.Logger
}

// NewResolver creates a holiday resolver
func NewResolver(public PublicSource, feed FeedSource, logger *zap.Logger) *Resolver {
	return &Resolver{
		public: public,
		feed:   feed,
		logger: logger,
	}
}

// Resolve runs one full resolution pass. A public-holiday fetch failure is
// logged and treated as an empty set; feed problems surface as the warning.
// The result always carries a usable (possibly empty) map.
func (r *Resolver) Resolve(req Request) Resolution {
	var public []PublicHoliday
	var regions []string

	fetched, err := r.public.PublicHolidays(req.Year, req.Country)
	if err != nil {
		r.logger.Warn("Failed to fetch public holidays, continuing without them",
			zap.Int("year", req.Year),
			zap.String("country", req.Country),
			zap.Error(err))
	} else {
		public = fetched
		regions = RegionsFrom(fetched)
	}

	var company []Holiday
	var warning string

	if req.FeedURL != "" {
		companyHolidays, err := r.feed.Fetch(req.FeedURL)
		if err != nil {
			warning = err.Error()
		} else {
			company = companyHolidays
			warning = ValidateYear(companyHolidays, req.Year)
		}
	}

	filtered := FilterByRegion(public, req.Region)
	merged := Merge(filtered, company)

	r.logger.Info("Holidays resolved",
		zap.Int("year", req.Year),
		zap.String("country", req.Country),
		zap.String("region", req.Region),
		zap.Int("public", len(filtered)),
		zap.Int("company", len(company)),
		zap.Int("merged", len(merged)))

	return Resolution{
		Holidays: merged,
		Regions:  regions,
		Warning:  warning,
	}
}

// RegionsFrom returns the deduplicated, sorted union of region codes
// appearing across the holidays' scope lists. Holidays without a scope list
// contribute nothing.
func RegionsFrom(holidays []PublicHoliday) []string {
	seen := make(map[string]struct{})
	for _, h := range holidays {
		for _, region := range h.Counties {
			seen[region] = struct{}{}
		}
	}

	regions := make([]string, 0, len(seen))
	for region := range seen {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	return regions
}

// FilterByRegion keeps a holiday if it is global, has no scope list, or is
// scoped to the selected region. With no region selected, only global and
// unscoped holidays pass.
func FilterByRegion(holidays []PublicHoliday, region string) []PublicHoliday {
	filtered := make([]PublicHoliday, 0, len(holidays))

	for _, h := range holidays {
		if h.Global || h.Counties == nil {
			filtered = append(filtered, h)
			continue
		}
		if region == "" {
			continue
		}
		for _, scoped := range h.Counties {
			if scoped == region {
				filtered = append(filtered, h)
				break
			}
		}
	}

	return filtered
}

// Merge builds the date-keyed holiday map. Public holidays insert first,
// preferring the local name; a company holiday on an already-taken date
// merges into the existing record with a combined name, keeping the
// pre-existing kind.
func Merge(public []PublicHoliday, company []Holiday) map[string]Holiday {
	merged := make(map[string]Holiday, len(public)+len(company))

	for _, h := range public {
		name := h.LocalName
		if name == "" {
			name = h.Name
		}
		merged[h.Date] = Holiday{
			Date: h.Date,
			Name: name,
			Kind: KindPublic,
		}
	}

	for _, h := range company {
		if existing, ok := merged[h.Date]; ok {
			existing.Name = fmt.Sprintf("Company: %s; Public: %s", h.Name, existing.Name)
			merged[h.Date] = existing
			continue
		}
		merged[h.Date] = h
	}

	return merged
}

// ValidateYear returns a warning when none of the parsed company holidays
// fall within the target year, empty otherwise. The data is still merged
// either way.
func ValidateYear(holidays []Holiday, year int) string {
	prefix := fmt.Sprintf("%d", year)
	for _, h := range holidays {
		if strings.HasPrefix(h.Date, prefix) {
			return ""
		}
	}
	return fmt.Sprintf("No company holidays found for %d", year)
}
