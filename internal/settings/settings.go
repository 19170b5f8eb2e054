package settings

import (
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/username/timesheet/pkg/dateutil"
)

const fallbackCountry = "US"

// Default clock boundaries for a workday
const (
	DefaultStart      = "09:00"
	DefaultBreakStart = "12:00"
	DefaultBreakEnd   = "13:00"
	DefaultEnd        = "18:00"

	DefaultWorkdayHours = 8
)

// Settings is the full set of user preferences driving row generation and
// holiday resolution. Month and Year are ephemeral: they are never written to
// the shareable state and re-derive to the previous calendar month on every
// fresh resolve.
type Settings struct {
	Name         string     `json:"name"`
	Company      string     `json:"company"`
	Month        time.Month `json:"month"`
	Year         int        `json:"year"`
	Country      string     `json:"country"`
	Region       string     `json:"region"`
	Start        string     `json:"start"`
	BreakStart   string     `json:"breakStart"`
	BreakEnd     string     `json:"breakEnd"`
	End          string     `json:"end"`
	WorkdayHours float64    `json:"workdayHours"`
	ICSURL       string     `json:"icsUrl"`
	EmailTo      string     `json:"emailTo"`
}

// Partial is a sparse Settings overlay. A nil field falls through to the
// lower-priority source; a present field fully replaces it.
type Partial struct {
	Name         *string     `json:"name,omitempty"`
	Company      *string     `json:"company,omitempty"`
	Month        *time.Month `json:"month,omitempty"`
	Year         *int        `json:"year,omitempty"`
	Country      *string     `json:"country,omitempty"`
	Region       *string     `json:"region,omitempty"`
	Start        *string     `json:"start,omitempty"`
	BreakStart   *string     `json:"breakStart,omitempty"`
	BreakEnd     *string     `json:"breakEnd,omitempty"`
	End          *string     `json:"end,omitempty"`
	WorkdayHours *float64    `json:"workdayHours,omitempty"`
	ICSURL       *string     `json:"icsUrl,omitempty"`
	EmailTo      *string     `json:"emailTo,omitempty"`
}

// Apply overlays the present fields of p onto s and returns the result.
func (p Partial) Apply(s Settings) Settings {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Company != nil {
		s.Company = *p.Company
	}
	if p.Month != nil {
		s.Month = *p.Month
	}
	if p.Year != nil {
		s.Year = *p.Year
	}
	if p.Country != nil {
		s.Country = *p.Country
	}
	if p.Region != nil {
		s.Region = *p.Region
	}
	if p.Start != nil {
		s.Start = *p.Start
	}
	if p.BreakStart != nil {
		s.BreakStart = *p.BreakStart
	}
	if p.BreakEnd != nil {
		s.BreakEnd = *p.BreakEnd
	}
	if p.End != nil {
		s.End = *p.End
	}
	if p.WorkdayHours != nil {
		s.WorkdayHours = *p.WorkdayHours
	}
	if p.ICSURL != nil {
		s.ICSURL = *p.ICSURL
	}
	if p.EmailTo != nil {
		s.EmailTo = *p.EmailTo
	}
	return s
}

// IsZero reports whether the overlay carries no fields at all.
func (p Partial) IsZero() bool {
	return p == Partial{}
}

// Defaults computes the default settings for the given wall-clock time and
// host locale tag: the previous calendar month, the locale's country,
// standard office clock boundaries and an 8-hour workday.
func Defaults(now time.Time, locale string) Settings {
	year, month := dateutil.PreviousMonth(now)

	return Settings{
		Month:        month,
		Year:         year,
		Country:      countryFromLocale(locale),
		Start:        DefaultStart,
		BreakStart:   DefaultBreakStart,
		BreakEnd:     DefaultBreakEnd,
		End:          DefaultEnd,
		WorkdayHours: DefaultWorkdayHours,
	}
}

// Resolve merges the overlays onto the defaults field-by-field; later
// overlays win. The result is an immutable snapshot: persistence happens
// only through explicit Store/ShareLink calls taking that snapshot.
func Resolve(defaults Settings, overlays ...Partial) Settings {
	resolved := defaults
	for _, overlay := range overlays {
		resolved = overlay.Apply(resolved)
	}
	return resolved
}

// HostLocale returns the host locale tag from the environment.
func HostLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// countryFromLocale extracts the uppercased country code from a locale tag
// like "en-US" or "de_DE.UTF-8". Tags without an explicit region fall back
// to the fixed default.
func countryFromLocale(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")

	tag, err := language.Parse(locale)
	if err != nil {
		return fallbackCountry
	}

	region, conf := tag.Region()
	if conf != language.Exact || !region.IsCountry() {
		return fallbackCountry
	}

	return strings.ToUpper(region.String())
}
