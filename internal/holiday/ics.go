package holiday

import (
	"fmt"
	"regexp"
	"strings"

	ical "github.com/arran4/golang-ical"
)

var (
	// The date portion of a DTSTART value, both for date-only values
	// (20250101) and date-times (20250101T090000Z).
	feedDatePattern = regexp.MustCompile(`^(\d{8})`)

	// Optional feed convention: a "Company Holiday - " style label in front
	// of the actual holiday name.
	companyLabelPattern = regexp.MustCompile(`(?i)^Company Holiday\s*[-–—:]\s*`)
)

// ParseFeed parses a calendar feed body into company-holiday records. Each
// VEVENT contributes one record if it carries both a start date and a
// summary; events lacking either are silently skipped. An empty or
// event-less feed yields an empty result, not an error.
func ParseFeed(feedText string) ([]Holiday, error) {
	if strings.TrimSpace(feedText) == "" {
		return nil, nil
	}

	cal, err := ical.ParseCalendar(strings.NewReader(feedText))
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar feed: %w", err)
	}

	holidays := make([]Holiday, 0)
	for _, event := range cal.Events() {
		date, ok := eventDate(event)
		if !ok {
			continue
		}

		name, ok := eventSummary(event)
		if !ok {
			continue
		}

		holidays = append(holidays, Holiday{
			Date: date,
			Name: name,
			Kind: KindCompany,
		})
	}

	return holidays, nil
}

// eventDate reads the date portion of DTSTART and reformats it to YYYY-MM-DD
func eventDate(event *ical.VEvent) (string, bool) {
	prop := event.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil {
		return "", false
	}

	digits := feedDatePattern.FindString(prop.Value)
	if digits == "" {
		return "", false
	}

	return digits[0:4] + "-" + digits[4:6] + "-" + digits[6:8], true
}

// eventSummary reads SUMMARY, unescapes commas and strips the feed label
func eventSummary(event *ical.VEvent) (string, bool) {
	prop := event.GetProperty(ical.ComponentPropertySummary)
	if prop == nil {
		return "", false
	}

	name := strings.TrimSpace(prop.Value)
	if name == "" {
		return "", false
	}

	name = strings.ReplaceAll(name, `\,`, ",")
	name = companyLabelPattern.ReplaceAllString(name, "")

	return name, true
}
