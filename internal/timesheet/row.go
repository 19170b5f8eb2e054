package timesheet

import (
	"fmt"
	"time"

	"github.com/username/timesheet/internal/holiday"
	"github.com/username/timesheet/internal/settings"
	"github.com/username/timesheet/pkg/clock"
	"github.com/username/timesheet/pkg/dateutil"
)

// Mode classifies a day row and governs which fields carry hours
type Mode int

const (
	ModeWorkday Mode = iota + 1
	ModePTO
	ModePublicHoliday
	ModeCompanyHoliday
	ModeWeekend
)

func (m Mode) String() string {
	switch m {
	case ModeWorkday:
		return "workday"
	case ModePTO:
		return "pto"
	case ModePublicHoliday:
		return "public_holiday"
	case ModeCompanyHoliday:
		return "company_holiday"
	case ModeWeekend:
		return "weekend"
	default:
		return "unknown"
	}
}

// Label returns the human-readable form used in rendered output
func (m Mode) Label() string {
	switch m {
	case ModeWorkday:
		return "Work day"
	case ModePTO:
		return "PTO"
	case ModePublicHoliday:
		return "Public holiday"
	case ModeCompanyHoliday:
		return "Company holiday"
	case ModeWeekend:
		return "Weekend"
	default:
		return "Unknown"
	}
}

// IsWork reports whether the mode carries editable clock times and hours
func (m Mode) IsWork() bool {
	return m == ModeWorkday
}

// ParseMode parses a mode name as accepted on the command line
func ParseMode(s string) (Mode, error) {
	switch s {
	case "workday", "work":
		return ModeWorkday, nil
	case "pto":
		return ModePTO, nil
	case "public_holiday", "public":
		return ModePublicHoliday, nil
	case "company_holiday", "company":
		return ModeCompanyHoliday, nil
	case "weekend":
		return ModeWeekend, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// Row is one editable record per calendar day in the active month
type Row struct {
	Date       time.Time
	Mode       Mode
	Start      string
	BreakStart string
	BreakEnd   string
	End        string
	Notes      string
}

// Hours returns the worked hours for this row; only workday rows carry hours
func (r Row) Hours() float64 {
	if !r.Mode.IsWork() {
		return 0
	}
	return clock.Hours(r.Start, r.BreakStart, r.BreakEnd, r.End)
}

// BreakHours returns the break duration for this row
func (r Row) BreakHours() float64 {
	if !r.Mode.IsWork() {
		return 0
	}
	return clock.BreakHours(r.BreakStart, r.BreakEnd)
}

// Overtime returns the hours beyond the expected daily hours for this row
func (r Row) Overtime(expectedHours float64) float64 {
	if !r.Mode.IsWork() {
		return 0
	}
	return clock.Overtime(r.Hours(), expectedHours)
}

// BuildRows builds the full editable row set for a month from the calendar,
// the resolved holiday map and the configured clock defaults. Weekends win
// over holidays; holiday rows seed their notes with the holiday name; only
// workday rows receive the default clock times.
func BuildRows(year int, month time.Month, cfg settings.Settings, holidays map[string]holiday.Holiday) []Row {
	days := dateutil.DaysInMonth(year, month)
	rows := make([]Row, 0, len(days))

	for _, date := range days {
		mode := ModeWorkday
		notes := ""

		if dateutil.IsWeekend(date) {
			mode = ModeWeekend
		} else if h, ok := holidays[dateutil.FormatISO(date)]; ok {
			if h.Kind == holiday.KindPublic {
				mode = ModePublicHoliday
			} else {
				mode = ModeCompanyHoliday
			}
			notes = h.Name
		}

		row := Row{
			Date:  date,
			Mode:  mode,
			Notes: notes,
		}
		if mode.IsWork() {
			row.Start = cfg.Start
			row.BreakStart = cfg.BreakStart
			row.BreakEnd = cfg.BreakEnd
			row.End = cfg.End
		}

		rows = append(rows, row)
	}

	return rows
}

// ChangeMode transitions a row to a new mode. Entering workday mode fills
// any empty clock field from the configured defaults but preserves fields
// the user already set; leaving workday mode clears all four clock fields.
func ChangeMode(row Row, mode Mode, cfg settings.Settings) Row {
	row.Mode = mode

	if mode.IsWork() {
		if row.Start == "" {
			row.Start = cfg.Start
		}
		if row.BreakStart == "" {
			row.BreakStart = cfg.BreakStart
		}
		if row.BreakEnd == "" {
			row.BreakEnd = cfg.BreakEnd
		}
		if row.End == "" {
			row.End = cfg.End
		}
		return row
	}

	row.Start = ""
	row.BreakStart = ""
	row.BreakEnd = ""
	row.End = ""
	return row
}

// Totals aggregates worked, break and overtime hours across a row set
type Totals struct {
	Worked   float64
	Break    float64
	Overtime float64
}

// Sum computes the aggregate totals; non-work rows contribute zero
func Sum(rows []Row, expectedHours float64) Totals {
	var totals Totals
	for _, row := range rows {
		totals.Worked += row.Hours()
		totals.Break += row.BreakHours()
		totals.Overtime += row.Overtime(expectedHours)
	}
	return totals
}
