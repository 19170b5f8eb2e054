package dateutil

import "time"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// DaysInMonth returns every calendar day of the given month in ascending
// order, in local time. Leap years and variable month lengths follow from
// calendar rollover.
func DaysInMonth(year int, month time.Month) []time.Time {
	days := make([]time.Time, 0, 31)

	date := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	for date.Month() == month {
		days = append(days, date)
		date = date.AddDate(0, 0, 1)
	}

	return days
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// FormatISO formats a date as "2006-01-02"
func FormatISO(date time.Time) string {
	return date.Format("2006-01-02")
}

// ParseISO parses a "2006-01-02" date string
func ParseISO(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// PreviousMonth returns the calendar month immediately preceding the one
// containing the given date (December of the prior year in January).
func PreviousMonth(now time.Time) (int, time.Month) {
	year, month := now.Year(), now.Month()
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}
