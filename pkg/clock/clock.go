package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidClock is returned when a clock string is not a valid "HH:MM" value.
var ErrInvalidClock = errors.New("invalid clock time")

// Parse converts a "HH:MM" clock string to minutes since midnight
func Parse(s string) (int, error) {
	hourStr, minuteStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	minute, err := strconv.Atoi(minuteStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	return hour*60 + minute, nil
}

// Format converts minutes since midnight back to a zero-padded "HH:MM" string
func Format(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Format12Hour converts a "HH:MM" clock string to 12-hour display form
// with AM/PM suffix. Hour 0 displays as 12. Empty input yields empty output.
func Format12Hour(s string) string {
	if s == "" {
		return ""
	}

	minutes, err := Parse(s)
	if err != nil {
		return ""
	}

	hour := minutes / 60
	minute := minutes % 60

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}

	hour = hour % 12
	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour, minute, suffix)
}

// Hours returns the worked hours for a day given start/end and an optional
// break window. A day with no start or end logged has zero hours. Unparsable
// start or end values also yield zero; an unparsable break pair is ignored.
// The result is never negative.
func Hours(start, breakStart, breakEnd, end string) float64 {
	if start == "" || end == "" {
		return 0
	}

	startMinutes, err := Parse(start)
	if err != nil {
		return 0
	}
	endMinutes, err := Parse(end)
	if err != nil {
		return 0
	}

	breakMinutes := 0
	if breakStart != "" && breakEnd != "" {
		bs, bsErr := Parse(breakStart)
		be, beErr := Parse(breakEnd)
		if bsErr == nil && beErr == nil {
			breakMinutes = be - bs
		}
	}

	total := endMinutes - startMinutes - breakMinutes
	if total < 0 {
		return 0
	}
	return float64(total) / 60
}

// BreakHours returns the break duration in hours, zero if either bound is
// missing or unparsable, never negative.
func BreakHours(breakStart, breakEnd string) float64 {
	if breakStart == "" || breakEnd == "" {
		return 0
	}

	bs, err := Parse(breakStart)
	if err != nil {
		return 0
	}
	be, err := Parse(breakEnd)
	if err != nil {
		return 0
	}

	minutes := be - bs
	if minutes < 0 {
		return 0
	}
	return float64(minutes) / 60
}

// Overtime returns the hours worked beyond the expected daily hours, never negative.
func Overtime(worked, expected float64) float64 {
	if worked <= expected {
		return 0
	}
	return worked - expected
}
