package dateutil

import (
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		wantDays int
	}{
		{"January", 2025, time.January, 31},
		{"February non-leap", 2025, time.February, 28},
		{"February leap", 2024, time.February, 29},
		{"February century non-leap", 1900, time.February, 28},
		{"February 400-year leap", 2000, time.February, 29},
		{"April", 2025, time.April, 30},
		{"December", 2025, time.December, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := DaysInMonth(tt.year, tt.month)

			if len(days) != tt.wantDays {
				t.Fatalf("DaysInMonth(%d, %v) returned %d days, want %d",
					tt.year, tt.month, len(days), tt.wantDays)
			}

			for i, day := range days {
				if day.Year() != tt.year || day.Month() != tt.month {
					t.Errorf("day %d = %v, outside %v %d", i, day, tt.month, tt.year)
				}
				if day.Day() != i+1 {
					t.Errorf("day at index %d = %d, want %d (ascending order)", i, day.Day(), i+1)
				}
			}
		})
	}
}

func TestIsWeekend(t *testing.T) {
	// 2025-01-13 is a Monday
	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local)

	for offset := 0; offset < 7; offset++ {
		date := monday.AddDate(0, 0, offset)
		want := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday

		if got := IsWeekend(date); got != want {
			t.Errorf("IsWeekend(%v %v) = %v, want %v", date.Format("2006-01-02"), date.Weekday(), got, want)
		}
	}
}

func TestFormatISO(t *testing.T) {
	date := time.Date(2025, 3, 7, 15, 30, 0, 0, time.Local)

	if got := FormatISO(date); got != "2025-03-07" {
		t.Errorf("FormatISO(%v) = %q, want %q", date, got, "2025-03-07")
	}
}

func TestParseISO(t *testing.T) {
	date, err := ParseISO("2025-03-07")
	if err != nil {
		t.Fatalf("ParseISO() error = %v", err)
	}
	if date.Year() != 2025 || date.Month() != time.March || date.Day() != 7 {
		t.Errorf("ParseISO() = %v, want 2025-03-07", date)
	}

	if _, err := ParseISO("07.03.2025"); err == nil {
		t.Error("ParseISO() expected error for non-ISO input, got nil")
	}
}

func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantYear  int
		wantMonth time.Month
	}{
		{
			name:      "Mid year",
			now:       time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local),
			wantYear:  2025,
			wantMonth: time.May,
		},
		{
			name:      "January rolls to December of prior year",
			now:       time.Date(2025, 1, 3, 0, 0, 0, 0, time.Local),
			wantYear:  2024,
			wantMonth: time.December,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, month := PreviousMonth(tt.now)

			if year != tt.wantYear || month != tt.wantMonth {
				t.Errorf("PreviousMonth(%v) = %d %v, want %d %v",
					tt.now.Format("2006-01-02"), year, month, tt.wantYear, tt.wantMonth)
			}
		})
	}
}

func TestIsSameDay(t *testing.T) {
	morning := time.Date(2025, 1, 15, 8, 0, 0, 0, time.Local)
	evening := time.Date(2025, 1, 15, 22, 30, 0, 0, time.Local)
	nextDay := time.Date(2025, 1, 16, 0, 0, 0, 0, time.Local)

	if !IsSameDay(morning, evening) {
		t.Error("IsSameDay() = false for same calendar day")
	}
	if IsSameDay(morning, nextDay) {
		t.Error("IsSameDay() = true across days")
	}
}
