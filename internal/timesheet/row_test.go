package timesheet

import (
	"testing"
	"time"

	"github.com/username/timesheet/internal/holiday"
	"github.com/username/timesheet/internal/settings"
)

func testSettings() settings.Settings {
	return settings.Defaults(time.Date(2025, 2, 10, 0, 0, 0, 0, time.Local), "en-US")
}

func TestBuildRows(t *testing.T) {
	cfg := testSettings() // January 2025
	holidays := map[string]holiday.Holiday{
		"2025-01-01": {Date: "2025-01-01", Name: "New Year's Day", Kind: holiday.KindPublic},
		"2025-01-06": {Date: "2025-01-06", Name: "Office Closed", Kind: holiday.KindCompany},
		"2025-01-04": {Date: "2025-01-04", Name: "On A Saturday", Kind: holiday.KindPublic},
	}

	rows := BuildRows(2025, time.January, cfg, holidays)

	if len(rows) != 31 {
		t.Fatalf("BuildRows() returned %d rows, want 31", len(rows))
	}

	// Jan 1 2025 is a Wednesday with a public holiday.
	if rows[0].Mode != ModePublicHoliday {
		t.Errorf("Jan 1 mode = %v, want public_holiday", rows[0].Mode)
	}
	if rows[0].Notes != "New Year's Day" {
		t.Errorf("Jan 1 notes = %q, want holiday name seeded", rows[0].Notes)
	}
	if rows[0].Start != "" || rows[0].End != "" {
		t.Errorf("Jan 1 clock fields = %q..%q, want empty on a holiday", rows[0].Start, rows[0].End)
	}

	// Jan 2 is a plain Thursday workday.
	if rows[1].Mode != ModeWorkday {
		t.Errorf("Jan 2 mode = %v, want workday", rows[1].Mode)
	}
	if rows[1].Start != "09:00" || rows[1].BreakStart != "12:00" || rows[1].BreakEnd != "13:00" || rows[1].End != "18:00" {
		t.Errorf("Jan 2 clock fields = %q %q %q %q, want configured defaults",
			rows[1].Start, rows[1].BreakStart, rows[1].BreakEnd, rows[1].End)
	}

	// Jan 4 is a Saturday; the weekend classification wins over the holiday.
	if rows[3].Mode != ModeWeekend {
		t.Errorf("Jan 4 mode = %v, want weekend", rows[3].Mode)
	}
	if rows[3].Notes != "" {
		t.Errorf("Jan 4 notes = %q, want empty on a weekend", rows[3].Notes)
	}

	// Jan 6 is a Monday with a company holiday.
	if rows[5].Mode != ModeCompanyHoliday {
		t.Errorf("Jan 6 mode = %v, want company_holiday", rows[5].Mode)
	}
	if rows[5].Notes != "Office Closed" {
		t.Errorf("Jan 6 notes = %q", rows[5].Notes)
	}
}

func TestChangeModeToWorkdayFillsEmptyFields(t *testing.T) {
	cfg := testSettings()

	row := Row{
		Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.Local),
		Mode: ModePTO,
		// The user already set a start before switching away and back.
		Start: "08:00",
	}

	got := ChangeMode(row, ModeWorkday, cfg)

	if got.Start != "08:00" {
		t.Errorf("Start = %q, user-set field must be preserved", got.Start)
	}
	if got.BreakStart != "12:00" || got.BreakEnd != "13:00" || got.End != "18:00" {
		t.Errorf("empty fields not filled from defaults: %q %q %q",
			got.BreakStart, got.BreakEnd, got.End)
	}
}

func TestChangeModeAwayFromWorkdayClearsFields(t *testing.T) {
	cfg := testSettings()

	row := Row{
		Date:       time.Date(2025, 1, 2, 0, 0, 0, 0, time.Local),
		Mode:       ModeWorkday,
		Start:      "08:00",
		BreakStart: "12:00",
		BreakEnd:   "12:30",
		End:        "16:30",
		Notes:      "half day",
	}

	got := ChangeMode(row, ModePTO, cfg)

	if got.Start != "" || got.BreakStart != "" || got.BreakEnd != "" || got.End != "" {
		t.Errorf("clock fields survived mode change: %q %q %q %q",
			got.Start, got.BreakStart, got.BreakEnd, got.End)
	}
	if got.Notes != "half day" {
		t.Errorf("Notes = %q, want preserved", got.Notes)
	}
	if got.Mode != ModePTO {
		t.Errorf("Mode = %v, want pto", got.Mode)
	}
}

func TestRowHoursByMode(t *testing.T) {
	clocked := Row{Start: "09:00", BreakStart: "12:00", BreakEnd: "13:00", End: "18:00"}

	tests := []struct {
		mode Mode
		want float64
	}{
		{ModeWorkday, 8},
		{ModePTO, 0},
		{ModePublicHoliday, 0},
		{ModeCompanyHoliday, 0},
		{ModeWeekend, 0},
	}

	for _, tt := range tests {
		row := clocked
		row.Mode = tt.mode
		if got := row.Hours(); got != tt.want {
			t.Errorf("Hours() in %v mode = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestSum(t *testing.T) {
	rows := []Row{
		{Mode: ModeWorkday, Start: "09:00", BreakStart: "12:00", BreakEnd: "13:00", End: "18:00"}, // 8h worked, 1h break
		{Mode: ModeWorkday, Start: "09:00", End: "18:30"},                                        // 9.5h worked, 1.5h OT
		{Mode: ModePTO},
		{Mode: ModeWeekend},
	}

	totals := Sum(rows, 8)

	if totals.Worked != 17.5 {
		t.Errorf("Worked = %v, want 17.5", totals.Worked)
	}
	if totals.Break != 1 {
		t.Errorf("Break = %v, want 1", totals.Break)
	}
	if totals.Overtime != 1.5 {
		t.Errorf("Overtime = %v, want 1.5", totals.Overtime)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"workday", ModeWorkday, false},
		{"work", ModeWorkday, false},
		{"pto", ModePTO, false},
		{"public", ModePublicHoliday, false},
		{"company", ModeCompanyHoliday, false},
		{"weekend", ModeWeekend, false},
		{"vacation", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestModeRoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeWorkday, ModePTO, ModePublicHoliday, ModeCompanyHoliday, ModeWeekend} {
		parsed, err := ParseMode(mode.String())
		if err != nil {
			t.Errorf("ParseMode(%q) error = %v", mode.String(), err)
			continue
		}
		if parsed != mode {
			t.Errorf("ParseMode(%q) = %v, want %v", mode.String(), parsed, mode)
		}
	}
}
