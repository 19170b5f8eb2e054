package holiday

import (
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

type fakePublicSource struct {
	holidays []PublicHoliday
	err      error
}

func (f *fakePublicSource) PublicHolidays(year int, country string) ([]PublicHoliday, error) {
	return f.holidays, f.err
}

type fakeFeedSource struct {
	holidays []Holiday
	err      error
}

func (f *fakeFeedSource) Fetch(feedURL string) ([]Holiday, error) {
	return f.holidays, f.err
}

func TestRegionsFrom(t *testing.T) {
	holidays := []PublicHoliday{
		{Date: "2025-01-06", Counties: []string{"DE-BY", "DE-BW"}},
		{Date: "2025-08-15", Counties: []string{"DE-BY", "DE-SL"}},
		{Date: "2025-01-01", Global: true}, // no scope list contributes nothing
	}

	got := RegionsFrom(holidays)
	want := []string{"DE-BW", "DE-BY", "DE-SL"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("RegionsFrom() = %v, want %v", got, want)
	}
}

func TestFilterByRegion(t *testing.T) {
	global := PublicHoliday{Date: "2025-01-01", Name: "New Year", Global: true}
	unscoped := PublicHoliday{Date: "2025-05-01", Name: "Labour Day"}
	bavarian := PublicHoliday{Date: "2025-01-06", Name: "Epiphany", Counties: []string{"DE-BY", "DE-BW"}}
	saarland := PublicHoliday{Date: "2025-08-15", Name: "Assumption", Counties: []string{"DE-SL"}}

	holidays := []PublicHoliday{global, unscoped, bavarian, saarland}

	tests := []struct {
		name   string
		region string
		want   []string
	}{
		{"No region keeps global and unscoped", "", []string{"New Year", "Labour Day"}},
		{"Region adds its scoped holidays", "DE-BY", []string{"New Year", "Labour Day", "Epiphany"}},
		{"Other region excluded", "DE-SL", []string{"New Year", "Labour Day", "Assumption"}},
		{"Unknown region keeps only global and unscoped", "DE-HH", []string{"New Year", "Labour Day"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := FilterByRegion(holidays, tt.region)

			names := make([]string, 0, len(filtered))
			for _, h := range filtered {
				names = append(names, h.Name)
			}

			if !reflect.DeepEqual(names, tt.want) {
				t.Errorf("FilterByRegion(%q) = %v, want %v", tt.region, names, tt.want)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	public := []PublicHoliday{
		{Date: "2025-01-01", LocalName: "Neujahr", Name: "New Year's Day"},
		{Date: "2025-12-25", Name: "Christmas Day"}, // no local name
	}
	company := []Holiday{
		{Date: "2025-12-24", Name: "Christmas Eve", Kind: KindCompany},
		{Date: "2025-01-01", Name: "Office Closed", Kind: KindCompany},
	}

	merged := Merge(public, company)

	if len(merged) != 3 {
		t.Fatalf("Merge() produced %d entries, want 3", len(merged))
	}

	// Independent dates stay independent.
	if h := merged["2025-12-25"]; h.Name != "Christmas Day" || h.Kind != KindPublic {
		t.Errorf("public-only entry = %+v", h)
	}
	if h := merged["2025-12-24"]; h.Name != "Christmas Eve" || h.Kind != KindCompany {
		t.Errorf("company-only entry = %+v", h)
	}

	// A collision concatenates the names and keeps the pre-existing kind.
	collided := merged["2025-01-01"]
	if collided.Name != "Company: Office Closed; Public: Neujahr" {
		t.Errorf("collision name = %q", collided.Name)
	}
	if collided.Kind != KindPublic {
		t.Errorf("collision kind = %v, want public", collided.Kind)
	}
}

func TestValidateYear(t *testing.T) {
	holidays := []Holiday{
		{Date: "2024-12-25", Name: "Christmas"},
	}

	if warning := ValidateYear(holidays, 2024); warning != "" {
		t.Errorf("ValidateYear(2024) = %q, want no warning", warning)
	}
	if warning := ValidateYear(holidays, 2025); warning == "" {
		t.Error("ValidateYear(2025) = empty, want warning")
	}
	if warning := ValidateYear(nil, 2025); warning == "" {
		t.Error("ValidateYear(no holidays) = empty, want warning")
	}
}

func TestResolverResolve(t *testing.T) {
	public := &fakePublicSource{
		holidays: []PublicHoliday{
			{Date: "2025-01-01", LocalName: "Neujahr", Global: true},
			{Date: "2025-01-06", LocalName: "Heilige Drei Könige", Counties: []string{"DE-BY"}},
		},
	}
	feed := &fakeFeedSource{
		holidays: []Holiday{
			{Date: "2025-06-02", Name: "Founding Day", Kind: KindCompany},
		},
	}

	resolver := NewResolver(public, feed, zap.NewNop())

	res := resolver.Resolve(Request{Year: 2025, Country: "DE", Region: "DE-BY", FeedURL: "https://example.com/cal.ics"})

	if res.Warning != "" {
		t.Errorf("Warning = %q, want none", res.Warning)
	}
	if !reflect.DeepEqual(res.Regions, []string{"DE-BY"}) {
		t.Errorf("Regions = %v, want [DE-BY]", res.Regions)
	}
	if len(res.Holidays) != 3 {
		t.Errorf("Holidays has %d entries, want 3", len(res.Holidays))
	}
	if _, ok := res.Holidays["2025-01-06"]; !ok {
		t.Error("region-scoped holiday missing from map")
	}
	if _, ok := res.Holidays["2025-06-02"]; !ok {
		t.Error("company holiday missing from map")
	}
}

func TestResolverResolvePublicFetchFailure(t *testing.T) {
	public := &fakePublicSource{err: errors.New("boom")}
	feed := &fakeFeedSource{
		holidays: []Holiday{{Date: "2025-06-02", Name: "Founding Day", Kind: KindCompany}},
	}

	resolver := NewResolver(public, feed, zap.NewNop())
	res := resolver.Resolve(Request{Year: 2025, Country: "DE", FeedURL: "https://example.com/cal.ics"})

	// A public fetch failure does not abort resolution.
	if len(res.Holidays) != 1 {
		t.Errorf("Holidays has %d entries, want the company holiday only", len(res.Holidays))
	}
	if len(res.Regions) != 0 {
		t.Errorf("Regions = %v, want empty", res.Regions)
	}
}

func TestResolverResolveFeedFailureWarns(t *testing.T) {
	public := &fakePublicSource{
		holidays: []PublicHoliday{{Date: "2025-01-01", Name: "New Year", Global: true}},
	}
	feed := &fakeFeedSource{err: errors.New("all routes failed")}

	resolver := NewResolver(public, feed, zap.NewNop())
	res := resolver.Resolve(Request{Year: 2025, Country: "US", FeedURL: "https://example.com/cal.ics"})

	if res.Warning == "" {
		t.Error("Warning empty, want feed failure surfaced")
	}
	if len(res.Holidays) != 1 {
		t.Errorf("Holidays has %d entries, want public set intact", len(res.Holidays))
	}
}

func TestResolverResolveFeedOutsideYearWarnsButMerges(t *testing.T) {
	public := &fakePublicSource{}
	feed := &fakeFeedSource{
		holidays: []Holiday{{Date: "2024-12-24", Name: "Christmas Eve", Kind: KindCompany}},
	}

	resolver := NewResolver(public, feed, zap.NewNop())
	res := resolver.Resolve(Request{Year: 2025, Country: "US", FeedURL: "https://example.com/cal.ics"})

	if res.Warning == "" {
		t.Error("Warning empty, want out-of-year warning")
	}
	// Parsed data is still merged despite the warning.
	if _, ok := res.Holidays["2024-12-24"]; !ok {
		t.Error("out-of-year company holiday dropped from map")
	}
}

func TestResolverResolveNoFeedConfigured(t *testing.T) {
	public := &fakePublicSource{
		holidays: []PublicHoliday{{Date: "2025-01-01", Name: "New Year", Global: true}},
	}
	feed := &fakeFeedSource{err: errors.New("must not be called")}

	resolver := NewResolver(public, feed, zap.NewNop())
	res := resolver.Resolve(Request{Year: 2025, Country: "US"})

	if res.Warning != "" {
		t.Errorf("Warning = %q, want none without a feed", res.Warning)
	}
	if len(res.Holidays) != 1 {
		t.Errorf("Holidays has %d entries, want 1", len(res.Holidays))
	}
}
