package holiday

// Kind tags the origin of a holiday record
type Kind int

const (
	KindPublic Kind = iota + 1
	KindCompany
)

func (k Kind) String() string {
	switch k {
	case KindPublic:
		return "public"
	case KindCompany:
		return "company"
	default:
		return "unknown"
	}
}

// Holiday is a single resolved holiday record, keyed by its ISO date
type Holiday struct {
	Date string // YYYY-MM-DD
	Name string
	Kind Kind
}

// PublicHoliday is the public-holiday source's wire record. Counties carries
// ISO 3166-2 region codes when the holiday is scoped to sub-national regions;
// Global marks a holiday that applies everywhere regardless of scope.
type PublicHoliday struct {
	Date        string   `json:"date"`
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Global      bool     `json:"global"`
	Counties    []string `json:"counties"`
}

// Country is a code/display-name pair from the public-holiday source
type Country struct {
	Code string `json:"countryCode"`
	Name string `json:"name"`
}
