package settings

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Shareable state: the subset of Settings encoded into a URL query string so
// a configured timesheet can be bookmarked or handed to a colleague. Month
// and year are ephemeral — they are read from an incoming link but never
// written back, so a saved link always opens to the previous month.
//
// On the wire, month uses the original zero-based convention (0 = January).

// EncodeQuery computes the encodable subset of cfg against the given
// defaults: ephemeral keys are always excluded, and every other field is
// included only if it is non-empty and differs from its default.
func EncodeQuery(cfg, defaults Settings) url.Values {
	params := url.Values{}

	setString := func(key, value, def string) {
		if value != "" && value != def {
			params.Set(key, value)
		}
	}

	setString("name", cfg.Name, defaults.Name)
	setString("company", cfg.Company, defaults.Company)
	setString("country", cfg.Country, defaults.Country)
	setString("region", cfg.Region, defaults.Region)
	setString("start", cfg.Start, defaults.Start)
	setString("breakStart", cfg.BreakStart, defaults.BreakStart)
	setString("breakEnd", cfg.BreakEnd, defaults.BreakEnd)
	setString("end", cfg.End, defaults.End)
	setString("icsUrl", cfg.ICSURL, defaults.ICSURL)
	setString("emailTo", cfg.EmailTo, defaults.EmailTo)

	// Zero hours reads as unset, like the empty strings above, so it never
	// encodes even when the default is non-zero.
	if cfg.WorkdayHours != 0 && cfg.WorkdayHours != defaults.WorkdayHours {
		params.Set("workdayHours", strconv.FormatFloat(cfg.WorkdayHours, 'f', -1, 64))
	}

	return params
}

// DecodeQuery reads the recognized keys from a query string into a sparse
// overlay. Unrecognized keys and unparsable numeric values are ignored.
func DecodeQuery(params url.Values) Partial {
	p := Partial{}

	str := func(key string) *string {
		if !params.Has(key) {
			return nil
		}
		v := params.Get(key)
		return &v
	}

	p.Name = str("name")
	p.Company = str("company")
	p.Country = str("country")
	p.Region = str("region")
	p.Start = str("start")
	p.BreakStart = str("breakStart")
	p.BreakEnd = str("breakEnd")
	p.End = str("end")
	p.ICSURL = str("icsUrl")
	p.EmailTo = str("emailTo")

	if params.Has("month") {
		if n, err := strconv.Atoi(params.Get("month")); err == nil && n >= 0 && n <= 11 {
			month := time.Month(n + 1)
			p.Month = &month
		}
	}
	if params.Has("year") {
		if n, err := strconv.Atoi(params.Get("year")); err == nil {
			p.Year = &n
		}
	}
	if params.Has("workdayHours") {
		if f, err := strconv.ParseFloat(params.Get("workdayHours"), 64); err == nil {
			p.WorkdayHours = &f
		}
	}

	return p
}

// ShareLink persists the shareable state as a single URL in a file,
// replacing the previous link on every save.
type ShareLink struct {
	path   string
	base   string
	logger *zap.Logger
}

// NewShareLink creates a share link store. base is the bare link without a
// query component.
func NewShareLink(path, base string, logger *zap.Logger) *ShareLink {
	return &ShareLink{
		path:   path,
		base:   base,
		logger: logger,
	}
}

// Load reads the stored link and decodes its query component. A missing or
// malformed link yields an empty overlay.
func (l *ShareLink) Load() Partial {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn("Failed to read share link",
				zap.String("path", l.path),
				zap.Error(err))
		}
		return Partial{}
	}

	u, err := url.Parse(strings.TrimSpace(string(data)))
	if err != nil {
		l.logger.Warn("Ignoring malformed share link",
			zap.String("path", l.path),
			zap.Error(err))
		return Partial{}
	}

	return DecodeQuery(u.Query())
}

// Link renders the share link for the given snapshot: the base path alone
// when nothing differs from the defaults.
func (l *ShareLink) Link(cfg, defaults Settings) string {
	params := EncodeQuery(cfg, defaults)
	if encoded := params.Encode(); encoded != "" {
		return l.base + "?" + encoded
	}
	return l.base
}

// Save rewrites the stored link from the given snapshot. Failures are
// logged and swallowed, like every preference sink.
func (l *ShareLink) Save(cfg, defaults Settings) {
	link := l.Link(cfg, defaults)

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		l.logger.Warn("Failed to create share link directory",
			zap.String("path", l.path),
			zap.Error(err))
		return
	}

	if err := os.WriteFile(l.path, []byte(link+"\n"), 0o644); err != nil {
		l.logger.Warn("Failed to write share link",
			zap.String("path", l.path),
			zap.Error(err))
		return
	}

	l.logger.Debug("Share link saved", zap.String("link", link))
}
