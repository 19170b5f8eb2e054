package timesheet

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/username/timesheet/internal/settings"
)

const mailBodyTemplate = `Hi,

Please find my timesheet for %s %d attached.

Thanks`

// MailtoLink composes a recipient-addressed draft for submitting the
// month's timesheet. Returns an empty string when no recipients are
// configured.
func MailtoLink(cfg settings.Settings) string {
	if cfg.EmailTo == "" {
		return ""
	}

	subject := fmt.Sprintf("Timesheet - %s %d", cfg.Month, cfg.Year)
	if cfg.Name != "" {
		subject += " - " + cfg.Name
	}
	body := fmt.Sprintf(mailBodyTemplate, cfg.Month, cfg.Year)

	params := url.Values{}
	params.Set("subject", subject)
	params.Set("body", body)

	// mailto queries use percent-encoded spaces, not '+'.
	query := strings.ReplaceAll(params.Encode(), "+", "%20")

	return "mailto:" + cfg.EmailTo + "?" + query
}
