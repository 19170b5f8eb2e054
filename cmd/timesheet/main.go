package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/timesheet/internal/config"
	"github.com/username/timesheet/internal/holiday"
	"github.com/username/timesheet/internal/settings"
	"github.com/username/timesheet/internal/timesheet"
	"github.com/username/timesheet/pkg/clock"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "timesheet",
		Short: "Monthly timesheet editor",
		Long: `Render and annotate a monthly timesheet with public and company holidays.

Settings persist to a local store and to a shareable link whose query string
carries everything that differs from the defaults. Month and year are never
written to the link, so a saved link always opens to the previous month.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(setCmd())
	rootCmd.AddCommand(countriesCmd())
	rootCmd.AddCommand(regionsCmd())
	rootCmd.AddCommand(linkCmd())
	rootCmd.AddCommand(emailCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func renderCmd() *cobra.Command {
	var ptoDays []int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the month's timesheet",
		Long: `Render the month's timesheet with per-day and aggregate hours.

Flags override stored settings for this run only, the way query parameters
override the stored preferences; use "timesheet set" to persist a change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			manager := initializeManager(cfg)

			overrides, err := flagOverrides(cmd)
			if err != nil {
				return err
			}
			manager.Load(overrides)

			for _, day := range ptoDays {
				if err := manager.MarkDay(day, timesheet.ModePTO); err != nil {
					return err
				}
			}

			printSheet(cmd, manager)
			return nil
		},
	}

	cmd.Flags().Int("month", 0, "Month to render (1-12)")
	cmd.Flags().Int("year", 0, "Year to render")
	cmd.Flags().String("name", "", "Employee name")
	cmd.Flags().String("company", "", "Company name")
	cmd.Flags().String("country", "", "ISO 3166-1 alpha-2 country code (DE, US, GB)")
	cmd.Flags().String("region", "", "ISO 3166-2 region code for regional holidays (DE-BY, US-CA)")
	cmd.Flags().String("start", "", "Default work start time (09:00)")
	cmd.Flags().String("break-start", "", "Default break start time (12:00)")
	cmd.Flags().String("break-end", "", "Default break end time (13:00)")
	cmd.Flags().String("end", "", "Default work end time (18:00)")
	cmd.Flags().Float64("hours", 0, "Expected daily hours")
	cmd.Flags().String("ics-url", "", "Company holiday calendar feed (ICS format)")
	cmd.Flags().String("email-to", "", "Email recipients (comma-separated)")
	cmd.Flags().IntSliceVar(&ptoDays, "pto", nil, "Days of the month to mark as PTO")

	return cmd
}

// flagOverrides turns explicitly set render flags into a one-shot settings
// overlay. Unset flags fall through to the stored configuration.
func flagOverrides(cmd *cobra.Command) (settings.Partial, error) {
	p := settings.Partial{}
	flags := cmd.Flags()

	if flags.Changed("month") {
		n, _ := flags.GetInt("month")
		if n < 1 || n > 12 {
			return p, fmt.Errorf("month must be 1-12, got %d", n)
		}
		month := time.Month(n)
		p.Month = &month
	}
	if flags.Changed("year") {
		n, _ := flags.GetInt("year")
		p.Year = &n
	}
	if flags.Changed("hours") {
		f, _ := flags.GetFloat64("hours")
		p.WorkdayHours = &f
	}

	strFlags := []struct {
		flag string
		dest **string
		time bool
	}{
		{"name", &p.Name, false},
		{"company", &p.Company, false},
		{"country", &p.Country, false},
		{"region", &p.Region, false},
		{"start", &p.Start, true},
		{"break-start", &p.BreakStart, true},
		{"break-end", &p.BreakEnd, true},
		{"end", &p.End, true},
		{"ics-url", &p.ICSURL, false},
		{"email-to", &p.EmailTo, false},
	}
	for _, sf := range strFlags {
		if !flags.Changed(sf.flag) {
			continue
		}
		v, _ := flags.GetString(sf.flag)
		if sf.time && v != "" {
			if _, err := clock.Parse(v); err != nil {
				return p, fmt.Errorf("--%s: %w", sf.flag, err)
			}
		}
		value := v
		*sf.dest = &value
	}

	return p, nil
}

func printSheet(cmd *cobra.Command, manager *timesheet.Manager) {
	out := cmd.OutOrStdout()
	cfg := manager.Settings()

	title := fmt.Sprintf("Timesheet: %s %d", cfg.Month, cfg.Year)
	if cfg.Name != "" || cfg.Company != "" {
		who := make([]string, 0, 2)
		if cfg.Name != "" {
			who = append(who, cfg.Name)
		}
		if cfg.Company != "" {
			who = append(who, cfg.Company)
		}
		title += " | " + strings.Join(who, ", ")
	}
	fmt.Fprintln(out, title)

	if warning := manager.Warning(); warning != "" {
		fmt.Fprintf(out, "Warning: %s\n", warning)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Day\tMode\tStart\tBreak\tEnd\tHours\tBreak\tOT\tNotes")

	for _, row := range manager.Rows() {
		breakCol := ""
		if row.BreakStart != "" || row.BreakEnd != "" {
			breakCol = fmt.Sprintf("%s-%s", row.BreakStart, row.BreakEnd)
		}

		fmt.Fprintf(w, "%s %2d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Date.Format("Mon"), row.Date.Day(),
			row.Mode.Label(),
			clock.Format12Hour(row.Start),
			breakCol,
			clock.Format12Hour(row.End),
			formatHours(row.Hours()),
			formatHours(row.BreakHours()),
			formatHours(row.Overtime(cfg.WorkdayHours)),
			row.Notes)
	}

	totals := manager.Totals()
	fmt.Fprintf(w, "Total\t\t\t\t\t%s\t%s\t%s\t\n",
		formatHours(totals.Worked), formatHours(totals.Break), formatHours(totals.Overtime))
	w.Flush()
}

func formatHours(hours float64) string {
	if hours == 0 {
		return "-"
	}
	return strconv.FormatFloat(hours, 'f', -1, 64) + "h"
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set key=value ...",
		Short: "Change settings and persist them",
		Long: `Change one or more settings and persist them to the store and share link.

Keys: name, company, month, year, country, region, start, breakStart,
breakEnd, end, workdayHours, icsUrl, emailTo. Month and year persist to the
store only; they are never written to the share link.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseAssignments(args)
			if err != nil {
				return err
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			manager := initializeManager(cfg)
			manager.Load(settings.Partial{})

			if err := manager.UpdateSettings(p); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Settings saved.")
			return nil
		},
	}
}

func parseAssignments(args []string) (settings.Partial, error) {
	p := settings.Partial{}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return p, fmt.Errorf("expected key=value, got %q", arg)
		}

		switch key {
		case "name":
			p.Name = ptr(value)
		case "company":
			p.Company = ptr(value)
		case "country":
			p.Country = ptr(strings.ToUpper(value))
		case "region":
			p.Region = ptr(strings.ToUpper(value))
		case "icsUrl":
			p.ICSURL = ptr(value)
		case "emailTo":
			p.EmailTo = ptr(value)
		case "start", "breakStart", "breakEnd", "end":
			if value != "" {
				if _, err := clock.Parse(value); err != nil {
					return p, fmt.Errorf("%s: %w", key, err)
				}
			}
			switch key {
			case "start":
				p.Start = ptr(value)
			case "breakStart":
				p.BreakStart = ptr(value)
			case "breakEnd":
				p.BreakEnd = ptr(value)
			case "end":
				p.End = ptr(value)
			}
		case "month":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 || n > 12 {
				return p, fmt.Errorf("month must be 1-12, got %q", value)
			}
			month := time.Month(n)
			p.Month = &month
		case "year":
			n, err := strconv.Atoi(value)
			if err != nil {
				return p, fmt.Errorf("year must be a number, got %q", value)
			}
			p.Year = &n
		case "workdayHours":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return p, fmt.Errorf("workdayHours must be a number, got %q", value)
			}
			p.WorkdayHours = &f
		default:
			return p, fmt.Errorf("unknown setting %q", key)
		}
	}

	return p, nil
}

func ptr(s string) *string {
	return &s
}

func countriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List countries available from the holiday source",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			client := newHolidayClient(cfg)
			countries, err := client.Countries()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			for _, country := range countries {
				fmt.Fprintf(w, "%s\t%s\n", country.Code, country.Name)
			}
			return w.Flush()
		},
	}
}

func regionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List region codes for the selected country and year",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			active, _ := resolveSettings(cfg)

			client := newHolidayClient(cfg)
			holidays, err := client.PublicHolidays(active.Year, active.Country)
			if err != nil {
				return err
			}

			regions := holiday.RegionsFrom(holidays)
			if len(regions) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No regional holidays for %s in %d.\n",
					active.Country, active.Year)
				return nil
			}

			for _, region := range regions {
				fmt.Fprintln(cmd.OutOrStdout(), region)
			}
			return nil
		},
	}
}

func linkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link",
		Short: "Print the shareable settings link",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			active, defaults := resolveSettings(cfg)
			share := settings.NewShareLink(cfg.Storage.ShareLinkFile, cfg.Storage.ShareBaseURL, logger)

			fmt.Fprintln(cmd.OutOrStdout(), share.Link(active, defaults))
			return nil
		},
	}
}

func emailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "email",
		Short: "Print a mailto link for submitting the timesheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			active, _ := resolveSettings(cfg)

			link := timesheet.MailtoLink(active)
			if link == "" {
				return fmt.Errorf("no recipients configured; run: timesheet set emailTo=boss@example.com")
			}

			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
}

// resolveSettings computes the active configuration snapshot without
// touching the holiday source.
func resolveSettings(cfg *config.Config) (active, defaults settings.Settings) {
	defaults = settings.Defaults(time.Now(), settings.HostLocale())
	store := settings.NewStore(cfg.Storage.SettingsFile, logger)
	share := settings.NewShareLink(cfg.Storage.ShareLinkFile, cfg.Storage.ShareBaseURL, logger)

	active = settings.Resolve(defaults, store.Load(), share.Load())
	return active, defaults
}

func newHolidayClient(cfg *config.Config) *holiday.Client {
	return holiday.NewClient(
		cfg.Holidays.APIURL,
		cfg.Holidays.GetHolidayTimeout(),
		cfg.Holidays.GetCacheTTL(),
		logger,
	)
}

func initializeManager(cfg *config.Config) *timesheet.Manager {
	defaults := settings.Defaults(time.Now(), settings.HostLocale())
	store := settings.NewStore(cfg.Storage.SettingsFile, logger)
	share := settings.NewShareLink(cfg.Storage.ShareLinkFile, cfg.Storage.ShareBaseURL, logger)

	fetcher := holiday.NewFeedFetcher(cfg.Feed.RelayRoutes, cfg.Feed.GetFeedTimeout(), logger)
	resolver := holiday.NewResolver(newHolidayClient(cfg), fetcher, logger)

	return timesheet.NewManager(defaults, store, share, resolver, &promptConfirmer{}, logger)
}

// promptConfirmer asks on the terminal before unsaved edits are discarded
type promptConfirmer struct{}

func (promptConfirmer) ConfirmDiscard() bool {
	fmt.Fprint(os.Stderr, "You have unsaved changes. Discard them? [y/N] ")

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
