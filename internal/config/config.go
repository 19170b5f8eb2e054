package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/username/timesheet/internal/holiday"
)

// Config represents application configuration: deployment concerns only.
// User preferences live in the settings store, not here.
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Log      LogConfig      `mapstructure:"log"`
}

// StorageConfig locates the preference sinks
type StorageConfig struct {
	SettingsFile  string `mapstructure:"settings_file"`
	ShareLinkFile string `mapstructure:"share_link_file"`
	ShareBaseURL  string `mapstructure:"share_base_url"`
}

// HolidaysConfig configures the public-holiday source
type HolidaysConfig struct {
	APIURL   string `mapstructure:"api_url"`
	Timeout  string `mapstructure:"timeout"`
	CacheTTL string `mapstructure:"cache_ttl"`
}

// FeedConfig configures calendar-feed fetching. Relay routes are URL
// templates with a "{url}" placeholder, tried in order after direct access.
type FeedConfig struct {
	RelayRoutes []string `mapstructure:"relay_routes"`
	Timeout     string   `mapstructure:"timeout"`
}

// LogConfig configures logging output
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. A missing config file is not an
// error: every field has a usable default.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.timesheet")
		v.AddConfigPath("/etc/timesheet")
	}

	setDefaults(v)

	// Read environment variables
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	stateDir := defaultStateDir()

	v.SetDefault("storage.settings_file", filepath.Join(stateDir, "settings.json"))
	v.SetDefault("storage.share_link_file", filepath.Join(stateDir, "share-link"))
	v.SetDefault("storage.share_base_url", "https://timesheet.local/")
	v.SetDefault("holidays.api_url", "https://date.nager.at/api/v3")
	v.SetDefault("holidays.timeout", "10s")
	v.SetDefault("holidays.cache_ttl", "24h")
	v.SetDefault("feed.relay_routes", holiday.DefaultRelayRoutes)
	v.SetDefault("feed.timeout", "10s")
	v.SetDefault("log.level", "info")
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".timesheet"
	}
	return filepath.Join(home, ".timesheet")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Storage.SettingsFile == "" {
		return fmt.Errorf("storage.settings_file is required")
	}
	if c.Storage.ShareLinkFile == "" {
		return fmt.Errorf("storage.share_link_file is required")
	}
	if c.Storage.ShareBaseURL == "" {
		return fmt.Errorf("storage.share_base_url is required")
	}
	if c.Holidays.APIURL == "" {
		return fmt.Errorf("holidays.api_url is required")
	}
	for _, route := range c.Feed.RelayRoutes {
		if route == "" {
			return fmt.Errorf("feed.relay_routes must not contain empty entries")
		}
	}
	return nil
}

// GetHolidayTimeout returns the holiday API request timeout
func (c *HolidaysConfig) GetHolidayTimeout() time.Duration {
	return parseDuration(c.Timeout, 10*time.Second)
}

// GetCacheTTL returns the holiday cache TTL
func (c *HolidaysConfig) GetCacheTTL() time.Duration {
	return parseDuration(c.CacheTTL, 24*time.Hour)
}

// GetFeedTimeout returns the feed request timeout
func (c *FeedConfig) GetFeedTimeout() time.Duration {
	return parseDuration(c.Timeout, 10*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	duration, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return duration
}
