package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Scrape  ScrapeConfig  `yaml:"scrape" envconfig:"SCRAPE"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// ScrapeConfig contains the browser-session and calendar settings.
// SourceTimezone must match the timezone the calendar site is set to
// display; all date-rollover arithmetic depends on it.
type ScrapeConfig struct {
	BaseURL        string        `yaml:"base_url" envconfig:"BASE_URL" default:"https://www.forexfactory.com/calendar" validate:"required,url"`
	SourceTimezone string        `yaml:"source_timezone" envconfig:"SOURCE_TIMEZONE" default:"America/New_York" validate:"required,timezone"`
	Headless       bool          `yaml:"headless" envconfig:"HEADLESS" default:"true"`
	PageTimeout    time.Duration `yaml:"page_timeout" envconfig:"PAGE_TIMEOUT" default:"45s"`
	RateLimitRPS   float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"0.5" validate:"gt=0"`
	RateLimitBurst int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"1" validate:"gte=1"`
	Concurrency    int           `yaml:"concurrency" envconfig:"CONCURRENCY" default:"1" validate:"gte=1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/ffcal.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// Load loads configuration from environment variables and an optional
// YAML config file. Environment variables (prefix FFCAL) win over file
// values; file values win over defaults.
func Load(configFile string) (*Config, error) {
	var cfg Config

	// Load defaults and environment overrides first
	if err := envconfig.Process("FFCAL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			overrides, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			applyFileOverrides(&cfg, overrides)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileOverrides mirrors the YAML layout with pointer fields, so a key
// the file sets is distinguishable from one it omits. Without that,
// booleans like headless: false would be indistinguishable from
// "not configured" and silently lose to the defaults.
type fileOverrides struct {
	Scrape struct {
		BaseURL        *string        `yaml:"base_url"`
		SourceTimezone *string        `yaml:"source_timezone"`
		Headless       *bool          `yaml:"headless"`
		PageTimeout    *time.Duration `yaml:"page_timeout"`
		RateLimitRPS   *float64       `yaml:"rate_limit_rps"`
		RateLimitBurst *int           `yaml:"rate_limit_burst"`
		Concurrency    *int           `yaml:"concurrency"`
	} `yaml:"scrape"`
	Logging struct {
		Level       *string `yaml:"level"`
		Format      *string `yaml:"format"`
		Output      *string `yaml:"output"`
		FilePath    *string `yaml:"file_path"`
		Development *bool   `yaml:"development"`
	} `yaml:"logging"`
}

// loadFromFile loads configuration overrides from a YAML file
func loadFromFile(filePath string) (*fileOverrides, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var overrides fileOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, err
	}

	return &overrides, nil
}

// applyFileOverrides layers the file's values over cfg. Fields
// explicitly set in the environment keep their value; every key the
// file sets and the environment left alone is taken from the file.
func applyFileOverrides(cfg *Config, file *fileOverrides) {
	setString(&cfg.Scrape.BaseURL, file.Scrape.BaseURL, "FFCAL_SCRAPE_BASE_URL")
	setString(&cfg.Scrape.SourceTimezone, file.Scrape.SourceTimezone, "FFCAL_SCRAPE_SOURCE_TIMEZONE")
	setBool(&cfg.Scrape.Headless, file.Scrape.Headless, "FFCAL_SCRAPE_HEADLESS")
	if file.Scrape.PageTimeout != nil && !envSet("FFCAL_SCRAPE_PAGE_TIMEOUT") {
		cfg.Scrape.PageTimeout = *file.Scrape.PageTimeout
	}
	if file.Scrape.RateLimitRPS != nil && !envSet("FFCAL_SCRAPE_RATE_LIMIT_RPS") {
		cfg.Scrape.RateLimitRPS = *file.Scrape.RateLimitRPS
	}
	if file.Scrape.RateLimitBurst != nil && !envSet("FFCAL_SCRAPE_RATE_LIMIT_BURST") {
		cfg.Scrape.RateLimitBurst = *file.Scrape.RateLimitBurst
	}
	if file.Scrape.Concurrency != nil && !envSet("FFCAL_SCRAPE_CONCURRENCY") {
		cfg.Scrape.Concurrency = *file.Scrape.Concurrency
	}
	setString(&cfg.Logging.Level, file.Logging.Level, "FFCAL_LOGGING_LEVEL")
	setString(&cfg.Logging.Format, file.Logging.Format, "FFCAL_LOGGING_FORMAT")
	setString(&cfg.Logging.Output, file.Logging.Output, "FFCAL_LOGGING_OUTPUT")
	setString(&cfg.Logging.FilePath, file.Logging.FilePath, "FFCAL_LOGGING_FILE_PATH")
	setBool(&cfg.Logging.Development, file.Logging.Development, "FFCAL_LOGGING_DEVELOPMENT")
}

func setString(dst *string, fileVal *string, envKey string) {
	if fileVal != nil && !envSet(envKey) {
		*dst = *fileVal
	}
}

func setBool(dst *bool, fileVal *bool, envKey string) {
	if fileVal != nil && !envSet(envKey) {
		*dst = *fileVal
	}
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// SourceLocation resolves the configured source timezone.
func (c *ScrapeConfig) SourceLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.SourceTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid source timezone %q: %w", c.SourceTimezone, err)
	}
	return loc, nil
}
