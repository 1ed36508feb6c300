package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/datakortet/ttcal"
	appLog "github.com/datakortet/ttcal/internal/log"
)

const (
	defaultListen   = "127.0.0.1:8080"
	defaultLogLevel = "info"
	defaultCacheDir = "cache/ics"
)

// ICSConfig describes a calendar feed whose events are shown as marks.
type ICSConfig struct {
	// ID is an internal identifier used for caching and logging.
	ID string `yaml:"id" json:"id"`
	// Name is a human-friendly label.
	Name string `yaml:"name" json:"name"`
	// URL is an http(s) endpoint or a local file path.
	URL string `yaml:"url" json:"url"`
}

// MarkConfig attaches Value to every day of the period named by Tag.
type MarkConfig struct {
	Tag   string `yaml:"tag" json:"tag"`
	Value string `yaml:"value" json:"value"`
}

// Span resolves the mark's tag.
func (m MarkConfig) Span() (ttcal.Span, error) {
	return ttcal.FromIDTag(m.Tag)
}

// FormatConfig holds the default layout per period type.
type FormatConfig struct {
	Day      string `yaml:"day" json:"day"`
	Week     string `yaml:"week" json:"week"`
	Month    string `yaml:"month" json:"month"`
	Quarter  string `yaml:"quarter" json:"quarter"`
	Halfyear string `yaml:"halfyear" json:"halfyear"`
	Year     string `yaml:"year" json:"year"`
}

// For returns the configured layout for the concrete type of s.
func (f FormatConfig) For(s ttcal.Span) string {
	switch s.(type) {
	case ttcal.Day:
		return f.Day
	case *ttcal.Week:
		return f.Week
	case *ttcal.Month:
		return f.Month
	case *ttcal.Quarter:
		return f.Quarter
	case *ttcal.Halfyear:
		return f.Halfyear
	case *ttcal.Year:
		return f.Year
	}
	return ""
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the JSON API.
	Listen string `yaml:"listen" json:"listen"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// CacheDir stores ETag/Last-Modified metadata and bodies of fetched feeds.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`

	Formats FormatConfig `yaml:"formats" json:"formats"`

	// Marks are static annotations such as holidays.
	Marks []MarkConfig `yaml:"marks" json:"marks"`

	// ICS is the list of calendar feeds.
	ICS []ICSConfig `yaml:"ics" json:"ics"`
}

// envOverrides are applied on top of the file after it is loaded.
type envOverrides struct {
	Listen   string `env:"TTCAL_LISTEN"`
	LogLevel string `env:"TTCAL_LOG_LEVEL"`
	CacheDir string `env:"TTCAL_CACHE_DIR"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:   defaultListen,
		LogLevel: defaultLogLevel,
		CacheDir: defaultCacheDir,
		Formats:  defaultFormats(),
		Marks:    []MarkConfig{},
		ICS:      []ICSConfig{},
	}
}

func defaultFormats() FormatConfig {
	return FormatConfig{
		Day:      ttcal.DefaultDayFormat,
		Week:     ttcal.DefaultWeekFormat,
		Month:    ttcal.DefaultMonthFormat,
		Quarter:  ttcal.DefaultQuarterFormat,
		Halfyear: ttcal.DefaultHalfyearFormat,
		Year:     ttcal.DefaultYearFormat,
	}
}

// Normalize fills in missing/zero values with defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if _, err := appLog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.CacheDir == "" {
		c.CacheDir = defaultCacheDir
	}

	def := defaultFormats()
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&c.Formats.Day, def.Day)
	fill(&c.Formats.Week, def.Week)
	fill(&c.Formats.Month, def.Month)
	fill(&c.Formats.Quarter, def.Quarter)
	fill(&c.Formats.Halfyear, def.Halfyear)
	fill(&c.Formats.Year, def.Year)

	if c.Marks == nil {
		c.Marks = []MarkConfig{}
	}
	if c.ICS == nil {
		c.ICS = []ICSConfig{}
	}
	for i := range c.ICS {
		if c.ICS[i].ID == "" {
			c.ICS[i].ID = fmt.Sprintf("ics%d", i+1)
		}
	}
}

// Validate reports the first mark whose tag does not parse.
func (c *Config) Validate() error {
	for i, m := range c.Marks {
		if _, err := m.Span(); err != nil {
			return fmt.Errorf("marks[%d]: %w", i, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from TTCAL_* environment variables. Unset or
// empty variables leave the field alone.
func (c *Config) ApplyEnv() error {
	ov, err := env.ParseAs[envOverrides]()
	if err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if ov.Listen != "" {
		c.Listen = ov.Listen
	}
	if ov.LogLevel != "" {
		if _, err := appLog.ParseLevel(ov.LogLevel); err != nil {
			return fmt.Errorf("TTCAL_LOG_LEVEL: %w", err)
		}
		c.LogLevel = ov.LogLevel
	}
	if ov.CacheDir != "" {
		c.CacheDir = ov.CacheDir
	}
	return nil
}

// Load loads configuration from the given YAML path and applies
// environment overrides.
//
// If the file does not exist a default config is written there with 0600
// permissions and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	var cfg *Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = DefaultConfig()
		if err := Save(path, cfg); err != nil {
			return cfg, err
		}
		appLog.Info("wrote default config", "path", path)
	case err != nil:
		return nil, err
	default:
		cfg = &Config{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.Normalize()
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path atomically via a temp file and rename, leaving
// the file with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".ttcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save delegates to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
