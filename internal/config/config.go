package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config contains runtime configuration values.
type Config struct {
	GraphQLURL        string
	SiteURL           string
	OutputFile        string
	DesiredCount      int
	PageSize          int
	ListDelay         time.Duration
	DetailDelay       time.Duration
	RequestTimeout    time.Duration
	Session           string
	CSRFToken         string
	UserAgent         string
	Referer           string
	DescriptionFormat string
	ScheduleCron      string
	LogLevel          string
}

// Options carries command-line overrides. Nil fields leave the loaded value untouched.
type Options struct {
	ConfigPath        string
	OutputFile        *string
	DesiredCount      *int
	PageSize          *int
	ListDelay         *time.Duration
	DetailDelay       *time.Duration
	DescriptionFormat *string
	ScheduleCron      *string
	Debug             bool
}

const (
	defaultGraphQLURL   = "https://leetcode.com/graphql"
	defaultSiteURL      = "https://leetcode.com"
	defaultOutputFile   = "leetcode_questions.json"
	defaultCount        = 75
	defaultPageSize     = 50
	defaultListDelay    = 800 * time.Millisecond
	defaultDetailDelay  = 500 * time.Millisecond
	defaultTimeout      = 0 // no client-side timeout
	defaultUserAgent    = "Mozilla/5.0"
	defaultReferer      = "https://leetcode.com"
	defaultFormat       = "text"
	defaultLogLevel     = "info"
	configPathEnv       = "LEETCODE_EXPORT_CONFIG"
	descriptionMarkdown = "markdown"
)

// fileSettings mirrors the optional YAML configuration file.
type fileSettings struct {
	GraphQLURL        string `yaml:"graphql_url"`
	SiteURL           string `yaml:"site_url"`
	OutputFile        string `yaml:"output_file"`
	DesiredCount      *int   `yaml:"desired_count"`
	PageSize          *int   `yaml:"page_size"`
	ListDelay         string `yaml:"list_delay"`
	DetailDelay       string `yaml:"detail_delay"`
	RequestTimeout    string `yaml:"request_timeout"`
	Session           string `yaml:"session"`
	CSRFToken         string `yaml:"csrf_token"`
	UserAgent         string `yaml:"user_agent"`
	Referer           string `yaml:"referer"`
	DescriptionFormat string `yaml:"description_format"`
	ScheduleCron      string `yaml:"schedule_cron"`
	LogLevel          string `yaml:"log_level"`
}

// Load builds a Config from defaults, an optional YAML file, environment
// variables and finally command-line overrides, in that order.
func Load(opts Options) (*Config, error) {
	cfg := &Config{
		GraphQLURL:        defaultGraphQLURL,
		SiteURL:           defaultSiteURL,
		OutputFile:        defaultOutputFile,
		DesiredCount:      defaultCount,
		PageSize:          defaultPageSize,
		ListDelay:         defaultListDelay,
		DetailDelay:       defaultDetailDelay,
		RequestTimeout:    defaultTimeout,
		UserAgent:         defaultUserAgent,
		Referer:           defaultReferer,
		DescriptionFormat: defaultFormat,
		LogLevel:          defaultLogLevel,
	}

	path := opts.ConfigPath
	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.applyOptions(opts)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var s fileSettings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.GraphQLURL, s.GraphQLURL)
	setString(&c.SiteURL, s.SiteURL)
	setString(&c.OutputFile, s.OutputFile)
	setString(&c.Session, s.Session)
	setString(&c.CSRFToken, s.CSRFToken)
	setString(&c.UserAgent, s.UserAgent)
	setString(&c.Referer, s.Referer)
	setString(&c.DescriptionFormat, s.DescriptionFormat)
	setString(&c.ScheduleCron, s.ScheduleCron)
	setString(&c.LogLevel, s.LogLevel)
	if s.DesiredCount != nil {
		c.DesiredCount = *s.DesiredCount
	}
	if s.PageSize != nil {
		c.PageSize = *s.PageSize
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"list_delay", s.ListDelay, &c.ListDelay},
		{"detail_delay", s.DetailDelay, &c.DetailDelay},
		{"request_timeout", s.RequestTimeout, &c.RequestTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("config file %s: invalid %s %q: %w", path, d.key, d.raw, err)
		}
		*d.dst = parsed
	}
	return nil
}

func (c *Config) applyEnv() {
	c.GraphQLURL = getenvDefault("LEETCODE_GRAPHQL_URL", c.GraphQLURL)
	c.SiteURL = getenvDefault("LEETCODE_SITE_URL", c.SiteURL)
	c.OutputFile = getenvDefault("LEETCODE_OUTPUT_FILE", c.OutputFile)
	c.DesiredCount = parseIntDefault("LEETCODE_DESIRED_COUNT", c.DesiredCount)
	c.PageSize = parseIntDefault("LEETCODE_PAGE_SIZE", c.PageSize)
	c.ListDelay = parseDurationDefault("LEETCODE_LIST_DELAY", c.ListDelay)
	c.DetailDelay = parseDurationDefault("LEETCODE_DETAIL_DELAY", c.DetailDelay)
	c.RequestTimeout = parseDurationDefault("LEETCODE_REQUEST_TIMEOUT", c.RequestTimeout)
	c.Session = getenvDefault("LEETCODE_SESSION", c.Session)
	c.CSRFToken = getenvDefault("LEETCODE_CSRF_TOKEN", c.CSRFToken)
	c.UserAgent = getenvDefault("LEETCODE_USER_AGENT", c.UserAgent)
	c.Referer = getenvDefault("LEETCODE_REFERER", c.Referer)
	c.DescriptionFormat = getenvDefault("DESCRIPTION_FORMAT", c.DescriptionFormat)
	c.ScheduleCron = getenvDefault("SCHEDULE_CRON", c.ScheduleCron)
	c.LogLevel = getenvDefault("LOG_LEVEL", c.LogLevel)
}

func (c *Config) applyOptions(opts Options) {
	if opts.OutputFile != nil {
		c.OutputFile = *opts.OutputFile
	}
	if opts.DesiredCount != nil {
		c.DesiredCount = *opts.DesiredCount
	}
	if opts.PageSize != nil {
		c.PageSize = *opts.PageSize
	}
	if opts.ListDelay != nil {
		c.ListDelay = *opts.ListDelay
	}
	if opts.DetailDelay != nil {
		c.DetailDelay = *opts.DetailDelay
	}
	if opts.DescriptionFormat != nil {
		c.DescriptionFormat = *opts.DescriptionFormat
	}
	if opts.ScheduleCron != nil {
		c.ScheduleCron = *opts.ScheduleCron
	}
	if opts.Debug {
		c.LogLevel = "debug"
	}
}

func (c *Config) validate() error {
	if c.GraphQLURL == "" {
		return fmt.Errorf("graphql url is required")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file is required")
	}
	if c.DesiredCount < 0 {
		return fmt.Errorf("desired count must not be negative, got %d", c.DesiredCount)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.ListDelay < 0 || c.DetailDelay < 0 {
		return fmt.Errorf("request delays must not be negative")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}

	c.DescriptionFormat = strings.ToLower(strings.TrimSpace(c.DescriptionFormat))
	if c.DescriptionFormat != defaultFormat && c.DescriptionFormat != descriptionMarkdown {
		return fmt.Errorf("unknown description format %q", c.DescriptionFormat)
	}

	if c.ScheduleCron != "" {
		if _, err := cron.ParseStandard(c.ScheduleCron); err != nil {
			return fmt.Errorf("invalid schedule %q: %w", c.ScheduleCron, err)
		}
	}
	return nil
}

func setString(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseIntDefault(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func parseDurationDefault(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
