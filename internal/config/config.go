package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Percent bases for the language section
const (
	PercentBaseProfile = "profile"
	PercentBaseListed  = "listed"
)

// Config holds the application configuration
type Config struct {
	GitHubUser   string
	GitHubAPIURL string
	GitHubToken  string
	HTTPTimeout  time.Duration
	// Report shape
	TopLanguages int
	TopStarred   int
	PercentBase  string
	// NATS and scheduling
	NATSUrl        string
	NATSSubject    string
	RequestSubject string
	CronSchedule   string
	RunOnStartup   bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		GitHubUser:     os.Getenv("GITHUB_USER"),
		GitHubAPIURL:   os.Getenv("GITHUB_API_URL"),
		GitHubToken:    os.Getenv("GITHUB_TOKEN"),
		PercentBase:    strings.ToLower(os.Getenv("PERCENT_BASE")),
		NATSUrl:        os.Getenv("NATS_URL"),
		NATSSubject:    os.Getenv("NATS_SUBJECT"),
		RequestSubject: os.Getenv("REQUEST_SUBJECT"),
		CronSchedule:   os.Getenv("CRON_SCHEDULE"),
	}

	// Set defaults
	if cfg.GitHubAPIURL == "" {
		cfg.GitHubAPIURL = "https://api.github.com/"
	}
	if !strings.HasSuffix(cfg.GitHubAPIURL, "/") {
		cfg.GitHubAPIURL += "/"
	}
	if cfg.PercentBase == "" {
		cfg.PercentBase = PercentBaseProfile
	}
	if cfg.NATSSubject == "" {
		cfg.NATSSubject = "github.reports"
	}
	if cfg.RequestSubject == "" {
		cfg.RequestSubject = "github.reports.requests"
	}

	var err error
	if cfg.TopLanguages, err = intFromEnv("TOP_LANGUAGES", 2); err != nil {
		return nil, err
	}
	if cfg.TopStarred, err = intFromEnv("TOP_STARRED", 3); err != nil {
		return nil, err
	}

	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		cfg.HTTPTimeout, err = time.ParseDuration(raw)
		if err != nil || cfg.HTTPTimeout < 0 {
			return nil, fmt.Errorf("HTTP_TIMEOUT must be a non-negative duration, got %q", raw)
		}
	}

	// Validate
	if cfg.PercentBase != PercentBaseProfile && cfg.PercentBase != PercentBaseListed {
		return nil, fmt.Errorf("PERCENT_BASE must be %q or %q, got %q",
			PercentBaseProfile, PercentBaseListed, cfg.PercentBase)
	}

	if os.Getenv("RUN_ON_STARTUP") == "true" {
		cfg.RunOnStartup = true
	}

	return cfg, nil
}

func intFromEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, raw)
	}
	return n, nil
}
