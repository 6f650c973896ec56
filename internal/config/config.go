package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	GitHubAPIURL      string
	GitHubToken       string
	GitHubUsername    string
	ExcludedRepos     []string
	RequestsPerSecond float64

	EnrichConcurrency  int
	SampleDataFallback bool

	NATSUrl      string
	NATSSubject  string
	CronSchedule string
	RunOnStartup bool

	// Server specific configuration
	HTTPAddr        string
	AllowedOrigins  []string
	SiteContentFile string

	Environment string
	LogLevel    string
}

// Load reads configuration from the environment (and a .env file when present).
// Missing values fall back to defaults; required fields are checked by Validate.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GitHubAPIURL:    os.Getenv("GITHUB_API_URL"),
		GitHubToken:     os.Getenv("GITHUB_TOKEN"),
		GitHubUsername:  strings.TrimSpace(os.Getenv("GITHUB_USERNAME")),
		ExcludedRepos:   splitList(os.Getenv("GITHUB_EXCLUDE_REPOS")),
		NATSUrl:         os.Getenv("NATS_URL"),
		NATSSubject:     os.Getenv("NATS_SUBJECT"),
		CronSchedule:    os.Getenv("CRON_SCHEDULE"),
		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		AllowedOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		SiteContentFile: os.Getenv("SITE_CONTENT_FILE"),
		Environment:     os.Getenv("APP_ENV"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
	}

	// Set defaults
	if cfg.GitHubAPIURL == "" {
		cfg.GitHubAPIURL = "https://api.github.com/"
	}
	if cfg.NATSUrl == "" {
		cfg.NATSUrl = "nats://localhost:4222"
	}
	if cfg.NATSSubject == "" {
		cfg.NATSSubject = "portfolio.projects"
	}
	if cfg.CronSchedule == "" {
		cfg.CronSchedule = "0 * * * *" // Hourly
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if cfg.SiteContentFile == "" {
		cfg.SiteContentFile = "site.yaml"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	var err error
	if cfg.RequestsPerSecond, err = getEnvAsFloat("GITHUB_REQUESTS_PER_SECOND", 0); err != nil {
		return nil, err
	}
	if cfg.EnrichConcurrency, err = getEnvAsInt("ENRICH_CONCURRENCY", 5); err != nil {
		return nil, err
	}
	if cfg.SampleDataFallback, err = getEnvAsBool("SAMPLE_DATA_FALLBACK", true); err != nil {
		return nil, err
	}
	if cfg.RunOnStartup, err = getEnvAsBool("RUN_ON_STARTUP", false); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the fields every command needs. It is called by the
// commands themselves rather than by Load.
func (c *Config) Validate() error {
	if c.GitHubUsername == "" {
		return fmt.Errorf("GITHUB_USERNAME environment variable is required")
	}
	if c.EnrichConcurrency < 1 {
		return fmt.Errorf("ENRICH_CONCURRENCY must be at least 1, got %d", c.EnrichConcurrency)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("GITHUB_REQUESTS_PER_SECOND must not be negative")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q", key, raw)
	}
	return value, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for %s: %q", key, raw)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for %s: %q", key, raw)
	}
	return value, nil
}
