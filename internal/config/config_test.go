package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		wantErr     bool
		expectedCfg *Config
	}{
		{
			name: "valid config with all env vars",
			envVars: map[string]string{
				"GITHUB_API_URL":             "http://ghe.local/api/v3/",
				"GITHUB_USERNAME":            "acme",
				"GITHUB_TOKEN":               "token123",
				"GITHUB_EXCLUDE_REPOS":       "dotfiles, acme.github.io,,",
				"GITHUB_REQUESTS_PER_SECOND": "2.5",
				"ENRICH_CONCURRENCY":         "8",
				"SAMPLE_DATA_FALLBACK":       "false",
				"NATS_URL":                   "nats://test:4222",
				"NATS_SUBJECT":               "test.projects",
				"CRON_SCHEDULE":              "0 */6 * * *",
				"RUN_ON_STARTUP":             "true",
				"HTTP_ADDR":                  ":9090",
				"CORS_ALLOWED_ORIGINS":       "https://acme.dev,https://www.acme.dev",
				"SITE_CONTENT_FILE":          "content/site.yaml",
				"APP_ENV":                    "production",
				"LOG_LEVEL":                  "debug",
			},
			expectedCfg: &Config{
				GitHubAPIURL:       "http://ghe.local/api/v3/",
				GitHubToken:        "token123",
				GitHubUsername:     "acme",
				ExcludedRepos:      []string{"dotfiles", "acme.github.io"},
				RequestsPerSecond:  2.5,
				EnrichConcurrency:  8,
				SampleDataFallback: false,
				NATSUrl:            "nats://test:4222",
				NATSSubject:        "test.projects",
				CronSchedule:       "0 */6 * * *",
				RunOnStartup:       true,
				HTTPAddr:           ":9090",
				AllowedOrigins:     []string{"https://acme.dev", "https://www.acme.dev"},
				SiteContentFile:    "content/site.yaml",
				Environment:        "production",
				LogLevel:           "debug",
			},
		},
		{
			name: "valid config with defaults",
			envVars: map[string]string{
				"GITHUB_USERNAME": "acme",
			},
			expectedCfg: &Config{
				GitHubAPIURL:       "https://api.github.com/",
				GitHubUsername:     "acme",
				EnrichConcurrency:  5,
				SampleDataFallback: true,
				NATSUrl:            "nats://localhost:4222",
				NATSSubject:        "portfolio.projects",
				CronSchedule:       "0 * * * *",
				HTTPAddr:           ":8080",
				AllowedOrigins:     []string{"*"},
				SiteContentFile:    "site.yaml",
				Environment:        "development",
				LogLevel:           "info",
			},
		},
		{
			name:    "missing username still loads",
			envVars: map[string]string{},
			expectedCfg: &Config{
				GitHubAPIURL:       "https://api.github.com/",
				EnrichConcurrency:  5,
				SampleDataFallback: true,
				NATSUrl:            "nats://localhost:4222",
				NATSSubject:        "portfolio.projects",
				CronSchedule:       "0 * * * *",
				HTTPAddr:           ":8080",
				AllowedOrigins:     []string{"*"},
				SiteContentFile:    "site.yaml",
				Environment:        "development",
				LogLevel:           "info",
			},
		},
		{
			name: "malformed concurrency",
			envVars: map[string]string{
				"GITHUB_USERNAME":    "acme",
				"ENRICH_CONCURRENCY": "many",
			},
			wantErr: true,
		},
		{
			name: "malformed run on startup",
			envVars: map[string]string{
				"GITHUB_USERNAME": "acme",
				"RUN_ON_STARTUP":  "sometimes",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			clearEnv()

			// Set test environment variables
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			defer clearEnv()

			cfg, err := Load()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedCfg, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{GitHubUsername: "acme", EnrichConcurrency: 5},
		},
		{
			name:    "missing username",
			cfg:     Config{EnrichConcurrency: 5},
			wantErr: "GITHUB_USERNAME",
		},
		{
			name:    "zero concurrency",
			cfg:     Config{GitHubUsername: "acme"},
			wantErr: "ENRICH_CONCURRENCY",
		},
		{
			name:    "negative rate",
			cfg:     Config{GitHubUsername: "acme", EnrichConcurrency: 1, RequestsPerSecond: -1},
			wantErr: "GITHUB_REQUESTS_PER_SECOND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func clearEnv() {
	envVars := []string{
		"GITHUB_API_URL", "GITHUB_TOKEN", "GITHUB_USERNAME", "GITHUB_EXCLUDE_REPOS",
		"GITHUB_REQUESTS_PER_SECOND", "ENRICH_CONCURRENCY", "SAMPLE_DATA_FALLBACK",
		"NATS_URL", "NATS_SUBJECT", "CRON_SCHEDULE", "RUN_ON_STARTUP",
		"HTTP_ADDR", "CORS_ALLOWED_ORIGINS", "SITE_CONTENT_FILE", "APP_ENV", "LOG_LEVEL",
	}
	for _, env := range envVars {
		os.Unsetenv(env)
	}
}
