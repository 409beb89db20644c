package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"GITHUB_TOKEN",
	"GITHUB_ENTERPRISE",
	"GHAUDIT_API_URL",
	"GHAUDIT_PROVIDER",
	"GHAUDIT_DELAY",
	"GHAUDIT_CONCURRENCY",
	"GHAUDIT_ORG_CONCURRENCY",
	"GHAUDIT_MAX_RETRIES",
	"GHAUDIT_CACHE_TTL",
	"GHAUDIT_ORGANIZATIONS",
	"GHAUDIT_OUTPUT",
	"GHAUDIT_REPORT",
	"GHAUDIT_LOG_LEVEL",
	"GHAUDIT_LOG_FORMAT",
}

// cleanEnv unsets every recognized variable for the duration of the test.
func cleanEnv(t *testing.T) {
	t.Helper()

	for _, key := range envKeys {
		t.Setenv(key, "") // restores the original value on cleanup
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cleanEnv(t)

	cfg, err := Loader{Path: filepath.Join(t.TempDir(), "missing.yaml")}.Load()

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 100*time.Millisecond, cfg.Delay)
	assert.Equal(t, ProviderSDK, cfg.Provider)
	assert.Equal(t, "users-data.json", cfg.Output)
	assert.Equal(t, "issue-content.md", cfg.Report)
}

func TestLoad_File(t *testing.T) {
	cleanEnv(t)

	path := writeFile(t, "ghaudit.yaml", `
token: file-token
enterprise: acme-ent
provider: cli
delay: 250ms
concurrency: 4
org_concurrency: 2
cache_ttl: 30m
organizations:
  - alpha
  - beta
output: out/snapshot.yaml
log_level: debug
log_format: json
`)

	cfg, err := Loader{Path: path}.Load()

	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, "acme-ent", cfg.Enterprise)
	assert.Equal(t, ProviderCLI, cfg.Provider)
	assert.Equal(t, 250*time.Millisecond, cfg.Delay)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 2, cfg.OrgConcurrency)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"alpha", "beta"}, cfg.Organizations)
	assert.Equal(t, "out/snapshot.yaml", cfg.Output)
	assert.Equal(t, "issue-content.md", cfg.Report, "unset keys keep their default")
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	cleanEnv(t)

	path := writeFile(t, "ghaudit.yaml", "token: file-token\nconcurrency: 4\n")
	t.Setenv("GITHUB_TOKEN", "env-token")
	t.Setenv("GITHUB_ENTERPRISE", "env-ent")
	t.Setenv("GHAUDIT_CONCURRENCY", "8")
	t.Setenv("GHAUDIT_ORG_CONCURRENCY", "3")
	t.Setenv("GHAUDIT_DELAY", "0s")
	t.Setenv("GHAUDIT_MAX_RETRIES", "0")
	t.Setenv("GHAUDIT_ORGANIZATIONS", "alpha, beta,,gamma ")
	t.Setenv("GHAUDIT_API_URL", "https://github.example.com/api/v3/")

	cfg, err := Loader{Path: path}.Load()

	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, "env-ent", cfg.Enterprise)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 3, cfg.OrgConcurrency)
	assert.Zero(t, cfg.Delay)
	assert.Zero(t, cfg.MaxRetries)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, cfg.Organizations)
	assert.Equal(t, "https://github.example.com/api/v3/", cfg.APIURL)
}

func TestLoad_DotEnv(t *testing.T) {
	cleanEnv(t)

	dotenv := writeFile(t, ".env", "GITHUB_TOKEN=dotenv-token\nGHAUDIT_REPORT=dotenv.md\n")
	t.Setenv("GHAUDIT_REPORT", "env.md")

	cfg, err := Loader{DotEnv: dotenv}.Load()

	require.NoError(t, err)
	assert.Equal(t, "dotenv-token", cfg.Token)
	assert.Equal(t, "env.md", cfg.Report, ".env never overrides the environment")
}

func TestLoad_MissingDotEnv(t *testing.T) {
	cleanEnv(t)

	_, err := Loader{DotEnv: filepath.Join(t.TempDir(), ".env")}.Load()

	assert.NoError(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	cleanEnv(t)

	path := writeFile(t, "ghaudit.yaml", "token: [unterminated\n")

	_, err := Loader{Path: path}.Load()

	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := Default()
		cfg.Token = "ghp_test"
		return cfg
	}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing token", mutate: func(c *Config) { c.Token = "" }, wantField: "token"},
		{name: "unknown provider", mutate: func(c *Config) { c.Provider = "graphql" }, wantField: "provider"},
		{name: "negative delay", mutate: func(c *Config) { c.Delay = -time.Second }, wantField: "delay"},
		{name: "zero concurrency", mutate: func(c *Config) { c.Concurrency = 0 }, wantField: "concurrency"},
		{name: "zero org concurrency", mutate: func(c *Config) { c.OrgConcurrency = 0 }, wantField: "org_concurrency"},
		{name: "negative retries", mutate: func(c *Config) { c.MaxRetries = -1 }, wantField: "max_retries"},
		{name: "negative cache ttl", mutate: func(c *Config) { c.CacheTTL = -time.Minute }, wantField: "cache_ttl"},
		{name: "empty output", mutate: func(c *Config) { c.Output = "" }, wantField: "output"},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantField: "log_level"},
		{name: "unknown log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantField: "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))

			var platformErr errors.PlatformError
			require.True(t, errors.As(err, &platformErr))
			assert.Equal(t, tt.wantField, platformErr.Context()["field"])
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.LogLevel = "warn"

	level, err := cfg.SlogLevel()

	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}
