// Package config loads the ghaudit command configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables. A .env file is read into the process environment
// first and never overrides variables that are already set.
package config

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/ghaudit"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
)

// EnvPrefix prefixes every ghaudit-specific environment variable.
const EnvPrefix = "GHAUDIT_"

// ProviderType selects the Provider implementation.
type ProviderType string

const (
	// ProviderSDK talks to the REST API through go-github.
	ProviderSDK ProviderType = "sdk"

	// ProviderCLI shells out to the gh CLI.
	ProviderCLI ProviderType = "cli"
)

// Config is the complete command configuration.
type Config struct {
	// Credentials and scope
	Token         string   `yaml:"token" koanf:"token"`
	Enterprise    string   `yaml:"enterprise" koanf:"enterprise"`
	APIURL        string   `yaml:"api_url" koanf:"api_url"`
	Organizations []string `yaml:"organizations" koanf:"organizations"`

	// Collection
	Provider       ProviderType  `yaml:"provider" koanf:"provider"`
	Delay          time.Duration `yaml:"delay" koanf:"delay"`
	Concurrency    int           `yaml:"concurrency" koanf:"concurrency"`
	OrgConcurrency int           `yaml:"org_concurrency" koanf:"org_concurrency"`
	MaxRetries     int           `yaml:"max_retries" koanf:"max_retries"`
	CacheTTL       time.Duration `yaml:"cache_ttl" koanf:"cache_ttl"`

	// Output
	Output string `yaml:"output" koanf:"output"`
	Report string `yaml:"report" koanf:"report"`

	// Logging
	LogLevel  string `yaml:"log_level" koanf:"log_level"`
	LogFormat string `yaml:"log_format" koanf:"log_format"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Provider:       ProviderSDK,
		Delay:          ghaudit.DefaultDelay,
		Concurrency:    1,
		OrgConcurrency: 1,
		MaxRetries:     ghaudit.DefaultMaxRetries,
		CacheTTL:       ghaudit.DefaultProfileCacheTTL,
		Output:         "users-data.json",
		Report:         "issue-content.md",
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Loader reads configuration from a YAML file and the environment.
type Loader struct {
	// Path is the YAML config file. A missing file is not an error.
	Path string

	// DotEnv is the .env file loaded before the environment overlay.
	// A missing file is not an error.
	DotEnv string
}

// Load builds the configuration. It does not validate it.
func (l Loader) Load() (*Config, error) {
	if l.DotEnv != "" {
		if err := godotenv.Load(l.DotEnv); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			wrapped := errors.Wrap(err, errors.CodeInvalidConfig, "failed to read .env file")
			return nil, errors.WithContext(wrapped, "path", l.DotEnv)
		}
	}

	k := koanf.New(".")
	cfg := Default()

	if l.Path != "" {
		if _, err := os.Stat(l.Path); err == nil {
			if err := k.Load(file.Provider(l.Path), yaml.Parser()); err != nil {
				wrapped := errors.Wrap(err, errors.CodeInvalidConfig, "failed to read config file")
				return nil, errors.WithContext(wrapped, "path", l.Path)
			}
		} else if !os.IsNotExist(err) {
			wrapped := errors.Wrap(err, errors.CodeInvalidConfig, "failed to access config file")
			return nil, errors.WithContext(wrapped, "path", l.Path)
		}
	}

	// GITHUB_TOKEN -> token, GITHUB_ENTERPRISE -> enterprise
	if err := k.Load(env.ProviderWithValue("GITHUB_", ".", githubEnv), nil); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to load environment")
	}

	// GHAUDIT_ORG_CONCURRENCY -> org_concurrency, etc.
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", ghauditEnv), nil); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to load environment")
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to decode configuration")
	}

	return cfg, nil
}

// Load reads path and the environment using the default .env location.
func Load(path string) (*Config, error) {
	return Loader{Path: path, DotEnv: ".env"}.Load()
}

func githubEnv(key, value string) (string, interface{}) {
	switch key {
	case "GITHUB_TOKEN":
		return "token", value
	case "GITHUB_ENTERPRISE":
		return "enterprise", value
	}
	return "", nil
}

func ghauditEnv(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key == "organizations" {
		return key, splitList(value)
	}
	return key, value
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	return lo.FilterMap(strings.Split(s, ","), func(item string, _ int) (string, bool) {
		item = strings.TrimSpace(item)
		return item, item != ""
	})
}

var validProviders = map[ProviderType]bool{
	ProviderSDK: true,
	ProviderCLI: true,
}

var validLogFormats = map[string]bool{
	"text": true,
	"json": true,
}

// Validate checks that the configuration can start a run. A missing token
// is reported before anything touches the network.
func (c *Config) Validate() error {
	if c.Token == "" {
		return invalid("token", "GITHUB_TOKEN is required")
	}
	if !validProviders[c.Provider] {
		return invalid("provider", "must be one of sdk, cli")
	}
	if c.Delay < 0 {
		return invalid("delay", "must be non-negative")
	}
	if c.Concurrency < 1 {
		return invalid("concurrency", "must be at least 1")
	}
	if c.OrgConcurrency < 1 {
		return invalid("org_concurrency", "must be at least 1")
	}
	if c.MaxRetries < 0 {
		return invalid("max_retries", "must be non-negative")
	}
	if c.CacheTTL < 0 {
		return invalid("cache_ttl", "must be non-negative")
	}
	if c.Output == "" {
		return invalid("output", "is required")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if !validLogFormats[c.LogFormat] {
		return invalid("log_format", "must be one of text, json")
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, invalid("log_level", "must be one of debug, info, warn, error")
	}
	return level, nil
}

func invalid(field, reason string) error {
	err := errors.Newf(errors.CodeInvalidConfig, "invalid configuration: %s %s", field, reason)
	return errors.WithContext(err, "field", field)
}
