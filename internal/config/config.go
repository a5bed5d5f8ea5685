// Package config loads the poeta configuration: which language to use,
// where its rule file and lexicon live, logging and the HTTP server.
//
// Values come from a YAML file, then POETA_* environment variables, then
// command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/poeta-go/grammar"
)

// Config is the complete configuration.
type Config struct {
	// Language selects the rules and language behaviour ("pl", "de", "en";
	// anything else gets the generic behaviour).
	Language string `yaml:"language"`
	// Rules is the rule file; see RulesPath.
	Rules string `yaml:"rules"`
	// Lexicon is an optional lexicon checked against the rules.
	Lexicon string `yaml:"lexicon"`

	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// LoggingConfig configures internal/logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig configures cmd/server.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	Watch           bool          `yaml:"watch"`
	WatchDebounce   time.Duration `yaml:"watch_debounce"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MetricsPath     string        `yaml:"metrics_path"`
}

const (
	DefaultLanguage        = "pl"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultAddress         = ":8080"
	DefaultWatchDebounce   = 200 * time.Millisecond
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMetricsPath     = "/metrics"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every empty field.
func ApplyDefaults(cfg *Config) {
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = DefaultAddress
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Server.WatchDebounce == 0 {
		cfg.Server.WatchDebounce = DefaultWatchDebounce
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MetricsPath == "" {
		cfg.Server.MetricsPath = DefaultMetricsPath
	}
}

// RulesPath is the rule file to load: Rules, or "<language>.aff".
func (c *Config) RulesPath() string {
	if c.Rules != "" {
		return c.Rules
	}
	return c.Language + ".aff"
}

// Load reads path (a missing file is not an error when optional is true),
// applies POETA_* overrides and defaults, and validates the result.
func Load(path string, optional bool) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
			}
		case optional && errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	ApplyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from files into the environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("POETA_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("POETA_RULES"); v != "" {
		cfg.Rules = v
	}
	if v := os.Getenv("POETA_LEXICON"); v != "" {
		cfg.Lexicon = v
	}
	if v := os.Getenv("POETA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("POETA_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("POETA_SERVER_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("POETA_SERVER_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("POETA_SERVER_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Server.Watch = b
		}
	}
}

// FieldError is a rejected configuration field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError found by Validate.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "configuration validation failed: " + e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:", len(e.Errors))
	for _, fe := range e.Errors {
		sb.WriteString("\n  - " + fe.Error())
	}
	return sb.String()
}

var logLevels = []string{"debug", "info", "warn", "error", "fatal"}

// Validate checks cfg after defaults have been applied.
func Validate(cfg *Config) error {
	var errs []FieldError
	if !grammar.KnownLanguage(cfg.Language) && cfg.Language != "generic" {
		errs = append(errs, FieldError{"language", fmt.Sprintf("unknown language %q (known: %s, generic)",
			cfg.Language, strings.Join(grammar.LanguageCodes(), ", "))})
	}
	if !contains(logLevels, strings.ToLower(cfg.Logging.Level)) {
		errs = append(errs, FieldError{"logging.level", fmt.Sprintf("unknown level %q", cfg.Logging.Level)})
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "text", "json", "logfmt":
	default:
		errs = append(errs, FieldError{"logging.format", fmt.Sprintf("unknown format %q", cfg.Logging.Format)})
	}
	if cfg.Server.WatchDebounce < 0 {
		errs = append(errs, FieldError{"server.watch_debounce", "must not be negative"})
	}
	if !strings.HasPrefix(cfg.Server.MetricsPath, "/") {
		errs = append(errs, FieldError{"server.metrics_path", "must start with /"})
	}
	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
