// Package config provides configuration types, defaults and validation for rounds.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/rounds/internal/log"
	"github.com/zjrosen/rounds/internal/tracing"
)

// DefaultConfigPath is where a default config is written when none is found.
const DefaultConfigPath = ".rounds/config.yaml"

// Config holds all configuration options for rounds.
type Config struct {
	API     APIConfig      `mapstructure:"api"`
	Cache   CacheConfig    `mapstructure:"cache"`
	Session SessionConfig  `mapstructure:"session"`
	UI      UIConfig       `mapstructure:"ui"`
	Tracing tracing.Config `mapstructure:"tracing"`
	Debug   bool           `mapstructure:"debug"`
}

// APIConfig points the client at a hospital backend.
type APIConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	HospitalCode string        `mapstructure:"hospital_code"` // sent as the "code" header
	Timeout      time.Duration `mapstructure:"timeout"`
}

// CacheConfig controls the in-memory reference data cache.
type CacheConfig struct {
	DepartmentsTTL time.Duration `mapstructure:"departments_ttl"`
}

// SessionConfig controls where issued tokens are stored.
type SessionConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// DefaultDBPath returns ~/.rounds/rounds.db, or .rounds/rounds.db when the
// home directory is unavailable.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".rounds", "rounds.db")
	}
	return filepath.Join(home, ".rounds", "rounds.db")
}

// DefaultTracesFilePath returns ~/.config/rounds/traces/traces.jsonl or empty
// string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rounds", "traces", "traces.jsonl")
}

func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = DefaultTracesFilePath()

	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			DepartmentsTTL: 10 * time.Minute,
		},
		Session: SessionConfig{
			DBPath: DefaultDBPath(),
		},
		UI: UIConfig{
			MarkdownStyle: "dark",
		},
		Tracing: tc,
	}
}

// Validate checks the configuration for errors the app cannot recover from.
func (c Config) Validate() error {
	if err := ValidateAPI(c.API); err != nil {
		return err
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return err
	}
	switch c.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", c.UI.MarkdownStyle)
	}
	if c.Session.DBPath == "" {
		return fmt.Errorf("session.db_path is required")
	}
	return nil
}

// ValidateTUI is Validate plus the rules for running the form. The stdout
// exporter writes into the terminal the form is drawn on.
func (c Config) ValidateTUI() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Tracing.Enabled && c.Tracing.Exporter == tracing.ExporterStdout {
		return fmt.Errorf("tracing.exporter \"stdout\" cannot be used with the form; use \"file\" or \"otlp\"")
	}
	return nil
}

// ValidateAPI requires an absolute http(s) base URL and a hospital code.
func ValidateAPI(api APIConfig) error {
	if api.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(api.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) URL, got %q", api.BaseURL)
	}
	if strings.TrimSpace(api.HospitalCode) == "" {
		return fmt.Errorf("api.hospital_code is required (set it in the config file, ROUNDS_API_HOSPITAL_CODE or --hospital-code)")
	}
	if api.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %s", api.Timeout)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	switch tc.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
	}

	if tc.Enabled {
		if tc.Exporter == tracing.ExporterFile && tc.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tc.Exporter == tracing.ExporterOTLP && tc.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Rounds Configuration

# Hospital backend
api:
  base_url: http://localhost:8080
  # hospital_code: st-marys   # Sent as the "code" header on hospital-scoped calls
  timeout: 10s

# Reference data cache
cache:
  departments_ttl: 10m

# Session token storage
# session:
#   db_path: ~/.rounds/rounds.db

# UI settings
ui:
  markdown_style: dark  # Markdown rendering style: "dark" (default) or "light"

# Tracing of backend calls (disabled by default)
# tracing:
#   enabled: true
#   exporter: file      # none, file, stdout, otlp
#   file_path: ~/.config/rounds/traces/traces.jsonl
#
# Example: Send traces to Jaeger via OTLP
# tracing:
#   enabled: true
#   exporter: otlp
#   otlp_endpoint: jaeger.internal:4317
#   sample_rate: 0.1  # Sample 10% of traces
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
