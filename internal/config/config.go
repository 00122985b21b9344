// Package config provides configuration loading and validation for the
// audit agent. Values come from a JSON file, environment variables, and CLI
// flags, merged in that order; the merged config is passed explicitly into
// each component at construction.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Snakegate/ux-wcag-agent/internal/fetch"
)

// Defaults for parameters the source behavior leaves open. They are
// configuration, not business logic: deployments tune them per environment.
const (
	DefaultPort            = 8080
	DefaultFetchTimeoutSec = 60
	DefaultSettleDelaySec  = 3
	DefaultEvalTimeoutSec  = 120
)

// Config represents the agent configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or come from
// the environment.
type Config struct {
	// Server
	Port int `json:"port,omitempty"`

	// Credentials
	GeminiAPIKey      string `json:"gemini_api_key,omitempty"`        // Evaluator calls
	NotionToken       string `json:"notion_api_key,omitempty"`        // Notion exporter
	NotionDatabaseID  string `json:"notion_database_id,omitempty"`    // Target Notion database
	GoogleCredentials string `json:"google_credentials,omitempty"`    // Service account JSON path
	SpreadsheetID     string `json:"sheets_spreadsheet_id,omitempty"` // Target spreadsheet

	// Behavior
	Model           string `json:"model,omitempty"`            // Override the evaluator model
	DisableBrowser  bool   `json:"disable_browser,omitempty"`  // Plain HTTP fetch, no screenshot
	Verbose         bool   `json:"verbose,omitempty"`          // Detailed debug output
	FetchTimeoutSec int    `json:"fetch_timeout_seconds,omitempty"`
	SettleDelaySec  int    `json:"settle_delay_seconds,omitempty"`
	EvalTimeoutSec  int    `json:"eval_timeout_seconds,omitempty"`
}

// Load loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Used as the defaults
// layer under a config file and CLI flags.
func FromEnv() Config {
	cfg := Config{
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		NotionToken:       os.Getenv("NOTION_API_KEY"),
		NotionDatabaseID:  os.Getenv("NOTION_DATABASE_ID"),
		GoogleCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		SpreadsheetID:     os.Getenv("SHEETS_SPREADSHEET_ID"),
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	return cfg
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. CLI flags should always win for bools, so bools are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.NotionToken == "" {
		result.NotionToken = defaults.NotionToken
	}
	if result.NotionDatabaseID == "" {
		result.NotionDatabaseID = defaults.NotionDatabaseID
	}
	if result.GoogleCredentials == "" {
		result.GoogleCredentials = defaults.GoogleCredentials
	}
	if result.SpreadsheetID == "" {
		result.SpreadsheetID = defaults.SpreadsheetID
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.FetchTimeoutSec == 0 {
		result.FetchTimeoutSec = defaults.FetchTimeoutSec
	}
	if result.SettleDelaySec == 0 {
		result.SettleDelaySec = defaults.SettleDelaySec
	}
	if result.EvalTimeoutSec == 0 {
		result.EvalTimeoutSec = defaults.EvalTimeoutSec
	}

	return result
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0, 65535]")
	}
	if c.FetchTimeoutSec < 0 {
		return fmt.Errorf("config error: 'fetch_timeout_seconds' must be non-negative")
	}
	if c.SettleDelaySec < 0 {
		return fmt.Errorf("config error: 'settle_delay_seconds' must be non-negative")
	}
	if c.EvalTimeoutSec < 0 {
		return fmt.Errorf("config error: 'eval_timeout_seconds' must be non-negative")
	}
	if c.GoogleCredentials != "" {
		if _, err := os.Stat(c.GoogleCredentials); os.IsNotExist(err) {
			return fmt.Errorf("config error: google credentials file not found: %s", c.GoogleCredentials)
		}
	}
	return nil
}

// FetchOptions builds fetch options from the configured timeouts.
func (c *Config) FetchOptions() *fetch.Options {
	opts := fetch.DefaultOptions()
	if c.FetchTimeoutSec > 0 {
		opts.Timeout = time.Duration(c.FetchTimeoutSec) * time.Second
	}
	if c.SettleDelaySec > 0 {
		opts.SettleDelay = time.Duration(c.SettleDelaySec) * time.Second
	}
	opts.Verbose = c.Verbose
	return opts
}

// EvalTimeout returns the evaluator timeout as a duration.
func (c *Config) EvalTimeout() time.Duration {
	if c.EvalTimeoutSec > 0 {
		return time.Duration(c.EvalTimeoutSec) * time.Second
	}
	return time.Duration(DefaultEvalTimeoutSec) * time.Second
}
