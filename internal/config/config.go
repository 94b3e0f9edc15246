// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Output
	Output     string `json:"output,omitempty"`      // Output file path (default: stdout)
	JSONOutput bool   `json:"json_output,omitempty"` // Emit structured JSON instead of rendered text
	WorkDir    string `json:"work_dir,omitempty"`    // Working directory for downloaded assets

	// Search oracle
	SearchAPIKey string `json:"search_api_key,omitempty"` // Google Custom Search API key
	SearchCX     string `json:"search_cx,omitempty"`      // Google Custom Search engine ID
	UseBrowser   bool   `json:"use_browser,omitempty"`    // Render search pages with a headless browser

	// Tunables for name resolution and content synthesis
	OracleTimeoutSeconds int     `json:"oracle_timeout_seconds,omitempty"` // Per-query search timeout
	RepetitionThreshold  int     `json:"repetition_threshold,omitempty"`   // Single-source mentions needed for the repetition criterion
	SimilarityThreshold  float64 `json:"similarity_threshold,omitempty"`   // Near-match merge threshold (0.0-1.0)
	ChapterIntervalMin   int     `json:"chapter_interval_minutes,omitempty"`
	MaxKeywords          int     `json:"max_keywords,omitempty"`
	SummaryMaxWords      int     `json:"summary_max_words,omitempty"`
	MaxHashtags          int     `json:"max_hashtags,omitempty"`

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL (optional persistence)
}

// Defaults returns the documented default configuration. The similarity and
// keyword constants are deliberate fixed choices, tunable here rather than
// hard-coded at the call sites.
func Defaults() Config {
	return Config{
		OracleTimeoutSeconds: 10,
		RepetitionThreshold:  3,
		SimilarityThreshold:  0.85,
		ChapterIntervalMin:   4,
		MaxKeywords:          15,
		SummaryMaxWords:      150,
		MaxHashtags:          8,
	}
}

// OracleTimeout returns the per-query search timeout as a duration.
func (c *Config) OracleTimeout() time.Duration {
	return time.Duration(c.OracleTimeoutSeconds) * time.Second
}

// ChapterInterval returns the auto-segmentation interval as a duration.
func (c *Config) ChapterInterval() time.Duration {
	return time.Duration(c.ChapterIntervalMin) * time.Minute
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.OracleTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'oracle_timeout_seconds' must be non-negative")
	}
	if c.RepetitionThreshold < 0 {
		return fmt.Errorf("config error: 'repetition_threshold' must be non-negative")
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("config error: 'similarity_threshold' must be between 0.0 and 1.0")
	}
	if c.ChapterIntervalMin < 0 {
		return fmt.Errorf("config error: 'chapter_interval_minutes' must be non-negative")
	}
	if c.MaxKeywords < 0 {
		return fmt.Errorf("config error: 'max_keywords' must be non-negative")
	}
	if c.SummaryMaxWords < 0 {
		return fmt.Errorf("config error: 'summary_max_words' must be non-negative")
	}

	if c.WorkDir != "" {
		if info, err := os.Stat(c.WorkDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: work_dir is not a directory: %s", c.WorkDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.WorkDir == "" {
		result.WorkDir = defaults.WorkDir
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchCX == "" {
		result.SearchCX = defaults.SearchCX
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.OracleTimeoutSeconds == 0 {
		result.OracleTimeoutSeconds = defaults.OracleTimeoutSeconds
	}
	if result.RepetitionThreshold == 0 {
		result.RepetitionThreshold = defaults.RepetitionThreshold
	}
	if result.SimilarityThreshold == 0 {
		result.SimilarityThreshold = defaults.SimilarityThreshold
	}
	if result.ChapterIntervalMin == 0 {
		result.ChapterIntervalMin = defaults.ChapterIntervalMin
	}
	if result.MaxKeywords == 0 {
		result.MaxKeywords = defaults.MaxKeywords
	}
	if result.SummaryMaxWords == 0 {
		result.SummaryMaxWords = defaults.SummaryMaxWords
	}
	if result.MaxHashtags == 0 {
		result.MaxHashtags = defaults.MaxHashtags
	}

	// Booleans: true wins (flags can only turn behavior on)
	result.JSONOutput = result.JSONOutput || defaults.JSONOutput
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
