// Package config provides centralized configuration for embedding
// applications. It loads settings from environment variables (with a .env
// file picked up when present), applies defaults, and validates everything up
// front to fail fast on misconfiguration.
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/csvcompare/csvcompare/internal/compare"
)

// Config holds all engine configuration.
// All settings can be configured via environment variables.
type Config struct {
	Compare CompareConfig
	Ingest  IngestConfig
	Logging LoggingConfig
}

// CompareConfig holds comparison policy defaults and execution settings.
type CompareConfig struct {
	// CaseInsensitive folds case when comparing text cells (default: false)
	CaseInsensitive bool `env:"COMPARE_CASE_INSENSITIVE" default:"false"`

	// TrimSpace strips surrounding whitespace from text cells before
	// comparing (default: false, whitespace differences are significant)
	TrimSpace bool `env:"COMPARE_TRIM_SPACE" default:"false"`

	// CoerceNumericText treats numeric-looking text as numbers (default: false)
	CoerceNumericText bool `env:"COMPARE_COERCE_NUMERIC_TEXT" default:"false"`

	// PolicyFile is an optional YAML policy file; when set it overrides the
	// three flags above
	PolicyFile string `env:"COMPARE_POLICY_FILE"`

	// Parallel evaluates rows across multiple goroutines (default: false)
	Parallel bool `env:"COMPARE_PARALLEL" default:"false"`

	// Workers caps parallel evaluation goroutines, 0 = GOMAXPROCS (default: 0)
	Workers int `env:"COMPARE_WORKERS" default:"0"`
}

// IngestConfig holds CSV parsing settings.
type IngestConfig struct {
	// MaxFileSize is the maximum allowed input size in bytes (default: 100MB)
	MaxFileSize int64 `env:"INGEST_MAX_FILE_SIZE" default:"104857600"`

	// Delimiter is the CSV field delimiter, one character (default: ",")
	Delimiter string `env:"INGEST_DELIMITER" default:","`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Policy assembles the comparison policy: from the YAML policy file when
// configured, otherwise from the individual flags.
func (c *Config) Policy() (compare.Policy, error) {
	if c.Compare.PolicyFile != "" {
		return compare.LoadPolicy(c.Compare.PolicyFile)
	}
	return compare.Policy{
		CaseInsensitive:   c.Compare.CaseInsensitive,
		TrimSpace:         c.Compare.TrimSpace,
		CoerceNumericText: c.Compare.CoerceNumericText,
	}, nil
}

// Comma returns the configured delimiter as a rune.
func (c *IngestConfig) Comma() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.Compare.Workers < 0 {
		errs = append(errs, "COMPARE_WORKERS must be non-negative")
	}

	if c.Ingest.MaxFileSize <= 0 {
		errs = append(errs, "INGEST_MAX_FILE_SIZE must be positive")
	}
	if utf8.RuneCountInString(c.Ingest.Delimiter) != 1 {
		errs = append(errs, fmt.Sprintf("INGEST_DELIMITER (%q) must be exactly one character", c.Ingest.Delimiter))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// String returns a string representation of the config for logging.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Compare: {CaseInsensitive: %v, TrimSpace: %v, CoerceNumericText: %v, PolicyFile: %q, Parallel: %v, Workers: %d}, Ingest: {MaxFileSize: %d, Delimiter: %q}, Logging: {Level: %q, Format: %q}}",
		c.Compare.CaseInsensitive, c.Compare.TrimSpace, c.Compare.CoerceNumericText,
		c.Compare.PolicyFile, c.Compare.Parallel, c.Compare.Workers,
		c.Ingest.MaxFileSize, c.Ingest.Delimiter,
		c.Logging.Level, c.Logging.Format,
	)
}
