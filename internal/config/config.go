// Package config loads and validates arkscan configuration. Settings come
// from an optional YAML file; CLI flags override file values; file values
// override defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = "arkscan.yaml"

// LogConfig holds rotation settings for the scan log destination.
type LogConfig struct {
	// MaxSizeMB is the size at which the scan log rotates.
	MaxSizeMB int `yaml:"max_size_mb"`

	// MaxBackups is the number of rotated logs to keep.
	MaxBackups int `yaml:"max_backups"`

	// MaxAgeDays is the age at which rotated logs are deleted.
	MaxAgeDays int `yaml:"max_age_days"`
}

// Config represents arkscan configuration options.
type Config struct {
	// Keyword is the literal substring searched for, per line.
	Keyword string `yaml:"keyword"`

	// CaseInsensitive folds keyword and content before matching.
	CaseInsensitive bool `yaml:"case_insensitive"`

	// DirsFile is a newline-delimited list of directory roots to walk.
	DirsFile string `yaml:"dirs_file"`

	// FilesFile is a newline-delimited list of files to process directly.
	FilesFile string `yaml:"files_file"`

	// Delay is the pause applied after each file's terminal transition.
	// Zero disables it.
	Delay time.Duration `yaml:"delay"`

	// ToolTimeout bounds each external listing tool invocation.
	ToolTimeout time.Duration `yaml:"tool_timeout"`

	// LogLevel sets logging verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// OutputDir holds the ledger, results, missing and log destinations.
	OutputDir string `yaml:"output_dir"`

	// Log holds rotation settings for the scan log.
	Log LogConfig `yaml:"log"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Keyword:         "swagger",
		CaseInsensitive: false,
		Delay:           100 * time.Millisecond,
		ToolTimeout:     30 * time.Second,
		LogLevel:        "info",
		OutputDir:       ".arkscan",
		Log: LogConfig{
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// LoadConfig loads configuration from the specified file path. If the file
// doesn't exist, returns default configuration without error. If the file
// exists but is malformed, returns an error. File values merge over
// defaults; absent fields keep their default.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	// Temporary struct so durations can be written as "100ms" / "30s".
	type yamlConfig struct {
		Keyword         *string   `yaml:"keyword"`
		CaseInsensitive *bool     `yaml:"case_insensitive"`
		DirsFile        string    `yaml:"dirs_file"`
		FilesFile       string    `yaml:"files_file"`
		Delay           *string   `yaml:"delay"`
		ToolTimeout     *string   `yaml:"tool_timeout"`
		LogLevel        string    `yaml:"log_level"`
		OutputDir       string    `yaml:"output_dir"`
		Log             LogConfig `yaml:"log"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if yamlCfg.Keyword != nil {
		cfg.Keyword = *yamlCfg.Keyword
	}
	if yamlCfg.CaseInsensitive != nil {
		cfg.CaseInsensitive = *yamlCfg.CaseInsensitive
	}
	if yamlCfg.DirsFile != "" {
		cfg.DirsFile = yamlCfg.DirsFile
	}
	if yamlCfg.FilesFile != "" {
		cfg.FilesFile = yamlCfg.FilesFile
	}
	if yamlCfg.Delay != nil {
		delay, err := time.ParseDuration(*yamlCfg.Delay)
		if err != nil {
			return nil, fmt.Errorf("invalid delay %q: %w", *yamlCfg.Delay, err)
		}
		cfg.Delay = delay
	}
	if yamlCfg.ToolTimeout != nil {
		timeout, err := time.ParseDuration(*yamlCfg.ToolTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid tool_timeout %q: %w", *yamlCfg.ToolTimeout, err)
		}
		cfg.ToolTimeout = timeout
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.OutputDir != "" {
		cfg.OutputDir = yamlCfg.OutputDir
	}
	if yamlCfg.Log.MaxSizeMB > 0 {
		cfg.Log.MaxSizeMB = yamlCfg.Log.MaxSizeMB
	}
	if yamlCfg.Log.MaxBackups > 0 {
		cfg.Log.MaxBackups = yamlCfg.Log.MaxBackups
	}
	if yamlCfg.Log.MaxAgeDays > 0 {
		cfg.Log.MaxAgeDays = yamlCfg.Log.MaxAgeDays
	}

	return cfg, nil
}

// Validate checks the configuration for values the scan cannot run with.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Keyword, validation.Required),
		validation.Field(&c.Delay, validation.Min(time.Duration(0))),
		validation.Field(&c.ToolTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.LogLevel, validation.In("", "trace", "debug", "info", "warn", "error")),
		validation.Field(&c.OutputDir, validation.Required),
	)
}

// Destination paths inside OutputDir. These names are stable: the ledger
// and report files from earlier runs must be found again on resume.

// LedgerPath is the progress ledger destination.
func (c *Config) LedgerPath() string { return filepath.Join(c.OutputDir, "progress.log") }

// ResultsPath is the match results destination.
func (c *Config) ResultsPath() string { return filepath.Join(c.OutputDir, "results.log") }

// MissingPath is the missing/error destination.
func (c *Config) MissingPath() string { return filepath.Join(c.OutputDir, "missing.log") }

// ScanLogPath is the human-readable event log destination.
func (c *Config) ScanLogPath() string { return filepath.Join(c.OutputDir, "scan.log") }

// HistoryPath is the run-history database.
func (c *Config) HistoryPath() string { return filepath.Join(c.OutputDir, "history.db") }

// LockPath is the advisory lock guarding against concurrent scanners.
func (c *Config) LockPath() string { return filepath.Join(c.OutputDir, "scan.lock") }
