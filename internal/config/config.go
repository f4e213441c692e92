// Package config loads and exposes application configuration (TOML).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Default configuration values used when a field is missing in TOML.
const (
	DefaultConfigPath     = "config.toml"
	DefaultHomeDirName    = ".agentcoin-fun"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultCurve          = "p256"
	DefaultRetryMax       = 3
	DefaultRetryDelayMs   = 1000
	DefaultRetryLogErrors = true
)

// Environment variables that override file values.
const (
	EnvConfigPath        = "CONFIG_PATH"
	EnvHomeDir           = "AGENTCOIN_FUN_DIR"
	EnvMonitoringEnabled = "AGENTCOIN_MONITORING_ENABLED"
	EnvLogLevel          = "LOG_LEVEL"
	EnvLogFormat         = "LOG_FORMAT"
)

// Config is the root application configuration loaded from TOML.
type Config struct {
	Log        LogConfig        `toml:"log"`
	Paths      PathsConfig      `toml:"paths"`
	Retry      RetryConfig      `toml:"retry"`
	Signature  SignatureConfig  `toml:"signature"`
	Monitoring MonitoringConfig `toml:"monitoring"`
}

// LogConfig holds logging level and format (e.g. level=info, format=text).
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// PathsConfig holds the agent home directory holding keys, state and code.
type PathsConfig struct {
	HomeDir string `toml:"home_dir"`
}

// RetryConfig holds the fixed-delay retry defaults.
type RetryConfig struct {
	MaxRetries int  `toml:"max_retries"`
	DelayMs    int  `toml:"delay_ms"`
	LogErrors  bool `toml:"log_errors"`
}

// Delay returns DelayMs as a duration.
func (c RetryConfig) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}

// SignatureConfig names the elliptic curve used for message signatures.
type SignatureConfig struct {
	Curve string `toml:"curve"`
}

// MonitoringConfig toggles agent monitoring.
type MonitoringConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Paths: PathsConfig{
			HomeDir: defaultHomeDir(),
		},
		Retry: RetryConfig{
			MaxRetries: DefaultRetryMax,
			DelayMs:    DefaultRetryDelayMs,
			LogErrors:  DefaultRetryLogErrors,
		},
		Signature: SignatureConfig{
			Curve: DefaultCurve,
		},
	}
}

func defaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultHomeDirName
	}
	return filepath.Join(home, DefaultHomeDirName)
}

// Load reads and parses the TOML config file at path, applies default values
// for missing fields and then environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
	} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by CONFIG_PATH, or the default path.
func LoadFromEnv() (Config, error) {
	return Load(os.Getenv(EnvConfigPath))
}

func applyEnv(cfg *Config) {
	if value := strings.TrimSpace(os.Getenv(EnvHomeDir)); value != "" {
		cfg.Paths.HomeDir = value
	}
	if value, ok := os.LookupEnv(EnvMonitoringEnabled); ok {
		cfg.Monitoring.Enabled = value == "true"
	}
	if value := strings.TrimSpace(os.Getenv(EnvLogLevel)); value != "" {
		cfg.Log.Level = value
	}
	if value := strings.TrimSpace(os.Getenv(EnvLogFormat)); value != "" {
		cfg.Log.Format = value
	}
}

// Validate rejects values the runtime cannot use.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Paths.HomeDir) == "" {
		return fmt.Errorf("paths.home_dir is required")
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative, got %d", c.Retry.MaxRetries)
	}
	if c.Retry.DelayMs < 0 {
		return fmt.Errorf("retry.delay_ms must not be negative, got %d", c.Retry.DelayMs)
	}
	return nil
}
