package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the Timesheet API the client talks to unless overridden.
const DefaultAPIURL = "https://training-api-timesheet.nccsoft.vn/api"

// Config holds all runtime configuration for the client.
type Config struct {
	APIURL     string `yaml:"api_url"`
	DBPath     string `yaml:"db_path"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	SessionTTL int    `yaml:"session_ttl_hours"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
	LogCalls bool   `yaml:"log_calls"`
}

// Timeout returns the per-request timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// SessionLifetime returns how long a login stays valid.
func (c Config) SessionLifetime() time.Duration {
	return time.Duration(c.SessionTTL) * time.Hour
}

// DefaultConfig returns a Config rooted at home (usually ~/.timesheet).
func DefaultConfig(home string) Config {
	return Config{
		APIURL:     DefaultAPIURL,
		DBPath:     filepath.Join(home, "timesheet.db"),
		TimeoutMs:  15000,
		SessionTTL: 7 * 24,
		LogFile:    filepath.Join(home, "timesheet.log"),
		LogLevel:   "info",
		LogCalls:   true,
	}
}

// Load builds the effective configuration. Precedence, lowest first:
// defaults, the YAML file at TIMESHEET_CONFIG (or <home>/config.yaml),
// a .env file in the working directory, then process environment.
func Load() (Config, error) {
	home, err := Dir()
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig(home)

	// .env only fills variables that are not already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	path := os.Getenv("TIMESHEET_CONFIG")
	if path == "" {
		path = filepath.Join(home, "config.yaml")
	}
	if err := loadFile(&cfg, path); err != nil {
		return Config{}, err
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Dir returns the client's home directory, ~/.timesheet unless
// TIMESHEET_HOME is set.
func Dir() (string, error) {
	if v := os.Getenv("TIMESHEET_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".timesheet"), nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TIMESHEET_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("TIMESHEET_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TIMESHEET_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("TIMESHEET_SESSION_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SessionTTL = n
		}
	}
	if v := os.Getenv("TIMESHEET_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TIMESHEET_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TIMESHEET_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogCalls = b
		}
	}
}
