// Package config loads tool configuration. Precedence, lowest to highest:
// built-in defaults, the yaml config file, environment variables (TABTIDY_*,
// with a local .env honored), then CLI flags applied by the caller.
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

const (
	DefaultTimeout = 5 * time.Second
	DefaultWorkers = 10

	maxWorkers = 512
)

var (
	ErrInvalidTimeout = errors.New("config: timeout must be positive")
	ErrInvalidWorkers = errors.New("config: workers must be between 1 and 512")
)

type Config struct {
	Timeout   time.Duration `yaml:"timeout"`
	Workers   int           `yaml:"workers"`
	HeadFirst bool          `yaml:"head_first"`
	UserAgent string        `yaml:"user_agent"`
	LogLevel  string        `yaml:"log_level"`
	LogFormat string        `yaml:"log_format"`
}

func Default() Config {
	return Config{
		Timeout:   DefaultTimeout,
		Workers:   DefaultWorkers,
		HeadFirst: true,
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Load builds the effective configuration from the config file and the
// environment. A missing config file or .env is not an error.
func Load() (Config, error) {
	cfg := Default()

	_ = godotenv.Load()

	if path, ok := configPath(); ok {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg.Timeout = getEnvDuration("TABTIDY_TIMEOUT", cfg.Timeout)
	cfg.Workers = getEnvInt("TABTIDY_WORKERS", cfg.Workers)
	cfg.UserAgent = getEnv("TABTIDY_USER_AGENT", cfg.UserAgent)
	cfg.LogLevel = getEnv("TABTIDY_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("TABTIDY_LOG_FORMAT", cfg.LogFormat)

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTimeout, c.Timeout)
	}
	if c.Workers < 1 || c.Workers > maxWorkers {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Workers)
	}
	return nil
}

func configPath() (string, bool) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "tabtidy", "config.yaml"), true
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if s, ok := os.LookupEnv(key); ok {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if s, ok := os.LookupEnv(key); ok {
		if v, err := time.ParseDuration(s); err == nil {
			return v
		}
	}
	return fallback
}
