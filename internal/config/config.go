// Package config loads CLI configuration from defaults, an optional YAML
// file, and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/vizcore/internal/logging"
)

// Config holds all configuration for the vizcore CLI.
type Config struct {
	Locale string    `yaml:"locale"` // VIZCORE_LOCALE, default "en"
	Log    LogConfig `yaml:"log"`
}

// LogConfig mirrors logging.Config for the YAML file.
type LogConfig struct {
	Level      string `yaml:"level"`        // VIZCORE_LOG_LEVEL, default "info"
	File       string `yaml:"file"`         // VIZCORE_LOG_FILE, default "" (stderr only)
	MaxSizeMB  int    `yaml:"max_size_mb"`  // VIZCORE_LOG_MAX_SIZE_MB, default 10
	MaxBackups int    `yaml:"max_backups"`  // VIZCORE_LOG_MAX_BACKUPS, default 3
	MaxAgeDays int    `yaml:"max_age_days"` // VIZCORE_LOG_MAX_AGE_DAYS, default 28
	Compress   bool   `yaml:"compress"`     // VIZCORE_LOG_COMPRESS, default true
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Locale: "en",
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// Load builds the configuration. path may be empty to skip the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.Locale = getEnvString("VIZCORE_LOCALE", cfg.Locale)
	cfg.Log.Level = getEnvString("VIZCORE_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnvString("VIZCORE_LOG_FILE", cfg.Log.File)
	cfg.Log.MaxSizeMB = getEnvInt("VIZCORE_LOG_MAX_SIZE_MB", cfg.Log.MaxSizeMB)
	cfg.Log.MaxBackups = getEnvInt("VIZCORE_LOG_MAX_BACKUPS", cfg.Log.MaxBackups)
	cfg.Log.MaxAgeDays = getEnvInt("VIZCORE_LOG_MAX_AGE_DAYS", cfg.Log.MaxAgeDays)
	cfg.Log.Compress = getEnvBool("VIZCORE_LOG_COMPRESS", cfg.Log.Compress)

	if _, err := cfg.Language(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Language parses Locale as a BCP 47 tag.
func (c Config) Language() (language.Tag, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	return tag, nil
}

// Logging converts the log section for logging.Setup.
func (c Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.Log.Level,
		FilePath:   c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
		Compress:   c.Log.Compress,
	}
}

func getEnvString(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
