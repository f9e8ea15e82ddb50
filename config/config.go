// Package config loads bindgen settings from YAML with environment
// overrides, and watches inputs for changes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the CLI needs to build an interface.
type Config struct {
	Namespace string         `yaml:"namespace"`
	Metadata  MetadataConfig `yaml:"metadata"`
	Output    OutputConfig   `yaml:"output"`
	Watch     WatchConfig    `yaml:"watch"`
	Logging   LoggingConfig  `yaml:"logging"`
}

type MetadataConfig struct {
	// Dir is resolved against the config file's directory when relative.
	Dir string `yaml:"dir"`
}

type OutputConfig struct {
	Format string `yaml:"format"` // "text" or "yaml"
	Color  string `yaml:"color"`  // "auto", "always" or "never"
	Wasm   bool   `yaml:"wasm"`   // include core wasm signatures in FFI listings
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// Load reads a config file, expands environment references in it, then
// applies BINDGEN_* overrides and defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if cfg.Metadata.Dir != "" && !filepath.IsAbs(cfg.Metadata.Dir) {
		cfg.Metadata.Dir = filepath.Join(filepath.Dir(path), cfg.Metadata.Dir)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// LoadFromEnv builds a config from BINDGEN_* variables alone.
func LoadFromEnv() (*Config, error) {
	var cfg Config

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// LoadWithFallback loads path when it exists and falls back to the
// environment otherwise.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return LoadFromEnv()
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BINDGEN_NAMESPACE"); v != "" {
		cfg.Namespace = v
	}
	if v := os.Getenv("BINDGEN_METADATA_DIR"); v != "" {
		cfg.Metadata.Dir = v
	}

	if v := os.Getenv("BINDGEN_OUTPUT_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("BINDGEN_OUTPUT_COLOR"); v != "" {
		cfg.Output.Color = v
	}
	if v := os.Getenv("BINDGEN_OUTPUT_WASM"); v != "" {
		cfg.Output.Wasm = parseBool(v)
	}

	if v := os.Getenv("BINDGEN_WATCH_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Watch.Debounce = d
		}
	}

	if v := os.Getenv("BINDGEN_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("BINDGEN_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Metadata.Dir == "" {
		cfg.Metadata.Dir = "."
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = "auto"
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 200 * time.Millisecond
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validate(cfg *Config) error {
	validFormats := map[string]bool{"text": true, "yaml": true}
	if !validFormats[cfg.Output.Format] {
		return fmt.Errorf("output.format must be 'text' or 'yaml', got %q", cfg.Output.Format)
	}

	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[cfg.Output.Color] {
		return fmt.Errorf("output.color must be 'auto', 'always' or 'never', got %q", cfg.Output.Color)
	}

	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %v", cfg.Watch.Debounce)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", cfg.Logging.Level)
	}

	validLogFormats := map[string]bool{"json": true, "console": true}
	if !validLogFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}
	return nil
}
