// Package config loads the optional per-project licenseer configuration.
// Flags override config values, config overrides built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// FileName is the per-project configuration file looked up in the scan root.
const FileName = ".licenseer.yaml"

// DefaultCacheDir is the well-known package cache searched during lockfile
// resolution when neither flag nor config overrides it.
const DefaultCacheDir = "~/Library/Caches/org.swift.swiftpm/checkouts"

// Config holds the project-level defaults for discovery and export.
type Config struct {
	CacheDir string   `mapstructure:"cache-dir"`
	Exclude  []string `mapstructure:"exclude"`
	Format   string   `mapstructure:"format"`
	Template string   `mapstructure:"template"`
}

// Default returns the built-in configuration used when no file is present.
func Default() *Config {
	return &Config{
		CacheDir: DefaultCacheDir,
		Format:   "text",
	}
}

// Load reads root/.licenseer.yaml. A missing file yields the defaults; a
// present but invalid file is an error, never silently ignored.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path) // #nosec G304 -- fixed name under the user-chosen root
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := validateConfig(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("cache-dir", DefaultCacheDir)
	v.SetDefault("format", "text")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return cfg, nil
}
