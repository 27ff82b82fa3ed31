// ABOUTME: CLI configuration
// ABOUTME: Loads YAML settings with defaults that command-line flags override
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds settings shared by the mpegsync commands
type Config struct {
	ChunkSize       int    `yaml:"chunk_size"`
	ConfigChunkSize int    `yaml:"config_chunk_size"`
	SyncLimit       int64  `yaml:"sync_limit"`
	SampleRate      int    `yaml:"sample_rate"`
	Gapless         bool   `yaml:"gapless"`
	Volume          int    `yaml:"volume"`
	LogFile         string `yaml:"log_file"`
	Jobs            int    `yaml:"jobs"`
	Verbose         bool   `yaml:"verbose"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		ChunkSize:       1024,
		ConfigChunkSize: 100,
		SyncLimit:       0,
		Volume:          100,
		LogFile:         "mpegsync.log",
		Jobs:            4,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.ConfigChunkSize <= 0 {
		return fmt.Errorf("config_chunk_size must be positive, got %d", c.ConfigChunkSize)
	}
	if c.SyncLimit < 0 {
		return fmt.Errorf("sync_limit must not be negative, got %d", c.SyncLimit)
	}
	if c.SampleRate < 0 || c.SampleRate > 192000 {
		return fmt.Errorf("sample_rate must be between 0 and 192000, got %d", c.SampleRate)
	}
	if c.Volume < 0 || c.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Volume)
	}
	if c.Jobs <= 0 {
		return fmt.Errorf("jobs must be positive, got %d", c.Jobs)
	}
	return nil
}
