// ABOUTME: Tests for CLI configuration loading
// ABOUTME: Checks defaults, YAML overrides and validation errors
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mpegsync.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if cfg.ChunkSize != 1024 || cfg.ConfigChunkSize != 100 {
		t.Errorf("expected chunk sizes 1024/100, got %d/%d", cfg.ChunkSize, cfg.ConfigChunkSize)
	}
	if cfg.LogFile != "mpegsync.log" {
		t.Errorf("expected log file mpegsync.log, got %s", cfg.LogFile)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
chunk_size: 4096
sync_limit: 65536
volume: 40
sample_rate: 48000
gapless: true
jobs: 8
verbose: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ChunkSize != 4096 {
		t.Errorf("expected chunk size 4096, got %d", cfg.ChunkSize)
	}
	if cfg.SyncLimit != 65536 {
		t.Errorf("expected sync limit 65536, got %d", cfg.SyncLimit)
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("expected sample rate 48000, got %d", cfg.SampleRate)
	}
	if !cfg.Gapless {
		t.Error("expected gapless trimming enabled")
	}
	if cfg.Volume != 40 || cfg.Jobs != 8 || !cfg.Verbose {
		t.Errorf("unexpected config: %+v", cfg)
	}

	// Unset keys keep their defaults
	if cfg.ConfigChunkSize != 100 {
		t.Errorf("expected default config chunk size, got %d", cfg.ConfigChunkSize)
	}
	if cfg.LogFile != "mpegsync.log" {
		t.Errorf("expected default log file, got %s", cfg.LogFile)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "chunk_size: [1, 2"},
		{"zero chunk", "chunk_size: 0"},
		{"negative sync limit", "sync_limit: -1"},
		{"volume too high", "volume: 101"},
		{"negative sample rate", "sample_rate: -44100"},
		{"no jobs", "jobs: 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
