package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Strict {
		t.Error("expected Strict=true")
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected Format=text, got %q", cfg.Output.Format)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected Level=warn, got %q", cfg.Logging.Level)
	}
	if cfg.Markers.Class != "TClassDef(" {
		t.Errorf("expected default class marker, got %q", cfg.Markers.Class)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/hlgen.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	content := `
strict: false
ignore:
  - "*_gl.h"
markers:
  self: "SELF("
output:
  format: toon
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Strict {
		t.Error("expected Strict=false")
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "*_gl.h" {
		t.Errorf("Ignore = %v", cfg.Ignore)
	}
	if cfg.Markers.Self != "SELF(" {
		t.Errorf("expected Self=SELF(, got %q", cfg.Markers.Self)
	}
	if cfg.Markers.Class != "TClassDef(" {
		t.Errorf("unset markers should keep defaults, got %q", cfg.Markers.Class)
	}
	if cfg.Output.Format != "toon" {
		t.Errorf("expected Format=toon, got %q", cfg.Output.Format)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("strict: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte("logging:\n  level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected Level=debug, got %q", cfg.Logging.Level)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg := DefaultConfig()
	cfg.Ignore = []string{"legacy/"}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Ignore) != 1 || loaded.Ignore[0] != "legacy/" {
		t.Errorf("Ignore = %v", loaded.Ignore)
	}
	if loaded.Markers.Create != "_Create(" {
		t.Errorf("Create marker = %q", loaded.Markers.Create)
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := LogLevel(tt.in)
		if err != nil {
			t.Errorf("LogLevel(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("LogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := LogLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
