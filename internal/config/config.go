// Package config loads hlgen settings from YAML.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phobologic/hlgen/internal/classify"
)

// FileName is looked up in the base directory when no path is given.
const FileName = "hlgen.yaml"

// Config holds all configuration for hlgen.
type Config struct {
	Markers classify.Markers `yaml:"markers"`
	Ignore  []string         `yaml:"ignore"`   // extra .hlgenignore-style patterns
	Strict  bool             `yaml:"strict"`   // fail on malformed declarations
	Output  OutputConfig     `yaml:"output"`
	Logging LoggingConfig    `yaml:"logging"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Format string `yaml:"format"` // "text" or "toon"
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Markers: classify.DefaultMarkers(),
		Strict:  true,
		Output:  OutputConfig{Format: "text"},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// Load reads configuration from path on top of the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromDir loads hlgen.yaml from dir, or the defaults if there is none.
func LoadFromDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, FileName))
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LogLevel parses a level name. Unknown names are an error.
func LogLevel(name string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", name)
	}
	return lvl, nil
}
