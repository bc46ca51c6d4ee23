// Package config loads the mfcc command configuration from YAML.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ieee0824/mfcc-go/feature"
)

// DefaultInput is the audio file read when none is given.
const DefaultInput = "a.wav"

// Output formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

// Config represents the command configuration.
type Config struct {
	Feature feature.Config `yaml:"feature" json:"feature"`
	Input   string         `yaml:"input" json:"input"`
	Output  OutputConfig   `yaml:"output" json:"output"`
	Logging LoggingConfig  `yaml:"logging" json:"logging"`
}

type OutputConfig struct {
	Format string `yaml:"format" json:"format"` // text, json, yaml or msgpack
	File   string `yaml:"file" json:"file"`     // empty = stdout
}

type LoggingConfig struct {
	Level string `yaml:"level" json:"level"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Feature: feature.DefaultConfig(),
		Input:   DefaultInput,
		Output:  OutputConfig{Format: FormatText},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// Load reads configuration from a YAML file. Keys absent from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parse config: %w", feature.ErrConfig, err)
	}

	// Set defaults
	if cfg.Input == "" {
		cfg.Input = DefaultInput
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatText
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Feature.Transform == "" {
		cfg.Feature.Transform = feature.TransformDirect
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Feature.Validate(); err != nil {
		return err
	}
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML, FormatMsgpack:
	default:
		return fmt.Errorf("%w: unknown output format %q", feature.ErrConfig, c.Output.Format)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Logging.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Logging.Level))); err != nil {
		return 0, fmt.Errorf("%w: logging level %q", feature.ErrConfig, c.Logging.Level)
	}
	return level, nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
