// Package config loads and validates the engine configuration from TOML
// files and environment variables, with optional live reload.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidValue indicates a configuration value outside its allowed
// range.
var ErrInvalidValue = errors.New("invalid configuration value")

// Config is the full engine configuration.
type Config struct {
	History HistoryConfig `toml:"history"`
	Saves   SavesConfig   `toml:"saves"`
	Logging LoggingConfig `toml:"logging"`
}

// HistoryConfig bounds the undo/redo history.
type HistoryConfig struct {
	// MaxEntries bounds the undo stack and the audit trail. Oldest
	// entries are evicted first.
	MaxEntries int `toml:"max_entries"`
}

// SavesConfig bounds the save slots and checkpoints.
type SavesConfig struct {
	// MaxSlots bounds the save slots. The oldest slot is evicted when
	// full.
	MaxSlots int `toml:"max_slots"`

	// MaxCheckpoints bounds the checkpoint stack. Zero means unbounded.
	MaxCheckpoints int `toml:"max_checkpoints"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// File is the log destination path. Empty means stderr.
	File string `toml:"file"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		History: HistoryConfig{
			MaxEntries: 1000,
		},
		Saves: SavesConfig{
			MaxSlots:       10,
			MaxCheckpoints: 0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.History.MaxEntries <= 0 {
		return fmt.Errorf("history.max_entries must be positive, got %d: %w",
			c.History.MaxEntries, ErrInvalidValue)
	}
	if c.Saves.MaxSlots <= 0 {
		return fmt.Errorf("saves.max_slots must be positive, got %d: %w",
			c.Saves.MaxSlots, ErrInvalidValue)
	}
	if c.Saves.MaxCheckpoints < 0 {
		return fmt.Errorf("saves.max_checkpoints must not be negative, got %d: %w",
			c.Saves.MaxCheckpoints, ErrInvalidValue)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not a known level: %w",
			c.Logging.Level, ErrInvalidValue)
	}

	return nil
}
