package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "REWIND_"

// Load reads the configuration file at path, applies environment
// variable overrides, and validates the result. A missing file is not
// an error; defaults are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			// Missing file: continue with defaults.
		} else {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides configuration values from REWIND_* environment
// variables. Unparseable values are ignored.
func applyEnv(cfg *Config) {
	if v, ok := envInt("HISTORY_MAX_ENTRIES"); ok {
		cfg.History.MaxEntries = v
	}
	if v, ok := envInt("SAVES_MAX_SLOTS"); ok {
		cfg.Saves.MaxSlots = v
	}
	if v, ok := envInt("SAVES_MAX_CHECKPOINTS"); ok {
		cfg.Saves.MaxCheckpoints = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok && v != "" {
		cfg.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_FILE"); ok && v != "" {
		cfg.Logging.File = v
	}
}

// envInt looks up an integer environment variable under EnvPrefix.
func envInt(name string) (int, bool) {
	s, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
