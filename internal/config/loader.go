package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is the YAML file read when CONFIG_PATH is not set. It is
// optional; a CONFIG_PATH that names a missing file is an error.
const DefaultPath = "otter.yaml"

// Load builds the configuration from env-default tags, the YAML file and the
// environment, in increasing priority, and validates it.
func Load() (*Config, error) {
	path, required := os.Getenv("CONFIG_PATH"), true
	if path == "" {
		path, required = DefaultPath, false
	}

	var cfg Config
	if err := read(path, required, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func read(path string, required bool, cfg *Config) error {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		// ReadConfig applies env overrides on top of the file
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	case required:
		return fmt.Errorf("file %s: %w", path, err)
	default:
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return fmt.Errorf("read env: %w", err)
		}
	}
	return nil
}
