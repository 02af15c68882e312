// Package config holds the runtime settings of the forge binary and the
// per-user paths it uses.
//
// Settings come from FORGE_* environment variables. A .env file in the
// working directory and one in the user config directory are loaded first;
// variables already set in the process win over both.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings are the runtime settings of the forge binary.
type Settings struct {
	ConfigDir string `env:"FORGE_CONFIG_DIR" envDefault:"config"`
	LogLevel  string `env:"FORGE_LOG_LEVEL" envDefault:"INFO"`
	PrintLogs bool   `env:"FORGE_PRINT_LOGS"`
	LogToFile bool   `env:"FORGE_LOG_TO_FILE"`
	// LogDir defaults to Paths.LogDir.
	LogDir  string `env:"FORGE_LOG_DIR"`
	NoColor bool   `env:"FORGE_NO_COLOR"`
}

// LoadEnvFiles loads the given .env files in order. Missing files are
// skipped; earlier files and the process environment take precedence.
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads .env files and parses Settings from the environment.
func Load() (*Settings, error) {
	paths := GetPaths()
	if err := LoadEnvFiles(".env", paths.GlobalEnvFile()); err != nil {
		return nil, err
	}

	var s Settings
	if err := ParseEnv(&s); err != nil {
		return nil, err
	}
	if s.LogDir == "" {
		s.LogDir = paths.LogDir()
	}
	return &s, nil
}
