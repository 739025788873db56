// Package config loads the optional config.yaml that can override the
// dataset root, batch worker count, and log level.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads and validates config.yaml from any of the given candidate
// paths, falling back to DefaultAppConfig when none exist. An existing
// but malformed or invalid file is an error.
func Load(paths ...string) (AppConfig, error) {
	if len(paths) == 0 {
		paths = []string{"config.yaml", "config.yml"}
	}

	cfg := DefaultAppConfig()

	var data []byte
	var err error
	found := false
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			found = true
			break
		}
	}
	if !found {
		return cfg, nil
	}

	var loaded AppConfig
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return AppConfig{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := validator.New().Struct(loaded); err != nil {
		return AppConfig{}, fmt.Errorf("validating config: %w", err)
	}

	if loaded.DatasetRoot != "" {
		cfg.DatasetRoot = loaded.DatasetRoot
	}
	if loaded.Workers != 0 {
		cfg.Workers = loaded.Workers
	}
	if loaded.LogLevel != "" {
		cfg.LogLevel = loaded.LogLevel
	}
	return cfg, nil
}
