package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pluginpulse/pluginpulse/internal/domain"
)

const fileName = ".pluginpulse.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .pluginpulse.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .pluginpulse.yaml from dir. A missing file yields the built-in
// defaults; a present file is validated and merged over them.
func (l *YAMLLoader) Load(dir string) (domain.Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// mergeConfig overlays explicit values on top of defaults. Explicit
// (non-zero) values always win.
func mergeConfig(base, override domain.Config) domain.Config {
	result := base

	if override.API.BaseURL != "" {
		result.API.BaseURL = override.API.BaseURL
	}
	if override.API.TimeoutSeconds != 0 {
		result.API.TimeoutSeconds = override.API.TimeoutSeconds
	}
	if override.API.RatePerMinute != 0 {
		result.API.RatePerMinute = override.API.RatePerMinute
	}
	if override.Cache.Dir != "" {
		result.Cache.Dir = override.Cache.Dir
	}
	if override.Cache.TTLHours != 0 {
		result.Cache.TTLHours = override.Cache.TTLHours
	}
	if override.Cache.MaxEntryBytes != 0 {
		result.Cache.MaxEntryBytes = override.Cache.MaxEntryBytes
	}
	if override.WPVersion != "" {
		result.WPVersion = override.WPVersion
	}

	// Weight overrides replace the whole map per scorer.
	if len(override.Weights.Health) > 0 {
		result.Weights.Health = override.Weights.Health
	}
	if len(override.Weights.Usability) > 0 {
		result.Weights.Usability = override.Weights.Usability
	}

	return result
}
