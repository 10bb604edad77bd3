package domain

import (
	"fmt"
	"time"
)

// Signal names used by the health scorer.
var ValidHealthSignals = []string{"rating", "installs", "recency", "compatibility"}

// Signal names used by the usability scorer.
var ValidUsabilitySignals = []string{"rating", "reviews", "installs"}

// APIConfig configures the outbound WordPress.org client.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"        json:"base_url,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds,omitempty"`
	// RatePerMinute caps outbound requests. The upstream limit is
	// undocumented (~100/min estimated), so this stays below it.
	RatePerMinute int `yaml:"rate_per_minute" json:"rate_per_minute,omitempty"`
}

// CacheConfig configures the cache store.
type CacheConfig struct {
	Dir      string `yaml:"dir"       json:"dir,omitempty"`
	TTLHours int    `yaml:"ttl_hours" json:"ttl_hours,omitempty"`
	// MaxEntryBytes is the per-entry payload ceiling; oversized payloads are
	// dropped rather than stored.
	MaxEntryBytes int `yaml:"max_entry_bytes" json:"max_entry_bytes,omitempty"`
}

// WeightsConfig overrides the default signal weights per scorer. A partial
// map overrides only the named signals; a complete map must sum to ~1.0.
type WeightsConfig struct {
	Health    map[string]float64 `yaml:"health"    json:"health,omitempty"`
	Usability map[string]float64 `yaml:"usability" json:"usability,omitempty"`
}

// Config holds tool-level configuration loaded from .pluginpulse.yaml.
type Config struct {
	API     APIConfig     `yaml:"api"     json:"api,omitempty"`
	Cache   CacheConfig   `yaml:"cache"   json:"cache,omitempty"`
	Weights WeightsConfig `yaml:"weights" json:"weights,omitempty"`
	// WPVersion is the WordPress version compatibility is judged against.
	// Empty means the built-in current version.
	WPVersion string `yaml:"wp_version" json:"wp_version,omitempty"`
}

const (
	DefaultBaseURL       = "https://api.wordpress.org/plugins/info/1.2/"
	DefaultTimeoutSecs   = 15
	DefaultRatePerMinute = 80
	DefaultTTLHours      = 24
	// DefaultMaxEntryBytes mirrors the storage ceiling transient-style
	// backends impose on a single value.
	DefaultMaxEntryBytes = 1 << 20
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSecs,
			RatePerMinute:  DefaultRatePerMinute,
		},
		Cache: CacheConfig{
			TTLHours:      DefaultTTLHours,
			MaxEntryBytes: DefaultMaxEntryBytes,
		},
	}
}

// Timeout returns the outbound request timeout.
func (c Config) Timeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return DefaultTimeoutSecs * time.Second
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// TTL returns the cache entry lifetime.
func (c Config) TTL() time.Duration {
	if c.Cache.TTLHours <= 0 {
		return DefaultTTL
	}
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout_seconds must be >= 0 (got %d)", c.API.TimeoutSeconds)
	}
	if c.API.RatePerMinute < 0 {
		return fmt.Errorf("api.rate_per_minute must be >= 0 (got %d)", c.API.RatePerMinute)
	}
	if c.Cache.TTLHours < 0 {
		return fmt.Errorf("cache.ttl_hours must be >= 0 (got %d)", c.Cache.TTLHours)
	}
	if c.Cache.MaxEntryBytes < 0 {
		return fmt.Errorf("cache.max_entry_bytes must be >= 0 (got %d)", c.Cache.MaxEntryBytes)
	}
	if err := validateWeights("weights.health", c.Weights.Health, ValidHealthSignals); err != nil {
		return err
	}
	if err := validateWeights("weights.usability", c.Weights.Usability, ValidUsabilitySignals); err != nil {
		return err
	}
	return nil
}

func validateWeights(section string, weights map[string]float64, valid []string) error {
	for name, w := range weights {
		if !containsString(valid, name) {
			return fmt.Errorf("unknown signal %q in %s", name, section)
		}
		if w <= 0 {
			return fmt.Errorf("%s[%q] must be > 0 (got %.2f)", section, name, w)
		}
	}
	// A full override must still be a weighted average.
	if len(weights) == len(valid) {
		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		if sum < 0.95 || sum > 1.05 {
			return fmt.Errorf("%s sums to %.2f (must be between 0.95 and 1.05)", section, sum)
		}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
