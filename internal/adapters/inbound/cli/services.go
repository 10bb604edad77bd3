package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pluginpulse/pluginpulse/internal/adapters/outbound/cache"
	"github.com/pluginpulse/pluginpulse/internal/adapters/outbound/config"
	"github.com/pluginpulse/pluginpulse/internal/adapters/outbound/wporg"
	"github.com/pluginpulse/pluginpulse/internal/application"
	"github.com/pluginpulse/pluginpulse/internal/domain"
)

// services bundles the application layer wired against real adapters.
type services struct {
	search *application.SearchService
	score  *application.ScoreService
	cache  *application.CacheService
	cfg    domain.Config
}

func buildServices(opts *rootOptions) (*services, error) {
	cfg, err := config.New().Load(".")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	if opts.cacheDir != "" {
		cfg.Cache.Dir = opts.cacheDir
	}

	store, err := buildStore(opts, cfg)
	if err != nil {
		return nil, err
	}

	registry := wporg.NewFromConfig(cfg)
	return &services{
		search: application.NewSearchService(registry, store, cfg),
		score:  application.NewScoreService(registry, store, cfg),
		cache:  application.NewCacheService(store),
		cfg:    cfg,
	}, nil
}

func buildStore(opts *rootOptions, cfg domain.Config) (domain.CacheStore, error) {
	if opts.memoryCache {
		return cache.NewMemory(
			cache.WithMemoryMaxEntryBytes(cfg.Cache.MaxEntryBytes),
		), nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolving cache directory: %w", err)
		}
		dir = filepath.Join(base, "pluginpulse")
	}

	return cache.New(dir,
		cache.WithTTL(cfg.TTL()),
		cache.WithMaxEntryBytes(cfg.Cache.MaxEntryBytes),
	), nil
}
