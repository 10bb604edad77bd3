package domain

import "context"

// RegistryClient fetches plugin metadata from the WordPress.org Plugin API.
// Implementations make exactly one attempt per call; retry and stale-fallback
// policy lives in the application layer.
type RegistryClient interface {
	Search(ctx context.Context, query SearchQuery) ([]PluginInfo, error)
	Info(ctx context.Context, slug string) (*PluginInfo, error)
}

// CacheStore is a TTL key/value store for scored plugin lists.
//
// Get returns fresh entries only. GetStale ignores the TTL so callers can
// serve a stale entry when the upstream is unreachable. Set may reject
// oversized payloads; callers treat a Set failure as non-fatal. Store
// failures on the read path surface as misses, never as errors.
type CacheStore interface {
	Get(key string) (*CacheEntry, bool)
	GetStale(key string) (*CacheEntry, bool)
	Set(entry *CacheEntry) error
	Invalidate(key string) error
	InvalidatePrefix(prefix string) (int, error)
}

// ConfigLoader loads tool configuration from a directory.
type ConfigLoader interface {
	Load(dir string) (Config, error)
}
