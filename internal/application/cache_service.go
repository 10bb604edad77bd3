package application

import "github.com/pluginpulse/pluginpulse/internal/domain"

// CacheService exposes the manual invalidation surface the admin commands
// use.
type CacheService struct {
	cache domain.CacheStore
}

func NewCacheService(cache domain.CacheStore) *CacheService {
	return &CacheService{cache: cache}
}

// Clear drops every cache entry and reports how many were removed.
func (s *CacheService) Clear() (int, error) {
	return s.cache.InvalidatePrefix("")
}

// ClearSearches drops cached search result lists, keeping per-plugin entries.
func (s *CacheService) ClearSearches() (int, error) {
	return s.cache.InvalidatePrefix(domain.SearchKeyPrefix)
}

// ClearPlugin drops the cached record for one slug.
func (s *CacheService) ClearPlugin(slug string) error {
	return s.cache.Invalidate(domain.PluginCacheKey(slug))
}
