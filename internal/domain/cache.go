package domain

import "time"

// DefaultTTL is how long a cache entry stays fresh unless configured
// otherwise. The upstream rate limit is undocumented, so a generous TTL is
// the primary protection against exceeding it.
const DefaultTTL = 24 * time.Hour

// CacheEntry is one stored payload: the scored plugin list for a query key.
// Entries past their TTL are stale, not gone; stale entries back the
// serve-stale-on-upstream-failure path until they are overwritten or
// explicitly invalidated.
type CacheEntry struct {
	Key      string         `json:"key"`
	Plugins  []ScoredPlugin `json:"plugins"`
	StoredAt time.Time      `json:"stored_at"`
	TTL      time.Duration  `json:"ttl"`
}

// Fresh reports whether the entry is still within its TTL at the given time.
func (e *CacheEntry) Fresh(now time.Time) bool {
	if e == nil {
		return false
	}
	ttl := e.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return now.Before(e.StoredAt.Add(ttl))
}

// Age returns how long ago the entry was stored.
func (e *CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(e.StoredAt)
}
