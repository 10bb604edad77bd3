package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Sort keys accepted by SearchQuery. Empty means upstream relevance order.
const (
	SortHealth    = "health"
	SortUsability = "usability"
	SortRating    = "rating"
	SortInstalls  = "installs"
	SortUpdated   = "updated"
	SortName      = "name"
)

// ValidSortKeys enumerates all recognized sort keys.
var ValidSortKeys = []string{
	SortHealth, SortUsability, SortRating, SortInstalls, SortUpdated, SortName,
}

const (
	DefaultPerPage = 24
	MaxPerPage     = 100
)

// SearchQuery describes one filtered/sorted plugin list request.
type SearchQuery struct {
	Term      string `json:"term"`
	Page      int    `json:"page"`
	PerPage   int    `json:"per_page"`
	Sort      string `json:"sort,omitempty"`
	MinHealth int    `json:"min_health,omitempty"`
}

// Normalize clamps paging values and canonicalizes the term so equivalent
// queries produce identical cache keys.
func (q SearchQuery) Normalize() SearchQuery {
	q.Term = strings.ToLower(strings.TrimSpace(q.Term))
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	if q.MinHealth < 0 {
		q.MinHealth = 0
	}
	if q.MinHealth > 100 {
		q.MinHealth = 100
	}
	return q
}

// Validate checks the query for unknown sort keys.
func (q SearchQuery) Validate() error {
	if q.Sort == "" {
		return nil
	}
	for _, k := range ValidSortKeys {
		if q.Sort == k {
			return nil
		}
	}
	return fmt.Errorf("unknown sort key %q (valid: %s)", q.Sort, strings.Join(ValidSortKeys, ", "))
}

// SearchKeyPrefix namespaces search cache entries; PluginKeyPrefix namespaces
// per-slug entries. Prefixes make targeted invalidation possible.
const (
	SearchKeyPrefix = "search:"
	PluginKeyPrefix = "plugin:"
)

// CacheKey derives a stable cache key from the normalized query parameters.
func (q SearchQuery) CacheKey() string {
	n := q.Normalize()
	raw := fmt.Sprintf("term=%s|page=%d|per_page=%d|sort=%s|min_health=%d",
		n.Term, n.Page, n.PerPage, n.Sort, n.MinHealth)
	sum := sha256.Sum256([]byte(raw))
	return SearchKeyPrefix + hex.EncodeToString(sum[:])
}

// PluginCacheKey is the cache key for a single plugin's scored record.
func PluginCacheKey(slug string) string {
	return PluginKeyPrefix + strings.ToLower(strings.TrimSpace(slug))
}

// Apply filters then sorts the scored list according to the query. The input
// slice is not modified.
func (q SearchQuery) Apply(plugins []ScoredPlugin) []ScoredPlugin {
	out := make([]ScoredPlugin, 0, len(plugins))
	for _, sp := range plugins {
		if sp.Score.Health < q.MinHealth {
			continue
		}
		out = append(out, sp)
	}
	sortPlugins(out, q.Sort)
	return out
}

// sortPlugins orders the list by the given key, descending for quality and
// popularity keys, ascending for name. Ties keep their relative order so
// results stay deterministic across calls.
func sortPlugins(plugins []ScoredPlugin, key string) {
	less := func(a, b ScoredPlugin) bool { return false }
	switch key {
	case SortHealth:
		less = func(a, b ScoredPlugin) bool { return a.Score.Health > b.Score.Health }
	case SortUsability:
		less = func(a, b ScoredPlugin) bool { return a.Score.Usability > b.Score.Usability }
	case SortRating:
		less = func(a, b ScoredPlugin) bool { return a.Plugin.Rating > b.Plugin.Rating }
	case SortInstalls:
		less = func(a, b ScoredPlugin) bool {
			ai, _ := a.Plugin.Installs()
			bi, _ := b.Plugin.Installs()
			return ai > bi
		}
	case SortUpdated:
		less = func(a, b ScoredPlugin) bool {
			at, aok := a.Plugin.UpdatedAt()
			bt, bok := b.Plugin.UpdatedAt()
			if aok != bok {
				return aok
			}
			return at.After(bt)
		}
	case SortName:
		less = func(a, b ScoredPlugin) bool {
			return strings.ToLower(a.Plugin.Name) < strings.ToLower(b.Plugin.Name)
		}
	default:
		return // upstream relevance order
	}
	sort.SliceStable(plugins, func(i, j int) bool { return less(plugins[i], plugins[j]) })
}
