package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pluginpulse/pluginpulse/internal/domain"
	"github.com/pluginpulse/pluginpulse/internal/domain/scoring"
	"github.com/pluginpulse/pluginpulse/internal/log"
)

// SearchService orchestrates the list pipeline:
// normalize query → cache → (coalesced) fetch → score → filter/sort → cache.
type SearchService struct {
	registry domain.RegistryClient
	cache    domain.CacheStore
	scorer   scoring.Scorer
	ttl      time.Duration
	group    singleflight.Group
	now      func() time.Time
}

func NewSearchService(registry domain.RegistryClient, cache domain.CacheStore, cfg domain.Config) *SearchService {
	return &SearchService{
		registry: registry,
		cache:    cache,
		scorer:   scoring.NewScorer(cfg),
		ttl:      cfg.TTL(),
		now:      time.Now,
	}
}

// SearchResult is the envelope every inbound surface (CLI, HTTP, MCP) serves.
type SearchResult struct {
	Query       domain.SearchQuery    `json:"query"`
	Plugins     []domain.ScoredPlugin `json:"plugins"`
	Cached      bool                  `json:"cached"`
	Stale       bool                  `json:"stale"`
	Notice      string                `json:"notice,omitempty"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// Search returns the scored, filtered, sorted plugin list for the query.
// Upstream unavailability is soft-failed: a stale cache entry is served when
// one exists, otherwise an empty result with a notice. Other upstream
// failures propagate as errors.
func (s *SearchService) Search(ctx context.Context, query domain.SearchQuery) (*SearchResult, error) {
	q := query.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	key := q.CacheKey()
	if entry, ok := s.cache.Get(key); ok {
		return &SearchResult{
			Query:       q,
			Plugins:     entry.Plugins,
			Cached:      true,
			GeneratedAt: entry.StoredAt,
		}, nil
	}
	return s.fetch(ctx, q, key)
}

// Refresh bypasses the cache read but still stores the fresh result.
func (s *SearchService) Refresh(ctx context.Context, query domain.SearchQuery) (*SearchResult, error) {
	q := query.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return s.fetch(ctx, q, q.CacheKey())
}

// fetch is the shared miss path. Concurrent misses on the same key coalesce
// into a single upstream call; every waiter gets the same result.
func (s *SearchService) fetch(ctx context.Context, q domain.SearchQuery, key string) (*SearchResult, error) {
	v, err, _ := s.group.Do(key, func() (any, error) {
		records, err := s.registry.Search(ctx, q)
		if err != nil {
			return s.recoverSearch(q, key, err)
		}

		now := s.now()
		plugins := make([]domain.ScoredPlugin, 0, len(records))
		for _, rec := range records {
			plugins = append(plugins, domain.ScoredPlugin{
				Plugin: rec,
				Score:  s.scorer.Score(rec, now),
			})
		}
		plugins = q.Apply(plugins)

		entry := &domain.CacheEntry{Key: key, Plugins: plugins, StoredAt: now, TTL: s.ttl}
		if err := s.cache.Set(entry); err != nil {
			// Cache failures never fail the request.
			log.Warn("cache set failed", "key", key, "err", err)
		}

		return &SearchResult{Query: q, Plugins: plugins, GeneratedAt: now}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*SearchResult), nil
}

// recoverSearch maps an upstream failure to the soft-failure contract:
// stale entry if one exists, empty result with a notice otherwise. Failures
// other than unavailability propagate.
func (s *SearchService) recoverSearch(q domain.SearchQuery, key string, err error) (*SearchResult, error) {
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		return nil, fmt.Errorf("searching plugin directory: %w", err)
	}

	if entry, ok := s.cache.GetStale(key); ok {
		age := entry.Age(s.now()).Round(time.Minute)
		log.Warn("upstream unavailable, serving stale entry", "key", key, "age", age)
		return &SearchResult{
			Query:       q,
			Plugins:     entry.Plugins,
			Cached:      true,
			Stale:       true,
			Notice:      fmt.Sprintf("plugin directory unreachable; showing cached results from %s ago", age),
			GeneratedAt: entry.StoredAt,
		}, nil
	}

	log.Warn("upstream unavailable, no cached entry", "key", key)
	return &SearchResult{
		Query:       q,
		Plugins:     []domain.ScoredPlugin{},
		Notice:      "plugin directory unreachable and no cached results are available; try again later",
		GeneratedAt: s.now(),
	}, nil
}
