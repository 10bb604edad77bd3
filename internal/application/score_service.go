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

// ScoreService resolves a single plugin's scored record, with the same
// cache-then-fetch-then-stale pipeline as searches.
type ScoreService struct {
	registry domain.RegistryClient
	cache    domain.CacheStore
	scorer   scoring.Scorer
	ttl      time.Duration
	group    singleflight.Group
	now      func() time.Time
}

func NewScoreService(registry domain.RegistryClient, cache domain.CacheStore, cfg domain.Config) *ScoreService {
	return &ScoreService{
		registry: registry,
		cache:    cache,
		scorer:   scoring.NewScorer(cfg),
		ttl:      cfg.TTL(),
		now:      time.Now,
	}
}

// ScoreOutcome is the single-plugin envelope.
type ScoreOutcome struct {
	Plugin      domain.ScoredPlugin `json:"plugin"`
	Cached      bool                `json:"cached"`
	Stale       bool                `json:"stale"`
	Notice      string              `json:"notice,omitempty"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// Score returns the scored record for one slug. Unknown slugs are an error
// (domain.ErrPluginNotFound); upstream unavailability soft-fails to a stale
// entry when one exists.
func (s *ScoreService) Score(ctx context.Context, slug string) (*ScoreOutcome, error) {
	key := domain.PluginCacheKey(slug)

	if entry, ok := s.cache.Get(key); ok && len(entry.Plugins) == 1 {
		return &ScoreOutcome{
			Plugin:      entry.Plugins[0],
			Cached:      true,
			GeneratedAt: entry.StoredAt,
		}, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		info, err := s.registry.Info(ctx, slug)
		if err != nil {
			return s.recoverScore(key, err)
		}

		now := s.now()
		sp := domain.ScoredPlugin{Plugin: *info, Score: s.scorer.Score(*info, now)}

		entry := &domain.CacheEntry{Key: key, Plugins: []domain.ScoredPlugin{sp}, StoredAt: now, TTL: s.ttl}
		if err := s.cache.Set(entry); err != nil {
			log.Warn("cache set failed", "key", key, "err", err)
		}

		return &ScoreOutcome{Plugin: sp, GeneratedAt: now}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ScoreOutcome), nil
}

func (s *ScoreService) recoverScore(key string, err error) (*ScoreOutcome, error) {
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		return nil, fmt.Errorf("fetching plugin information: %w", err)
	}

	entry, ok := s.cache.GetStale(key)
	if !ok || len(entry.Plugins) != 1 {
		return nil, fmt.Errorf("fetching plugin information: %w", err)
	}

	age := entry.Age(s.now()).Round(time.Minute)
	log.Warn("upstream unavailable, serving stale plugin entry", "key", key, "age", age)
	return &ScoreOutcome{
		Plugin:      entry.Plugins[0],
		Cached:      true,
		Stale:       true,
		Notice:      fmt.Sprintf("plugin directory unreachable; showing cached data from %s ago", age),
		GeneratedAt: entry.StoredAt,
	}, nil
}
