package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pluginpulse/pluginpulse/internal/domain"
)

// ErrTooLarge is returned by Set when the serialized payload exceeds the
// per-entry ceiling. Callers treat it as "not cached", never as fatal.
var ErrTooLarge = errors.New("cache: entry exceeds size ceiling")

// Store is a file-based implementation of domain.CacheStore: one JSON file
// per key under dir. Entries past their TTL are reported as misses by Get
// but kept on disk for GetStale until overwritten or invalidated.
type Store struct {
	dir      string
	ttl      time.Duration
	maxBytes int
	now      func() time.Time
}

type Option func(*Store)

// WithTTL sets the freshness window applied to entries stored without one.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithMaxEntryBytes sets the per-entry payload ceiling. Zero disables it.
func WithMaxEntryBytes(n int) Option {
	return func(s *Store) { s.maxBytes = n }
}

// WithClock replaces the freshness clock (tests use this).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a file-based cache store rooted at dir.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:      dir,
		ttl:      domain.DefaultTTL,
		maxBytes: domain.DefaultMaxEntryBytes,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the entry for key if present and fresh. Any storage failure
// degrades to a miss.
func (s *Store) Get(key string) (*domain.CacheEntry, bool) {
	entry, ok := s.load(key)
	if !ok || !entry.Fresh(s.now()) {
		return nil, false
	}
	return entry, true
}

// GetStale returns the entry for key regardless of freshness. Used when the
// upstream is unreachable and anything beats an empty answer.
func (s *Store) GetStale(key string) (*domain.CacheEntry, bool) {
	return s.load(key)
}

// Set stores the entry, stamping StoredAt and the default TTL when unset.
// Payloads over the size ceiling are rejected with ErrTooLarge.
func (s *Store) Set(entry *domain.CacheEntry) error {
	if entry.StoredAt.IsZero() {
		entry.StoredAt = s.now()
	}
	if entry.TTL <= 0 {
		entry.TTL = s.ttl
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if s.maxBytes > 0 && len(data) > s.maxBytes {
		return ErrTooLarge
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path(entry.Key), data, 0o644)
}

// Invalidate removes the entry for key. Removing a missing entry is not an
// error.
func (s *Store) Invalidate(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// InvalidatePrefix removes every entry whose key starts with prefix and
// returns how many were dropped. An empty prefix clears the whole store.
func (s *Store) InvalidatePrefix(prefix string) (int, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		var entry domain.CacheEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			// Unreadable entries are dropped rather than repaired.
			_ = os.Remove(f)
			continue
		}
		if strings.HasPrefix(entry.Key, prefix) {
			if err := os.Remove(f); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

func (s *Store) load(key string) (*domain.CacheEntry, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	return &entry, true
}

// path maps a key to its file. Keys are hashed so prefixes and slugs never
// leak filesystem-unsafe characters.
func (s *Store) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".json")
}
