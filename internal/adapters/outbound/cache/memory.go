package cache

import (
	"container/list"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/pluginpulse/pluginpulse/internal/domain"
)

// DefaultMaxEntries bounds the in-memory store; serve mode recycles a small
// working set of query keys, so a few hundred entries is plenty.
const DefaultMaxEntries = 512

// Memory is an in-process implementation of domain.CacheStore with LRU
// eviction. Like the file store, expired entries stay resident for the
// stale path until evicted or overwritten.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	lru        *list.List
	maxEntries int
	maxBytes   int
	now        func() time.Time
}

type MemoryOption func(*Memory)

// WithMaxEntries caps how many entries the store holds before LRU eviction.
func WithMaxEntries(n int) MemoryOption {
	return func(m *Memory) { m.maxEntries = n }
}

// WithMemoryClock replaces the freshness clock (tests use this).
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// WithMemoryMaxEntryBytes sets the per-entry ceiling on the serialized
// payload size. Zero means no limit.
func WithMemoryMaxEntryBytes(n int) MemoryOption {
	return func(m *Memory) { m.maxBytes = n }
}

// NewMemory creates an in-memory cache store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries:    make(map[string]*list.Element),
		lru:        list.New(),
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(key string) (*domain.CacheEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	entry := el.Value.(*domain.CacheEntry)
	if !entry.Fresh(m.now()) {
		return nil, false
	}
	m.lru.MoveToFront(el)
	return entry, true
}

func (m *Memory) GetStale(key string) (*domain.CacheEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	return el.Value.(*domain.CacheEntry), true
}

// Set stores the entry, stamping StoredAt and the default TTL when unset.
// Payloads over the size ceiling are rejected with ErrTooLarge, measured on
// the serialized form so both stores enforce the same limit.
func (m *Memory) Set(entry *domain.CacheEntry) error {
	if entry.StoredAt.IsZero() {
		entry.StoredAt = m.now()
	}
	if entry.TTL <= 0 {
		entry.TTL = domain.DefaultTTL
	}

	if m.maxBytes > 0 {
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if len(data) > m.maxBytes {
			return ErrTooLarge
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[entry.Key]; ok {
		el.Value = entry
		m.lru.MoveToFront(el)
		return nil
	}
	if m.maxEntries > 0 && m.lru.Len() >= m.maxEntries {
		m.evictOldest()
	}
	m.entries[entry.Key] = m.lru.PushFront(entry)
	return nil
}

func (m *Memory) Invalidate(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[key]; ok {
		m.lru.Remove(el)
		delete(m.entries, key)
	}
	return nil
}

func (m *Memory) InvalidatePrefix(prefix string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, el := range m.entries {
		if strings.HasPrefix(key, prefix) {
			m.lru.Remove(el)
			delete(m.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Len reports how many entries (fresh or stale) are resident.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}

func (m *Memory) evictOldest() {
	el := m.lru.Back()
	if el == nil {
		return
	}
	m.lru.Remove(el)
	delete(m.entries, el.Value.(*domain.CacheEntry).Key)
}
