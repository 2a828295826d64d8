package cache

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// MemoryCache is the in-process fallback used when no Redis host is
// configured, and the store behind the sqlite-backed tests. Expired
// entries are swept in the background.
type MemoryCache struct {
	data   map[string]*memoryItem
	mu     sync.RWMutex
	config *Config
	logger Logger
	stopCh chan struct{}
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

func NewMemoryCache(config *Config, logger Logger) *MemoryCache {
	c := &MemoryCache{
		data:   make(map[string]*memoryItem),
		config: config,
		logger: logger,
		stopCh: make(chan struct{}),
	}
	go c.sweep()
	return c
}

func (m *MemoryCache) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictExpired()
		case <-m.stopCh:
			return
		}
	}
}

func (m *MemoryCache) evictExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	evicted := 0
	for key, item := range m.data {
		if !item.expiresAt.IsZero() && now.After(item.expiresAt) {
			delete(m.data, key)
			evicted++
		}
	}
	if evicted > 0 {
		m.logger.Debugf("evicted expired cache entries: count=%d", evicted)
	}
}

func (m *MemoryCache) isExpired(item *memoryItem) bool {
	if item.expiresAt.IsZero() {
		return false
	}
	return time.Now().After(item.expiresAt)
}

func (m *MemoryCache) expiry(ttl time.Duration) time.Time {
	if ttl == 0 {
		ttl = m.config.DefaultTTL
	}
	if ttl > 0 {
		return time.Now().Add(ttl)
	}
	return time.Time{}
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	item, exists := m.data[key]
	m.mu.RUnlock()

	if !exists || m.isExpired(item) {
		return nil, ErrKeyNotFound
	}

	// Copy so callers cannot mutate the stored value.
	result := make([]byte, len(item.value))
	copy(result, item.value)
	return result, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	m.mu.Lock()
	m.data[key] = &memoryItem{value: valueCopy, expiresAt: m.expiry(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	item, exists := m.data[key]
	m.mu.RUnlock()

	return exists && !m.isExpired(item), nil
}

func (m *MemoryCache) Increment(ctx context.Context, key string, delta int64, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var current int64
	if item, exists := m.data[key]; exists && !m.isExpired(item) {
		if val, err := strconv.ParseInt(string(item.value), 10, 64); err == nil {
			current = val
		}
	}

	next := current + delta
	m.data[key] = &memoryItem{
		value:     []byte(strconv.FormatInt(next, 10)),
		expiresAt: m.expiry(ttl),
	}
	return next, nil
}

func (m *MemoryCache) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	m.mu.RLock()
	item, exists := m.data[key]
	m.mu.RUnlock()

	if !exists {
		return 0, ErrKeyNotFound
	}
	if item.expiresAt.IsZero() {
		return -1, nil
	}

	ttl := time.Until(item.expiresAt)
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (m *MemoryCache) Close() error {
	close(m.stopCh)
	return nil
}

func (m *MemoryCache) Ping(ctx context.Context) error {
	return nil
}
