package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used when Redis is not configured and in tests
type MemoryStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *MemoryStore) Close() error {
	return nil
}

// Claim with ttl <= 0 holds the key until Release or Clear
func (m *MemoryStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if exp, ok := m.expires[key]; ok && (exp.IsZero() || now.Before(exp)) {
		return false, nil
	}

	var exp time.Time
	if ttl > 0 {
		exp = now.Add(ttl)
	}
	m.expires[key] = exp
	return true, nil
}

func (m *MemoryStore) Release(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.expires, key)
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expires = make(map[string]time.Time)
	return nil
}
