// Package cache is the small TTL key-value capability the storage layer uses
// for hot-path lookups such as ownership checks. Implementations are
// injected; nothing in the layout core touches it.
package cache

import (
	"context"
	"sync"
	"time"
)

type Cache interface {
	// Get returns the cached value and whether it was present and unexpired.
	Get(ctx context.Context, key string) (string, bool)
	// Put stores a value for ttl.
	Put(ctx context.Context, key, value string, ttl time.Duration)
	// Delete drops a key.
	Delete(ctx context.Context, key string)
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is a process-local Cache for tests and single-node deployments.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: map[string]memoryEntry{}, now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return "", false
	}
	return e.value, true
}

func (m *Memory) Put(_ context.Context, key, value string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: value, expiresAt: m.now().Add(ttl)}
	m.sweep()
}

func (m *Memory) Delete(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// sweep drops expired entries; called with the lock held.
func (m *Memory) sweep() {
	now := m.now()
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)
		}
	}
}
