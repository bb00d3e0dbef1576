package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-process Cache used when no Redis address is configured
type Memory struct {
	mu         sync.RWMutex
	data       map[string]memoryEntry
	maxEntries int
	now        func() time.Time
}

// NewMemory creates a Memory cache holding at most maxEntries values
func NewMemory(maxEntries int) *Memory {
	return &Memory{
		data:       make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns a value that has not expired
func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.data[key]
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		return "", false
	}
	return entry.value, true
}

// Set stores a value; a zero ttl never expires.
// When full, expired entries are dropped first and then the whole map is reset.
func (m *Memory) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists && m.maxEntries > 0 && len(m.data) >= m.maxEntries {
		m.evictExpired()
		if len(m.data) >= m.maxEntries {
			m.data = make(map[string]memoryEntry)
		}
	}

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = entry
	return nil
}

// Len returns the number of stored entries, expired or not
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *Memory) evictExpired() {
	now := m.now()
	for key, entry := range m.data {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(m.data, key)
		}
	}
}
