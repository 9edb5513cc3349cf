// Package kvstore provides an expiring key-value store used for OTP codes
// and failed-login counters. The memory implementation is process-local;
// the Redis implementation can be shared across instances.
package kvstore

import (
	"context"
	"sync"
	"time"
)

// Store is an expiring key-value store
type Store interface {
	// Set stores a value under key for the given TTL
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns the value for key; found is false when the key is
	// absent or its TTL has elapsed
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Delete removes a key
	Delete(ctx context.Context, key string) error
	// Increment bumps a counter under key and returns the new value.
	// The TTL window is started on the first increment only.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

type memoryEntry struct {
	value     string
	counter   int64
	expiresAt time.Time
}

// MemoryStore is an in-process Store implementation
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	// now is swappable for tests
	now func() time.Time
}

// NewMemoryStore creates a new in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) get(key string) (memoryEntry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, key)
		return memoryEntry{}, false
	}
	return e, true
}

// Set stores a value under key for the given TTL
func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.entries[key] = memoryEntry{value: value, expiresAt: s.now().Add(ttl)}
	return nil
}

// Get returns the value for key if present and unexpired
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.get(key)
	if !ok {
		return "", false, nil
	}
	return e.value, true, nil
}

// Delete removes a key
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Increment bumps a counter under key; the TTL window starts on the first hit
func (s *MemoryStore) Increment(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.get(key)
	if !ok {
		e = memoryEntry{expiresAt: s.now().Add(ttl)}
	}
	e.counter++
	s.entries[key] = e
	return e.counter, nil
}

// sweepLocked drops expired entries so the map does not grow unbounded.
// Caller must hold the mutex.
func (s *MemoryStore) sweepLocked() {
	if len(s.entries) < 1024 {
		return
	}
	now := s.now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}
