package weathercache

import (
	"context"
	"sync"
	"time"

	"github.com/skyport/backoffice/internal/domain/weather"
)

type entry struct {
	report    weather.Report
	expiresAt time.Time
}

// MemoryStore caches reports in process memory for tests/dev and as the
// fallback when no Valkey instance is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore constructs a new in-memory cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns a cached report if it has not expired.
func (s *MemoryStore) Get(_ context.Context, city string) (weather.Report, bool, error) {
	s.mu.RLock()
	cached, ok := s.entries[city]
	s.mu.RUnlock()
	if !ok {
		return weather.Report{}, false, nil
	}
	if !cached.expiresAt.IsZero() && s.now().After(cached.expiresAt) {
		s.mu.Lock()
		delete(s.entries, city)
		s.mu.Unlock()
		return weather.Report{}, false, nil
	}
	return cached.report, true, nil
}

// Save stores a report with the given TTL.
func (s *MemoryStore) Save(_ context.Context, city string, report weather.Report, ttl time.Duration) error {
	cached := entry{report: report}
	if ttl > 0 {
		cached.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[city] = cached
	s.mu.Unlock()
	return nil
}

var _ weather.Cache = (*MemoryStore)(nil)
