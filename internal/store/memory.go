package store

import (
	"errors"
	"sync"
	"time"

	"github.com/krishimitra/farm-weather/internal/weather"
)

var (
	// ErrNotFound is returned when no bundle is stored for a location key.
	ErrNotFound = errors.New("no weather data for location")
)

// bundleHistory holds a time-ordered list of result bundles for one
// location key.
type bundleHistory struct {
	bundles []*weather.Bundle
}

// MemoryStore is a concurrency-safe in-memory store of recent result
// bundles. It backs the "last known weather" view when a live fetch is
// unavailable; the query pipeline itself never reads from it.
type MemoryStore struct {
	mu sync.RWMutex

	data map[string]*bundleHistory

	maxHistory int           // max bundles per location, <= 0 means unlimited
	maxAge     time.Duration // max bundle age, 0 means unlimited
}

// NewMemoryStore creates a MemoryStore with optional retention limits.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*bundleHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveBundle appends a bundle for a location key and enforces retention.
func (s *MemoryStore) SaveBundle(key string, b *weather.Bundle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &bundleHistory{}
		s.data[key] = history
	}

	history.bundles = append(history.bundles, b)

	if s.maxHistory > 0 && len(history.bundles) > s.maxHistory {
		over := len(history.bundles) - s.maxHistory
		history.bundles = history.bundles[over:]
	}

	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.bundles); i++ {
			if !history.bundles[i].FetchedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(history.bundles) {
			history.bundles = history.bundles[i:]
		}
	}
}

// GetLatest returns the most recent bundle for a location key.
func (s *MemoryStore) GetLatest(key string) (*weather.Bundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.bundles) == 0 {
		return nil, ErrNotFound
	}
	return history.bundles[len(history.bundles)-1], nil
}

// Keys returns the location keys currently held.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}
