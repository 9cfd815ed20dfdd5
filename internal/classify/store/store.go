package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/MrJamesThe3rd/landed/internal/classify"
)

type Store struct {
	mu       sync.RWMutex
	mappings []classify.Mapping
}

func New() *Store {
	return &Store{}
}

// FindMatch picks the longest pattern contained in description, ignoring
// case. Equal lengths go to the most recently learned mapping.
func (s *Store) FindMatch(_ context.Context, description string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	desc := strings.ToLower(description)

	var (
		best    string
		bestLen = -1
	)

	for _, m := range s.mappings {
		if !strings.Contains(desc, strings.ToLower(m.Pattern)) {
			continue
		}

		if n := len(m.Pattern); n >= bestLen {
			best, bestLen = m.HSCode, n
		}
	}

	return best, nil
}

func (s *Store) CreateMapping(_ context.Context, m classify.Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mappings = append(s.mappings, m)

	return nil
}

func (s *Store) ListMappings(_ context.Context) ([]classify.Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.mappings), nil
}
