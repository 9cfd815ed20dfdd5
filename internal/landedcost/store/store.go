package store

import (
	"context"
	"slices"
	"sync"

	"github.com/MrJamesThe3rd/landed/internal/landedcost"
)

// Store accumulates worksheet rows across generation runs. Rows are values,
// so nothing handed out can reach back into the store.
type Store struct {
	mu    sync.RWMutex
	items []landedcost.Item
}

func New() *Store {
	return &Store{}
}

func (s *Store) AppendItems(_ context.Context, items []landedcost.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, items...)

	return nil
}

func (s *Store) ListItems(_ context.Context) ([]landedcost.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.items), nil
}

func (s *Store) DeleteItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = slices.DeleteFunc(s.items, func(it landedcost.Item) bool { return it.ID == id })

	return nil
}

func (s *Store) ClearItems(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil

	return nil
}
