package store

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/landed/internal/freight"
)

type Store struct {
	mu    sync.RWMutex
	costs []freight.Cost
}

func New() *Store {
	return &Store{}
}

func (s *Store) CreateCost(_ context.Context, c *freight.Cost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.costs = append(s.costs, *c)

	return nil
}

func (s *Store) GetCost(_ context.Context, id uuid.UUID) (*freight.Cost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := slices.IndexFunc(s.costs, func(c freight.Cost) bool { return c.ID == id })
	if idx < 0 {
		return nil, freight.ErrNotFound
	}

	c := s.costs[idx]

	return &c, nil
}

func (s *Store) DeleteCost(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.costs = slices.DeleteFunc(s.costs, func(c freight.Cost) bool { return c.ID == id })

	return nil
}

func (s *Store) ListCosts(_ context.Context) ([]*freight.Cost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*freight.Cost, len(s.costs))
	for i := range s.costs {
		c := s.costs[i]
		out[i] = &c
	}

	return out, nil
}
