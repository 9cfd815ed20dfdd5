package store

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/landed/internal/invoice"
)

// Store keeps invoices in memory for the lifetime of the process.
// Records go in and come out as deep copies.
type Store struct {
	mu       sync.RWMutex
	invoices []*invoice.Invoice
}

func New() *Store {
	return &Store{}
}

func (s *Store) CreateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices = append(s.invoices, inv.Clone())

	return nil
}

func (s *Store) GetInvoice(_ context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, invoice.ErrNotFound
	}

	return s.invoices[idx].Clone(), nil
}

func (s *Store) ReplaceInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(inv.ID)
	if idx < 0 {
		return invoice.ErrNotFound
	}

	s.invoices[idx] = inv.Clone()

	return nil
}

func (s *Store) DeleteInvoice(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices = slices.DeleteFunc(s.invoices, func(inv *invoice.Invoice) bool {
		return inv.ID == id
	})

	return nil
}

func (s *Store) ListInvoices(_ context.Context) ([]*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*invoice.Invoice, len(s.invoices))
	for i, inv := range s.invoices {
		out[i] = inv.Clone()
	}

	return out, nil
}

func (s *Store) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.invoices, func(inv *invoice.Invoice) bool {
		return inv.ID == id
	})
}
