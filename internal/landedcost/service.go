package landedcost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/landed/internal/freight"
	"github.com/MrJamesThe3rd/landed/internal/invoice"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=landedcost
type Repository interface {
	AppendItems(ctx context.Context, items []Item) error
	ListItems(ctx context.Context) ([]Item, error)
	DeleteItem(ctx context.Context, id string) error
	ClearItems(ctx context.Context) error
}

// InvoiceSource resolves the invoice selected for a run.
type InvoiceSource interface {
	Get(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error)
}

// FreightSource resolves the freight record selected for a run.
type FreightSource interface {
	Get(ctx context.Context, id uuid.UUID) (*freight.Cost, error)
}

type Service struct {
	repo     Repository
	invoices InvoiceSource
	freight  FreightSource
	logger   *slog.Logger
	now      func() time.Time

	mu   sync.Mutex
	last time.Time
}

func NewService(repo Repository, invoices InvoiceSource, freight FreightSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		repo:     repo,
		invoices: invoices,
		freight:  freight,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the clock that stamps generation runs.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type GenerateParams struct {
	InvoiceID uuid.UUID
	FreightID uuid.UUID
	Inputs
}

// Generate computes the rows for the selected invoice and freight record and
// appends them to the worksheet. Earlier rows are kept.
func (s *Service) Generate(ctx context.Context, p GenerateParams) ([]Item, error) {
	if p.InvoiceID == uuid.Nil || p.FreightID == uuid.Nil {
		return nil, ErrInvalidSelection
	}

	inv, err := s.invoices.Get(ctx, p.InvoiceID)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			return nil, fmt.Errorf("invoice %s: %w", p.InvoiceID, ErrInvalidSelection)
		}

		return nil, fmt.Errorf("resolving invoice: %w", err)
	}

	fc, err := s.freight.Get(ctx, p.FreightID)
	if err != nil {
		if errors.Is(err, freight.ErrNotFound) {
			return nil, fmt.Errorf("freight %s: %w", p.FreightID, ErrInvalidSelection)
		}

		return nil, fmt.Errorf("resolving freight: %w", err)
	}

	items, err := Generate(inv, fc, p.Inputs, s.stamp())
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return items, nil
	}

	if err := s.repo.AppendItems(ctx, items); err != nil {
		return nil, fmt.Errorf("appending landed cost items: %w", err)
	}

	s.logger.Info("landed cost generated",
		"invoice_id", inv.ID,
		"freight_id", fc.ID,
		"rows", len(items),
	)

	return items, nil
}

// stamp returns a generation time strictly after the previous one, so row ids
// of two runs never collide even on a coarse clock.
func (s *Service) stamp() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.now()
	if !t.After(s.last) {
		t = s.last.Add(time.Nanosecond)
	}

	s.last = t

	return t
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.ListItems(ctx)
}

// Delete removes a single row. Unknown ids are ignored.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteItem(ctx, id)
}

func (s *Service) Clear(ctx context.Context) error {
	return s.repo.ClearItems(ctx)
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("listing landed cost items: %w", err)
	}

	return Summarize(items), nil
}
