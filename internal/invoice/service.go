package invoice

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ReplaceInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
	ListInvoices(ctx context.Context) ([]*Invoice, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the clock used to default invoice dates.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Add(ctx context.Context, d Draft) (*Invoice, error) {
	inv := s.fromDraft(uuid.New(), d)
	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	return inv, nil
}

// Update replaces the invoice with id by a version rebuilt from the draft.
// The store is left untouched and ErrNotFound returned when id is unknown.
func (s *Service) Update(ctx context.Context, id uuid.UUID, d Draft) (*Invoice, error) {
	inv := s.fromDraft(id, d)
	if err := s.repo.ReplaceInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("updating invoice: %w", err)
	}

	return inv, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInvoice(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

func (s *Service) fromDraft(id uuid.UUID, d Draft) *Invoice {
	currency := Currency(strings.ToUpper(strings.TrimSpace(string(d.Currency))))
	if currency == "" {
		currency = CurrencyUSD
	}

	rate := d.ExchangeRate
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = 1
	}

	date := d.Date
	if date.IsZero() {
		date = s.now()
	}

	return &Invoice{
		ID:            id,
		InvoiceNumber: strings.TrimSpace(d.InvoiceNumber),
		Supplier:      strings.TrimSpace(d.Supplier),
		Currency:      currency,
		ExchangeRate:  rate,
		Items:         append([]LineItem(nil), d.Items...),
		Date:          today(date),
	}
}
