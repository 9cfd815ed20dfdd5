package dashboard

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/landed/internal/freight"
	"github.com/MrJamesThe3rd/landed/internal/invoice"
	"github.com/MrJamesThe3rd/landed/internal/landedcost"
)

// RecentLimit is how many of the latest invoices Stats carries.
const RecentLimit = 3

type InvoiceLister interface {
	List(ctx context.Context) ([]*invoice.Invoice, error)
}

type FreightLister interface {
	List(ctx context.Context) ([]*freight.Cost, error)
}

type LandedCostLister interface {
	List(ctx context.Context) ([]landedcost.Item, error)
}

// Stats is the overview shown on the landing screen.
type Stats struct {
	InvoiceCount      int
	FreightCount      int
	LandedCostRows    int
	TotalInvoiceValue float64
	TotalFreightCost  float64
	TotalLandedCost   float64
	// Recent holds up to RecentLimit invoices, oldest first.
	Recent []*invoice.Invoice
}

// Empty reports whether nothing has been entered yet.
func (s Stats) Empty() bool {
	return s.InvoiceCount == 0 && s.FreightCount == 0 && s.LandedCostRows == 0
}

type Service struct {
	invoices    InvoiceLister
	freight     FreightLister
	landedCosts LandedCostLister
}

func NewService(invoices InvoiceLister, freight FreightLister, landedCosts LandedCostLister) *Service {
	return &Service{invoices: invoices, freight: freight, landedCosts: landedCosts}
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("listing invoices: %w", err)
	}

	costs, err := s.freight.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("listing freight costs: %w", err)
	}

	items, err := s.landedCosts.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("listing landed cost items: %w", err)
	}

	st := Stats{
		InvoiceCount:   len(invoices),
		FreightCount:   len(costs),
		LandedCostRows: len(items),
		Recent:         invoices[max(0, len(invoices)-RecentLimit):],
	}

	for _, inv := range invoices {
		st.TotalInvoiceValue += inv.TotalValue()
	}

	for _, c := range costs {
		st.TotalFreightCost += c.TotalCost()
	}

	st.TotalLandedCost = landedcost.Summarize(items).LandedCost

	return st, nil
}
