package landedcost

import (
	"fmt"
	"math"
	"time"

	"github.com/MrJamesThe3rd/landed/internal/freight"
	"github.com/MrJamesThe3rd/landed/internal/invoice"
)

// Inputs are the user-entered figures of one generation run.
type Inputs struct {
	DutyRates    DutyRates
	TaxRate      float64 // percent
	OtherCharges float64 // shipment total, allocated by value
}

// Generate derives one worksheet row per invoice line item.
//
// Freight and other charges are spread by each line's share of the invoice
// value (a zero invoice value allocates nothing). Duty applies to goods plus
// freight, and tax to goods plus freight plus duty. Stored values are not
// rounded.
func Generate(inv *invoice.Invoice, fc *freight.Cost, in Inputs, generatedAt time.Time) ([]Item, error) {
	if inv == nil || fc == nil {
		return nil, ErrInvalidSelection
	}

	for i, li := range inv.Items {
		if !(li.Quantity > 0) {
			return nil, fmt.Errorf("item %d (%s): %w", i+1, li.Description, ErrNonPositiveQuantity)
		}
	}

	var (
		totalValue   = inv.TotalValue()
		totalFreight = finiteOrZero(fc.TotalCost())
		taxRate      = finiteOrZero(in.TaxRate)
		otherCharges = finiteOrZero(in.OtherCharges)
	)

	items := make([]Item, 0, len(inv.Items))

	for i, li := range inv.Items {
		price := li.TotalPrice()
		ratio := allocationRatio(price, totalValue)

		freightShare := totalFreight * ratio
		dutyRate := in.DutyRates.For(li.HSCode)
		dutyAmount := (price + freightShare) * dutyRate / 100
		taxAmount := (price + freightShare + dutyAmount) * taxRate / 100
		otherShare := otherCharges * ratio
		landed := price + freightShare + dutyAmount + taxAmount + otherShare

		items = append(items, Item{
			ID:              fmt.Sprintf("%s-%d-%d", inv.ID, generatedAt.UnixNano(), i),
			InvoiceID:       inv.ID,
			FreightID:       fc.ID,
			GeneratedAt:     generatedAt,
			InvoiceNumber:   inv.InvoiceNumber,
			Supplier:        inv.Supplier,
			ItemDescription: li.Description,
			HSCode:          li.HSCode,
			Quantity:        li.Quantity,
			UnitPrice:       li.UnitPrice,
			TotalPrice:      price,
			FreightCost:     freightShare,
			DutyRate:        dutyRate,
			DutyAmount:      dutyAmount,
			TaxRate:         taxRate,
			TaxAmount:       taxAmount,
			OtherCharges:    otherShare,
			TotalLandedCost: landed,
			UnitLandedCost:  landed / li.Quantity,
			Currency:        inv.Currency,
			ExchangeRate:    inv.ExchangeRate,
		})
	}

	return items, nil
}

func allocationRatio(value, total float64) float64 {
	if total == 0 {
		return 0
	}

	return finiteOrZero(value / total)
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}
