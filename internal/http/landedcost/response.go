package landedcost

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/landed/internal/invoice"
	"github.com/MrJamesThe3rd/landed/internal/landedcost"
)

type itemResponse struct {
	ID              string           `json:"id"`
	InvoiceID       uuid.UUID        `json:"invoice_id"`
	FreightID       uuid.UUID        `json:"freight_id"`
	GeneratedAt     time.Time        `json:"generated_at"`
	InvoiceNumber   string           `json:"invoice_number"`
	Supplier        string           `json:"supplier"`
	ItemDescription string           `json:"item_description"`
	HSCode          string           `json:"hs_code"`
	Quantity        float64          `json:"quantity"`
	UnitPrice       float64          `json:"unit_price"`
	TotalPrice      float64          `json:"total_price"`
	FreightCost     float64          `json:"freight_cost"`
	DutyRate        float64          `json:"duty_rate"`
	DutyAmount      float64          `json:"duty_amount"`
	TaxRate         float64          `json:"tax_rate"`
	TaxAmount       float64          `json:"tax_amount"`
	OtherCharges    float64          `json:"other_charges"`
	TotalLandedCost float64          `json:"total_landed_cost"`
	UnitLandedCost  float64          `json:"unit_landed_cost"`
	Currency        invoice.Currency `json:"currency"`
	ExchangeRate    float64          `json:"exchange_rate"`
}

func toResponseList(items []landedcost.Item) []itemResponse {
	resp := make([]itemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, itemResponse{
			ID:              it.ID,
			InvoiceID:       it.InvoiceID,
			FreightID:       it.FreightID,
			GeneratedAt:     it.GeneratedAt,
			InvoiceNumber:   it.InvoiceNumber,
			Supplier:        it.Supplier,
			ItemDescription: it.ItemDescription,
			HSCode:          it.HSCode,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			TotalPrice:      it.TotalPrice,
			FreightCost:     it.FreightCost,
			DutyRate:        it.DutyRate,
			DutyAmount:      it.DutyAmount,
			TaxRate:         it.TaxRate,
			TaxAmount:       it.TaxAmount,
			OtherCharges:    it.OtherCharges,
			TotalLandedCost: it.TotalLandedCost,
			UnitLandedCost:  it.UnitLandedCost,
			Currency:        it.Currency,
			ExchangeRate:    it.ExchangeRate,
		})
	}

	return resp
}
