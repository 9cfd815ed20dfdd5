package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/landed/internal/invoice"
)

type lineItemResponse struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
	HSCode      string  `json:"hs_code,omitempty"`
	Weight      float64 `json:"weight"`
}

type invoiceResponse struct {
	ID            uuid.UUID          `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	Supplier      string             `json:"supplier"`
	Currency      invoice.Currency   `json:"currency"`
	ExchangeRate  float64            `json:"exchange_rate"`
	Date          string             `json:"date"`
	Items         []lineItemResponse `json:"items"`
	TotalValue    float64            `json:"total_value"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	items := make([]lineItemResponse, 0, len(inv.Items))
	for _, li := range inv.Items {
		items = append(items, lineItemResponse{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			TotalPrice:  li.TotalPrice(),
			HSCode:      li.HSCode,
			Weight:      li.Weight,
		})
	}

	return invoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Supplier:      inv.Supplier,
		Currency:      inv.Currency,
		ExchangeRate:  inv.ExchangeRate,
		Date:          inv.Date.Format(time.DateOnly),
		Items:         items,
		TotalValue:    inv.TotalValue(),
	}
}

func toResponseList(invoices []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp = append(resp, toResponse(inv))
	}

	return resp
}
