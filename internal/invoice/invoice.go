package invoice

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("invoice not found")

// Currency is an ISO-like currency code. Free text is accepted.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyCNY Currency = "CNY"
	CurrencyJPY Currency = "JPY"
)

// Currencies lists the codes offered by the presentation layers.
var Currencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyCNY, CurrencyJPY}

// LineItem is a single product line of a supplier invoice.
type LineItem struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	HSCode      string
	Weight      float64 // kg
}

// TotalPrice is always derived from quantity and unit price.
func (li LineItem) TotalPrice() float64 {
	return li.Quantity * li.UnitPrice
}

// Invoice is a supplier invoice owning its line items.
type Invoice struct {
	ID            uuid.UUID
	InvoiceNumber string
	Supplier      string
	Currency      Currency
	ExchangeRate  float64
	Items         []LineItem
	Date          time.Time
}

// TotalValue sums the items' total prices.
func (inv *Invoice) TotalValue() float64 {
	var total float64
	for _, item := range inv.Items {
		total += item.TotalPrice()
	}

	return total
}

// Clone returns a deep copy so callers never share the item slice with a store.
func (inv *Invoice) Clone() *Invoice {
	c := *inv
	c.Items = append([]LineItem(nil), inv.Items...)

	return &c
}

// LineItemParams holds the raw input for a line item before the add rule is applied.
type LineItemParams struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	HSCode      string
	Weight      float64
}

// Draft is an invoice being edited and not yet saved.
type Draft struct {
	InvoiceNumber string
	Supplier      string
	Currency      Currency
	ExchangeRate  float64
	Date          time.Time
	Items         []LineItem
}

// NewDraft returns a draft with the same defaults an empty invoice form starts with.
func NewDraft() Draft {
	return Draft{
		Currency:     CurrencyUSD,
		ExchangeRate: 1,
		Date:         today(time.Now()),
	}
}

// DraftFrom loads an existing invoice into a draft for editing.
func DraftFrom(inv *Invoice) Draft {
	return Draft{
		InvoiceNumber: inv.InvoiceNumber,
		Supplier:      inv.Supplier,
		Currency:      inv.Currency,
		ExchangeRate:  inv.ExchangeRate,
		Date:          inv.Date,
		Items:         append([]LineItem(nil), inv.Items...),
	}
}

// AddLineItem appends an item to the draft. Items without a description, or
// whose quantity or unit price is not a positive number, are dropped and
// false is returned.
func (d *Draft) AddLineItem(p LineItemParams) bool {
	desc := strings.TrimSpace(p.Description)
	if desc == "" || !(p.Quantity > 0) || !(p.UnitPrice > 0) {
		return false
	}

	d.Items = append(d.Items, LineItem{
		Description: desc,
		Quantity:    p.Quantity,
		UnitPrice:   p.UnitPrice,
		HSCode:      strings.TrimSpace(p.HSCode),
		Weight:      p.Weight,
	})

	return true
}

// RemoveLineItem drops the item at index. Out of range indexes are ignored.
func (d *Draft) RemoveLineItem(index int) {
	if index < 0 || index >= len(d.Items) {
		return
	}

	d.Items = append(d.Items[:index:index], d.Items[index+1:]...)
}

// TotalValue previews the total the saved invoice will carry.
func (d *Draft) TotalValue() float64 {
	var total float64
	for _, item := range d.Items {
		total += item.TotalPrice()
	}

	return total
}

func today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
