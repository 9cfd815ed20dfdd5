package landedcost

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/landed/internal/invoice"
)

var (
	// ErrInvalidSelection is returned when the invoice or freight record to
	// generate from is missing or cannot be resolved.
	ErrInvalidSelection = errors.New("invoice and freight record must both be selected")

	ErrNonPositiveQuantity = errors.New("line item quantity must be positive")
)

// Item is one worksheet row. Invoice and line item data are copied at
// generation time and never follow later edits of the source invoice.
type Item struct {
	ID          string
	InvoiceID   uuid.UUID
	FreightID   uuid.UUID
	GeneratedAt time.Time

	InvoiceNumber   string
	Supplier        string
	ItemDescription string
	HSCode          string
	Quantity        float64
	UnitPrice       float64
	TotalPrice      float64

	FreightCost     float64
	DutyRate        float64
	DutyAmount      float64
	TaxRate         float64
	TaxAmount       float64
	OtherCharges    float64
	TotalLandedCost float64
	UnitLandedCost  float64

	Currency     invoice.Currency
	ExchangeRate float64
}

// DutyRates maps an HS code to a duty percentage. Every line sharing a code
// shares its rate, and all lines without a code share the blank key.
type DutyRates map[string]float64

// For returns the rate for hsCode, or 0 when none was entered.
func (r DutyRates) For(hsCode string) float64 {
	return finiteOrZero(r[normalizeHSCode(hsCode)])
}

// Set stores rate under the normalized form of hsCode.
func (r DutyRates) Set(hsCode string, rate float64) {
	r[normalizeHSCode(hsCode)] = rate
}

func normalizeHSCode(code string) string {
	return strings.TrimSpace(code)
}
