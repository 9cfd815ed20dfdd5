// Package workbook replays a JSON description of invoices, freight costs and
// generation runs through the services, for batch use outside the UI.
package workbook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/landed/internal/app"
	"github.com/MrJamesThe3rd/landed/internal/freight"
	"github.com/MrJamesThe3rd/landed/internal/invoice"
	"github.com/MrJamesThe3rd/landed/internal/landedcost"
)

var (
	ErrDuplicateRef = errors.New("duplicate reference")
	ErrUnknownRef   = errors.New("unknown reference")
)

// Workbook is the input file. Runs refer to invoices and freight costs by
// their Ref, which only has meaning inside one file.
type Workbook struct {
	HSCodes  []HSCode  `json:"hs_codes"`
	Invoices []Invoice `json:"invoices"`
	Freight  []Freight `json:"freight"`
	Runs     []Run     `json:"runs"`
}

// HSCode is learned before any invoice is added, so it can fill blank codes.
type HSCode struct {
	Pattern string `json:"pattern"`
	HSCode  string `json:"hs_code"`
}

type Invoice struct {
	Ref           string     `json:"ref"`
	InvoiceNumber string     `json:"invoice_number"`
	Supplier      string     `json:"supplier"`
	Currency      string     `json:"currency"`
	ExchangeRate  float64    `json:"exchange_rate"`
	Date          string     `json:"date"`
	Items         []LineItem `json:"items"`
}

type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	HSCode      string  `json:"hs_code"`
	Weight      float64 `json:"weight"`
}

type Freight struct {
	Ref           string  `json:"ref"`
	ShipmentType  string  `json:"shipment_type"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	Weight        float64 `json:"weight"`
	Volume        float64 `json:"volume"`
	FreightRate   float64 `json:"freight_rate"`
	FuelSurcharge float64 `json:"fuel_surcharge"`
	Insurance     float64 `json:"insurance"`
	Handling      float64 `json:"handling"`
	Documentation float64 `json:"documentation"`
}

type Run struct {
	Invoice      string             `json:"invoice"`
	Freight      string             `json:"freight"`
	DutyRates    map[string]float64 `json:"duty_rates"`
	TaxRate      *float64           `json:"tax_rate"`
	OtherCharges float64            `json:"other_charges"`
}

// Defaults fill fields a workbook leaves out.
type Defaults struct {
	Currency string
	TaxRate  float64
}

func Decode(r io.Reader) (*Workbook, error) {
	var wb Workbook

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&wb); err != nil {
		return nil, fmt.Errorf("decoding workbook: %w", err)
	}

	return &wb, nil
}

// Replay loads the workbook into a and runs every generation in order.
func Replay(ctx context.Context, a *app.App, wb *Workbook, def Defaults, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	for _, m := range wb.HSCodes {
		if err := a.Classifier.Learn(ctx, m.Pattern, m.HSCode); err != nil {
			return fmt.Errorf("hs code %q: %w", m.Pattern, err)
		}
	}

	invoices := make(map[string]uuid.UUID, len(wb.Invoices))
	for i, in := range wb.Invoices {
		ref := refOr(in.Ref, "invoice", i)
		if _, ok := invoices[ref]; ok {
			return fmt.Errorf("invoice %q: %w", ref, ErrDuplicateRef)
		}

		d, err := in.draft(ctx, a, def)
		if err != nil {
			return fmt.Errorf("invoice %q: %w", ref, err)
		}

		if dropped := len(in.Items) - len(d.Items); dropped > 0 {
			logger.Warn("line items dropped", "invoice", ref, "count", dropped)
		}

		inv, err := a.Invoices.Add(ctx, d)
		if err != nil {
			return fmt.Errorf("invoice %q: %w", ref, err)
		}

		invoices[ref] = inv.ID
	}

	costs := make(map[string]uuid.UUID, len(wb.Freight))
	for i, f := range wb.Freight {
		ref := refOr(f.Ref, "freight", i)
		if _, ok := costs[ref]; ok {
			return fmt.Errorf("freight %q: %w", ref, ErrDuplicateRef)
		}

		c, err := a.Freight.Add(ctx, f.components())
		if err != nil {
			return fmt.Errorf("freight %q: %w", ref, err)
		}

		costs[ref] = c.ID
	}

	for i, run := range wb.Runs {
		invID, ok := invoices[run.Invoice]
		if !ok {
			return fmt.Errorf("run %d: invoice %q: %w", i+1, run.Invoice, ErrUnknownRef)
		}

		freightID, ok := costs[run.Freight]
		if !ok {
			return fmt.Errorf("run %d: freight %q: %w", i+1, run.Freight, ErrUnknownRef)
		}

		if _, err := a.LandedCosts.Generate(ctx, run.params(invID, freightID, def)); err != nil {
			return fmt.Errorf("run %d: %w", i+1, err)
		}
	}

	return nil
}

// refOr gives unnamed entries the reference "<kind><position>", e.g. invoice1.
func refOr(ref, kind string, i int) string {
	if ref = strings.TrimSpace(ref); ref != "" {
		return ref
	}

	return fmt.Sprintf("%s%d", kind, i+1)
}

func (in Invoice) draft(ctx context.Context, a *app.App, def Defaults) (invoice.Draft, error) {
	d := invoice.NewDraft()
	d.InvoiceNumber = strings.TrimSpace(in.InvoiceNumber)
	d.Supplier = strings.TrimSpace(in.Supplier)

	switch {
	case strings.TrimSpace(in.Currency) != "":
		d.Currency = invoice.Currency(strings.ToUpper(strings.TrimSpace(in.Currency)))
	case def.Currency != "":
		d.Currency = invoice.Currency(def.Currency)
	}

	if in.ExchangeRate != 0 {
		d.ExchangeRate = in.ExchangeRate
	}

	if in.Date != "" {
		date, err := time.Parse(time.DateOnly, in.Date)
		if err != nil {
			return invoice.Draft{}, fmt.Errorf("parsing date %q: %w", in.Date, err)
		}

		d.Date = date
	}

	for _, it := range in.Items {
		hsCode := strings.TrimSpace(it.HSCode)
		if hsCode == "" {
			code, err := a.Classifier.Suggest(ctx, it.Description)
			if err != nil {
				return invoice.Draft{}, err
			}

			hsCode = code
		}

		d.AddLineItem(invoice.LineItemParams{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			HSCode:      hsCode,
			Weight:      it.Weight,
		})
	}

	return d, nil
}

func (f Freight) components() freight.Components {
	return freight.Components{
		ShipmentType:  freight.ShipmentType(f.ShipmentType),
		Origin:        f.Origin,
		Destination:   f.Destination,
		Weight:        f.Weight,
		Volume:        f.Volume,
		FreightRate:   f.FreightRate,
		FuelSurcharge: f.FuelSurcharge,
		Insurance:     f.Insurance,
		Handling:      f.Handling,
		Documentation: f.Documentation,
	}
}

func (r Run) params(invoiceID, freightID uuid.UUID, def Defaults) landedcost.GenerateParams {
	rates := landedcost.DutyRates{}
	for code, rate := range r.DutyRates {
		rates.Set(code, rate)
	}

	tax := def.TaxRate
	if r.TaxRate != nil {
		tax = *r.TaxRate
	}

	return landedcost.GenerateParams{
		InvoiceID: invoiceID,
		FreightID: freightID,
		Inputs: landedcost.Inputs{
			DutyRates:    rates,
			TaxRate:      tax,
			OtherCharges: r.OtherCharges,
		},
	}
}
