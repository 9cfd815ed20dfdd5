package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/MrJamesThe3rd/landed/internal/landedcost"
)

// Header is the worksheet column order shared by every export format.
var Header = []string{
	"Invoice Number",
	"Supplier",
	"Item Description",
	"Quantity",
	"Unit Price",
	"Total Price",
	"Freight Cost",
	"Duty Rate (%)",
	"Duty Amount",
	"Tax Rate (%)",
	"Tax Amount",
	"Other Charges",
	"Total Landed Cost",
	"Unit Landed Cost",
	"Currency",
	"Exchange Rate",
}

// WriteCSV writes the header and one record per item. Money and rate columns
// carry exactly two decimals; quantity and exchange rate keep their shortest
// form. Fields with commas, quotes or newlines are quoted.
func WriteCSV(w io.Writer, items []landedcost.Item) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, it := range items {
		if err := cw.Write(record(it)); err != nil {
			return fmt.Errorf("writing row %s: %w", it.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// FileName is the download name for an export generated at t.
func FileName(t time.Time, ext string) string {
	return fmt.Sprintf("landed-cost-worksheet-%s.%s", t.Format("2006-01-02"), ext)
}

func record(it landedcost.Item) []string {
	return []string{
		it.InvoiceNumber,
		it.Supplier,
		it.ItemDescription,
		plain(it.Quantity),
		fixed2(it.UnitPrice),
		fixed2(it.TotalPrice),
		fixed2(it.FreightCost),
		fixed2(it.DutyRate),
		fixed2(it.DutyAmount),
		fixed2(it.TaxRate),
		fixed2(it.TaxAmount),
		fixed2(it.OtherCharges),
		fixed2(it.TotalLandedCost),
		fixed2(it.UnitLandedCost),
		string(it.Currency),
		plain(it.ExchangeRate),
	}
}

func fixed2(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}

	return s
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
