package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/landed/internal/landedcost"
)

const sheet = "Worksheet"

// WriteXLSX renders items as a single-sheet workbook. Numeric columns are
// stored as numbers with a two decimal display format.
func WriteXLSX(items []landedcost.Item) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	for i, h := range Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for r, it := range items {
		row := r + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, it.InvoiceNumber)
		write(2, it.Supplier)
		write(3, it.ItemDescription)
		write(4, it.Quantity)
		write(5, it.UnitPrice)
		write(6, it.TotalPrice)
		write(7, it.FreightCost)
		write(8, it.DutyRate)
		write(9, it.DutyAmount)
		write(10, it.TaxRate)
		write(11, it.TaxAmount)
		write(12, it.OtherCharges)
		write(13, it.TotalLandedCost)
		write(14, it.UnitLandedCost)
		write(15, string(it.Currency))
		write(16, it.ExchangeRate)
	}

	if len(items) > 0 {
		style, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
		if err != nil {
			return nil, fmt.Errorf("creating number style: %w", err)
		}

		last := len(items) + 1
		_ = f.SetCellStyle(sheet, "E2", fmt.Sprintf("N%d", last), style)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "P1", bold)
	}

	_ = f.SetColWidth(sheet, "A", "B", 18)
	_ = f.SetColWidth(sheet, "C", "C", 32)
	_ = f.SetColWidth(sheet, "D", "P", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	return buf.Bytes(), nil
}
