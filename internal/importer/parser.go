package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/landed/internal/encoding"
	"github.com/MrJamesThe3rd/landed/internal/invoice"
)

var ErrUnknownLayout = errors.New("no matching line item layout found")

var delimiters = []rune{',', ';'}

// Result is the outcome of parsing one spreadsheet.
type Result struct {
	Profile string
	Charset string
	Items   []invoice.LineItemParams
	// Skipped counts data rows dropped for an unreadable quantity or price.
	Skipped int
}

// Parser reads line item CSV exports, detecting charset, delimiter and
// column layout.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) (Result, error) {
	decoded, err := enc.Detect(r)
	if err != nil {
		return Result{}, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(decoded)
	if err != nil {
		return Result{}, fmt.Errorf("read input: %w", err)
	}

	for _, comma := range delimiters {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		res := parseRows(profile, cols, rows[headerIdx+1:])
		res.Charset = decoded.Charset

		return res, nil
	}

	return Result{}, fmt.Errorf("%w: expected one of %s", ErrUnknownLayout, strings.Join(Profiles(), ", "))
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// colIndex maps normalized header names to their index in the row.
type colIndex map[string]int

func (c colIndex) lookup(name string) int {
	if name == "" {
		return -1
	}

	if i, ok := c[name]; ok {
		return i
	}

	return -1
}

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := headerKey(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows keeps the rows a draft invoice would accept. Blank rows and rows
// without a description end up neither in Items nor in Skipped.
func parseRows(p *Profile, cols colIndex, rows [][]string) Result {
	res := Result{Profile: p.Name}

	var (
		descIdx   = cols.lookup(p.DescriptionCol)
		qtyIdx    = cols.lookup(p.QuantityCol)
		priceIdx  = cols.lookup(p.UnitPriceCol)
		hsIdx     = cols.lookup(p.HSCodeCol)
		weightIdx = cols.lookup(p.WeightCol)
		draft     invoice.Draft
	)

	for _, row := range rows {
		desc := cellValue(row, descIdx)
		if desc == "" {
			continue
		}

		qty, err := parseNumber(cellValue(row, qtyIdx))
		if err != nil {
			res.Skipped++
			continue
		}

		price, err := parseNumber(cellValue(row, priceIdx))
		if err != nil {
			res.Skipped++
			continue
		}

		var weight float64
		if s := cellValue(row, weightIdx); s != "" {
			if w, err := parseNumber(s); err == nil && w > 0 {
				weight = w
			}
		}

		params := invoice.LineItemParams{
			Description: desc,
			Quantity:    qty,
			UnitPrice:   price,
			HSCode:      cellValue(row, hsIdx),
			Weight:      weight,
		}

		if !draft.AddLineItem(params) {
			res.Skipped++
			continue
		}

		res.Items = append(res.Items, params)
	}

	return res
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
