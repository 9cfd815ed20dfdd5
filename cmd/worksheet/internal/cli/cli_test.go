package cli_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/landed/cmd/worksheet/internal/cli"
	"github.com/MrJamesThe3rd/landed/internal/config"
)

const workbookJSON = `{
	"invoices": [{
		"ref": "acme",
		"invoice_number": "INV-001",
		"supplier": "Acme, Ltd",
		"items": [{"description": "Widget", "quantity": 10, "unit_price": 5, "hs_code": "1234"}]
	}],
	"freight": [{"ref": "sea", "weight": 1, "freight_rate": 20}],
	"runs": [{"invoice": "acme", "freight": "sea", "duty_rates": {"1234": 10}}]
}`

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Worksheet.Currency = "USD"
	cfg.Worksheet.TaxRate = 10

	return cfg
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := cli.NewRootCmd(newConfig())
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

func TestGenerate_CSVToStdout(t *testing.T) {
	input := writeFile(t, "workbook.json", workbookJSON)

	stdout, _, err := execute(t, "generate", "--input", input)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Invoice Number", records[0][0])
	assert.Equal(t, "Acme, Ltd", records[1][1])
	assert.Equal(t, "84.70", records[1][12])
	assert.Equal(t, "8.47", records[1][13])
}

func TestGenerate_XLSXFile(t *testing.T) {
	input := writeFile(t, "workbook.json", workbookJSON)
	output := filepath.Join(t.TempDir(), "out.xlsx")

	_, stderr, err := execute(t, "generate", "-i", input, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote 1 rows")

	f, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Worksheet", "M2")
	require.NoError(t, err)
	assert.Equal(t, "84.70", v)
}

func TestGenerate_Errors(t *testing.T) {
	input := writeFile(t, "workbook.json", workbookJSON)

	tests := []struct {
		name string
		args []string
	}{
		{name: "MissingInput", args: []string{"generate"}},
		{name: "NoSuchFile", args: []string{"generate", "--input", filepath.Join(t.TempDir(), "nope.json")}},
		{name: "UnsupportedFormat", args: []string{"generate", "--input", input, "--output", "out.pdf"}},
		{name: "BadFormatFlag", args: []string{"generate", "--input", input, "--format", "ods"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
		})
	}
}

func TestImport(t *testing.T) {
	path := writeFile(t, "items.csv", "Item;Qty;Price;Tariff Code\nBolt;100;0,10;7318\nBroken;x;1\n")

	stdout, _, err := execute(t, "import", path)
	require.NoError(t, err)

	var report struct {
		Profile string `json:"profile"`
		Skipped int    `json:"skipped"`
		Items   []struct {
			Description string  `json:"description"`
			Quantity    float64 `json:"quantity"`
			UnitPrice   float64 `json:"unit_price"`
			HSCode      string  `json:"hs_code"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	assert.Equal(t, "commercial", report.Profile)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Items, 1)
	assert.Equal(t, "Bolt", report.Items[0].Description)
	assert.InDelta(t, 0.1, report.Items[0].UnitPrice, 1e-9)
	assert.Equal(t, "7318", report.Items[0].HSCode)
}

func TestImport_RequiresFile(t *testing.T) {
	_, _, err := execute(t, "import")
	require.Error(t, err)
}
