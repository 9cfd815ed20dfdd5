package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/landed/internal/config"
)

type importedItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	HSCode      string  `json:"hs_code,omitempty"`
	Weight      float64 `json:"weight,omitempty"`
}

type importReport struct {
	Profile string         `json:"profile"`
	Charset string         `json:"charset"`
	Skipped int            `json:"skipped"`
	Items   []importedItem `json:"items"`
}

func newImportCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Parse a line item spreadsheet and print the items as JSON",
		Long: `Import detects the charset, delimiter and column layout of a supplier's line
item CSV and prints the items that would be added to an invoice. Rows without
a description, quantity or unit price are left out.`,
		Example: `  worksheet import supplier-items.csv > items.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, cfg, args[0])
		},
	}
}

func runImport(cmd *cobra.Command, cfg *config.Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer f.Close()

	a, _ := session(cmd, cfg)

	res, err := a.Importer.Import(cmd.Context(), f)
	if err != nil {
		return err
	}

	report := importReport{
		Profile: res.Profile,
		Charset: res.Charset,
		Skipped: res.Skipped,
		Items:   make([]importedItem, 0, len(res.Items)),
	}
	for _, it := range res.Items {
		report.Items = append(report.Items, importedItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			HSCode:      it.HSCode,
			Weight:      it.Weight,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(report)
}
