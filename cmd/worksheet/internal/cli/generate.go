package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/landed/internal/config"
	"github.com/MrJamesThe3rd/landed/internal/export"
	"github.com/MrJamesThe3rd/landed/internal/workbook"
)

func newGenerateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a worksheet from a JSON workbook",
		Long: `Generate loads the invoices and freight costs of a JSON workbook, runs each
listed generation in order and writes every accumulated row.

The output format follows the --output extension (.csv or .xlsx) unless
--format is given. Without --output the CSV is written to stdout.`,
		Example: `  # Write the worksheet next to the workbook
  worksheet generate --input shipment.json --output shipment.xlsx

  # Pipe the CSV somewhere else
  worksheet generate --input shipment.json | column -s, -t`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, cfg)
		},
	}

	cmd.Flags().StringP("input", "i", "", "Path to the JSON workbook [REQUIRED]")
	cmd.Flags().StringP("output", "o", "", "File to write; stdout when empty")
	cmd.Flags().String("format", "", "Output format (csv or xlsx)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runGenerate(cmd *cobra.Command, cfg *config.Config) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	formatFlag, _ := cmd.Flags().GetString("format")

	format, err := outputFormat(formatFlag, output)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	wb, err := workbook.Decode(f)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, logger := session(cmd, cfg)

	defaults := workbook.Defaults{
		Currency: cfg.Worksheet.Currency,
		TaxRate:  cfg.Worksheet.TaxRate,
	}
	if err := workbook.Replay(ctx, a, wb, defaults, logger); err != nil {
		return err
	}

	data, _, err := a.Export.Render(ctx, format)
	if err != nil {
		return err
	}

	if output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing worksheet: %w", err)
	}

	summary, err := a.LandedCosts.Summary(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows to %s (landed cost %.2f)\n", summary.Rows, output, summary.LandedCost)

	return nil
}

// outputFormat resolves the explicit flag first, then the output extension.
func outputFormat(flag, output string) (export.Format, error) {
	name := strings.ToLower(strings.TrimSpace(flag))
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}

	switch export.Format(name) {
	case "", export.FormatCSV:
		return export.FormatCSV, nil
	case export.FormatXLSX:
		return export.FormatXLSX, nil
	}

	return "", fmt.Errorf("unsupported output format %q (must be csv or xlsx)", name)
}
