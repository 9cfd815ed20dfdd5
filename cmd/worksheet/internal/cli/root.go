package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/landed/internal/app"
	"github.com/MrJamesThe3rd/landed/internal/config"
)

// NewRootCmd builds the worksheet command tree. Each invocation gets a
// fresh, empty session.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "worksheet",
		Short: "Build landed cost worksheets from the command line",
		Long: `worksheet replays invoices, freight costs and generation runs from a JSON
workbook and writes the resulting landed cost worksheet as CSV or Excel.

It can also parse a supplier's line item spreadsheet and print the items it
would import.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().Bool("verbose", false, "Log progress to stderr")

	root.AddCommand(newGenerateCmd(cfg), newImportCmd(cfg))

	return root
}

func session(cmd *cobra.Command, cfg *config.Config) (*app.App, *slog.Logger) {
	var w io.Writer = io.Discard
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		w = cmd.ErrOrStderr()
	}

	logger := app.NewLogger(cfg, w)

	return app.New(logger), logger
}
