// Package app wires the in-memory stores and services shared by the API
// server, the terminal UI and the worksheet CLI.
package app

import (
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/landed/internal/classify"
	classifyStore "github.com/MrJamesThe3rd/landed/internal/classify/store"
	"github.com/MrJamesThe3rd/landed/internal/config"
	"github.com/MrJamesThe3rd/landed/internal/dashboard"
	"github.com/MrJamesThe3rd/landed/internal/export"
	"github.com/MrJamesThe3rd/landed/internal/freight"
	freightStore "github.com/MrJamesThe3rd/landed/internal/freight/store"
	landedHttp "github.com/MrJamesThe3rd/landed/internal/http"
	dashboardHandler "github.com/MrJamesThe3rd/landed/internal/http/dashboard"
	exportHandler "github.com/MrJamesThe3rd/landed/internal/http/export"
	freightHandler "github.com/MrJamesThe3rd/landed/internal/http/freight"
	hsCodeHandler "github.com/MrJamesThe3rd/landed/internal/http/hscode"
	importHandler "github.com/MrJamesThe3rd/landed/internal/http/importcsv"
	invoiceHandler "github.com/MrJamesThe3rd/landed/internal/http/invoice"
	landedCostHandler "github.com/MrJamesThe3rd/landed/internal/http/landedcost"
	"github.com/MrJamesThe3rd/landed/internal/importer"
	"github.com/MrJamesThe3rd/landed/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/landed/internal/invoice/store"
	"github.com/MrJamesThe3rd/landed/internal/landedcost"
	landedCostStore "github.com/MrJamesThe3rd/landed/internal/landedcost/store"
)

// App holds one session's worth of state. Nothing outlives the process.
type App struct {
	Invoices    *invoice.Service
	Freight     *freight.Service
	LandedCosts *landedcost.Service
	Classifier  *classify.Service
	Importer    *importer.Service
	Export      *export.Service
	Dashboard   *dashboard.Service
}

func New(logger *slog.Logger) *App {
	var (
		invoices    = invoice.NewService(invoiceStore.New())
		costs       = freight.NewService(freightStore.New())
		landedCosts = landedcost.NewService(landedCostStore.New(), invoices, costs, logger)
		classifier  = classify.NewService(classifyStore.New())
	)

	return &App{
		Invoices:    invoices,
		Freight:     costs,
		LandedCosts: landedCosts,
		Classifier:  classifier,
		Importer:    importer.NewService(classifier, logger),
		Export:      export.NewService(landedCosts, logger),
		Dashboard:   dashboard.NewService(invoices, costs, landedCosts),
	}
}

// Router exposes the app over the JSON API.
func (a *App) Router(cfg *config.Config) http.Handler {
	return landedHttp.New(landedHttp.Handlers{
		Invoices:    invoiceHandler.NewHandler(a.Invoices),
		Import:      importHandler.NewHandler(a.Importer, a.Invoices),
		Freight:     freightHandler.NewHandler(a.Freight),
		LandedCosts: landedCostHandler.NewHandler(a.LandedCosts),
		Export:      exportHandler.NewHandler(a.Export),
		Dashboard:   dashboardHandler.NewHandler(a.Dashboard),
		HSCodes:     hsCodeHandler.NewHandler(a.Classifier),
	}, landedHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		ExportLimit:    cfg.RateLimit.Exports,
		ExportWindow:   cfg.RateLimit.Window,
	})
}
