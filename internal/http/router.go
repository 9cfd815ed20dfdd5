package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/MrJamesThe3rd/landed/internal/http/dashboard"
	"github.com/MrJamesThe3rd/landed/internal/http/export"
	"github.com/MrJamesThe3rd/landed/internal/http/freight"
	"github.com/MrJamesThe3rd/landed/internal/http/hscode"
	"github.com/MrJamesThe3rd/landed/internal/http/importcsv"
	"github.com/MrJamesThe3rd/landed/internal/http/invoice"
	"github.com/MrJamesThe3rd/landed/internal/http/landedcost"
)

type Options struct {
	AllowedOrigins []string
	// ExportLimit requests per ExportWindow and client IP; zero disables it.
	ExportLimit  int
	ExportWindow time.Duration
}

type Handlers struct {
	Invoices    *invoice.Handler
	Import      *importcsv.Handler
	Freight     *freight.Handler
	LandedCosts *landedcost.Handler
	Export      *export.Handler
	Dashboard   *dashboard.Handler
	HSCodes     *hscode.Handler
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/invoices", func(r chi.Router) {
			r.Route("/import", h.Import.Routes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Invoices.Routes(r)
			})
		})

		r.Route("/freight", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Freight.Routes(r)
		})

		r.Route("/landed-costs", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.LandedCosts.Routes(r)
		})

		r.Route("/export", func(r chi.Router) {
			if opts.ExportLimit > 0 {
				r.Use(httprate.Limit(opts.ExportLimit, opts.ExportWindow,
					httprate.WithKeyFuncs(httprate.KeyByIP)))
			}

			h.Export.Routes(r)
		})

		r.Route("/dashboard", h.Dashboard.Routes)
		r.Route("/hs-codes", h.HSCodes.Routes)
	})

	return router
}
