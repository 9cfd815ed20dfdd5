package dashboard

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/landed/internal/dashboard"
	"github.com/MrJamesThe3rd/landed/internal/http/httpx"
	"github.com/MrJamesThe3rd/landed/internal/invoice"
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.stats)
}

type recentInvoiceResponse struct {
	ID            uuid.UUID        `json:"id"`
	InvoiceNumber string           `json:"invoice_number"`
	Supplier      string           `json:"supplier"`
	Currency      invoice.Currency `json:"currency"`
	Date          string           `json:"date"`
	TotalValue    float64          `json:"total_value"`
}

type statsResponse struct {
	InvoiceCount      int                     `json:"invoice_count"`
	FreightCount      int                     `json:"freight_count"`
	LandedCostRows    int                     `json:"landed_cost_rows"`
	TotalInvoiceValue float64                 `json:"total_invoice_value"`
	TotalFreightCost  float64                 `json:"total_freight_cost"`
	TotalLandedCost   float64                 `json:"total_landed_cost"`
	Recent            []recentInvoiceResponse `json:"recent"`
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	recent := make([]recentInvoiceResponse, 0, len(st.Recent))
	for _, inv := range st.Recent {
		recent = append(recent, recentInvoiceResponse{
			ID:            inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			Supplier:      inv.Supplier,
			Currency:      inv.Currency,
			Date:          inv.Date.Format(time.DateOnly),
			TotalValue:    inv.TotalValue(),
		})
	}

	httpx.JSON(w, http.StatusOK, statsResponse{
		InvoiceCount:      st.InvoiceCount,
		FreightCount:      st.FreightCount,
		LandedCostRows:    st.LandedCostRows,
		TotalInvoiceValue: st.TotalInvoiceValue,
		TotalFreightCost:  st.TotalFreightCost,
		TotalLandedCost:   st.TotalLandedCost,
		Recent:            recent,
	})
}
