package landedcost

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/landed/internal/http/httpx"
	"github.com/MrJamesThe3rd/landed/internal/landedcost"
)

type Handler struct {
	svc *landedcost.Service
}

func NewHandler(svc *landedcost.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.generate)
	r.Get("/", h.list)
	r.Delete("/", h.clear)
	r.Get("/summary", h.summary)
	r.Delete("/{id}", h.delete)
}

type generateRequest struct {
	InvoiceID    uuid.UUID          `json:"invoice_id"`
	FreightID    uuid.UUID          `json:"freight_id"`
	DutyRates    map[string]float64 `json:"duty_rates" validate:"dive,gte=0"`
	TaxRate      float64            `json:"tax_rate" validate:"gte=0"`
	OtherCharges float64            `json:"other_charges" validate:"gte=0"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, err)
		return
	}

	rates := make(landedcost.DutyRates, len(req.DutyRates))
	for code, rate := range req.DutyRates {
		rates.Set(code, rate)
	}

	items, err := h.svc.Generate(r.Context(), landedcost.GenerateParams{
		InvoiceID: req.InvoiceID,
		FreightID: req.FreightID,
		Inputs: landedcost.Inputs{
			DutyRates:    rates,
			TaxRate:      req.TaxRate,
			OtherCharges: req.OtherCharges,
		},
	})
	if err != nil {
		if errors.Is(err, landedcost.ErrInvalidSelection) || errors.Is(err, landedcost.ErrNonPositiveQuantity) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	httpx.JSON(w, http.StatusCreated, toResponseList(items))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponseList(items))
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type summaryResponse struct {
	Rows           int     `json:"rows"`
	GoodsValue     float64 `json:"goods_value"`
	Freight        float64 `json:"freight"`
	DutiesAndTaxes float64 `json:"duties_and_taxes"`
	OtherCharges   float64 `json:"other_charges"`
	LandedCost     float64 `json:"landed_cost"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	httpx.JSON(w, http.StatusOK, summaryResponse{
		Rows:           s.Rows,
		GoodsValue:     s.GoodsValue,
		Freight:        s.Freight,
		DutiesAndTaxes: s.DutiesAndTaxes,
		OtherCharges:   s.OtherCharges,
		LandedCost:     s.LandedCost,
	})
}
