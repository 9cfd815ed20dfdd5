package invoice

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/landed/internal/http/httpx"
	"github.com/MrJamesThe3rd/landed/internal/invoice"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type lineItemRequest struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	HSCode      string  `json:"hs_code"`
	Weight      float64 `json:"weight" validate:"gte=0"`
}

type invoiceRequest struct {
	InvoiceNumber string            `json:"invoice_number"`
	Supplier      string            `json:"supplier"`
	Currency      string            `json:"currency" validate:"omitempty,max=8"`
	ExchangeRate  float64           `json:"exchange_rate"`
	Date          string            `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Items         []lineItemRequest `json:"items" validate:"dive"`
}

// draft applies the same add rule the interactive editors use, so an item
// with a zero unit price is dropped rather than rejected.
func (req invoiceRequest) draft() invoice.Draft {
	d := invoice.Draft{
		InvoiceNumber: req.InvoiceNumber,
		Supplier:      req.Supplier,
		Currency:      invoice.Currency(req.Currency),
		ExchangeRate:  req.ExchangeRate,
	}

	if t, err := time.Parse(time.DateOnly, req.Date); err == nil {
		d.Date = t
	}

	for _, it := range req.Items {
		d.AddLineItem(invoice.LineItemParams{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			HSCode:      it.HSCode,
			Weight:      it.Weight,
		})
	}

	return d
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, err)
		return
	}

	inv, err := h.svc.Add(r.Context(), req.draft())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(inv))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponseList(invoices))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req invoiceRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, err)
		return
	}

	inv, err := h.svc.Update(r.Context(), id, req.draft())
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
