package freight

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/landed/internal/freight"
	"github.com/MrJamesThe3rd/landed/internal/http/httpx"
)

type Handler struct {
	svc *freight.Service
}

func NewHandler(svc *freight.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes has no update: a wrong freight record is deleted and entered again.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type createFreightRequest struct {
	ShipmentType  string  `json:"shipment_type" validate:"omitempty,oneof=sea air road"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	Weight        float64 `json:"weight" validate:"gte=0"`
	Volume        float64 `json:"volume" validate:"gte=0"`
	FreightRate   float64 `json:"freight_rate" validate:"gte=0"`
	FuelSurcharge float64 `json:"fuel_surcharge" validate:"gte=0"`
	Insurance     float64 `json:"insurance" validate:"gte=0"`
	Handling      float64 `json:"handling" validate:"gte=0"`
	Documentation float64 `json:"documentation" validate:"gte=0"`
}

type freightResponse struct {
	ID            uuid.UUID            `json:"id"`
	ShipmentType  freight.ShipmentType `json:"shipment_type"`
	Label         string               `json:"label"`
	Origin        string               `json:"origin"`
	Destination   string               `json:"destination"`
	Weight        float64              `json:"weight"`
	Volume        float64              `json:"volume"`
	FreightRate   float64              `json:"freight_rate"`
	FuelSurcharge float64              `json:"fuel_surcharge"`
	Insurance     float64              `json:"insurance"`
	Handling      float64              `json:"handling"`
	Documentation float64              `json:"documentation"`
	TotalCost     float64              `json:"total_cost"`
	CreatedAt     time.Time            `json:"created_at"`
}

func toResponse(c *freight.Cost) freightResponse {
	return freightResponse{
		ID:            c.ID,
		ShipmentType:  c.ShipmentType,
		Label:         c.ShipmentType.Label(),
		Origin:        c.Origin,
		Destination:   c.Destination,
		Weight:        c.Weight,
		Volume:        c.Volume,
		FreightRate:   c.FreightRate,
		FuelSurcharge: c.FuelSurcharge,
		Insurance:     c.Insurance,
		Handling:      c.Handling,
		Documentation: c.Documentation,
		TotalCost:     c.TotalCost(),
		CreatedAt:     c.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createFreightRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, err)
		return
	}

	c, err := h.svc.Add(r.Context(), freight.Components{
		ShipmentType:  freight.ShipmentType(req.ShipmentType),
		Origin:        req.Origin,
		Destination:   req.Destination,
		Weight:        req.Weight,
		Volume:        req.Volume,
		FreightRate:   req.FreightRate,
		FuelSurcharge: req.FuelSurcharge,
		Insurance:     req.Insurance,
		Handling:      req.Handling,
		Documentation: req.Documentation,
	})
	if err != nil {
		if errors.Is(err, freight.ErrUnknownShipmentType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	costs, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]freightResponse, 0, len(costs))
	for _, c := range costs {
		resp = append(resp, toResponse(c))
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, freight.ErrNotFound) {
			http.Error(w, "freight cost not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(c))
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
