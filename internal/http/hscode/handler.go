package hscode

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/landed/internal/classify"
	"github.com/MrJamesThe3rd/landed/internal/http/httpx"
)

type Handler struct {
	svc *classify.Service
}

func NewHandler(svc *classify.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	Description string `json:"description"`
	HSCode      string `json:"hs_code"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	desc := r.URL.Query().Get("description")
	if desc == "" {
		http.Error(w, "description query parameter is required", http.StatusBadRequest)
		return
	}

	code, err := h.svc.Suggest(r.Context(), desc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	httpx.JSON(w, http.StatusOK, suggestResponse{Description: desc, HSCode: code})
}

type learnRequest struct {
	Pattern string `json:"pattern" validate:"required"`
	HSCode  string `json:"hs_code" validate:"required"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, err)
		return
	}

	if err := h.svc.Learn(r.Context(), req.Pattern, req.HSCode); err != nil {
		if errors.Is(err, classify.ErrEmptyMapping) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusCreated)
}

type mappingResponse struct {
	Pattern   string    `json:"pattern"`
	HSCode    string    `json:"hs_code"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	mappings, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]mappingResponse, 0, len(mappings))
	for _, m := range mappings {
		resp = append(resp, mappingResponse{Pattern: m.Pattern, HSCode: m.HSCode, CreatedAt: m.CreatedAt})
	}

	httpx.JSON(w, http.StatusOK, resp)
}
