package export

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/landed/internal/export"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/csv", h.download(export.FormatCSV, "text/csv; charset=utf-8"))
	r.Get("/xlsx", h.download(export.FormatXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
}

func (h *Handler) download(format export.Format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, name, err := h.svc.Render(r.Context(), format)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))

		_, _ = w.Write(data)
	}
}
