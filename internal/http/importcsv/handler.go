package importcsv

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/landed/internal/http/httpx"
	"github.com/MrJamesThe3rd/landed/internal/importer"
	"github.com/MrJamesThe3rd/landed/internal/invoice"
)

const maxUpload = 10 << 20

// Handler creates an invoice from a line item spreadsheet plus header fields
// sent as a multipart form.
type Handler struct {
	importSvc  *importer.Service
	invoiceSvc *invoice.Service
}

func NewHandler(importSvc *importer.Service, invoiceSvc *invoice.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		invoiceSvc: invoiceSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type lineItemDTO struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	HSCode      string  `json:"hs_code,omitempty"`
	Weight      float64 `json:"weight"`
}

type importResponse struct {
	InvoiceID  string        `json:"invoice_id,omitempty"`
	Profile    string        `json:"profile"`
	Charset    string        `json:"charset"`
	Items      []lineItemDTO `json:"items"`
	Skipped    int           `json:"skipped"`
	TotalValue float64       `json:"total_value"`
}

// importCSV parses the uploaded file and saves the invoice. With dry_run=true
// the parsed items are returned without saving anything.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := h.importSvc.Import(r.Context(), file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	draft := draftFromForm(r)
	for _, p := range res.Items {
		draft.AddLineItem(p)
	}

	resp := importResponse{
		Profile:    res.Profile,
		Charset:    res.Charset,
		Items:      toItemDTOs(draft.Items),
		Skipped:    res.Skipped,
		TotalValue: draft.TotalValue(),
	}

	if dryRun, _ := strconv.ParseBool(r.FormValue("dry_run")); dryRun {
		httpx.JSON(w, http.StatusOK, resp)
		return
	}

	inv, err := h.invoiceSvc.Add(r.Context(), draft)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.InvoiceID = inv.ID.String()

	httpx.JSON(w, http.StatusCreated, resp)
}

func draftFromForm(r *http.Request) invoice.Draft {
	d := invoice.Draft{
		InvoiceNumber: r.FormValue("invoice_number"),
		Supplier:      r.FormValue("supplier"),
		Currency:      invoice.Currency(r.FormValue("currency")),
	}

	if rate, err := strconv.ParseFloat(r.FormValue("exchange_rate"), 64); err == nil {
		d.ExchangeRate = rate
	}

	if t, err := time.Parse(time.DateOnly, r.FormValue("date")); err == nil {
		d.Date = t
	}

	return d
}

func toItemDTOs(items []invoice.LineItem) []lineItemDTO {
	dtos := make([]lineItemDTO, 0, len(items))
	for _, li := range items {
		dtos = append(dtos, lineItemDTO{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			HSCode:      li.HSCode,
			Weight:      li.Weight,
		})
	}

	return dtos
}
