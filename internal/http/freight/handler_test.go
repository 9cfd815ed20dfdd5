package freight_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/landed/internal/freight"
	"github.com/MrJamesThe3rd/landed/internal/freight/store"
	freightHandler "github.com/MrJamesThe3rd/landed/internal/http/freight"
)

func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Route("/freight", freightHandler.NewHandler(freight.NewService(store.New())).Routes)

	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantTotal  float64
		wantType   string
	}{
		{
			name:       "Success",
			body:       `{"shipment_type":"air","origin":"Shenzhen","destination":"Rotterdam","weight":100,"freight_rate":2.5,"fuel_surcharge":10,"insurance":5,"handling":3,"documentation":2}`,
			wantStatus: http.StatusCreated,
			wantTotal:  270,
			wantType:   "air",
		},
		{
			name:       "DefaultsToSea",
			body:       `{"weight":10,"freight_rate":1}`,
			wantStatus: http.StatusCreated,
			wantTotal:  10,
			wantType:   "sea",
		},
		{
			name:       "UnknownType",
			body:       `{"shipment_type":"rail"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "NegativeWeight",
			body:       `{"weight":-1}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newRouter(), http.MethodPost, "/freight", tt.body)
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus != http.StatusCreated {
				return
			}

			var got struct {
				ID           uuid.UUID `json:"id"`
				ShipmentType string    `json:"shipment_type"`
				TotalCost    float64   `json:"total_cost"`
			}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, tt.wantType, got.ShipmentType)
			assert.InDelta(t, tt.wantTotal, got.TotalCost, 1e-9)
		})
	}
}

func TestHandler_ListGetDelete(t *testing.T) {
	h := newRouter()

	w := serve(h, http.MethodPost, "/freight", `{"weight":10,"freight_rate":2}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

	w = serve(h, http.MethodGet, "/freight", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	assert.Len(t, list, 1)

	w = serve(h, http.MethodGet, "/freight/"+created.ID.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(h, http.MethodDelete, "/freight/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(h, http.MethodGet, "/freight/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
