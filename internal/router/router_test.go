package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"grocinv/internal/catalog"
	"grocinv/internal/handler"
	"grocinv/internal/localstore"
	"grocinv/internal/model"
	"grocinv/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyCatalogLoader struct{}

func (emptyCatalogLoader) Load(ctx context.Context, path string) (*catalog.Database, error) {
	return &catalog.Database{Products: map[string]model.Product{}}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := localstore.New(filepath.Join(t.TempDir(), "lists.json"), zerolog.Nop())
	lists := []model.List{
		{
			ID:        "100",
			ListCode:  "abc123",
			Name:      "Weekly Shop",
			Source:    model.SourceManual,
			CreatedAt: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			Products: []model.Product{
				{ID: "100-0", DatabaseID: "pr0001", Name: "Milk", Quantity: 2},
			},
		},
	}
	listService := service.NewListService(lists, store, zerolog.Nop())
	catalogService := catalog.NewService(emptyCatalogLoader{}, "products.json", zerolog.Nop())

	return New(
		handler.NewListHandler(listService, zerolog.Nop()),
		handler.NewProductHandler(listService, zerolog.Nop()),
		handler.NewCatalogHandler(catalogService, zerolog.Nop()),
		zerolog.Nop(),
	)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, rec.Body.String())
}

func TestRouter_ListRoutes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{
			name:           "GET collection",
			method:         http.MethodGet,
			path:           "/api/lists",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "GET collection with trailing slash",
			method:         http.MethodGet,
			path:           "/api/lists/",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "POST create",
			method:         http.MethodPost,
			path:           "/api/lists",
			body:           `{"name": "Hardware"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "GET one list",
			method:         http.MethodGet,
			path:           "/api/lists/100",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "GET unknown list",
			method:         http.MethodGet,
			path:           "/api/lists/missing",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "GET share",
			method:         http.MethodGet,
			path:           "/api/lists/100/share",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "POST reset",
			method:         http.MethodPost,
			path:           "/api/lists/100/reset",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "DELETE list",
			method:         http.MethodDelete,
			path:           "/api/lists/100",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Unknown subresource",
			method:         http.MethodGet,
			path:           "/api/lists/100/unknown",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Too many segments",
			method:         http.MethodGet,
			path:           "/api/lists/100/products/100-0/quantity/extra",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t)
			rec := doRequest(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestRouter_ProductRoutes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{
			name:           "POST add product",
			method:         http.MethodPost,
			path:           "/api/lists/100/products",
			body:           `{"name": "Butter"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "PUT update product",
			method:         http.MethodPut,
			path:           "/api/lists/100/products/100-0",
			body:           `{"name": "Oat Milk"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "DELETE product",
			method:         http.MethodDelete,
			path:           "/api/lists/100/products/100-0",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "POST quantity change",
			method:         http.MethodPost,
			path:           "/api/lists/100/products/100-0/quantity",
			body:           `{"change": 1}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "DELETE quantity reset",
			method:         http.MethodDelete,
			path:           "/api/lists/100/products/100-0/quantity",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "POST toggle complete",
			method:         http.MethodPost,
			path:           "/api/lists/100/products/100-0/complete",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "POST toggle stock",
			method:         http.MethodPost,
			path:           "/api/lists/100/products/100-0/stock",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t)
			rec := doRequest(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestRouter_ImportRoutes(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/import/code", `{"code": "abc123"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/import/csv", "Snacks\nChips,Food,,\n")
	assert.Equal(t, http.StatusCreated, rec.Code)

	var list model.List
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Equal(t, "Snacks", list.Name)
}

func TestRouter_CatalogRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/catalog/search?q=milk", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_CORSHeadersApplied(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/lists", "")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = doRequest(t, router, http.MethodOptions, "/api/lists", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected []string
	}{
		{
			name:     "Bare prefix",
			path:     "/api/lists",
			expected: nil,
		},
		{
			name:     "Trailing slash",
			path:     "/api/lists/",
			expected: nil,
		},
		{
			name:     "One segment",
			path:     "/api/lists/100",
			expected: []string{"100"},
		},
		{
			name:     "Nested segments",
			path:     "/api/lists/100/products/100-0",
			expected: []string{"100", "products", "100-0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitPath(tt.path, "/api/lists"))
		})
	}
}
