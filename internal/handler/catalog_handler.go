package handler

import (
	"net/http"

	"grocinv/internal/catalog"
	"grocinv/internal/model"

	"github.com/rs/zerolog"
)

// CatalogHandler serves searches against the shared product catalog.
type CatalogHandler struct {
	service *catalog.Service
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service *catalog.Service, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// Search handles GET /api/catalog/search?q= requests. An unknown or
// blank query is an empty result, not an error.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	results := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if results == nil {
		results = []model.Product{}
	}
	writeJSON(w, http.StatusOK, results)
}
