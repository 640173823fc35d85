package handler

import (
	"encoding/json"
	"net/http"

	"grocinv/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-level HTTP requests within a list.
type ProductHandler struct {
	service service.ListService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ListService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// quantityRequest is the POST .../quantity body. Exactly one of the two
// fields should be set: Change adjusts relative to the current value,
// Quantity sets an absolute value.
type quantityRequest struct {
	Change   *int `json:"change,omitempty"`
	Quantity *int `json:"quantity,omitempty"`
}

// Add handles POST /api/lists/{id}/products requests.
func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request, listID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var in service.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.AddProduct(listID, in)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/lists/{id}/products/{pid} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request, listID, productID string) {
	var in service.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.UpdateProduct(listID, productID, in)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/lists/{id}/products/{pid} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request, listID, productID string) {
	if err := h.service.DeleteProduct(listID, productID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Quantity handles POST and DELETE /api/lists/{id}/products/{pid}/quantity
// requests: POST adjusts or sets the quantity, DELETE resets it to zero.
func (h *ProductHandler) Quantity(w http.ResponseWriter, r *http.Request, listID, productID string) {
	switch r.Method {
	case http.MethodDelete:
		product, err := h.service.ResetQuantity(listID, productID)
		if err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, product)

	case http.MethodPost:
		var req quantityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
			return
		}

		switch {
		case req.Change != nil:
			product, err := h.service.AdjustQuantity(listID, productID, *req.Change)
			if err != nil {
				writeDomainError(w, err, h.logger)
				return
			}
			writeJSON(w, http.StatusOK, product)
		case req.Quantity != nil:
			product, err := h.service.SetQuantity(listID, productID, *req.Quantity)
			if err != nil {
				writeDomainError(w, err, h.logger)
				return
			}
			writeJSON(w, http.StatusOK, product)
		default:
			writeError(w, http.StatusBadRequest, "change or quantity is required", h.logger)
		}

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

// ToggleComplete handles POST /api/lists/{id}/products/{pid}/complete requests.
func (h *ProductHandler) ToggleComplete(w http.ResponseWriter, r *http.Request, listID, productID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	product, err := h.service.ToggleCompletion(listID, productID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// ToggleStock handles POST /api/lists/{id}/products/{pid}/stock requests.
func (h *ProductHandler) ToggleStock(w http.ResponseWriter, r *http.Request, listID, productID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	product, err := h.service.ToggleOutOfStock(listID, productID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}
