package handler

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"grocinv/internal/model"
	"grocinv/internal/service"

	"github.com/rs/zerolog"
)

// ListHandler handles list-level HTTP requests.
type ListHandler struct {
	service service.ListService
	logger  zerolog.Logger
}

// NewListHandler creates a new list handler.
func NewListHandler(service service.ListService, logger zerolog.Logger) *ListHandler {
	return &ListHandler{
		service: service,
		logger:  logger.With().Str("handler", "list").Logger(),
	}
}

// createListRequest is the POST /api/lists body.
type createListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// importCodeRequest is the POST /api/import/code body.
type importCodeRequest struct {
	Code string `json:"code"`
}

// shareResponse carries the share code and, when rendering succeeded,
// a base64 PNG QR image of it.
type shareResponse struct {
	Code    string `json:"code"`
	QRImage string `json:"qr_image,omitempty"`
}

// GetAll handles GET /api/lists requests.
func (h *ListHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Lists())
}

// Create handles POST /api/lists requests.
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req createListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	list, err := h.service.Create(req.Name, req.Description)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

// GetByID handles GET /api/lists/{id} requests, stamping the list's
// last-viewed time.
func (h *ListHandler) GetByID(w http.ResponseWriter, r *http.Request, listID string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	list, err := h.service.MarkViewed(listID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Delete handles DELETE /api/lists/{id} requests.
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request, listID string) {
	if err := h.service.Delete(listID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Share handles GET /api/lists/{id}/share requests.
func (h *ListHandler) Share(w http.ResponseWriter, r *http.Request, listID string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	info, err := h.service.Share(listID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	resp := shareResponse{Code: info.Code}
	if info.QRImage != nil {
		resp.QRImage = base64.StdEncoding.EncodeToString(info.QRImage)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Reset handles POST /api/lists/{id}/reset requests.
func (h *ListHandler) Reset(w http.ResponseWriter, r *http.Request, listID string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if err := h.service.ResetAll(listID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportCode handles POST /api/import/code requests.
func (h *ListHandler) ImportCode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req importCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.Code == "" {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:   model.ErrCodeMissingField,
			Message: "Please enter a code",
		})
		return
	}

	list, err := h.service.ImportByCode(req.Code)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

// ImportCSV handles POST /api/import/csv requests. The request body is
// the raw CSV text.
func (h *ListHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	content, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body", h.logger)
		return
	}

	list, err := h.service.ImportCSV(string(content))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}
