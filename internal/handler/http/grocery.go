package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/freshcart/grocery-api/internal/domain"
	"github.com/freshcart/grocery-api/internal/service"
	apperrors "github.com/freshcart/grocery-api/pkg/errors"
	"github.com/freshcart/grocery-api/pkg/httputil"
	"github.com/freshcart/grocery-api/pkg/pagination"
	"github.com/freshcart/grocery-api/pkg/validator"
)

// GroceryHandler handles HTTP requests for inventory endpoints.
type GroceryHandler struct {
	service *service.GroceryService
	logger  *slog.Logger
}

// NewGroceryHandler creates a new grocery HTTP handler.
func NewGroceryHandler(svc *service.GroceryService, logger *slog.Logger) *GroceryHandler {
	return &GroceryHandler{
		service: svc,
		logger:  logger,
	}
}

func groceryID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput("grocery id must be a positive integer")
	}
	return id, nil
}

// ListGroceries handles GET /api/v1/groceries
func (h *GroceryHandler) ListGroceries(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	result, err := h.service.ListGroceries(r.Context(), params)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// GetGrocery handles GET /api/v1/groceries/{id}
func (h *GroceryHandler) GetGrocery(w http.ResponseWriter, r *http.Request) {
	id, err := groceryID(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	grocery, err := h.service.GetGrocery(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: grocery})
}

// CreateGrocery handles POST /api/v1/groceries
func (h *GroceryHandler) CreateGrocery(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req domain.CreateGroceryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	grocery, err := h.service.CreateGrocery(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: grocery})
}

// UpdateGrocery handles PUT /api/v1/groceries/{id}
func (h *GroceryHandler) UpdateGrocery(w http.ResponseWriter, r *http.Request) {
	id, err := groceryID(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req domain.UpdateGroceryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	grocery, err := h.service.UpdateGrocery(r.Context(), id, &req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: grocery})
}

// DeleteGrocery handles DELETE /api/v1/groceries/{id}
func (h *GroceryHandler) DeleteGrocery(w http.ResponseWriter, r *http.Request) {
	id, err := groceryID(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	grocery, err := h.service.DeleteGrocery(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: grocery})
}
