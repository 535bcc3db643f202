package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/yasheela-alla/cartIt/pkg/errors"
	"github.com/yasheela-alla/cartIt/pkg/validator"

	"github.com/yasheela-alla/cartIt/internal/service"
)

// CheckoutHandler handles HTTP requests for the storefront checkout endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// AdjustQuantityRequest is the JSON request body for changing a cart line's
// quantity by a signed delta.
type AdjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// CompletePaymentRequest is the JSON request body for completing payment.
type CompletePaymentRequest struct {
	Method string `json:"method" validate:"required,oneof=creditcard paypal applepay"`
}

// --- Response envelope ---

type response struct {
	Data  any            `json:"data,omitempty"`
	Error *errorResponse `json:"error,omitempty"`
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// --- Handlers ---

// ListProducts handles GET /api/v1/products
func (h *CheckoutHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, response{Data: h.service.Products()})
}

// CreateSession handles POST /api/v1/sessions
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.CreateSession(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: h.service.View(session)})
}

// GetSession handles GET /api/v1/sessions/{sessionId}
func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetSession(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: h.service.View(session)})
}

// AddItem handles POST /api/v1/sessions/{sessionId}/items
func (h *CheckoutHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	session, err := h.service.AddToCart(r.Context(), chi.URLParam(r, "sessionId"), req.ProductID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: h.service.View(session)})
}

// AdjustQuantity handles PATCH /api/v1/sessions/{sessionId}/items/{productId}
func (h *CheckoutHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var req AdjustQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	session, err := h.service.AdjustQuantity(r.Context(), chi.URLParam(r, "sessionId"), chi.URLParam(r, "productId"), req.Delta)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: h.service.View(session)})
}

// RemoveItem handles DELETE /api/v1/sessions/{sessionId}/items/{productId}
func (h *CheckoutHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.RemoveFromCart(r.Context(), chi.URLParam(r, "sessionId"), chi.URLParam(r, "productId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: h.service.View(session)})
}

// Checkout handles POST /api/v1/sessions/{sessionId}/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.ProceedToCheckout(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: h.service.View(session)})
}

// Back handles POST /api/v1/sessions/{sessionId}/back
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.BackToCart(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: h.service.View(session)})
}

// CompletePayment handles POST /api/v1/sessions/{sessionId}/payment
func (h *CheckoutHandler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	var req CompletePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	session, err := h.service.CompletePayment(r.Context(), chi.URLParam(r, "sessionId"), req.Method)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: h.service.View(session)})
}

// Continue handles POST /api/v1/sessions/{sessionId}/continue
func (h *CheckoutHandler) Continue(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.ContinueShopping(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: h.service.View(session)})
}

// --- Helpers ---

func (h *CheckoutHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.Status, response{
			Error: &errorResponse{Code: appErr.Code, Message: appErr.Message},
		})
		return
	}

	status := apperrors.HTTPStatus(err)
	code := "INTERNAL_ERROR"
	message := "an internal error occurred"

	if errors.Is(err, apperrors.ErrNotFound) {
		code = "NOT_FOUND"
		message = "resource not found"
		status = http.StatusNotFound
	} else if errors.Is(err, apperrors.ErrInvalidInput) {
		code = "INVALID_INPUT"
		message = err.Error()
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	writeJSON(w, status, response{
		Error: &errorResponse{Code: code, Message: message},
	})
}

func (h *CheckoutHandler) writeValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "request validation failed",
				Fields:  valErr.Fields(),
			},
		})
		return
	}

	writeJSON(w, http.StatusBadRequest, response{
		Error: &errorResponse{Code: "INVALID_INPUT", Message: err.Error()},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}
