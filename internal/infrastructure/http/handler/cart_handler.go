package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/app/session"
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/response"
)

var errNoSession = errors.New("no session bound to request")

// CartHandler handles HTTP requests for the visitor's cart and cart modal.
// It expects the session middleware in front of it.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	response.JSON(w, http.StatusOK, h.service.GetCart(r.Context(), sess))
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	cart, err := h.service.AddItem(r.Context(), sess, &req)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			response.Error(w, http.StatusNotFound, err)
		} else {
			response.Error(w, http.StatusInternalServerError, err)
		}
		return
	}

	response.JSON(w, http.StatusOK, cart)
}

// UpdateQuantity handles PUT /cart/items/{productID}. A body that cannot be
// read as a quantity removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req dto.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.DebugContext(r.Context(), "Unreadable quantity update, treating as removal",
			slog.String("error", err.Error()),
		)
	}

	quantity := dto.ParseQuantity(req.Quantity, 0)
	response.JSON(w, http.StatusOK, h.service.UpdateQuantity(r.Context(), sess, chi.URLParam(r, "productID"), quantity))
}

// RemoveItem handles DELETE /cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	response.JSON(w, http.StatusOK, h.service.RemoveItem(r.Context(), sess, chi.URLParam(r, "productID")))
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	response.JSON(w, http.StatusOK, h.service.Clear(r.Context(), sess))
}

// GetModal handles GET /cart/modal
func (h *CartHandler) GetModal(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	response.JSON(w, http.StatusOK, h.service.Modal(r.Context(), sess))
}

// OpenModal handles POST /cart/modal/open
func (h *CartHandler) OpenModal(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	response.JSON(w, http.StatusOK, h.service.OpenModal(r.Context(), sess))
}

// CloseModal handles POST /cart/modal/close
func (h *CartHandler) CloseModal(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	response.JSON(w, http.StatusOK, h.service.CloseModal(r.Context(), sess))
}

// Checkout handles POST /cart/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	result, err := h.service.Checkout(r.Context(), sess)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			response.Error(w, http.StatusConflict, err)
		} else {
			response.Error(w, http.StatusInternalServerError, err)
		}
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Toasts handles GET /toasts
func (h *CartHandler) Toasts(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	response.JSON(w, http.StatusOK, h.service.Toasts(r.Context(), sess))
}

func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		h.logger.ErrorContext(r.Context(), "Cart route reached without a session")
		response.Error(w, http.StatusInternalServerError, errNoSession)
		return nil, false
	}
	return sess, true
}
