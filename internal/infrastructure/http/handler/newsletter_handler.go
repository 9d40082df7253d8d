package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/response"
)

// NewsletterHandler handles the newsletter signup form
type NewsletterHandler struct {
	service *service.NewsletterService
	logger  *slog.Logger
}

// NewNewsletterHandler creates a new newsletter handler
func NewNewsletterHandler(service *service.NewsletterService, logger *slog.Logger) *NewsletterHandler {
	return &NewsletterHandler{
		service: service,
		logger:  logger,
	}
}

// Subscribe handles POST /newsletter
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req dto.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	resp, err := h.service.Subscribe(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			response.Error(w, http.StatusBadRequest, err)
		case errors.Is(err, domain.ErrAlreadySubscribed):
			response.Error(w, http.StatusConflict, err)
		default:
			response.Error(w, http.StatusInternalServerError, err)
		}
		return
	}

	response.JSON(w, http.StatusCreated, resp)
}
