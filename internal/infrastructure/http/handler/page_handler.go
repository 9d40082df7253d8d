package handler

import (
	"net/http"

	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/response"
)

// PageHandler serves page metadata
type PageHandler struct {
	service *service.PageService
}

// NewPageHandler creates a new page handler
func NewPageHandler(service *service.PageService) *PageHandler {
	return &PageHandler{service: service}
}

// Home handles GET /pages/home
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.service.Home(r.Context()))
}
