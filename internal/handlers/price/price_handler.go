// internal/handlers/price/price_handler.go
package price

import (
	"net/http"

	"cprice-service/internal/domain/price"
	"cprice-service/internal/middleware"
	"cprice-service/internal/pkg/response"
	service "cprice-service/internal/service/price"

	"github.com/gin-gonic/gin"
)

type PriceHandler struct {
	priceService *service.PriceService
}

func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// ========== Public Endpoints ==========

// SearchPublic serves public, unexpired prices for the marketing site.
func (h *PriceHandler) SearchPublic(c *gin.Context) {
	var filters price.PublicSearchFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.priceService.SearchPublic(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "prices retrieved", result)
}

// ========== Authenticated Endpoints ==========

// Create adds a price entry.
func (h *PriceHandler) Create(c *gin.Context) {
	var req price.CreatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.priceService.Create(c.Request.Context(), middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "price created successfully", result)
}

// List retrieves back-office prices, cost entries included.
func (h *PriceHandler) List(c *gin.Context) {
	var filters price.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.priceService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "prices retrieved", result)
}

// Get retrieves one price.
func (h *PriceHandler) Get(c *gin.Context) {
	result, err := h.priceService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "price retrieved", result)
}

// Update applies partial changes to a price.
func (h *PriceHandler) Update(c *gin.Context) {
	var req price.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.priceService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "price updated successfully", result)
}

// Delete soft-deletes a price.
func (h *PriceHandler) Delete(c *gin.Context) {
	if err := h.priceService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "price deleted successfully", nil)
}
