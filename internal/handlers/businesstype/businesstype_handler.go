// internal/handlers/businesstype/businesstype_handler.go
package businesstype

import (
	"net/http"

	"cprice-service/internal/domain/businesstype"
	"cprice-service/internal/pkg/response"
	service "cprice-service/internal/service/businesstype"

	"github.com/gin-gonic/gin"
)

type BusinessTypeHandler struct {
	businessTypeService *service.BusinessTypeService
}

func NewBusinessTypeHandler(businessTypeService *service.BusinessTypeService) *BusinessTypeHandler {
	return &BusinessTypeHandler{
		businessTypeService: businessTypeService,
	}
}

// ========== Public Endpoints ==========

// ListActive serves active business types for public dropdowns.
func (h *BusinessTypeHandler) ListActive(c *gin.Context) {
	result, err := h.businessTypeService.ListActive(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "business types retrieved", result)
}

// ========== Authenticated Endpoints ==========

// Create adds a business type.
func (h *BusinessTypeHandler) Create(c *gin.Context) {
	var req businesstype.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.businessTypeService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "business type created successfully", result)
}

// List retrieves business types with filters.
func (h *BusinessTypeHandler) List(c *gin.Context) {
	var filters businesstype.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.businessTypeService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "business types retrieved", result)
}

// Get retrieves one business type.
func (h *BusinessTypeHandler) Get(c *gin.Context) {
	result, err := h.businessTypeService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "business type retrieved", result)
}

// Stats counts records referencing a business type.
func (h *BusinessTypeHandler) Stats(c *gin.Context) {
	result, err := h.businessTypeService.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "business type stats retrieved", result)
}

// Update applies partial changes.
func (h *BusinessTypeHandler) Update(c *gin.Context) {
	var req businesstype.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.businessTypeService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "business type updated successfully", result)
}

// Delete removes a business type when nothing references it.
func (h *BusinessTypeHandler) Delete(c *gin.Context) {
	if err := h.businessTypeService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "business type deleted successfully", nil)
}
