// internal/handlers/inquiry/inquiry_handler.go
package inquiry

import (
	"net/http"

	"cprice-service/internal/domain/inquiry"
	"cprice-service/internal/middleware"
	"cprice-service/internal/pkg/response"
	service "cprice-service/internal/service/inquiry"

	"github.com/gin-gonic/gin"
)

type InquiryHandler struct {
	inquiryService *service.InquiryService
}

func NewInquiryHandler(inquiryService *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{
		inquiryService: inquiryService,
	}
}

// ========== Public Endpoints ==========

// Submit accepts the public inquiry form.
func (h *InquiryHandler) Submit(c *gin.Context) {
	var req inquiry.SubmitInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.inquiryService.Submit(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "inquiry submitted successfully", result)
}

// ========== Authenticated Endpoints ==========

// List retrieves inquiries with filters, masked for the caller.
func (h *InquiryHandler) List(c *gin.Context) {
	var filters inquiry.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.inquiryService.List(c.Request.Context(), middleware.Viewer(c), &filters)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "inquiries retrieved", result)
}

// Get retrieves one inquiry, masked for the caller.
func (h *InquiryHandler) Get(c *gin.Context) {
	result, err := h.inquiryService.Get(c.Request.Context(), c.Param("id"), middleware.Viewer(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "inquiry retrieved", result)
}

// Claim takes ownership of a pending inquiry for the caller. Losing a
// claim race answers 404, same as a missing id.
func (h *InquiryHandler) Claim(c *gin.Context) {
	result, err := h.inquiryService.Claim(c.Request.Context(), c.Param("id"), middleware.Viewer(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "inquiry claimed successfully", result)
}

// Release returns an inquiry held by the caller (or anyone, for an admin)
// to the pending pool.
func (h *InquiryHandler) Release(c *gin.Context) {
	if err := h.inquiryService.Release(c.Request.Context(), c.Param("id"), middleware.Viewer(c)); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "inquiry released successfully", nil)
}

// UpdateStatus advances the lifecycle of an inquiry the caller owns.
func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	var req inquiry.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.inquiryService.UpdateStatus(c.Request.Context(), c.Param("id"), middleware.Viewer(c), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "inquiry status updated", result)
}

// ========== Admin Only Endpoints ==========

// Assign reassigns or releases an inquiry regardless of current status.
func (h *InquiryHandler) Assign(c *gin.Context) {
	var req inquiry.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.inquiryService.Reassign(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "inquiry assigned successfully", result)
}

// AutoRelease runs the expiry sweep on demand.
func (h *InquiryHandler) AutoRelease(c *gin.Context) {
	released, err := h.inquiryService.AutoReleaseExpired(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "expired inquiries released", gin.H{"released": released})
}
