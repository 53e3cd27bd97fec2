// internal/handlers/announcement/announcement_handler.go
package announcement

import (
	"net/http"

	"cprice-service/internal/domain/announcement"
	"cprice-service/internal/middleware"
	"cprice-service/internal/pkg/response"
	service "cprice-service/internal/service/announcement"

	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	announcementService *service.AnnouncementService
}

func NewAnnouncementHandler(announcementService *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
	}
}

// Create publishes an announcement.
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req announcement.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.announcementService.Create(c.Request.Context(), middleware.MustGetUserID(c), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "announcement created successfully", result)
}

// List retrieves announcements with filters.
func (h *AnnouncementHandler) List(c *gin.Context) {
	var filters announcement.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.announcementService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "announcements retrieved", result)
}

// Get retrieves one announcement.
func (h *AnnouncementHandler) Get(c *gin.Context) {
	result, err := h.announcementService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "announcement retrieved", result)
}

// Update applies partial changes.
func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req announcement.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.announcementService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "announcement updated successfully", result)
}

// UpdateStatusBatch toggles a set of announcements in one statement.
func (h *AnnouncementHandler) UpdateStatusBatch(c *gin.Context) {
	var req announcement.BatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	updated, err := h.announcementService.UpdateStatusBatch(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "announcements updated successfully", gin.H{"updated": updated})
}

// Delete removes an announcement.
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.announcementService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "announcement deleted successfully", nil)
}
