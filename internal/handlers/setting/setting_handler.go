// internal/handlers/setting/setting_handler.go
package setting

import (
	"net/http"

	"cprice-service/internal/domain/setting"
	"cprice-service/internal/pkg/response"
	service "cprice-service/internal/service/setting"

	"github.com/gin-gonic/gin"
)

type SettingHandler struct {
	settingService *service.SettingService
}

func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{
		settingService: settingService,
	}
}

// GetPublic serves the whitelisted keys without authentication.
func (h *SettingHandler) GetPublic(c *gin.Context) {
	result, err := h.settingService.GetPublic(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "settings retrieved", result)
}

// GetAll serves the full settings map (admin only).
func (h *SettingHandler) GetAll(c *gin.Context) {
	result, err := h.settingService.GetAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "settings retrieved", result)
}

// Update writes a batch of settings (admin only).
func (h *SettingHandler) Update(c *gin.Context) {
	var req setting.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.settingService.Update(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "settings updated successfully", result)
}

// Reset restores defaults (admin only).
func (h *SettingHandler) Reset(c *gin.Context) {
	result, err := h.settingService.Reset(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "settings reset successfully", result)
}
