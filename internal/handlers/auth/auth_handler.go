// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"cprice-service/internal/domain/auth"
	"cprice-service/internal/middleware"
	"cprice-service/internal/pkg/response"
	service "cprice-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates a back-office user and returns a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), c.ClientIP(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "login successful", result)
}

// Me returns the caller's profile with current grants.
func (h *AuthHandler) Me(c *gin.Context) {
	result, err := h.authService.Me(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	result.PasswordHash = ""
	response.Success(c, http.StatusOK, "profile retrieved", result)
}

// Verify confirms the presented token is still good and returns the user
// with freshly loaded grants, so clients can pick up permission changes
// without logging in again.
func (h *AuthHandler) Verify(c *gin.Context) {
	result, err := h.authService.Me(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	result.PasswordHash = ""
	response.Success(c, http.StatusOK, "token valid", result)
}

// ChangePassword lets the caller rotate their own password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req auth.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), middleware.MustGetUserID(c), &req); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "password changed successfully", nil)
}
