// internal/handlers/user/user_handler.go
package user

import (
	"net/http"

	"cprice-service/internal/domain/user"
	"cprice-service/internal/pkg/response"
	service "cprice-service/internal/service/user"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ========== Admin Only Endpoints ==========

// Create registers a back-office account.
func (h *UserHandler) Create(c *gin.Context) {
	var req user.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.userService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "user created successfully", result)
}

// List retrieves users with filters.
func (h *UserHandler) List(c *gin.Context) {
	var filters user.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.userService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "users retrieved", result)
}

// Get retrieves one user with grants.
func (h *UserHandler) Get(c *gin.Context) {
	result, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	result.PasswordHash = ""
	response.Success(c, http.StatusOK, "user retrieved", result)
}

// Update mutates account fields and, optionally, the grant set.
func (h *UserHandler) Update(c *gin.Context) {
	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.userService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	result.PasswordHash = ""
	response.Success(c, http.StatusOK, "user updated successfully", result)
}

// ResetPassword sets a new password without the old one.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req user.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), c.Param("id"), &req); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "password reset successfully", nil)
}

// Deactivate soft-disables an account.
func (h *UserHandler) Deactivate(c *gin.Context) {
	if err := h.userService.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "user deactivated successfully", nil)
}

// PermissionDefinitions returns the global grant catalogue.
func (h *UserHandler) PermissionDefinitions(c *gin.Context) {
	result, err := h.userService.PermissionDefinitions(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "permissions retrieved", result)
}
