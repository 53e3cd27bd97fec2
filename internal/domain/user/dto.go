// internal/domain/user/dto.go
package user

type CreateUserRequest struct {
	Username      string   `json:"username" binding:"required,min=3,max=50"`
	Email         string   `json:"email" binding:"required,email,max=255"`
	Password      string   `json:"password" binding:"required,min=8"`
	Role          string   `json:"role" binding:"omitempty,oneof=admin user"`
	PermissionIDs []string `json:"permissionIds"`
}

type UpdateUserRequest struct {
	Email         *string  `json:"email" binding:"omitempty,email,max=255"`
	Role          *string  `json:"role" binding:"omitempty,oneof=admin user"`
	IsActive      *bool    `json:"isActive"`
	PermissionIDs []string `json:"permissionIds"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type ListFilters struct {
	Search    string `form:"search"`
	Role      string `form:"role" binding:"omitempty,oneof=admin user"`
	IsActive  *bool  `form:"isActive"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

type ListResponse struct {
	Data       []User `json:"data"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}
