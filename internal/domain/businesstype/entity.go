// internal/domain/businesstype/entity.go
package businesstype

import "time"

type BusinessType struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Code        string    `json:"code" db:"code"`
	Description *string   `json:"description,omitempty" db:"description"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Stats counts the records referencing a business type.
type Stats struct {
	PriceCount   int64 `json:"price_count"`
	InquiryCount int64 `json:"inquiry_count"`
}

type CreateRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Code        string  `json:"code" binding:"required,max=50"`
	Description *string `json:"description"`
}

type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Code        *string `json:"code" binding:"omitempty,max=50"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type ListFilters struct {
	Search    string `form:"search"`
	IsActive  *bool  `form:"isActive"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

type ListResponse struct {
	Data       []BusinessType `json:"data"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}
