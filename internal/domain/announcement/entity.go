// internal/domain/announcement/entity.go
package announcement

import "time"

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Announcement struct {
	ID        string `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Content   string `json:"content" db:"content"`
	Priority  string `json:"priority" db:"priority"`
	IsActive  bool   `json:"is_active" db:"is_active"`
	CreatedBy string `json:"created_by" db:"created_by"`

	CreatedByName *string `json:"created_by_name,omitempty" db:"created_by_name"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Content  string `json:"content" binding:"required"`
	Priority string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

type UpdateRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=255"`
	Content  *string `json:"content"`
	Priority *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	IsActive *bool   `json:"isActive"`
}

// BatchStatusRequest toggles is_active for a set of announcements in one
// set-based update.
type BatchStatusRequest struct {
	IDs      []string `json:"ids" binding:"required,min=1"`
	IsActive bool     `json:"isActive"`
}

type ListFilters struct {
	Search    string `form:"search"`
	Priority  string `form:"priority" binding:"omitempty,oneof=low medium high"`
	IsActive  *bool  `form:"isActive"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

type ListResponse struct {
	Data       []Announcement `json:"data"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}
