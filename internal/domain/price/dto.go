// internal/domain/price/dto.go
package price

type CreatePriceRequest struct {
	BusinessTypeID string  `json:"businessTypeId" binding:"required"`
	Origin         string  `json:"origin" binding:"required,max=255"`
	Destination    string  `json:"destination" binding:"required,max=255"`
	PriceType      string  `json:"priceType" binding:"required,oneof=cost public"`
	Price          float64 `json:"price" binding:"required,gt=0"`
	Currency       string  `json:"currency" binding:"required,max=10"`
	Unit           string  `json:"unit" binding:"required,max=50"`
	ValidFrom      string  `json:"validFrom" binding:"required"`
	ValidTo        *string `json:"validTo"`
	Description    *string `json:"description"`
}

type UpdatePriceRequest struct {
	BusinessTypeID *string  `json:"businessTypeId"`
	Origin         *string  `json:"origin" binding:"omitempty,max=255"`
	Destination    *string  `json:"destination" binding:"omitempty,max=255"`
	PriceType      *string  `json:"priceType" binding:"omitempty,oneof=cost public"`
	Price          *float64 `json:"price" binding:"omitempty,gt=0"`
	Currency       *string  `json:"currency" binding:"omitempty,max=10"`
	Unit           *string  `json:"unit" binding:"omitempty,max=50"`
	ValidFrom      *string  `json:"validFrom"`
	ValidTo        *string  `json:"validTo"`
	Description    *string  `json:"description"`
}

type ListFilters struct {
	Search       string `form:"search"`
	BusinessType string `form:"businessType"`
	Origin       string `form:"origin"`
	Destination  string `form:"destination"`
	PriceType    string `form:"priceType" binding:"omitempty,oneof=cost public"`
	SortBy       string `form:"sortBy"`
	SortOrder    string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
	Page         int    `form:"page"`
	PageSize     int    `form:"pageSize"`
}

// PublicSearchFilters is the unauthenticated search surface: public,
// unexpired prices only, matched by business-type code.
type PublicSearchFilters struct {
	BusinessType string `form:"businessType"`
	Origin       string `form:"origin"`
	Destination  string `form:"destination"`
	Page         int    `form:"page"`
	PageSize     int    `form:"pageSize"`
}

type ListResponse struct {
	Data       []Price `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}
