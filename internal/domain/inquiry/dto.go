// internal/domain/inquiry/dto.go
package inquiry

type SubmitInquiryRequest struct {
	CustomerName           string   `json:"customerName" binding:"required,max=255"`
	CustomerEmail          string   `json:"customerEmail" binding:"required,email,max=255"`
	CustomerPhone          string   `json:"customerPhone" binding:"required,max=20"`
	CustomerRegion         string   `json:"customerRegion" binding:"required,max=100"`
	BusinessType           string   `json:"businessType" binding:"required,max=50"`
	Origin                 string   `json:"origin" binding:"required,max=255"`
	Destination            string   `json:"destination" binding:"required,max=255"`
	CargoDescription       *string  `json:"cargoDescription"`
	EstimatedWeight        *float64 `json:"estimatedWeight"`
	EstimatedVolume        *float64 `json:"estimatedVolume"`
	ExpectedShipDate       *string  `json:"expectedShipDate"`
	AdditionalRequirements *string  `json:"additionalRequirements"`
}

// ListFilters narrows the inquiry list. AssignedTo accepts "me",
// "unassigned" or a concrete user id; the service resolves "me" before the
// query runs.
type ListFilters struct {
	Search       string `form:"search"`
	Status       string `form:"status"`
	BusinessType string `form:"businessType"`
	Region       string `form:"region"`
	AssignedTo   string `form:"assignedTo"`
	SortBy       string `form:"sortBy"`
	SortOrder    string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
	Page         int    `form:"page"`
	PageSize     int    `form:"pageSize"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	// Notes are accepted for UI compatibility but not persisted.
	Notes string `json:"notes"`
}

type AssignRequest struct {
	AssignedTo *string `json:"assignedTo"`
}

type ListResponse struct {
	Data       []CustomerInquiry `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}
