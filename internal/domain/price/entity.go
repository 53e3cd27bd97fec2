// internal/domain/price/entity.go
package price

import "time"

const (
	TypeCost   = "cost"
	TypePublic = "public"
)

type Price struct {
	ID             string  `json:"id" db:"id"`
	BusinessTypeID string  `json:"business_type_id" db:"business_type_id"`
	Origin         string  `json:"origin" db:"origin"`
	Destination    string  `json:"destination" db:"destination"`
	PriceType      string  `json:"price_type" db:"price_type"`
	Price          float64 `json:"price" db:"price"`
	Currency       string  `json:"currency" db:"currency"`
	Unit           string  `json:"unit" db:"unit"`

	ValidFrom   string  `json:"valid_from" db:"valid_from"`
	ValidTo     *string `json:"valid_to,omitempty" db:"valid_to"`
	Description *string `json:"description,omitempty" db:"description"`

	IsActive  bool   `json:"is_active" db:"is_active"`
	CreatedBy string `json:"created_by" db:"created_by"`

	// Joined display fields
	BusinessTypeName *string `json:"business_type_name,omitempty" db:"business_type_name"`
	BusinessTypeCode *string `json:"business_type_code,omitempty" db:"business_type_code"`
	CreatedByName    *string `json:"created_by_name,omitempty" db:"created_by_name"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
