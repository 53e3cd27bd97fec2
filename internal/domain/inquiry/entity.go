// internal/domain/inquiry/entity.go
package inquiry

import "time"

// Status is the lifecycle state of a customer inquiry.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAssigned  Status = "assigned"
	StatusQuoted    Status = "quoted"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusQuoted, StatusCompleted:
		return true
	}
	return false
}

// AdvanceTarget reports whether s is an acceptable target for the
// owner-driven status update path. Progression is not required to be
// monotonic; any of the three values is accepted from an assigned row.
func (s Status) AdvanceTarget() bool {
	switch s {
	case StatusAssigned, StatusQuoted, StatusCompleted:
		return true
	}
	return false
}

// AutoReleaseAfter is the fixed holding period before an assigned inquiry
// reverts to the pool.
const AutoReleaseAfter = 7 * 24 * time.Hour

// CustomerInquiry is a customer-submitted request for a logistics quote.
// Name, email, phone and region are PII; email and phone are masked for
// viewers who are neither the assignee nor an admin (see Redact).
type CustomerInquiry struct {
	ID             string `json:"id" db:"id"`
	CustomerName   string `json:"customer_name" db:"customer_name"`
	CustomerEmail  string `json:"customer_email" db:"customer_email"`
	CustomerPhone  string `json:"customer_phone" db:"customer_phone"`
	CustomerRegion string `json:"customer_region" db:"customer_region"`

	BusinessType string `json:"business_type" db:"business_type"`
	Origin       string `json:"origin" db:"origin"`
	Destination  string `json:"destination" db:"destination"`

	CargoDescription       *string  `json:"cargo_description,omitempty" db:"cargo_description"`
	EstimatedWeight        *float64 `json:"estimated_weight,omitempty" db:"estimated_weight"`
	EstimatedVolume        *float64 `json:"estimated_volume,omitempty" db:"estimated_volume"`
	ExpectedShipDate       *string  `json:"expected_ship_date,omitempty" db:"expected_ship_date"`
	AdditionalRequirements *string  `json:"additional_requirements,omitempty" db:"additional_requirements"`

	Status         Status     `json:"status" db:"status"`
	AssignedTo     *string    `json:"assigned_to,omitempty" db:"assigned_to"`
	AssignedToName *string    `json:"assigned_to_name,omitempty" db:"assigned_to_name"`
	AssignedAt     *time.Time `json:"assigned_at,omitempty" db:"assigned_at"`
	AutoReleaseAt  *time.Time `json:"auto_release_at,omitempty" db:"auto_release_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OwnedBy reports whether the inquiry is currently assigned to userID.
func (i *CustomerInquiry) OwnedBy(userID string) bool {
	return i.AssignedTo != nil && *i.AssignedTo == userID
}
