// internal/domain/setting/entity.go
package setting

import "time"

type Setting struct {
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Defaults are restored by the reset operation.
var Defaults = map[string]string{
	"site_name":        "CPrice Logistics",
	"site_description": "Logistics price quoting and inquiry management",
	"contact_email":    "contact@cprice.example.com",
	"contact_phone":    "",
	"icp_number":       "",
}

// PublicKeys is the whitelist exposed without authentication.
var PublicKeys = []string{"site_name", "site_description", "contact_email", "contact_phone", "icp_number"}

type UpdateRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}
