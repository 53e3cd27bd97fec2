// internal/domain/user/entity.go
package user

import (
	"time"

	"cprice-service/internal/pkg/permission"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           string             `json:"id" db:"id"`
	Username     string             `json:"username" db:"username"`
	Email        string             `json:"email" db:"email"`
	PasswordHash string             `json:"-" db:"password_hash"`
	Role         string             `json:"role" db:"role"`
	IsActive     bool               `json:"is_active" db:"is_active"`
	Permissions  []permission.Grant `json:"permissions,omitempty"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" db:"updated_at"`
}

// PermissionDefinition is a row of the global permission catalogue.
type PermissionDefinition struct {
	ID     string `json:"id" db:"id"`
	Module string `json:"module" db:"module"`
	Action string `json:"action" db:"action"`
}
