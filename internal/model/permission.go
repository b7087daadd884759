package model

import (
	"time"

	"github.com/google/uuid"
)

// PermissionOverride flips a single (role, action) decision away from the
// static default route table. Absence of a row means "use the default".
type PermissionOverride struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoleName      string    `gorm:"type:varchar(50);not null;index:idx_role_permission,unique" json:"role_name"`
	PermissionKey string    `gorm:"type:varchar(150);not null;index:idx_role_permission,unique" json:"permission_key"`
	Allowed       bool      `gorm:"not null" json:"allowed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
