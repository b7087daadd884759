package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateBrand    = "CREATE_BRAND"
	ActionUpdateBrand    = "UPDATE_BRAND"
	ActionDeleteBrand    = "DELETE_BRAND"
	ActionCreateModel    = "CREATE_MODEL"
	ActionUpdateModel    = "UPDATE_MODEL"
	ActionDeleteModel    = "DELETE_MODEL"
	ActionCreateVersion  = "CREATE_VERSION"
	ActionUpdateVersion  = "UPDATE_VERSION"
	ActionDeleteVersion  = "DELETE_VERSION"
	ActionCreateColor    = "CREATE_COLOR"
	ActionUpdateColor    = "UPDATE_COLOR"
	ActionDeleteColor    = "DELETE_COLOR"
	ActionCreateOptional = "CREATE_OPTIONAL"
	ActionUpdateOptional = "UPDATE_OPTIONAL"
	ActionDeleteOptional = "DELETE_OPTIONAL"

	ActionCreateVehicle    = "CREATE_VEHICLE"
	ActionUpdateVehicle    = "UPDATE_VEHICLE"
	ActionDeleteVehicle    = "DELETE_VEHICLE"
	ActionCreateDirectSale = "CREATE_DIRECT_SALE"
	ActionUpdateDirectSale = "UPDATE_DIRECT_SALE"
	ActionDeleteDirectSale = "DELETE_DIRECT_SALE"

	ActionCreateQuote       = "CREATE_QUOTE"
	ActionUpdatePermissions = "UPDATE_PERMISSIONS"
)

// AuditLog tracks who changed what for catalog, pricing and permission writes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable for automated writes
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"` // Serialized JSON payload of the change
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
