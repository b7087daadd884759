package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Brand is the top of the catalog hierarchy (brand -> model -> version).
type Brand struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// VehicleModel is a model line within a brand (e.g. "Onix", "HB20").
type VehicleModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BrandID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"brand_id"`
	Brand     *Brand         `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Version is a specific trim of a model (e.g. "1.0 Turbo Comfort").
// Tier prices live on the Vehicle record keyed by version.
type Version struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ModelID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"model_id"`
	Model     *VehicleModel  `gorm:"foreignKey:ModelID" json:"model,omitempty"`
	Name      string         `gorm:"type:varchar(150);not null" json:"name"`
	ModelYear int            `gorm:"type:int" json:"model_year"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Color is a paint option; its price is set per version via VersionColor.
type Color struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	HexCode   string         `gorm:"type:varchar(7)" json:"hex_code"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Optional is an add-on equipment item; priced per version via VersionOptional.
type Optional struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(150);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
