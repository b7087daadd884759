package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Vehicle carries the sellable price record for one version: the public price
// plus the four tax-exemption tier prices (PCD and TAXI, each with IPI-only
// and IPI+ICMS variants).
type Vehicle struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VersionID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"version_id"`
	Version     *Version        `gorm:"foreignKey:VersionID" json:"version,omitempty"`
	PublicPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"public_price"`
	PcdIpi      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"pcd_ipi"`
	PcdIpiIcms  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"pcd_ipi_icms"`
	TaxiIpi     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"taxi_ipi"`
	TaxiIpiIcms decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"taxi_ipi_icms"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// VersionColor prices a color for a given version.
type VersionColor struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VersionID uuid.UUID       `gorm:"type:uuid;not null;index:idx_version_color,unique" json:"version_id"`
	ColorID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_version_color,unique" json:"color_id"`
	Color     *Color          `gorm:"foreignKey:ColorID" json:"color,omitempty"`
	Price     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"price"`
	ImageURL  string          `gorm:"type:text" json:"image_url"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// VersionOptional prices an optional for a given version.
type VersionOptional struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VersionID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_version_optional,unique" json:"version_id"`
	OptionalID uuid.UUID       `gorm:"type:uuid;not null;index:idx_version_optional,unique" json:"optional_id"`
	Optional   *Optional       `gorm:"foreignKey:OptionalID" json:"optional,omitempty"`
	Price      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
