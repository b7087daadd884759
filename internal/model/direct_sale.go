package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DirectSale is a named discount percentage configured centrally and
// selectable in the configurator. BrandID nil means it applies to all brands.
type DirectSale struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BrandID            *uuid.UUID      `gorm:"type:uuid;index" json:"brand_id"`
	Brand              *Brand          `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Name               string          `gorm:"type:varchar(150);not null" json:"name"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0" json:"discount_percentage"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`
}
