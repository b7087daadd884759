package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteStatus constants
const (
	QuoteStatusDraft  = "DRAFT"
	QuoteStatusIssued = "ISSUED"
)

// Quote is a finalized configurator session: the chosen version, color,
// optionals and pricing at the moment the seller saved it.
type Quote struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuoteNo        string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"quote_no"`
	UserID         *uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	User           *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	VersionID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"version_id"`
	Version        *Version        `gorm:"foreignKey:VersionID" json:"version,omitempty"`
	ColorID        *uuid.UUID      `gorm:"type:uuid" json:"color_id"`
	PriceTier      string          `gorm:"type:varchar(20);not null;default:'PUBLIC'" json:"price_tier"`
	BasePrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"base_price"`
	ColorPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"color_price"`
	OptionalsTotal decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"optionals_total"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"discount_amount"`
	MarkupAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"markup_amount"`
	Quantity       int             `gorm:"type:int;not null;default:1" json:"quantity"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"subtotal"`
	FinalPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"final_price"`
	Status         string          `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	Items          []QuoteOptional `gorm:"foreignKey:QuoteID" json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// QuoteOptional is one selected optional frozen into a quote.
type QuoteOptional struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuoteID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"quote_id"`
	OptionalID uuid.UUID       `gorm:"type:uuid;not null" json:"optional_id"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"unit_price"`
}
