package database

import (
	"log"

	"autoquote/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Brand{},
		&model.VehicleModel{},
		&model.Version{},
		&model.Color{},
		&model.Optional{},
		&model.Vehicle{},
		&model.VersionColor{},
		&model.VersionOptional{},
		&model.DirectSale{},
		&model.PermissionOverride{},
		&model.Quote{},
		&model.QuoteOptional{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
