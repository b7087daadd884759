package repository

import (
	"context"

	"autoquote/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VehicleRepository stores per-version price records and the color/optional
// price associations the configurator reads.
type VehicleRepository interface {
	Create(ctx context.Context, v *model.Vehicle) error
	Update(ctx context.Context, v *model.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	FindByVersion(ctx context.Context, versionID uuid.UUID) (*model.Vehicle, error)
	List(ctx context.Context, page, limit int) ([]model.Vehicle, int64, error)

	UpsertVersionColor(ctx context.Context, vc *model.VersionColor) error
	DeleteVersionColor(ctx context.Context, versionID, colorID uuid.UUID) error
	FindVersionColor(ctx context.Context, versionID, colorID uuid.UUID) (*model.VersionColor, error)
	ListVersionColors(ctx context.Context, versionID uuid.UUID) ([]model.VersionColor, error)

	UpsertVersionOptional(ctx context.Context, vo *model.VersionOptional) error
	DeleteVersionOptional(ctx context.Context, versionID, optionalID uuid.UUID) error
	ListVersionOptionals(ctx context.Context, versionID uuid.UUID) ([]model.VersionOptional, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, v *model.Vehicle) error {
	return GetDB(ctx, r.db).Create(v).Error
}

func (r *vehicleRepository) Update(ctx context.Context, v *model.Vehicle) error {
	return GetDB(ctx, r.db).Save(v).Error
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Vehicle{}).Error
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var v model.Vehicle
	if err := GetDB(ctx, r.db).Preload("Version").First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) FindByVersion(ctx context.Context, versionID uuid.UUID) (*model.Vehicle, error) {
	var v model.Vehicle
	if err := GetDB(ctx, r.db).Preload("Version").First(&v, "version_id = ?", versionID).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) List(ctx context.Context, page, limit int) ([]model.Vehicle, int64, error) {
	var vehicles []model.Vehicle
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Vehicle{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Version").Preload("Version.Model").
		Order("created_at desc").Offset(offset).Limit(limit).Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}

	return vehicles, total, nil
}

func (r *vehicleRepository) UpsertVersionColor(ctx context.Context, vc *model.VersionColor) error {
	db := GetDB(ctx, r.db)
	var existing model.VersionColor
	err := db.First(&existing, "version_id = ? AND color_id = ?", vc.VersionID, vc.ColorID).Error
	if err == nil {
		existing.Price = vc.Price
		existing.ImageURL = vc.ImageURL
		*vc = existing
		return db.Save(&existing).Error
	}
	return db.Create(vc).Error
}

func (r *vehicleRepository) DeleteVersionColor(ctx context.Context, versionID, colorID uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("version_id = ? AND color_id = ?", versionID, colorID).
		Delete(&model.VersionColor{}).Error
}

func (r *vehicleRepository) FindVersionColor(ctx context.Context, versionID, colorID uuid.UUID) (*model.VersionColor, error) {
	var vc model.VersionColor
	if err := GetDB(ctx, r.db).First(&vc, "version_id = ? AND color_id = ?", versionID, colorID).Error; err != nil {
		return nil, err
	}
	return &vc, nil
}

func (r *vehicleRepository) ListVersionColors(ctx context.Context, versionID uuid.UUID) ([]model.VersionColor, error) {
	var colors []model.VersionColor
	if err := GetDB(ctx, r.db).Preload("Color").
		Where("version_id = ?", versionID).Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

func (r *vehicleRepository) UpsertVersionOptional(ctx context.Context, vo *model.VersionOptional) error {
	db := GetDB(ctx, r.db)
	var existing model.VersionOptional
	err := db.First(&existing, "version_id = ? AND optional_id = ?", vo.VersionID, vo.OptionalID).Error
	if err == nil {
		existing.Price = vo.Price
		*vo = existing
		return db.Save(&existing).Error
	}
	return db.Create(vo).Error
}

func (r *vehicleRepository) DeleteVersionOptional(ctx context.Context, versionID, optionalID uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("version_id = ? AND optional_id = ?", versionID, optionalID).
		Delete(&model.VersionOptional{}).Error
}

func (r *vehicleRepository) ListVersionOptionals(ctx context.Context, versionID uuid.UUID) ([]model.VersionOptional, error) {
	var optionals []model.VersionOptional
	if err := GetDB(ctx, r.db).Preload("Optional").
		Where("version_id = ?", versionID).Find(&optionals).Error; err != nil {
		return nil, err
	}
	return optionals, nil
}
