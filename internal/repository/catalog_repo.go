package repository

import (
	"context"

	"autoquote/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository covers the brand -> model -> version hierarchy plus the
// shared color and optional registries.
type CatalogRepository interface {
	ListBrands(ctx context.Context) ([]model.Brand, error)
	FindBrand(ctx context.Context, id uuid.UUID) (*model.Brand, error)
	CreateBrand(ctx context.Context, b *model.Brand) error
	UpdateBrand(ctx context.Context, b *model.Brand) error
	DeleteBrand(ctx context.Context, id uuid.UUID) error

	ListModels(ctx context.Context, brandID *uuid.UUID) ([]model.VehicleModel, error)
	FindModel(ctx context.Context, id uuid.UUID) (*model.VehicleModel, error)
	CreateModel(ctx context.Context, m *model.VehicleModel) error
	UpdateModel(ctx context.Context, m *model.VehicleModel) error
	DeleteModel(ctx context.Context, id uuid.UUID) error
	CountModelsByBrand(ctx context.Context, brandID uuid.UUID) (int64, error)

	ListVersions(ctx context.Context, modelID *uuid.UUID) ([]model.Version, error)
	FindVersion(ctx context.Context, id uuid.UUID) (*model.Version, error)
	CreateVersion(ctx context.Context, v *model.Version) error
	UpdateVersion(ctx context.Context, v *model.Version) error
	DeleteVersion(ctx context.Context, id uuid.UUID) error
	CountVersionsByModel(ctx context.Context, modelID uuid.UUID) (int64, error)

	ListColors(ctx context.Context) ([]model.Color, error)
	FindColor(ctx context.Context, id uuid.UUID) (*model.Color, error)
	CreateColor(ctx context.Context, c *model.Color) error
	UpdateColor(ctx context.Context, c *model.Color) error
	DeleteColor(ctx context.Context, id uuid.UUID) error

	ListOptionals(ctx context.Context) ([]model.Optional, error)
	FindOptional(ctx context.Context, id uuid.UUID) (*model.Optional, error)
	CreateOptional(ctx context.Context, o *model.Optional) error
	UpdateOptional(ctx context.Context, o *model.Optional) error
	DeleteOptional(ctx context.Context, id uuid.UUID) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// --- Brands ---

func (r *catalogRepository) ListBrands(ctx context.Context) ([]model.Brand, error) {
	var brands []model.Brand
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *catalogRepository) FindBrand(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	var b model.Brand
	if err := GetDB(ctx, r.db).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *catalogRepository) CreateBrand(ctx context.Context, b *model.Brand) error {
	return GetDB(ctx, r.db).Create(b).Error
}

func (r *catalogRepository) UpdateBrand(ctx context.Context, b *model.Brand) error {
	return GetDB(ctx, r.db).Save(b).Error
}

func (r *catalogRepository) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Brand{}).Error
}

// --- Models ---

func (r *catalogRepository) ListModels(ctx context.Context, brandID *uuid.UUID) ([]model.VehicleModel, error) {
	var models []model.VehicleModel
	db := GetDB(ctx, r.db).Preload("Brand").Order("name ASC")
	if brandID != nil {
		db = db.Where("brand_id = ?", *brandID)
	}
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

func (r *catalogRepository) FindModel(ctx context.Context, id uuid.UUID) (*model.VehicleModel, error) {
	var m model.VehicleModel
	if err := GetDB(ctx, r.db).Preload("Brand").First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *catalogRepository) CreateModel(ctx context.Context, m *model.VehicleModel) error {
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *catalogRepository) UpdateModel(ctx context.Context, m *model.VehicleModel) error {
	return GetDB(ctx, r.db).Save(m).Error
}

func (r *catalogRepository) DeleteModel(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.VehicleModel{}).Error
}

func (r *catalogRepository) CountModelsByBrand(ctx context.Context, brandID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.VehicleModel{}).Where("brand_id = ?", brandID).Count(&count).Error
	return count, err
}

// --- Versions ---

func (r *catalogRepository) ListVersions(ctx context.Context, modelID *uuid.UUID) ([]model.Version, error) {
	var versions []model.Version
	db := GetDB(ctx, r.db).Preload("Model").Preload("Model.Brand").Order("name ASC")
	if modelID != nil {
		db = db.Where("model_id = ?", *modelID)
	}
	if err := db.Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

func (r *catalogRepository) FindVersion(ctx context.Context, id uuid.UUID) (*model.Version, error) {
	var v model.Version
	if err := GetDB(ctx, r.db).Preload("Model").Preload("Model.Brand").First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *catalogRepository) CreateVersion(ctx context.Context, v *model.Version) error {
	return GetDB(ctx, r.db).Create(v).Error
}

func (r *catalogRepository) UpdateVersion(ctx context.Context, v *model.Version) error {
	return GetDB(ctx, r.db).Save(v).Error
}

func (r *catalogRepository) DeleteVersion(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Version{}).Error
}

func (r *catalogRepository) CountVersionsByModel(ctx context.Context, modelID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Version{}).Where("model_id = ?", modelID).Count(&count).Error
	return count, err
}

// --- Colors ---

func (r *catalogRepository) ListColors(ctx context.Context) ([]model.Color, error) {
	var colors []model.Color
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

func (r *catalogRepository) FindColor(ctx context.Context, id uuid.UUID) (*model.Color, error) {
	var c model.Color
	if err := GetDB(ctx, r.db).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *catalogRepository) CreateColor(ctx context.Context, c *model.Color) error {
	return GetDB(ctx, r.db).Create(c).Error
}

func (r *catalogRepository) UpdateColor(ctx context.Context, c *model.Color) error {
	return GetDB(ctx, r.db).Save(c).Error
}

func (r *catalogRepository) DeleteColor(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Color{}).Error
}

// --- Optionals ---

func (r *catalogRepository) ListOptionals(ctx context.Context) ([]model.Optional, error) {
	var optionals []model.Optional
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&optionals).Error; err != nil {
		return nil, err
	}
	return optionals, nil
}

func (r *catalogRepository) FindOptional(ctx context.Context, id uuid.UUID) (*model.Optional, error) {
	var o model.Optional
	if err := GetDB(ctx, r.db).First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *catalogRepository) CreateOptional(ctx context.Context, o *model.Optional) error {
	return GetDB(ctx, r.db).Create(o).Error
}

func (r *catalogRepository) UpdateOptional(ctx context.Context, o *model.Optional) error {
	return GetDB(ctx, r.db).Save(o).Error
}

func (r *catalogRepository) DeleteOptional(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Optional{}).Error
}
