package repository

import (
	"context"

	"autoquote/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DirectSaleRepository interface {
	Create(ctx context.Context, d *model.DirectSale) error
	Update(ctx context.Context, d *model.DirectSale) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DirectSale, error)
	List(ctx context.Context) ([]model.DirectSale, error)
	// ListForBrand returns brand-scoped sales for the brand plus the unscoped ones.
	ListForBrand(ctx context.Context, brandID uuid.UUID) ([]model.DirectSale, error)
}

type directSaleRepository struct {
	db *gorm.DB
}

func NewDirectSaleRepository(db *gorm.DB) DirectSaleRepository {
	return &directSaleRepository{db: db}
}

func (r *directSaleRepository) Create(ctx context.Context, d *model.DirectSale) error {
	return GetDB(ctx, r.db).Create(d).Error
}

func (r *directSaleRepository) Update(ctx context.Context, d *model.DirectSale) error {
	return GetDB(ctx, r.db).Save(d).Error
}

func (r *directSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.DirectSale{}).Error
}

func (r *directSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.DirectSale, error) {
	var d model.DirectSale
	if err := GetDB(ctx, r.db).Preload("Brand").First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *directSaleRepository) List(ctx context.Context) ([]model.DirectSale, error) {
	var sales []model.DirectSale
	if err := GetDB(ctx, r.db).Preload("Brand").Order("name ASC").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *directSaleRepository) ListForBrand(ctx context.Context, brandID uuid.UUID) ([]model.DirectSale, error) {
	var sales []model.DirectSale
	if err := GetDB(ctx, r.db).
		Where("brand_id = ? OR brand_id IS NULL", brandID).
		Order("name ASC").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}
