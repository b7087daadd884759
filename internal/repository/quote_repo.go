package repository

import (
	"context"

	"autoquote/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuoteListFilter struct {
	UserID *uuid.UUID
	Status string
	Page   int
	Limit  int
}

type QuoteRepository interface {
	Create(ctx context.Context, q *model.Quote) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Quote, error)
	List(ctx context.Context, filter QuoteListFilter) ([]model.Quote, int64, error)
	CountByPrefix(ctx context.Context, prefix string) (int64, error)
}

type quoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, q *model.Quote) error {
	return GetDB(ctx, r.db).Create(q).Error
}

func (r *quoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	var q model.Quote
	if err := GetDB(ctx, r.db).
		Preload("Items").Preload("Version").Preload("Version.Model").
		First(&q, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *quoteRepository) List(ctx context.Context, filter QuoteListFilter) ([]model.Quote, int64, error) {
	var quotes []model.Quote
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Quote{})
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := db.Preload("Items").Preload("Version").
		Order("created_at desc").Offset(offset).Limit(filter.Limit).Find(&quotes).Error; err != nil {
		return nil, 0, err
	}

	return quotes, total, nil
}

func (r *quoteRepository) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Quote{}).
		Where("quote_no LIKE ?", prefix+"%").Count(&count).Error
	return count, err
}
