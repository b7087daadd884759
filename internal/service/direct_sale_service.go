package service

import (
	"context"
	"fmt"

	"autoquote/internal/configurator"
	"autoquote/internal/model"
	"autoquote/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DirectSaleRequest struct {
	Name               string `json:"name" binding:"required"`
	BrandID            string `json:"brand_id"` // empty = applies to every brand
	DiscountPercentage string `json:"discount_percentage" binding:"required"`
}

type DirectSaleResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	BrandID            string          `json:"brand_id,omitempty"`
	BrandName          string          `json:"brand_name,omitempty"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

type DirectSaleService interface {
	List(ctx context.Context) ([]DirectSaleResponse, error)
	ListForBrand(ctx context.Context, brandID string) ([]DirectSaleResponse, error)
	Get(ctx context.Context, id string) (*DirectSaleResponse, error)
	Create(ctx context.Context, req DirectSaleRequest, userID string) (*DirectSaleResponse, error)
	Update(ctx context.Context, id string, req DirectSaleRequest, userID string) (*DirectSaleResponse, error)
	Delete(ctx context.Context, id string, userID string) error
}

type directSaleService struct {
	repo      repository.DirectSaleRepository
	auditRepo repository.AuditRepository
}

func NewDirectSaleService(repo repository.DirectSaleRepository, auditRepo repository.AuditRepository) DirectSaleService {
	return &directSaleService{repo: repo, auditRepo: auditRepo}
}

func (s *directSaleService) List(ctx context.Context) ([]DirectSaleResponse, error) {
	sales, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch direct sales: %w", err)
	}
	return toDirectSaleResponses(sales), nil
}

func (s *directSaleService) ListForBrand(ctx context.Context, brandID string) ([]DirectSaleResponse, error) {
	if brandID == "" {
		return s.List(ctx)
	}

	bid, err := uuid.Parse(brandID)
	if err != nil {
		return nil, fmt.Errorf("invalid brand id: %w", err)
	}

	sales, err := s.repo.ListForBrand(ctx, bid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch direct sales: %w", err)
	}
	return toDirectSaleResponses(sales), nil
}

func (s *directSaleService) Get(ctx context.Context, id string) (*DirectSaleResponse, error) {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid direct sale id: %w", err)
	}

	sale, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("direct sale not found: %w", err)
	}

	resp := toDirectSaleResponse(*sale)
	return &resp, nil
}

func (s *directSaleService) Create(ctx context.Context, req DirectSaleRequest, userID string) (*DirectSaleResponse, error) {
	sale := model.DirectSale{
		Name:               req.Name,
		DiscountPercentage: configurator.AmountFromInput(req.DiscountPercentage),
	}
	if req.BrandID != "" {
		bid, err := uuid.Parse(req.BrandID)
		if err != nil {
			return nil, fmt.Errorf("invalid brand id: %w", err)
		}
		sale.BrandID = &bid
	}

	if err := s.repo.Create(ctx, &sale); err != nil {
		return nil, fmt.Errorf("failed to create direct sale: %w", err)
	}

	writeAuditEntry(ctx, s.auditRepo, userID, model.ActionCreateDirectSale, sale.ID.String(), sale.Name, req)

	resp := toDirectSaleResponse(sale)
	return &resp, nil
}

func (s *directSaleService) Update(ctx context.Context, id string, req DirectSaleRequest, userID string) (*DirectSaleResponse, error) {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid direct sale id: %w", err)
	}

	sale, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("direct sale not found: %w", err)
	}

	sale.Name = req.Name
	sale.DiscountPercentage = configurator.AmountFromInput(req.DiscountPercentage)
	sale.BrandID = nil
	if req.BrandID != "" {
		bid, err := uuid.Parse(req.BrandID)
		if err != nil {
			return nil, fmt.Errorf("invalid brand id: %w", err)
		}
		sale.BrandID = &bid
	}

	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to update direct sale: %w", err)
	}

	writeAuditEntry(ctx, s.auditRepo, userID, model.ActionUpdateDirectSale, sale.ID.String(), sale.Name, req)

	resp := toDirectSaleResponse(*sale)
	return &resp, nil
}

func (s *directSaleService) Delete(ctx context.Context, id string, userID string) error {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid direct sale id: %w", err)
	}

	sale, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		return fmt.Errorf("direct sale not found: %w", err)
	}

	if err := s.repo.Delete(ctx, saleID); err != nil {
		return fmt.Errorf("failed to delete direct sale: %w", err)
	}

	writeAuditEntry(ctx, s.auditRepo, userID, model.ActionDeleteDirectSale, id, sale.Name, map[string]string{"deleted_id": id})
	return nil
}

func toDirectSaleResponses(sales []model.DirectSale) []DirectSaleResponse {
	res := make([]DirectSaleResponse, 0, len(sales))
	for _, sale := range sales {
		res = append(res, toDirectSaleResponse(sale))
	}
	return res
}

func toDirectSaleResponse(sale model.DirectSale) DirectSaleResponse {
	resp := DirectSaleResponse{
		ID:                 sale.ID.String(),
		Name:               sale.Name,
		DiscountPercentage: sale.DiscountPercentage,
	}
	if sale.BrandID != nil {
		resp.BrandID = sale.BrandID.String()
	}
	if sale.Brand != nil {
		resp.BrandName = sale.Brand.Name
	}
	return resp
}
