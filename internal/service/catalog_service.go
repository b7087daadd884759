package service

import (
	"context"
	"encoding/json"
	"fmt"

	"autoquote/internal/model"
	"autoquote/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type BrandRequest struct {
	Name string `json:"name" binding:"required"`
}

type ModelRequest struct {
	BrandID string `json:"brand_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

type VersionRequest struct {
	ModelID   string `json:"model_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	ModelYear int    `json:"model_year"`
}

type ColorRequest struct {
	Name    string `json:"name" binding:"required"`
	HexCode string `json:"hex_code"`
}

type OptionalRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type BrandResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type ModelResponse struct {
	ID        string `json:"id"`
	BrandID   string `json:"brand_id"`
	BrandName string `json:"brand_name,omitempty"`
	Name      string `json:"name"`
}

type VersionResponse struct {
	ID        string `json:"id"`
	ModelID   string `json:"model_id"`
	ModelName string `json:"model_name,omitempty"`
	BrandName string `json:"brand_name,omitempty"`
	Name      string `json:"name"`
	ModelYear int    `json:"model_year"`
}

type ColorResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	HexCode string `json:"hex_code"`
}

type OptionalResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// --- Interface ---

type CatalogService interface {
	ListBrands(ctx context.Context) ([]BrandResponse, error)
	CreateBrand(ctx context.Context, req BrandRequest, userID string) (*BrandResponse, error)
	UpdateBrand(ctx context.Context, id string, req BrandRequest, userID string) (*BrandResponse, error)
	DeleteBrand(ctx context.Context, id string, userID string) error

	ListModels(ctx context.Context, brandID string) ([]ModelResponse, error)
	CreateModel(ctx context.Context, req ModelRequest, userID string) (*ModelResponse, error)
	UpdateModel(ctx context.Context, id string, req ModelRequest, userID string) (*ModelResponse, error)
	DeleteModel(ctx context.Context, id string, userID string) error

	ListVersions(ctx context.Context, modelID string) ([]VersionResponse, error)
	CreateVersion(ctx context.Context, req VersionRequest, userID string) (*VersionResponse, error)
	UpdateVersion(ctx context.Context, id string, req VersionRequest, userID string) (*VersionResponse, error)
	DeleteVersion(ctx context.Context, id string, userID string) error

	ListColors(ctx context.Context) ([]ColorResponse, error)
	CreateColor(ctx context.Context, req ColorRequest, userID string) (*ColorResponse, error)
	UpdateColor(ctx context.Context, id string, req ColorRequest, userID string) (*ColorResponse, error)
	DeleteColor(ctx context.Context, id string, userID string) error

	ListOptionals(ctx context.Context) ([]OptionalResponse, error)
	CreateOptional(ctx context.Context, req OptionalRequest, userID string) (*OptionalResponse, error)
	UpdateOptional(ctx context.Context, id string, req OptionalRequest, userID string) (*OptionalResponse, error)
	DeleteOptional(ctx context.Context, id string, userID string) error
}

type catalogService struct {
	repo      repository.CatalogRepository
	auditRepo repository.AuditRepository
}

func NewCatalogService(repo repository.CatalogRepository, auditRepo repository.AuditRepository) CatalogService {
	return &catalogService{repo: repo, auditRepo: auditRepo}
}

// --- Brands ---

func (s *catalogService) ListBrands(ctx context.Context) ([]BrandResponse, error) {
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch brands: %w", err)
	}

	res := make([]BrandResponse, 0, len(brands))
	for _, b := range brands {
		res = append(res, toBrandResponse(b))
	}
	return res, nil
}

func (s *catalogService) CreateBrand(ctx context.Context, req BrandRequest, userID string) (*BrandResponse, error) {
	brand := model.Brand{Name: req.Name}
	if err := s.repo.CreateBrand(ctx, &brand); err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionCreateBrand, brand.ID.String(), brand.Name, req)

	resp := toBrandResponse(brand)
	return &resp, nil
}

func (s *catalogService) UpdateBrand(ctx context.Context, id string, req BrandRequest, userID string) (*BrandResponse, error) {
	brandID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid brand id: %w", err)
	}

	brand, err := s.repo.FindBrand(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("brand not found: %w", err)
	}

	brand.Name = req.Name
	if err := s.repo.UpdateBrand(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionUpdateBrand, brand.ID.String(), brand.Name, req)

	resp := toBrandResponse(*brand)
	return &resp, nil
}

func (s *catalogService) DeleteBrand(ctx context.Context, id string, userID string) error {
	brandID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid brand id: %w", err)
	}

	brand, err := s.repo.FindBrand(ctx, brandID)
	if err != nil {
		return fmt.Errorf("brand not found: %w", err)
	}

	count, err := s.repo.CountModelsByBrand(ctx, brandID)
	if err != nil {
		return fmt.Errorf("failed to check brand usage: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("cannot delete brand '%s': %d model(s) still reference it", brand.Name, count)
	}

	if err := s.repo.DeleteBrand(ctx, brandID); err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionDeleteBrand, id, brand.Name, map[string]string{"deleted_id": id})
	return nil
}

// --- Models ---

func (s *catalogService) ListModels(ctx context.Context, brandID string) ([]ModelResponse, error) {
	var filter *uuid.UUID
	if brandID != "" {
		parsed, err := uuid.Parse(brandID)
		if err != nil {
			return nil, fmt.Errorf("invalid brand id: %w", err)
		}
		filter = &parsed
	}

	models, err := s.repo.ListModels(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch models: %w", err)
	}

	res := make([]ModelResponse, 0, len(models))
	for _, m := range models {
		res = append(res, toModelResponse(m))
	}
	return res, nil
}

func (s *catalogService) CreateModel(ctx context.Context, req ModelRequest, userID string) (*ModelResponse, error) {
	brandID, err := uuid.Parse(req.BrandID)
	if err != nil {
		return nil, fmt.Errorf("invalid brand id: %w", err)
	}

	if _, err := s.repo.FindBrand(ctx, brandID); err != nil {
		return nil, fmt.Errorf("brand not found: %w", err)
	}

	m := model.VehicleModel{BrandID: brandID, Name: req.Name}
	if err := s.repo.CreateModel(ctx, &m); err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionCreateModel, m.ID.String(), m.Name, req)

	resp := toModelResponse(m)
	return &resp, nil
}

func (s *catalogService) UpdateModel(ctx context.Context, id string, req ModelRequest, userID string) (*ModelResponse, error) {
	modelID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid model id: %w", err)
	}

	m, err := s.repo.FindModel(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("model not found: %w", err)
	}

	brandID, err := uuid.Parse(req.BrandID)
	if err != nil {
		return nil, fmt.Errorf("invalid brand id: %w", err)
	}

	m.BrandID = brandID
	m.Name = req.Name
	if err := s.repo.UpdateModel(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update model: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionUpdateModel, m.ID.String(), m.Name, req)

	resp := toModelResponse(*m)
	return &resp, nil
}

func (s *catalogService) DeleteModel(ctx context.Context, id string, userID string) error {
	modelID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid model id: %w", err)
	}

	m, err := s.repo.FindModel(ctx, modelID)
	if err != nil {
		return fmt.Errorf("model not found: %w", err)
	}

	count, err := s.repo.CountVersionsByModel(ctx, modelID)
	if err != nil {
		return fmt.Errorf("failed to check model usage: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("cannot delete model '%s': %d version(s) still reference it", m.Name, count)
	}

	if err := s.repo.DeleteModel(ctx, modelID); err != nil {
		return fmt.Errorf("failed to delete model: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionDeleteModel, id, m.Name, map[string]string{"deleted_id": id})
	return nil
}

// --- Versions ---

func (s *catalogService) ListVersions(ctx context.Context, modelID string) ([]VersionResponse, error) {
	var filter *uuid.UUID
	if modelID != "" {
		parsed, err := uuid.Parse(modelID)
		if err != nil {
			return nil, fmt.Errorf("invalid model id: %w", err)
		}
		filter = &parsed
	}

	versions, err := s.repo.ListVersions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch versions: %w", err)
	}

	res := make([]VersionResponse, 0, len(versions))
	for _, v := range versions {
		res = append(res, toVersionResponse(v))
	}
	return res, nil
}

func (s *catalogService) CreateVersion(ctx context.Context, req VersionRequest, userID string) (*VersionResponse, error) {
	modelID, err := uuid.Parse(req.ModelID)
	if err != nil {
		return nil, fmt.Errorf("invalid model id: %w", err)
	}

	if _, err := s.repo.FindModel(ctx, modelID); err != nil {
		return nil, fmt.Errorf("model not found: %w", err)
	}

	v := model.Version{ModelID: modelID, Name: req.Name, ModelYear: req.ModelYear}
	if err := s.repo.CreateVersion(ctx, &v); err != nil {
		return nil, fmt.Errorf("failed to create version: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionCreateVersion, v.ID.String(), v.Name, req)

	resp := toVersionResponse(v)
	return &resp, nil
}

func (s *catalogService) UpdateVersion(ctx context.Context, id string, req VersionRequest, userID string) (*VersionResponse, error) {
	versionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid version id: %w", err)
	}

	v, err := s.repo.FindVersion(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("version not found: %w", err)
	}

	modelID, err := uuid.Parse(req.ModelID)
	if err != nil {
		return nil, fmt.Errorf("invalid model id: %w", err)
	}

	v.ModelID = modelID
	v.Name = req.Name
	v.ModelYear = req.ModelYear
	if err := s.repo.UpdateVersion(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to update version: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionUpdateVersion, v.ID.String(), v.Name, req)

	resp := toVersionResponse(*v)
	return &resp, nil
}

func (s *catalogService) DeleteVersion(ctx context.Context, id string, userID string) error {
	versionID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid version id: %w", err)
	}

	v, err := s.repo.FindVersion(ctx, versionID)
	if err != nil {
		return fmt.Errorf("version not found: %w", err)
	}

	if err := s.repo.DeleteVersion(ctx, versionID); err != nil {
		return fmt.Errorf("failed to delete version: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionDeleteVersion, id, v.Name, map[string]string{"deleted_id": id})
	return nil
}

// --- Colors ---

func (s *catalogService) ListColors(ctx context.Context) ([]ColorResponse, error) {
	colors, err := s.repo.ListColors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch colors: %w", err)
	}

	res := make([]ColorResponse, 0, len(colors))
	for _, c := range colors {
		res = append(res, toColorResponse(c))
	}
	return res, nil
}

func (s *catalogService) CreateColor(ctx context.Context, req ColorRequest, userID string) (*ColorResponse, error) {
	c := model.Color{Name: req.Name, HexCode: req.HexCode}
	if err := s.repo.CreateColor(ctx, &c); err != nil {
		return nil, fmt.Errorf("failed to create color: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionCreateColor, c.ID.String(), c.Name, req)

	resp := toColorResponse(c)
	return &resp, nil
}

func (s *catalogService) UpdateColor(ctx context.Context, id string, req ColorRequest, userID string) (*ColorResponse, error) {
	colorID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid color id: %w", err)
	}

	c, err := s.repo.FindColor(ctx, colorID)
	if err != nil {
		return nil, fmt.Errorf("color not found: %w", err)
	}

	c.Name = req.Name
	c.HexCode = req.HexCode
	if err := s.repo.UpdateColor(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update color: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionUpdateColor, c.ID.String(), c.Name, req)

	resp := toColorResponse(*c)
	return &resp, nil
}

func (s *catalogService) DeleteColor(ctx context.Context, id string, userID string) error {
	colorID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid color id: %w", err)
	}

	c, err := s.repo.FindColor(ctx, colorID)
	if err != nil {
		return fmt.Errorf("color not found: %w", err)
	}

	if err := s.repo.DeleteColor(ctx, colorID); err != nil {
		return fmt.Errorf("failed to delete color: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionDeleteColor, id, c.Name, map[string]string{"deleted_id": id})
	return nil
}

// --- Optionals ---

func (s *catalogService) ListOptionals(ctx context.Context) ([]OptionalResponse, error) {
	optionals, err := s.repo.ListOptionals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch optionals: %w", err)
	}

	res := make([]OptionalResponse, 0, len(optionals))
	for _, o := range optionals {
		res = append(res, toOptionalResponse(o))
	}
	return res, nil
}

func (s *catalogService) CreateOptional(ctx context.Context, req OptionalRequest, userID string) (*OptionalResponse, error) {
	o := model.Optional{Name: req.Name, Description: req.Description}
	if err := s.repo.CreateOptional(ctx, &o); err != nil {
		return nil, fmt.Errorf("failed to create optional: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionCreateOptional, o.ID.String(), o.Name, req)

	resp := toOptionalResponse(o)
	return &resp, nil
}

func (s *catalogService) UpdateOptional(ctx context.Context, id string, req OptionalRequest, userID string) (*OptionalResponse, error) {
	optionalID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid optional id: %w", err)
	}

	o, err := s.repo.FindOptional(ctx, optionalID)
	if err != nil {
		return nil, fmt.Errorf("optional not found: %w", err)
	}

	o.Name = req.Name
	o.Description = req.Description
	if err := s.repo.UpdateOptional(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to update optional: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionUpdateOptional, o.ID.String(), o.Name, req)

	resp := toOptionalResponse(*o)
	return &resp, nil
}

func (s *catalogService) DeleteOptional(ctx context.Context, id string, userID string) error {
	optionalID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid optional id: %w", err)
	}

	o, err := s.repo.FindOptional(ctx, optionalID)
	if err != nil {
		return fmt.Errorf("optional not found: %w", err)
	}

	if err := s.repo.DeleteOptional(ctx, optionalID); err != nil {
		return fmt.Errorf("failed to delete optional: %w", err)
	}

	s.writeAudit(ctx, userID, model.ActionDeleteOptional, id, o.Name, map[string]string{"deleted_id": id})
	return nil
}

// --- Helpers ---

func (s *catalogService) writeAudit(ctx context.Context, userID, action, entityID, entityName string, details interface{}) {
	writeAuditEntry(ctx, s.auditRepo, userID, action, entityID, entityName, details)
}

// writeAuditEntry is the shared best-effort audit write: a failed log never
// fails the operation that triggered it.
func writeAuditEntry(ctx context.Context, repo repository.AuditRepository, userID, action, entityID, entityName string, details interface{}) {
	if repo == nil {
		return
	}

	detailsJSON, _ := json.Marshal(details)
	entry := model.AuditLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(detailsJSON),
	}

	if userID != "" {
		if parsed, err := uuid.Parse(userID); err == nil {
			entry.UserID = &parsed
		}
	}

	_ = repo.Log(ctx, &entry)
}

func toBrandResponse(b model.Brand) BrandResponse {
	return BrandResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		CreatedAt: b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toModelResponse(m model.VehicleModel) ModelResponse {
	resp := ModelResponse{
		ID:      m.ID.String(),
		BrandID: m.BrandID.String(),
		Name:    m.Name,
	}
	if m.Brand != nil {
		resp.BrandName = m.Brand.Name
	}
	return resp
}

func toVersionResponse(v model.Version) VersionResponse {
	resp := VersionResponse{
		ID:        v.ID.String(),
		ModelID:   v.ModelID.String(),
		Name:      v.Name,
		ModelYear: v.ModelYear,
	}
	if v.Model != nil {
		resp.ModelName = v.Model.Name
		if v.Model.Brand != nil {
			resp.BrandName = v.Model.Brand.Name
		}
	}
	return resp
}

func toColorResponse(c model.Color) ColorResponse {
	return ColorResponse{ID: c.ID.String(), Name: c.Name, HexCode: c.HexCode}
}

func toOptionalResponse(o model.Optional) OptionalResponse {
	return OptionalResponse{ID: o.ID.String(), Name: o.Name, Description: o.Description}
}
