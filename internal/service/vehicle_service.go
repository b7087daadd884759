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

// --- DTOs ---

// VehicleRequest carries the five tier prices as strings so sellers can paste
// "89.990,00" style values straight from price lists.
type VehicleRequest struct {
	VersionID   string `json:"version_id" binding:"required"`
	PublicPrice string `json:"public_price" binding:"required"`
	PcdIpi      string `json:"pcd_ipi"`
	PcdIpiIcms  string `json:"pcd_ipi_icms"`
	TaxiIpi     string `json:"taxi_ipi"`
	TaxiIpiIcms string `json:"taxi_ipi_icms"`
}

type VersionColorRequest struct {
	ColorID  string `json:"color_id" binding:"required"`
	Price    string `json:"price"`
	ImageURL string `json:"image_url"`
}

type VersionOptionalRequest struct {
	OptionalID string `json:"optional_id" binding:"required"`
	Price      string `json:"price"`
}

type VehicleResponse struct {
	ID          string          `json:"id"`
	VersionID   string          `json:"version_id"`
	VersionName string          `json:"version_name,omitempty"`
	PublicPrice decimal.Decimal `json:"public_price"`
	PcdIpi      decimal.Decimal `json:"pcd_ipi"`
	PcdIpiIcms  decimal.Decimal `json:"pcd_ipi_icms"`
	TaxiIpi     decimal.Decimal `json:"taxi_ipi"`
	TaxiIpiIcms decimal.Decimal `json:"taxi_ipi_icms"`
}

type VersionColorResponse struct {
	VersionID string          `json:"version_id"`
	ColorID   string          `json:"color_id"`
	ColorName string          `json:"color_name,omitempty"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
}

type VersionOptionalResponse struct {
	VersionID    string          `json:"version_id"`
	OptionalID   string          `json:"optional_id"`
	OptionalName string          `json:"optional_name,omitempty"`
	Price        decimal.Decimal `json:"price"`
}

// --- Interface ---

type VehicleService interface {
	List(ctx context.Context, page, limit int) ([]VehicleResponse, int64, error)
	Get(ctx context.Context, id string) (*VehicleResponse, error)
	Create(ctx context.Context, req VehicleRequest, userID string) (*VehicleResponse, error)
	Update(ctx context.Context, id string, req VehicleRequest, userID string) (*VehicleResponse, error)
	Delete(ctx context.Context, id string, userID string) error

	ListVersionColors(ctx context.Context, versionID string) ([]VersionColorResponse, error)
	SetVersionColor(ctx context.Context, versionID string, req VersionColorRequest, userID string) (*VersionColorResponse, error)
	RemoveVersionColor(ctx context.Context, versionID, colorID string, userID string) error

	ListVersionOptionals(ctx context.Context, versionID string) ([]VersionOptionalResponse, error)
	SetVersionOptional(ctx context.Context, versionID string, req VersionOptionalRequest, userID string) (*VersionOptionalResponse, error)
	RemoveVersionOptional(ctx context.Context, versionID, optionalID string, userID string) error
}

type vehicleService struct {
	repo      repository.VehicleRepository
	auditRepo repository.AuditRepository
	notifier  PriceNotifier
}

// PriceNotifier pushes price-change events to connected configurator screens.
type PriceNotifier interface {
	NotifyPriceChange(versionID string)
}

func NewVehicleService(repo repository.VehicleRepository, auditRepo repository.AuditRepository, notifier PriceNotifier) VehicleService {
	return &vehicleService{repo: repo, auditRepo: auditRepo, notifier: notifier}
}

func (s *vehicleService) List(ctx context.Context, page, limit int) ([]VehicleResponse, int64, error) {
	vehicles, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch vehicles: %w", err)
	}

	res := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		res = append(res, toVehicleResponse(v))
	}
	return res, total, nil
}

func (s *vehicleService) Get(ctx context.Context, id string) (*VehicleResponse, error) {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle id: %w", err)
	}

	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("vehicle not found: %w", err)
	}

	resp := toVehicleResponse(*v)
	return &resp, nil
}

func (s *vehicleService) Create(ctx context.Context, req VehicleRequest, userID string) (*VehicleResponse, error) {
	versionID, err := uuid.Parse(req.VersionID)
	if err != nil {
		return nil, fmt.Errorf("invalid version id: %w", err)
	}

	v := model.Vehicle{
		VersionID:   versionID,
		PublicPrice: configurator.AmountFromInput(req.PublicPrice),
		PcdIpi:      configurator.AmountFromInput(req.PcdIpi),
		PcdIpiIcms:  configurator.AmountFromInput(req.PcdIpiIcms),
		TaxiIpi:     configurator.AmountFromInput(req.TaxiIpi),
		TaxiIpiIcms: configurator.AmountFromInput(req.TaxiIpiIcms),
	}

	if err := s.repo.Create(ctx, &v); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	writeAuditEntry(ctx, s.auditRepo, userID, model.ActionCreateVehicle, v.ID.String(), req.VersionID, req)
	s.notifyPriceChange(req.VersionID)

	resp := toVehicleResponse(v)
	return &resp, nil
}

func (s *vehicleService) Update(ctx context.Context, id string, req VehicleRequest, userID string) (*VehicleResponse, error) {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle id: %w", err)
	}

	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("vehicle not found: %w", err)
	}

	versionID, err := uuid.Parse(req.VersionID)
	if err != nil {
		return nil, fmt.Errorf("invalid version id: %w", err)
	}

	v.VersionID = versionID
	v.PublicPrice = configurator.AmountFromInput(req.PublicPrice)
	v.PcdIpi = configurator.AmountFromInput(req.PcdIpi)
	v.PcdIpiIcms = configurator.AmountFromInput(req.PcdIpiIcms)
	v.TaxiIpi = configurator.AmountFromInput(req.TaxiIpi)
	v.TaxiIpiIcms = configurator.AmountFromInput(req.TaxiIpiIcms)

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	writeAuditEntry(ctx, s.auditRepo, userID, model.ActionUpdateVehicle, v.ID.String(), req.VersionID, req)
	s.notifyPriceChange(req.VersionID)

	resp := toVehicleResponse(*v)
	return &resp, nil
}

func (s *vehicleService) Delete(ctx context.Context, id string, userID string) error {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle id: %w", err)
	}

	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return fmt.Errorf("vehicle not found: %w", err)
	}

	if err := s.repo.Delete(ctx, vehicleID); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	writeAuditEntry(ctx, s.auditRepo, userID, model.ActionDeleteVehicle, id, v.VersionID.String(), map[string]string{"deleted_id": id})
	s.notifyPriceChange(v.VersionID.String())
	return nil
}

func (s *vehicleService) ListVersionColors(ctx context.Context, versionID string) ([]VersionColorResponse, error) {
	vid, err := uuid.Parse(versionID)
	if err != nil {
		return nil, fmt.Errorf("invalid version id: %w", err)
	}

	colors, err := s.repo.ListVersionColors(ctx, vid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch version colors: %w", err)
	}

	res := make([]VersionColorResponse, 0, len(colors))
	for _, vc := range colors {
		res = append(res, toVersionColorResponse(vc))
	}
	return res, nil
}

func (s *vehicleService) SetVersionColor(ctx context.Context, versionID string, req VersionColorRequest, userID string) (*VersionColorResponse, error) {
	vid, err := uuid.Parse(versionID)
	if err != nil {
		return nil, fmt.Errorf("invalid version id: %w", err)
	}
	cid, err := uuid.Parse(req.ColorID)
	if err != nil {
		return nil, fmt.Errorf("invalid color id: %w", err)
	}

	vc := model.VersionColor{
		VersionID: vid,
		ColorID:   cid,
		Price:     configurator.AmountFromInput(req.Price),
		ImageURL:  req.ImageURL,
	}
	if err := s.repo.UpsertVersionColor(ctx, &vc); err != nil {
		return nil, fmt.Errorf("failed to save version color: %w", err)
	}

	writeAuditEntry(ctx, s.auditRepo, userID, model.ActionUpdateVehicle, versionID, "version color", req)
	s.notifyPriceChange(versionID)

	resp := toVersionColorResponse(vc)
	return &resp, nil
}

func (s *vehicleService) RemoveVersionColor(ctx context.Context, versionID, colorID string, userID string) error {
	vid, err := uuid.Parse(versionID)
	if err != nil {
		return fmt.Errorf("invalid version id: %w", err)
	}
	cid, err := uuid.Parse(colorID)
	if err != nil {
		return fmt.Errorf("invalid color id: %w", err)
	}

	if err := s.repo.DeleteVersionColor(ctx, vid, cid); err != nil {
		return fmt.Errorf("failed to remove version color: %w", err)
	}

	writeAuditEntry(ctx, s.auditRepo, userID, model.ActionUpdateVehicle, versionID, "version color",
		map[string]string{"removed_color_id": colorID})
	s.notifyPriceChange(versionID)
	return nil
}

func (s *vehicleService) ListVersionOptionals(ctx context.Context, versionID string) ([]VersionOptionalResponse, error) {
	vid, err := uuid.Parse(versionID)
	if err != nil {
		return nil, fmt.Errorf("invalid version id: %w", err)
	}

	optionals, err := s.repo.ListVersionOptionals(ctx, vid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch version optionals: %w", err)
	}

	res := make([]VersionOptionalResponse, 0, len(optionals))
	for _, vo := range optionals {
		res = append(res, toVersionOptionalResponse(vo))
	}
	return res, nil
}

func (s *vehicleService) SetVersionOptional(ctx context.Context, versionID string, req VersionOptionalRequest, userID string) (*VersionOptionalResponse, error) {
	vid, err := uuid.Parse(versionID)
	if err != nil {
		return nil, fmt.Errorf("invalid version id: %w", err)
	}
	oid, err := uuid.Parse(req.OptionalID)
	if err != nil {
		return nil, fmt.Errorf("invalid optional id: %w", err)
	}

	vo := model.VersionOptional{
		VersionID:  vid,
		OptionalID: oid,
		Price:      configurator.AmountFromInput(req.Price),
	}
	if err := s.repo.UpsertVersionOptional(ctx, &vo); err != nil {
		return nil, fmt.Errorf("failed to save version optional: %w", err)
	}

	writeAuditEntry(ctx, s.auditRepo, userID, model.ActionUpdateVehicle, versionID, "version optional", req)
	s.notifyPriceChange(versionID)

	resp := toVersionOptionalResponse(vo)
	return &resp, nil
}

func (s *vehicleService) RemoveVersionOptional(ctx context.Context, versionID, optionalID string, userID string) error {
	vid, err := uuid.Parse(versionID)
	if err != nil {
		return fmt.Errorf("invalid version id: %w", err)
	}
	oid, err := uuid.Parse(optionalID)
	if err != nil {
		return fmt.Errorf("invalid optional id: %w", err)
	}

	if err := s.repo.DeleteVersionOptional(ctx, vid, oid); err != nil {
		return fmt.Errorf("failed to remove version optional: %w", err)
	}

	writeAuditEntry(ctx, s.auditRepo, userID, model.ActionUpdateVehicle, versionID, "version optional",
		map[string]string{"removed_optional_id": optionalID})
	s.notifyPriceChange(versionID)
	return nil
}

func (s *vehicleService) notifyPriceChange(versionID string) {
	if s.notifier != nil {
		s.notifier.NotifyPriceChange(versionID)
	}
}

func toVehicleResponse(v model.Vehicle) VehicleResponse {
	resp := VehicleResponse{
		ID:          v.ID.String(),
		VersionID:   v.VersionID.String(),
		PublicPrice: v.PublicPrice,
		PcdIpi:      v.PcdIpi,
		PcdIpiIcms:  v.PcdIpiIcms,
		TaxiIpi:     v.TaxiIpi,
		TaxiIpiIcms: v.TaxiIpiIcms,
	}
	if v.Version != nil {
		resp.VersionName = v.Version.Name
	}
	return resp
}

func toVersionColorResponse(vc model.VersionColor) VersionColorResponse {
	resp := VersionColorResponse{
		VersionID: vc.VersionID.String(),
		ColorID:   vc.ColorID.String(),
		Price:     vc.Price,
		ImageURL:  vc.ImageURL,
	}
	if vc.Color != nil {
		resp.ColorName = vc.Color.Name
	}
	return resp
}

func toVersionOptionalResponse(vo model.VersionOptional) VersionOptionalResponse {
	resp := VersionOptionalResponse{
		VersionID:  vo.VersionID.String(),
		OptionalID: vo.OptionalID.String(),
		Price:      vo.Price,
	}
	if vo.Optional != nil {
		resp.OptionalName = vo.Optional.Name
	}
	return resp
}
