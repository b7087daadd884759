package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"autoquote/internal/configurator"
	"autoquote/internal/model"
	"autoquote/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrSessionNotFound = errors.New("configurator session not found")

// --- DTOs ---

type SessionStateResponse struct {
	SessionID       string                     `json:"session_id"`
	BrandID         string                     `json:"brand_id,omitempty"`
	ModelID         string                     `json:"model_id,omitempty"`
	VersionID       string                     `json:"version_id,omitempty"`
	Prices          TierPricesResponse         `json:"prices"`
	ActiveTier      string                     `json:"active_tier,omitempty"`
	ColorID         string                     `json:"color_id,omitempty"`
	ColorPrice      decimal.Decimal            `json:"color_price"`
	Optionals       []SelectedOptionalResponse `json:"optionals"`
	OptionalsTotal  decimal.Decimal            `json:"optionals_total"`
	DiscountPercent decimal.Decimal            `json:"discount_percent"`
	DiscountAmount  decimal.Decimal            `json:"discount_amount"`
	MarkupAmount    decimal.Decimal            `json:"markup_amount"`
	Quantity        int                        `json:"quantity"`
	DirectSaleID    string                     `json:"direct_sale_id,omitempty"`
	Subtotal        decimal.Decimal            `json:"subtotal"`
	FinalPrice      decimal.Decimal            `json:"final_price"`
}

type TierPricesResponse struct {
	Public      decimal.Decimal `json:"public"`
	PcdIpi      decimal.Decimal `json:"pcd_ipi"`
	PcdIpiIcms  decimal.Decimal `json:"pcd_ipi_icms"`
	TaxiIpi     decimal.Decimal `json:"taxi_ipi"`
	TaxiIpiIcms decimal.Decimal `json:"taxi_ipi_icms"`
}

type SelectedOptionalResponse struct {
	OptionalID string          `json:"optional_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

type SelectOptionalRequest struct {
	OptionalID string `json:"optional_id" binding:"required"`
}

type DiscountRequest struct {
	// Exactly one of the two should be set; percent wins when both are.
	Percent string `json:"percent"`
	Amount  string `json:"amount"`
}

type MarkupRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type QuantityRequest struct {
	Quantity string `json:"quantity" binding:"required"`
}

type TierRequest struct {
	Tier string `json:"tier" binding:"required"`
}

type DirectSaleSelectRequest struct {
	DirectSaleID string `json:"direct_sale_id"` // empty clears the selection
}

// --- Interface ---

// ConfiguratorService owns the live pricing sessions. Each screen gets its own
// session keyed by a server-issued id; all mutations answer with the full
// recomputed state so the client never does price math.
type ConfiguratorService interface {
	StartSession(ctx context.Context) (*SessionStateResponse, error)
	GetSession(ctx context.Context, sessionID string) (*SessionStateResponse, error)
	EndSession(ctx context.Context, sessionID string) error

	SelectBrand(ctx context.Context, sessionID, brandID string) (*SessionStateResponse, error)
	SelectModel(ctx context.Context, sessionID, modelID string) (*SessionStateResponse, error)
	SelectVersion(ctx context.Context, sessionID, versionID string) (*SessionStateResponse, error)
	SelectColor(ctx context.Context, sessionID, colorID string) (*SessionStateResponse, error)
	ToggleOptional(ctx context.Context, sessionID string, req SelectOptionalRequest) (*SessionStateResponse, error)
	SetDiscount(ctx context.Context, sessionID string, req DiscountRequest) (*SessionStateResponse, error)
	SetMarkup(ctx context.Context, sessionID string, req MarkupRequest) (*SessionStateResponse, error)
	SetQuantity(ctx context.Context, sessionID string, req QuantityRequest) (*SessionStateResponse, error)
	SelectTier(ctx context.Context, sessionID string, req TierRequest) (*SessionStateResponse, error)
	SelectDirectSale(ctx context.Context, sessionID string, req DirectSaleSelectRequest) (*SessionStateResponse, error)

	// Seller session is attached at finalize time by the quote service.
	Session(sessionID string) (*configurator.Session, bool)
}

type configuratorService struct {
	catalog configurator.Catalog

	mu       sync.RWMutex
	sessions map[uuid.UUID]*configurator.Session
}

func NewConfiguratorService(catalog configurator.Catalog) ConfiguratorService {
	return &configuratorService{
		catalog:  catalog,
		sessions: make(map[uuid.UUID]*configurator.Session),
	}
}

// repoCatalog adapts the repositories to the engine's read-only catalog view.
type repoCatalog struct {
	vehicles    repository.VehicleRepository
	directSales repository.DirectSaleRepository
}

func NewRepoCatalog(vehicles repository.VehicleRepository, directSales repository.DirectSaleRepository) configurator.Catalog {
	return &repoCatalog{vehicles: vehicles, directSales: directSales}
}

func (c *repoCatalog) VehicleForVersion(ctx context.Context, versionID uuid.UUID) (*model.Vehicle, error) {
	return c.vehicles.FindByVersion(ctx, versionID)
}

func (c *repoCatalog) ColorPrice(ctx context.Context, versionID, colorID uuid.UUID) (decimal.Decimal, error) {
	vc, err := c.vehicles.FindVersionColor(ctx, versionID, colorID)
	if err != nil {
		return decimal.Zero, err
	}
	return vc.Price, nil
}

func (c *repoCatalog) DirectSale(ctx context.Context, id uuid.UUID) (*model.DirectSale, error) {
	return c.directSales.FindByID(ctx, id)
}

// --- Session lifecycle ---

func (s *configuratorService) StartSession(ctx context.Context) (*SessionStateResponse, error) {
	id := uuid.New()
	session := configurator.NewSession(s.catalog)

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	return s.stateOf(id, session), nil
}

func (s *configuratorService) GetSession(ctx context.Context, sessionID string) (*SessionStateResponse, error) {
	id, session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return s.stateOf(id, session), nil
}

func (s *configuratorService) EndSession(ctx context.Context, sessionID string) error {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return fmt.Errorf("invalid session id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *configuratorService) Session(sessionID string) (*configurator.Session, bool) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// --- Mutations ---

func (s *configuratorService) SelectBrand(ctx context.Context, sessionID, brandID string) (*SessionStateResponse, error) {
	id, session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	bid, err := uuid.Parse(brandID)
	if err != nil {
		return nil, fmt.Errorf("invalid brand id: %w", err)
	}

	session.SelectBrand(bid)
	return s.stateOf(id, session), nil
}

func (s *configuratorService) SelectModel(ctx context.Context, sessionID, modelID string) (*SessionStateResponse, error) {
	id, session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	mid, err := uuid.Parse(modelID)
	if err != nil {
		return nil, fmt.Errorf("invalid model id: %w", err)
	}

	session.SelectModel(mid)
	return s.stateOf(id, session), nil
}

func (s *configuratorService) SelectVersion(ctx context.Context, sessionID, versionID string) (*SessionStateResponse, error) {
	id, session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	vid, err := uuid.Parse(versionID)
	if err != nil {
		return nil, fmt.Errorf("invalid version id: %w", err)
	}

	session.SelectVersion(ctx, vid)
	return s.stateOf(id, session), nil
}

func (s *configuratorService) SelectColor(ctx context.Context, sessionID, colorID string) (*SessionStateResponse, error) {
	id, session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	cid, err := uuid.Parse(colorID)
	if err != nil {
		return nil, fmt.Errorf("invalid color id: %w", err)
	}

	session.SelectColor(ctx, cid)
	return s.stateOf(id, session), nil
}

func (s *configuratorService) ToggleOptional(ctx context.Context, sessionID string, req SelectOptionalRequest) (*SessionStateResponse, error) {
	id, session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	oid, err := uuid.Parse(req.OptionalID)
	if err != nil {
		return nil, fmt.Errorf("invalid optional id: %w", err)
	}

	snap := session.Snapshot()
	price := decimal.Zero
	if prior, ok := snap.Optionals[oid]; ok {
		// Deselecting: the engine removes the stored price, the lookup is moot.
		price = prior
	} else if s.catalog != nil && snap.VersionID != uuid.Nil {
		if vo, lookupErr := s.versionOptionalPrice(ctx, snap.VersionID, oid); lookupErr == nil {
			price = vo
		}
	}

	session.ToggleOptional(oid, price)
	return s.stateOf(id, session), nil
}

func (s *configuratorService) SetDiscount(ctx context.Context, sessionID string, req DiscountRequest) (*SessionStateResponse, error) {
	id, session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	if req.Percent != "" {
		session.SetDiscountPercent(configurator.AmountFromInput(req.Percent))
	} else {
		session.SetDiscountAmount(configurator.AmountFromInput(req.Amount))
	}
	return s.stateOf(id, session), nil
}

func (s *configuratorService) SetMarkup(ctx context.Context, sessionID string, req MarkupRequest) (*SessionStateResponse, error) {
	id, session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	session.SetMarkup(configurator.AmountFromInput(req.Amount))
	return s.stateOf(id, session), nil
}

func (s *configuratorService) SetQuantity(ctx context.Context, sessionID string, req QuantityRequest) (*SessionStateResponse, error) {
	id, session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	session.SetQuantity(configurator.QuantityFromInput(req.Quantity))
	return s.stateOf(id, session), nil
}

func (s *configuratorService) SelectTier(ctx context.Context, sessionID string, req TierRequest) (*SessionStateResponse, error) {
	id, session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	tier, err := configurator.ParseTier(req.Tier)
	if err != nil {
		return nil, err
	}
	if err := session.SelectTier(tier); err != nil {
		return nil, err
	}
	return s.stateOf(id, session), nil
}

func (s *configuratorService) SelectDirectSale(ctx context.Context, sessionID string, req DirectSaleSelectRequest) (*SessionStateResponse, error) {
	id, session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	saleID := uuid.Nil
	if req.DirectSaleID != "" {
		saleID, err = uuid.Parse(req.DirectSaleID)
		if err != nil {
			return nil, fmt.Errorf("invalid direct sale id: %w", err)
		}
	}

	session.ApplyDirectSale(ctx, saleID)
	return s.stateOf(id, session), nil
}

// --- Helpers ---

func (s *configuratorService) lookup(sessionID string) (uuid.UUID, *configurator.Session, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("invalid session id: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return uuid.Nil, nil, ErrSessionNotFound
	}
	return id, session, nil
}

func (s *configuratorService) versionOptionalPrice(ctx context.Context, versionID, optionalID uuid.UUID) (decimal.Decimal, error) {
	rc, ok := s.catalog.(*repoCatalog)
	if !ok {
		return decimal.Zero, errors.New("optional pricing unavailable")
	}
	optionals, err := rc.vehicles.ListVersionOptionals(ctx, versionID)
	if err != nil {
		return decimal.Zero, err
	}
	for _, vo := range optionals {
		if vo.OptionalID == optionalID {
			return vo.Price, nil
		}
	}
	return decimal.Zero, nil
}

func (s *configuratorService) stateOf(id uuid.UUID, session *configurator.Session) *SessionStateResponse {
	snap := session.Snapshot()
	totals := session.ComputeTotal()

	resp := &SessionStateResponse{
		SessionID: id.String(),
		Prices: TierPricesResponse{
			Public:      snap.Prices.Public,
			PcdIpi:      snap.Prices.PcdIpi,
			PcdIpiIcms:  snap.Prices.PcdIpiIcms,
			TaxiIpi:     snap.Prices.TaxiIpi,
			TaxiIpiIcms: snap.Prices.TaxiIpiIcms,
		},
		ColorPrice:      snap.ColorPrice,
		OptionalsTotal:  snap.OptionalsSum,
		DiscountPercent: snap.DiscountPercent,
		DiscountAmount:  snap.DiscountAmount,
		MarkupAmount:    snap.MarkupAmount,
		Quantity:        snap.Quantity,
		Subtotal:        totals.Subtotal,
		FinalPrice:      totals.Final,
	}

	if snap.BrandID != uuid.Nil {
		resp.BrandID = snap.BrandID.String()
	}
	if snap.ModelID != uuid.Nil {
		resp.ModelID = snap.ModelID.String()
	}
	if snap.VersionID != uuid.Nil {
		resp.VersionID = snap.VersionID.String()
	}
	if snap.ColorID != uuid.Nil {
		resp.ColorID = snap.ColorID.String()
	}
	if snap.ActiveTier != nil {
		resp.ActiveTier = string(*snap.ActiveTier)
	}
	if snap.DirectSaleID != nil {
		resp.DirectSaleID = snap.DirectSaleID.String()
	}

	resp.Optionals = make([]SelectedOptionalResponse, 0, len(snap.Optionals))
	for oid, price := range snap.Optionals {
		resp.Optionals = append(resp.Optionals, SelectedOptionalResponse{
			OptionalID: oid.String(),
			UnitPrice:  price,
		})
	}

	return resp
}
