package configurator

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"autoquote/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Catalog hands the engine already-resolved pricing data. Lookup misses are
// reported via errors; the engine degrades to zero/placeholder values instead
// of propagating them, so the configurator stays usable with holes in the
// catalog.
type Catalog interface {
	VehicleForVersion(ctx context.Context, versionID uuid.UUID) (*model.Vehicle, error)
	ColorPrice(ctx context.Context, versionID, colorID uuid.UUID) (decimal.Decimal, error)
	DirectSale(ctx context.Context, id uuid.UUID) (*model.DirectSale, error)
}

// Totals is the computed price of the current configuration.
type Totals struct {
	Subtotal decimal.Decimal
	Final    decimal.Decimal
}

// Snapshot is a read-only copy of the session state for DTO mapping.
type Snapshot struct {
	BrandID         uuid.UUID
	ModelID         uuid.UUID
	VersionID       uuid.UUID
	Prices          PriceTable
	ColorID         uuid.UUID
	ColorPrice      decimal.Decimal
	Optionals       map[uuid.UUID]decimal.Decimal
	OptionalsSum    decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	MarkupAmount    decimal.Decimal
	Quantity        int
	ActiveTier      *PriceTier
	DirectSaleID    *uuid.UUID
}

// Session holds one configurator's mutable state. Every mutation keeps the
// derived fields consistent, so ComputeTotal is never stale.
type Session struct {
	mu      sync.Mutex
	catalog Catalog

	brandID   uuid.UUID
	modelID   uuid.UUID
	versionID uuid.UUID

	prices       PriceTable
	colorID      uuid.UUID
	colorPrice   decimal.Decimal
	optionals    map[uuid.UUID]decimal.Decimal
	optionalsSum decimal.Decimal

	discountPercent decimal.Decimal
	discountAmount  decimal.Decimal
	markupAmount    decimal.Decimal
	quantity        int

	activeTier   *PriceTier
	directSaleID *uuid.UUID
}

// NewSession returns an empty configuration priced at zero, quantity one.
func NewSession(catalog Catalog) *Session {
	return &Session{
		catalog:   catalog,
		optionals: make(map[uuid.UUID]decimal.Decimal),
		quantity:  1,
	}
}

// SelectBrand restarts the configuration under a new brand. Everything below
// the brand in the hierarchy is version-specific and gets reset.
func (s *Session) SelectBrand(brandID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brandID = brandID
	s.modelID = uuid.Nil
	s.versionID = uuid.Nil
	s.prices = PriceTable{}
	s.resetPricingLocked()
}

// SelectModel picks a model line, invalidating any chosen version.
func (s *Session) SelectModel(modelID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modelID = modelID
	s.versionID = uuid.Nil
	s.prices = PriceTable{}
	s.resetPricingLocked()
}

// SelectVersion loads the five tier prices for the version and cascades a
// reset of color, optionals, discount, markup, direct sale and tier. A
// version without a vehicle record gets a zeroed placeholder so the screen
// stays usable.
func (s *Session) SelectVersion(ctx context.Context, versionID uuid.UUID) {
	vehicle, err := s.catalog.VehicleForVersion(ctx, versionID)
	if err != nil {
		vehicle = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.versionID = versionID
	s.prices = PricesFromVehicle(vehicle)
	s.resetPricingLocked()
}

// SelectColor prices the (version, color) pairing, or zero when none exists.
// Other fields are untouched.
func (s *Session) SelectColor(ctx context.Context, colorID uuid.UUID) {
	s.mu.Lock()
	versionID := s.versionID
	s.mu.Unlock()

	price, err := s.catalog.ColorPrice(ctx, versionID, colorID)
	if err != nil {
		price = decimal.Zero
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.colorID = colorID
	s.colorPrice = price
}

// ToggleOptional adds the optional and its price to the running sum, or
// removes both when it is already selected. The sum always equals the sum of
// the selected unit prices.
func (s *Session) ToggleOptional(optionalID uuid.UUID, unitPrice decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prior, ok := s.optionals[optionalID]; ok {
		delete(s.optionals, optionalID)
		s.optionalsSum = s.optionalsSum.Sub(prior)
		return
	}
	s.optionals[optionalID] = unitPrice
	s.optionalsSum = s.optionalsSum.Add(unitPrice)
}

// SetDiscountPercent stores the percentage and re-derives the amount from the
// active tier's base price. A zero base collapses both fields to zero.
func (s *Session) SetDiscountPercent(pct decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setDiscountPercentLocked(pct)
}

// SetDiscountAmount stores the amount and re-derives the percentage.
func (s *Session) SetDiscountAmount(amt decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	base := s.basePriceLocked()
	if base.IsZero() {
		s.discountPercent = decimal.Zero
		s.discountAmount = decimal.Zero
		return
	}
	s.discountAmount = amt.Round(2)
	s.discountPercent = amt.Div(base).Mul(hundred).Round(2)
}

// SetMarkup sets the flat markup added after the discount.
func (s *Session) SetMarkup(amt decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markupAmount = amt
}

// SetQuantity floors the quantity at one.
func (s *Session) SetQuantity(q int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q < 1 {
		q = 1
	}
	s.quantity = q
}

// ApplyDirectSale overwrites the discount percentage with the named direct
// sale's, honoring its brand scope. uuid.Nil clears the selection and the
// discount. A missing or out-of-scope direct sale leaves the discount as is.
func (s *Session) ApplyDirectSale(ctx context.Context, id uuid.UUID) {
	if id == uuid.Nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.directSaleID = nil
		s.setDiscountPercentLocked(decimal.Zero)
		return
	}

	sale, err := s.catalog.DirectSale(ctx, id)
	if err != nil || sale == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sale.BrandID != nil && s.brandID != uuid.Nil && *sale.BrandID != s.brandID {
		return
	}
	saleID := sale.ID
	s.directSaleID = &saleID
	s.setDiscountPercentLocked(sale.DiscountPercentage)
}

// SelectTier toggles the active tier: re-selecting the current one reverts to
// the public price. The discount amount is re-derived because the base price
// changed under the stored percentage.
func (s *Session) SelectTier(tier PriceTier) error {
	if _, err := ParseTier(string(tier)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeTier != nil && *s.activeTier == tier {
		s.activeTier = nil
	} else {
		t := tier
		s.activeTier = &t
	}
	s.setDiscountPercentLocked(s.discountPercent)
	return nil
}

// ComputeTotal returns the current subtotal and final price.
//
//	subtotal = base(active tier or public) + color + optionals
//	final    = (subtotal - discount + markup) * quantity
//
// The final is deliberately not clamped at zero: an oversized discount should
// surface as a visible anomaly, not vanish.
func (s *Session) ComputeTotal() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtotal := s.basePriceLocked().Add(s.colorPrice).Add(s.optionalsSum)
	final := subtotal.Sub(s.discountAmount).
		Add(s.markupAmount).
		Mul(decimal.NewFromInt(int64(s.quantity)))
	return Totals{Subtotal: subtotal, Final: final}
}

// Snapshot copies the state for DTO mapping.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	opts := make(map[uuid.UUID]decimal.Decimal, len(s.optionals))
	for id, price := range s.optionals {
		opts[id] = price
	}

	snap := Snapshot{
		BrandID:         s.brandID,
		ModelID:         s.modelID,
		VersionID:       s.versionID,
		Prices:          s.prices,
		ColorID:         s.colorID,
		ColorPrice:      s.colorPrice,
		Optionals:       opts,
		OptionalsSum:    s.optionalsSum,
		DiscountPercent: s.discountPercent,
		DiscountAmount:  s.discountAmount,
		MarkupAmount:    s.markupAmount,
		Quantity:        s.quantity,
	}
	if s.activeTier != nil {
		t := *s.activeTier
		snap.ActiveTier = &t
	}
	if s.directSaleID != nil {
		id := *s.directSaleID
		snap.DirectSaleID = &id
	}
	return snap
}

func (s *Session) basePriceLocked() decimal.Decimal {
	if s.activeTier != nil {
		return s.prices.ForTier(*s.activeTier)
	}
	return s.prices.Public
}

func (s *Session) setDiscountPercentLocked(pct decimal.Decimal) {
	base := s.basePriceLocked()
	if base.IsZero() {
		s.discountPercent = decimal.Zero
		s.discountAmount = decimal.Zero
		return
	}
	s.discountPercent = pct.Round(2)
	s.discountAmount = base.Mul(pct).Div(hundred).Round(2)
}

func (s *Session) resetPricingLocked() {
	s.colorID = uuid.Nil
	s.colorPrice = decimal.Zero
	s.optionals = make(map[uuid.UUID]decimal.Decimal)
	s.optionalsSum = decimal.Zero
	s.discountPercent = decimal.Zero
	s.discountAmount = decimal.Zero
	s.markupAmount = decimal.Zero
	s.activeTier = nil
	s.directSaleID = nil
}
