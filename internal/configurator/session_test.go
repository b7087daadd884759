package configurator_test

import (
	"context"
	"errors"
	"testing"

	"autoquote/internal/configurator"
	"autoquote/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	vehicles    map[uuid.UUID]*model.Vehicle
	colorPrices map[[2]uuid.UUID]decimal.Decimal
	directSales map[uuid.UUID]*model.DirectSale
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		vehicles:    make(map[uuid.UUID]*model.Vehicle),
		colorPrices: make(map[[2]uuid.UUID]decimal.Decimal),
		directSales: make(map[uuid.UUID]*model.DirectSale),
	}
}

func (f *fakeCatalog) VehicleForVersion(_ context.Context, versionID uuid.UUID) (*model.Vehicle, error) {
	if v, ok := f.vehicles[versionID]; ok {
		return v, nil
	}
	return nil, errors.New("vehicle not found")
}

func (f *fakeCatalog) ColorPrice(_ context.Context, versionID, colorID uuid.UUID) (decimal.Decimal, error) {
	if p, ok := f.colorPrices[[2]uuid.UUID{versionID, colorID}]; ok {
		return p, nil
	}
	return decimal.Zero, errors.New("no version color")
}

func (f *fakeCatalog) DirectSale(_ context.Context, id uuid.UUID) (*model.DirectSale, error) {
	if d, ok := f.directSales[id]; ok {
		return d, nil
	}
	return nil, errors.New("direct sale not found")
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// pricedSession returns a session with a version selected whose public price
// is 100000 and PCD IPI price is 80000.
func pricedSession(t *testing.T) (*configurator.Session, *fakeCatalog, uuid.UUID) {
	t.Helper()

	catalog := newFakeCatalog()
	versionID := uuid.New()
	catalog.vehicles[versionID] = &model.Vehicle{
		VersionID:   versionID,
		PublicPrice: dec("100000"),
		PcdIpi:      dec("80000"),
		PcdIpiIcms:  dec("75000"),
		TaxiIpi:     dec("82000"),
		TaxiIpiIcms: dec("78000"),
	}

	s := configurator.NewSession(catalog)
	s.SelectVersion(context.Background(), versionID)
	return s, catalog, versionID
}

func TestComputeTotalExample(t *testing.T) {
	t.Parallel()

	catalog := newFakeCatalog()
	versionID := uuid.New()
	colorID := uuid.New()
	catalog.vehicles[versionID] = &model.Vehicle{VersionID: versionID, PublicPrice: dec("100000")}
	catalog.colorPrices[[2]uuid.UUID{versionID, colorID}] = dec("2000")

	s := configurator.NewSession(catalog)
	s.SelectVersion(context.Background(), versionID)
	s.SelectColor(context.Background(), colorID)
	s.ToggleOptional(uuid.New(), dec("1800"))
	s.ToggleOptional(uuid.New(), dec("1200"))
	s.SetDiscountAmount(dec("5000"))
	s.SetMarkup(dec("1000"))
	s.SetQuantity(2)

	totals := s.ComputeTotal()
	assert.True(t, totals.Subtotal.Equal(dec("105000")), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.Final.Equal(dec("202000")), "final = %s", totals.Final)
}

func TestSelectVersionWithoutVehicleRecord(t *testing.T) {
	t.Parallel()

	s := configurator.NewSession(newFakeCatalog())
	s.SelectVersion(context.Background(), uuid.New())

	totals := s.ComputeTotal()
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Final.IsZero())
}

func TestCascadingResetOnVersionChange(t *testing.T) {
	t.Parallel()

	s, catalog, _ := pricedSession(t)
	s.ToggleOptional(uuid.New(), dec("3000"))
	s.SetDiscountPercent(dec("10"))
	s.SetMarkup(dec("500"))
	require.NoError(t, s.SelectTier(configurator.TierPcdIpi))

	v2 := uuid.New()
	catalog.vehicles[v2] = &model.Vehicle{VersionID: v2, PublicPrice: dec("50000")}
	s.SelectVersion(context.Background(), v2)

	snap := s.Snapshot()
	assert.Equal(t, uuid.Nil, snap.ColorID)
	assert.True(t, snap.ColorPrice.IsZero())
	assert.Empty(t, snap.Optionals)
	assert.True(t, snap.OptionalsSum.IsZero())
	assert.True(t, snap.DiscountPercent.IsZero())
	assert.True(t, snap.DiscountAmount.IsZero())
	assert.True(t, snap.MarkupAmount.IsZero())
	assert.Nil(t, snap.ActiveTier)
	assert.Nil(t, snap.DirectSaleID)
	assert.True(t, s.ComputeTotal().Subtotal.Equal(dec("50000")))
}

func TestBrandAndModelChangeResetVersion(t *testing.T) {
	t.Parallel()

	s, _, _ := pricedSession(t)
	s.SelectBrand(uuid.New())
	snap := s.Snapshot()
	assert.Equal(t, uuid.Nil, snap.VersionID)
	assert.True(t, s.ComputeTotal().Subtotal.IsZero())

	s2, _, _ := pricedSession(t)
	s2.SelectModel(uuid.New())
	assert.Equal(t, uuid.Nil, s2.Snapshot().VersionID)
}

func TestToggleOptionalPairing(t *testing.T) {
	t.Parallel()

	s, _, _ := pricedSession(t)
	optID := uuid.New()

	before := s.Snapshot().OptionalsSum
	s.ToggleOptional(optID, dec("1234.56"))
	assert.True(t, s.Snapshot().OptionalsSum.Equal(dec("1234.56")))
	s.ToggleOptional(optID, dec("1234.56"))
	assert.True(t, s.Snapshot().OptionalsSum.Equal(before))

	// No drift under repeated toggles of a mixed set.
	other := uuid.New()
	for i := 0; i < 7; i++ {
		s.ToggleOptional(optID, dec("1234.56"))
		s.ToggleOptional(other, dec("99.99"))
	}
	snap := s.Snapshot()
	expected := decimal.Zero
	for _, p := range snap.Optionals {
		expected = expected.Add(p)
	}
	assert.True(t, snap.OptionalsSum.Equal(expected),
		"sum %s diverged from selection %s", snap.OptionalsSum, expected)
}

func TestDiscountRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pct  string
	}{
		{"whole percent", "10"},
		{"fractional percent", "7.5"},
		{"awkward fraction", "33.33"},
		{"zero", "0"},
		{"full", "100"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, _, _ := pricedSession(t)
			s.SetDiscountPercent(dec(tt.pct))

			amount := s.Snapshot().DiscountAmount
			s.SetDiscountAmount(amount)
			got := s.Snapshot().DiscountPercent

			diff := got.Sub(dec(tt.pct)).Abs()
			assert.True(t, diff.LessThanOrEqual(dec("0.01")),
				"pct %s round-tripped to %s", tt.pct, got)
		})
	}
}

func TestDiscountCollapsesOnZeroBase(t *testing.T) {
	t.Parallel()

	s := configurator.NewSession(newFakeCatalog())
	s.SelectVersion(context.Background(), uuid.New()) // placeholder, zero prices

	s.SetDiscountPercent(dec("15"))
	snap := s.Snapshot()
	assert.True(t, snap.DiscountPercent.IsZero())
	assert.True(t, snap.DiscountAmount.IsZero())

	s.SetDiscountAmount(dec("500"))
	snap = s.Snapshot()
	assert.True(t, snap.DiscountPercent.IsZero())
	assert.True(t, snap.DiscountAmount.IsZero())
}

func TestTierToggle(t *testing.T) {
	t.Parallel()

	s, _, _ := pricedSession(t)

	require.NoError(t, s.SelectTier(configurator.TierPcdIpi))
	snap := s.Snapshot()
	require.NotNil(t, snap.ActiveTier)
	assert.Equal(t, configurator.TierPcdIpi, *snap.ActiveTier)
	assert.True(t, s.ComputeTotal().Subtotal.Equal(dec("80000")))

	// Selecting another tier switches; there is never more than one active.
	require.NoError(t, s.SelectTier(configurator.TierTaxiIpi))
	snap = s.Snapshot()
	require.NotNil(t, snap.ActiveTier)
	assert.Equal(t, configurator.TierTaxiIpi, *snap.ActiveTier)

	// Re-selecting the active tier deselects it, back to public.
	require.NoError(t, s.SelectTier(configurator.TierTaxiIpi))
	assert.Nil(t, s.Snapshot().ActiveTier)
	assert.True(t, s.ComputeTotal().Subtotal.Equal(dec("100000")))
}

func TestSelectTierRejectsUnknownTier(t *testing.T) {
	t.Parallel()

	s, _, _ := pricedSession(t)
	require.Error(t, s.SelectTier(configurator.PriceTier("GOLD")))
}

func TestTierChangeRederivesDiscountAmount(t *testing.T) {
	t.Parallel()

	s, _, _ := pricedSession(t)
	s.SetDiscountPercent(dec("10"))
	assert.True(t, s.Snapshot().DiscountAmount.Equal(dec("10000")))

	require.NoError(t, s.SelectTier(configurator.TierPcdIpi))
	assert.True(t, s.Snapshot().DiscountAmount.Equal(dec("8000")),
		"amount should follow the new 80000 base")
}

func TestApplyDirectSale(t *testing.T) {
	t.Parallel()

	s, catalog, _ := pricedSession(t)

	saleID := uuid.New()
	catalog.directSales[saleID] = &model.DirectSale{
		ID:                 saleID,
		Name:               "Fleet program",
		DiscountPercentage: dec("12"),
	}

	s.SetDiscountPercent(dec("5"))
	s.ApplyDirectSale(context.Background(), saleID)

	snap := s.Snapshot()
	require.NotNil(t, snap.DirectSaleID)
	assert.Equal(t, saleID, *snap.DirectSaleID)
	// Last write wins: the direct sale overwrote the manual 5%.
	assert.True(t, snap.DiscountPercent.Equal(dec("12")))
	assert.True(t, snap.DiscountAmount.Equal(dec("12000")))

	// The sentinel "none" clears selection and discount.
	s.ApplyDirectSale(context.Background(), uuid.Nil)
	snap = s.Snapshot()
	assert.Nil(t, snap.DirectSaleID)
	assert.True(t, snap.DiscountPercent.IsZero())
	assert.True(t, snap.DiscountAmount.IsZero())
}

func TestApplyDirectSaleBrandScope(t *testing.T) {
	t.Parallel()

	s, catalog, versionID := pricedSession(t)
	_ = versionID

	otherBrand := uuid.New()
	saleID := uuid.New()
	catalog.directSales[saleID] = &model.DirectSale{
		ID:                 saleID,
		BrandID:            &otherBrand,
		DiscountPercentage: dec("20"),
	}

	// Session pinned to a different brand: the scoped sale does not apply.
	s2 := configurator.NewSession(catalog)
	s2.SelectBrand(uuid.New())
	s2.ApplyDirectSale(context.Background(), saleID)
	assert.Nil(t, s2.Snapshot().DirectSaleID)

	// Unknown id leaves the manual discount alone.
	s.SetDiscountPercent(dec("5"))
	s.ApplyDirectSale(context.Background(), uuid.New())
	snap := s.Snapshot()
	assert.Nil(t, snap.DirectSaleID)
	assert.True(t, snap.DiscountPercent.Equal(dec("5")))
}

func TestQuantityFloor(t *testing.T) {
	t.Parallel()

	s, _, _ := pricedSession(t)
	s.SetQuantity(0)
	assert.Equal(t, 1, s.Snapshot().Quantity)
	s.SetQuantity(-4)
	assert.Equal(t, 1, s.Snapshot().Quantity)
	s.SetQuantity(3)
	assert.Equal(t, 3, s.Snapshot().Quantity)
}

func TestNegativeFinalIsNotClamped(t *testing.T) {
	t.Parallel()

	s, _, _ := pricedSession(t)
	s.SetDiscountAmount(dec("150000"))

	totals := s.ComputeTotal()
	assert.True(t, totals.Final.IsNegative(), "final = %s", totals.Final)
}

func TestMissingColorPairingPricesZero(t *testing.T) {
	t.Parallel()

	s, _, _ := pricedSession(t)
	s.SelectColor(context.Background(), uuid.New())

	snap := s.Snapshot()
	assert.True(t, snap.ColorPrice.IsZero())
	assert.True(t, s.ComputeTotal().Subtotal.Equal(dec("100000")))
}
