package service_test

import (
	"context"
	"testing"

	"autoquote/internal/configurator"
	"autoquote/internal/model"
	"autoquote/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	vehicles map[uuid.UUID]*model.Vehicle
	sales    map[uuid.UUID]*model.DirectSale
}

func (c *stubCatalog) VehicleForVersion(_ context.Context, versionID uuid.UUID) (*model.Vehicle, error) {
	if v, ok := c.vehicles[versionID]; ok {
		return v, nil
	}
	return nil, assert.AnError
}

func (c *stubCatalog) ColorPrice(_ context.Context, _, _ uuid.UUID) (decimal.Decimal, error) {
	return decimal.Zero, assert.AnError
}

func (c *stubCatalog) DirectSale(_ context.Context, id uuid.UUID) (*model.DirectSale, error) {
	if s, ok := c.sales[id]; ok {
		return s, nil
	}
	return nil, assert.AnError
}

func TestConfiguratorServiceSessionLifecycle(t *testing.T) {
	t.Parallel()

	svc := service.NewConfiguratorService(&stubCatalog{})
	ctx := context.Background()

	state, err := svc.StartSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, state.SessionID)
	assert.Equal(t, 1, state.Quantity)
	assert.True(t, state.FinalPrice.IsZero())

	fetched, err := svc.GetSession(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, state.SessionID, fetched.SessionID)

	require.NoError(t, svc.EndSession(ctx, state.SessionID))

	_, err = svc.GetSession(ctx, state.SessionID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestConfiguratorServiceUnknownSession(t *testing.T) {
	t.Parallel()

	svc := service.NewConfiguratorService(&stubCatalog{})
	ctx := context.Background()

	_, err := svc.GetSession(ctx, uuid.NewString())
	assert.ErrorIs(t, err, service.ErrSessionNotFound)

	_, err = svc.GetSession(ctx, "not-a-uuid")
	assert.Error(t, err)
}

func TestConfiguratorServicePricingFlow(t *testing.T) {
	t.Parallel()

	versionID := uuid.New()
	catalog := &stubCatalog{
		vehicles: map[uuid.UUID]*model.Vehicle{
			versionID: {
				VersionID:   versionID,
				PublicPrice: decimal.NewFromInt(100000),
				PcdIpi:      decimal.NewFromInt(80000),
			},
		},
	}
	svc := service.NewConfiguratorService(catalog)
	ctx := context.Background()

	state, err := svc.StartSession(ctx)
	require.NoError(t, err)
	id := state.SessionID

	state, err = svc.SelectVersion(ctx, id, versionID.String())
	require.NoError(t, err)
	assert.True(t, state.Prices.Public.Equal(decimal.NewFromInt(100000)))
	assert.True(t, state.Subtotal.Equal(decimal.NewFromInt(100000)))

	state, err = svc.SetDiscount(ctx, id, service.DiscountRequest{Percent: "10"})
	require.NoError(t, err)
	assert.True(t, state.DiscountAmount.Equal(decimal.NewFromInt(10000)))

	state, err = svc.SetQuantity(ctx, id, service.QuantityRequest{Quantity: "2"})
	require.NoError(t, err)
	assert.True(t, state.FinalPrice.Equal(decimal.NewFromInt(180000)))

	// Switching to a tier rebases the stored percentage.
	state, err = svc.SelectTier(ctx, id, service.TierRequest{Tier: "PCD_IPI"})
	require.NoError(t, err)
	assert.Equal(t, "PCD_IPI", state.ActiveTier)
	assert.True(t, state.DiscountAmount.Equal(decimal.NewFromInt(8000)))

	_, err = svc.SelectTier(ctx, id, service.TierRequest{Tier: "WHOLESALE"})
	assert.Error(t, err)
}

func TestConfiguratorServiceVersionChangeResets(t *testing.T) {
	t.Parallel()

	versionID := uuid.New()
	otherVersion := uuid.New()
	catalog := &stubCatalog{
		vehicles: map[uuid.UUID]*model.Vehicle{
			versionID:    {VersionID: versionID, PublicPrice: decimal.NewFromInt(50000)},
			otherVersion: {VersionID: otherVersion, PublicPrice: decimal.NewFromInt(60000)},
		},
	}
	svc := service.NewConfiguratorService(catalog)
	ctx := context.Background()

	state, err := svc.StartSession(ctx)
	require.NoError(t, err)
	id := state.SessionID

	_, err = svc.SelectVersion(ctx, id, versionID.String())
	require.NoError(t, err)
	_, err = svc.SetDiscount(ctx, id, service.DiscountRequest{Percent: "5"})
	require.NoError(t, err)

	state, err = svc.SelectVersion(ctx, id, otherVersion.String())
	require.NoError(t, err)
	assert.True(t, state.DiscountAmount.IsZero())
	assert.True(t, state.DiscountPercent.IsZero())
	assert.Empty(t, state.ActiveTier)
	assert.True(t, state.Prices.Public.Equal(decimal.NewFromInt(60000)))
}

func TestConfiguratorServiceDirectSale(t *testing.T) {
	t.Parallel()

	versionID := uuid.New()
	saleID := uuid.New()
	catalog := &stubCatalog{
		vehicles: map[uuid.UUID]*model.Vehicle{
			versionID: {VersionID: versionID, PublicPrice: decimal.NewFromInt(100000)},
		},
		sales: map[uuid.UUID]*model.DirectSale{
			saleID: {ID: saleID, Name: "Fleet", DiscountPercentage: decimal.NewFromInt(12)},
		},
	}
	svc := service.NewConfiguratorService(catalog)
	ctx := context.Background()

	state, err := svc.StartSession(ctx)
	require.NoError(t, err)
	id := state.SessionID

	_, err = svc.SelectVersion(ctx, id, versionID.String())
	require.NoError(t, err)

	state, err = svc.SelectDirectSale(ctx, id, service.DirectSaleSelectRequest{DirectSaleID: saleID.String()})
	require.NoError(t, err)
	assert.Equal(t, saleID.String(), state.DirectSaleID)
	assert.True(t, state.DiscountAmount.Equal(decimal.NewFromInt(12000)))

	// Empty id clears the program and the discount with it.
	state, err = svc.SelectDirectSale(ctx, id, service.DirectSaleSelectRequest{})
	require.NoError(t, err)
	assert.Empty(t, state.DirectSaleID)
	assert.True(t, state.DiscountAmount.IsZero())
}

// Degraded catalog: selecting a version with no price record keeps the
// session usable at zero.
func TestConfiguratorServiceMissingVehicleRecord(t *testing.T) {
	t.Parallel()

	svc := service.NewConfiguratorService(&stubCatalog{})
	ctx := context.Background()

	state, err := svc.StartSession(ctx)
	require.NoError(t, err)

	state, err = svc.SelectVersion(ctx, state.SessionID, uuid.NewString())
	require.NoError(t, err)
	assert.True(t, state.Prices.Public.IsZero())
	assert.True(t, state.FinalPrice.IsZero())
}

var _ configurator.Catalog = (*stubCatalog)(nil)
