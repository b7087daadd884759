package configurator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"autoquote/internal/model"
)

// PriceTier identifies one of the five base prices carried by a vehicle
// record. The four exemption tiers map to the Brazilian PCD and TAXI tax
// categories, each with an IPI-only and an IPI+ICMS variant.
type PriceTier string

const (
	TierPublic      PriceTier = "PUBLIC"
	TierPcdIpi      PriceTier = "PCD_IPI"
	TierPcdIpiIcms  PriceTier = "PCD_IPI_ICMS"
	TierTaxiIpi     PriceTier = "TAXI_IPI"
	TierTaxiIpiIcms PriceTier = "TAXI_IPI_ICMS"
)

// ParseTier maps a wire value to a PriceTier. An unknown value is a caller
// contract violation, not a data condition, so this is the one place the
// engine signals an error.
func ParseTier(s string) (PriceTier, error) {
	switch PriceTier(s) {
	case TierPublic, TierPcdIpi, TierPcdIpiIcms, TierTaxiIpi, TierTaxiIpiIcms:
		return PriceTier(s), nil
	}
	return "", fmt.Errorf("invalid price tier %q", s)
}

// PriceTable holds the five base prices of one vehicle record.
type PriceTable struct {
	Public      decimal.Decimal
	PcdIpi      decimal.Decimal
	PcdIpiIcms  decimal.Decimal
	TaxiIpi     decimal.Decimal
	TaxiIpiIcms decimal.Decimal
}

// ForTier returns the base price for the given tier.
func (p PriceTable) ForTier(t PriceTier) decimal.Decimal {
	switch t {
	case TierPcdIpi:
		return p.PcdIpi
	case TierPcdIpiIcms:
		return p.PcdIpiIcms
	case TierTaxiIpi:
		return p.TaxiIpi
	case TierTaxiIpiIcms:
		return p.TaxiIpiIcms
	default:
		return p.Public
	}
}

// PricesFromVehicle copies the tier prices off a vehicle record.
func PricesFromVehicle(v *model.Vehicle) PriceTable {
	if v == nil {
		return PriceTable{}
	}
	return PriceTable{
		Public:      v.PublicPrice,
		PcdIpi:      v.PcdIpi,
		PcdIpiIcms:  v.PcdIpiIcms,
		TaxiIpi:     v.TaxiIpi,
		TaxiIpiIcms: v.TaxiIpiIcms,
	}
}
