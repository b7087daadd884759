package configurator_test

import (
	"testing"

	"autoquote/internal/configurator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"PUBLIC", "PCD_IPI", "PCD_IPI_ICMS", "TAXI_IPI", "TAXI_IPI_ICMS"} {
		tier, err := configurator.ParseTier(valid)
		require.NoError(t, err)
		assert.Equal(t, configurator.PriceTier(valid), tier)
	}

	_, err := configurator.ParseTier("pcd_ipi")
	require.Error(t, err)
	_, err = configurator.ParseTier("")
	require.Error(t, err)
}

func TestPriceTableForTier(t *testing.T) {
	t.Parallel()

	table := configurator.PriceTable{
		Public:      dec("100"),
		PcdIpi:      dec("80"),
		PcdIpiIcms:  dec("75"),
		TaxiIpi:     dec("82"),
		TaxiIpiIcms: dec("78"),
	}

	assert.True(t, table.ForTier(configurator.TierPublic).Equal(dec("100")))
	assert.True(t, table.ForTier(configurator.TierPcdIpi).Equal(dec("80")))
	assert.True(t, table.ForTier(configurator.TierPcdIpiIcms).Equal(dec("75")))
	assert.True(t, table.ForTier(configurator.TierTaxiIpi).Equal(dec("82")))
	assert.True(t, table.ForTier(configurator.TierTaxiIpiIcms).Equal(dec("78")))
}
