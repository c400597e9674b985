package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amar-sharma/gundiwalla-bullion-server/internal/rates"
)

func TestPrice(t *testing.T) {
	t.Run("ZeroConfigIsIdentity", func(t *testing.T) {
		assert.Equal(t, 1000.0, Price(1000, SideConfig{}))
	})

	t.Run("PercentagePlusExtra", func(t *testing.T) {
		got := Price(1000, SideConfig{Percentage: 10, Extra: 5})
		assert.Equal(t, 1105.0, got)
	})

	t.Run("ManualOverrideWins", func(t *testing.T) {
		got := Price(1000, SideConfig{Percentage: 10, Extra: 5, Manual: 1200})
		assert.Equal(t, 1200.0, got)
	})

	t.Run("NegativeResultPassesThrough", func(t *testing.T) {
		got := Price(100, SideConfig{Percentage: -150})
		assert.Equal(t, -50.0, got)
	})
}

func TestProductPrice(t *testing.T) {
	bundle := rates.Bundle{
		"gold":   {Buy: 76500, Sell: 76650, Change: 120, Rate: 76575},
		"silver": {Buy: 92000, Sell: 92300, Change: -50, Rate: 92150},
	}
	cfg := Config{
		"Gold Coin - 1gm": {
			Buy:  SideConfig{Percentage: 10, Extra: 100},
			Sell: SideConfig{Manual: 80000},
		},
	}

	t.Run("BuySideUsesBuyQuote", func(t *testing.T) {
		got, err := ProductPrice(bundle, cfg, "Gold Coin - 1gm", SideBuy)
		require.NoError(t, err)
		assert.Equal(t, 76500+7650+100.0, got)
	})

	t.Run("SellSideManualOverride", func(t *testing.T) {
		got, err := ProductPrice(bundle, cfg, "Gold Coin - 1gm", SideSell)
		require.NoError(t, err)
		assert.Equal(t, 80000.0, got)
	})

	t.Run("UnconfiguredProductPricesRaw", func(t *testing.T) {
		got, err := ProductPrice(bundle, cfg, "Silver RTGS", SideBuy)
		require.NoError(t, err)
		assert.Equal(t, 92000.0, got)
	})

	t.Run("SilverProductUsesSilverQuote", func(t *testing.T) {
		got, err := ProductPrice(bundle, cfg, "Silver", SideSell)
		require.NoError(t, err)
		assert.Equal(t, 92300.0, got)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		_, err := ProductPrice(bundle, cfg, "Platinum", SideBuy)
		assert.Error(t, err)
	})

	t.Run("InvalidSide", func(t *testing.T) {
		_, err := ProductPrice(bundle, cfg, "Gold", "hold")
		assert.Error(t, err)
	})

	t.Run("MissingQuote", func(t *testing.T) {
		_, err := ProductPrice(rates.Bundle{}, cfg, "Gold", SideBuy)
		assert.Error(t, err)
	})
}
