package rates

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amar-sharma/gundiwalla-bullion-server/internal/feed"
)

func sampleFeeds() (spot, futures []feed.RawTicker) {
	spot = []feed.RawTicker{
		{Symbol: "SPOTGold", Buy: "2650.5", Sell: "2651.2", Change: "3.1", Rate: "2650.8"},
		{Symbol: "SPOTSilver", Buy: "31.2", Sell: "31.4", Change: "-0.2", Rate: "31.3"},
		{Symbol: "USDINR", Buy: "84.10", Sell: "84.12", Change: "0.02", Rate: "84.11"},
	}
	futures = []feed.RawTicker{
		{Symbol: "GOLD", Buy: "76500", Sell: "76650", Change: "120", Rate: "76575"},
		{Symbol: "SILVER", Buy: "92000", Sell: "92300", Change: "-50", Rate: "92150"},
	}
	return spot, futures
}

func TestExtract(t *testing.T) {
	t.Run("FullBundle", func(t *testing.T) {
		spot, futures := sampleFeeds()

		bundle, err := Extract(spot, futures)

		require.NoError(t, err)
		require.Len(t, bundle, 5)
		assert.Equal(t, 76500.0, bundle["gold"].Buy)
		assert.Equal(t, 92300.0, bundle["silver"].Sell)
		assert.Equal(t, 3.1, bundle["spot_gold"].Change)
		assert.Equal(t, 84.11, bundle["usd_inr"].Rate)
	})

	t.Run("MissingSymbolFailsWhole", func(t *testing.T) {
		spot, futures := sampleFeeds()
		// Drop USDINR; everything else being present must not help.
		spot = spot[:2]

		bundle, err := Extract(spot, futures)

		assert.Nil(t, bundle)
		var missing *MissingSymbolError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "USDINR", missing.Symbol)
	})

	t.Run("FirstMatchingRecordWins", func(t *testing.T) {
		spot, futures := sampleFeeds()
		futures = append([]feed.RawTicker{
			{Symbol: "GOLD", Buy: "1", Sell: "2", Change: "3", Rate: "4"},
		}, futures...)

		bundle, err := Extract(spot, futures)

		require.NoError(t, err)
		assert.Equal(t, 1.0, bundle["gold"].Buy)
	})

	t.Run("MalformedNumberBecomesNaN", func(t *testing.T) {
		spot, futures := sampleFeeds()
		futures[0].Buy = "n/a"

		bundle, err := Extract(spot, futures)

		require.NoError(t, err)
		assert.True(t, math.IsNaN(bundle["gold"].Buy))
		assert.Equal(t, 76650.0, bundle["gold"].Sell)
	})
}

func TestBundleEqual(t *testing.T) {
	build := func() Bundle {
		spot, futures := sampleFeeds()
		b, err := Extract(spot, futures)
		require.NoError(t, err)
		return b
	}

	t.Run("IdenticalBundlesAreEqual", func(t *testing.T) {
		assert.True(t, build().Equal(build()))
	})

	t.Run("SingleLeafDifferenceIsAChange", func(t *testing.T) {
		a, b := build(), build()
		q := b["usd_inr"]
		q.Sell += 0.01
		b["usd_inr"] = q
		assert.False(t, a.Equal(b))
	})

	t.Run("EmptyBundleNeverEqualsFull", func(t *testing.T) {
		assert.False(t, Bundle{}.Equal(build()))
		assert.False(t, build().Equal(Bundle{}))
	})

	t.Run("NaNIsAlwaysAChange", func(t *testing.T) {
		a, b := build(), build()
		q := a["gold"]
		q.Buy = math.NaN()
		a["gold"] = q
		b["gold"] = q
		// Same NaN on both sides still reads as a change.
		assert.False(t, a.Equal(b))
	})
}

func TestWithinTradingWindow(t *testing.T) {
	at := func(hour, min int) time.Time {
		return time.Date(2025, 6, 2, hour, min, 0, 0, IST)
	}

	assert.False(t, WithinTradingWindow(at(8, 59)))
	assert.True(t, WithinTradingWindow(at(9, 0)))
	assert.True(t, WithinTradingWindow(at(15, 30)))
	assert.True(t, WithinTradingWindow(at(23, 30)))
	assert.False(t, WithinTradingWindow(at(23, 31)))
	assert.False(t, WithinTradingWindow(at(2, 0)))

	// The gate converts to IST before comparing, so a UTC clock works too.
	utc := time.Date(2025, 6, 2, 3, 30, 0, 0, time.UTC) // 09:00 IST
	assert.True(t, WithinTradingWindow(utc))
	assert.False(t, WithinTradingWindow(utc.Add(-time.Minute)))
}
