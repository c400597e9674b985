package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amar-sharma/gundiwalla-bullion-server/internal/models"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/pricing"
	"github.com/amar-sharma/gundiwalla-bullion-server/internal/rates"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return New(db)
}

func fullBundle() rates.Bundle {
	return rates.Bundle{
		"gold":        {Buy: 76500, Sell: 76650, Change: 120, Rate: 76575},
		"silver":      {Buy: 92000, Sell: 92300, Change: -50, Rate: 92150},
		"spot_gold":   {Buy: 2650.5, Sell: 2651.2, Change: 3.1, Rate: 2650.8},
		"spot_silver": {Buy: 31.2, Sell: 31.4, Change: -0.2, Rate: 31.3},
		"usd_inr":     {Buy: 84.10, Sell: 84.12, Change: 0.02, Rate: 84.11},
	}
}

func TestBundleRoundTrip(t *testing.T) {
	st := newTestStore(t)
	want := fullBundle()

	require.NoError(t, st.ReplaceBundle(want))

	got, err := st.LoadBundle()
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestReplaceBundle(t *testing.T) {
	t.Run("OverwritesPreviousSnapshot", func(t *testing.T) {
		st := newTestStore(t)
		require.NoError(t, st.ReplaceBundle(fullBundle()))

		next := fullBundle()
		q := next["gold"]
		q.Buy = 77000
		next["gold"] = q
		require.NoError(t, st.ReplaceBundle(next))

		got, err := st.LoadBundle()
		require.NoError(t, err)
		assert.Equal(t, 77000.0, got["gold"].Buy)
		assert.Len(t, got, 5) // still exactly one row per instrument
	})

	t.Run("RejectsPartialBundle", func(t *testing.T) {
		st := newTestStore(t)
		require.NoError(t, st.ReplaceBundle(fullBundle()))

		partial := fullBundle()
		delete(partial, "usd_inr")
		assert.Error(t, st.ReplaceBundle(partial))

		// The stored snapshot is untouched by the rejected write.
		got, err := st.LoadBundle()
		require.NoError(t, err)
		assert.True(t, fullBundle().Equal(got))
	})
}

func TestMergeMarkup(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.MergeMarkup(pricing.Config{
		"Gold":   {Buy: pricing.SideConfig{Percentage: 3}},
		"Silver": {Sell: pricing.SideConfig{Extra: 200}},
	}))

	// A later edit to one product must not clobber the other.
	require.NoError(t, st.MergeMarkup(pricing.Config{
		"Gold": {Buy: pricing.SideConfig{Percentage: 5, Manual: 80000}},
	}))

	cfg, err := st.LoadMarkup()
	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg["Gold"].Buy.Percentage)
	assert.Equal(t, 80000.0, cfg["Gold"].Buy.Manual)
	assert.Equal(t, 200.0, cfg["Silver"].Sell.Extra)
	assert.Equal(t, pricing.SideConfig{}, cfg["Silver"].Buy)
}

func TestUsers(t *testing.T) {
	st := newTestStore(t)
	user := &models.User{DisplayName: "Suresh", Phone: "+919800000002", Allowed: true}
	require.NoError(t, st.CreateUser(user))

	t.Run("FindByPhone", func(t *testing.T) {
		found, err := st.FindUser("+919800000002")
		require.NoError(t, err)
		assert.Equal(t, "Suresh", found.DisplayName)
		assert.False(t, found.Admin)
	})

	t.Run("FindByNumericID", func(t *testing.T) {
		found, err := st.FindUser("1")
		require.NoError(t, err)
		assert.Equal(t, "Suresh", found.DisplayName)
	})

	t.Run("FindUnknown", func(t *testing.T) {
		_, err := st.FindUser("+910000000000")
		assert.Error(t, err)
	})

	t.Run("GrantAdmin", func(t *testing.T) {
		require.NoError(t, st.GrantAdmin(user))
		found, err := st.FindUser("+919800000002")
		require.NoError(t, err)
		assert.True(t, found.Admin)
	})

	t.Run("DeleteUser", func(t *testing.T) {
		require.NoError(t, st.DeleteUser(user.ID))
		_, err := st.FindUser("+919800000002")
		assert.Error(t, err)
	})
}
