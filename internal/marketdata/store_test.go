package marketdata

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreLoadsEmbeddedData(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	assert.Equal(t, []string{"NASDAQ100", "SP500", "TBILL_3M"}, store.AssetIDs())

	sp500, ok := store.Asset("SP500")
	require.True(t, ok)
	assert.Equal(t, 1926, sp500.FirstYear)
	assert.Equal(t, 2024, sp500.LastYear)
	assert.Equal(t, 99, sp500.Years())
	assert.Len(t, sp500.Monthly, 99*12)

	nasdaq, ok := store.Asset("NASDAQ100")
	require.True(t, ok)
	assert.Equal(t, 1986, nasdaq.FirstYear)

	tbill, ok := store.Asset("TBILL_3M")
	require.True(t, ok)
	assert.Equal(t, 1928, tbill.FirstYear)
	assert.Equal(t, 2024, tbill.LastYear)
}

func TestStoreReturnFractions(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	sp500, _ := store.Asset("SP500")
	// 1926 return was 11.62%.
	first, _ := sp500.Annual[0].Float64()
	assert.InDelta(t, 0.1162, first, 1e-9)

	// Each year expands to 12 equal months of (1+annual)^(1/12)-1.
	wantMonthly := math.Pow(1.1162, 1.0/12) - 1
	for m := 0; m < 12; m++ {
		assert.InDelta(t, wantMonthly, sp500.Monthly[m], 1e-12)
	}
}

func TestStoreUnknownAsset(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)
	_, ok := store.Asset("GOLD")
	assert.False(t, ok)
}

func TestAnnualStats(t *testing.T) {
	a := NewAssetSeries("FLAT", 2000, []decimal.Decimal{
		decimal.NewFromFloat(0.10),
		decimal.NewFromFloat(0.10),
	})
	mean, stdDev := a.AnnualStats()
	assert.InDelta(t, 0.10, mean, 1e-12)
	assert.InDelta(t, 0.0, stdDev, 1e-12)
}

func TestNewAssetSeriesMonthlyExpansion(t *testing.T) {
	a := NewAssetSeries("X", 1990, []decimal.Decimal{
		decimal.NewFromFloat(0.12),
		decimal.NewFromFloat(-0.05),
	})
	assert.Equal(t, 1991, a.LastYear)
	require.Len(t, a.Monthly, 24)

	up := math.Pow(1.12, 1.0/12) - 1
	down := math.Pow(0.95, 1.0/12) - 1
	assert.InDelta(t, up, a.Monthly[0], 1e-12)
	assert.InDelta(t, up, a.Monthly[11], 1e-12)
	assert.InDelta(t, down, a.Monthly[12], 1e-12)
	assert.InDelta(t, down, a.Monthly[23], 1e-12)

	// Compounding the 12 monthly returns reproduces the annual return.
	total := 1.0
	for _, r := range a.Monthly[:12] {
		total *= 1 + r
	}
	assert.InDelta(t, 1.12, total, 1e-9)
}
