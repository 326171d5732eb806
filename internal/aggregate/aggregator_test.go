package aggregate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pairScope/internal/model"
	"pairScope/internal/resolver"
	"pairScope/internal/series"
	"pairScope/internal/testutil"
)

const (
	usdcAddress = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
	wethAddress = "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"
	wbtcAddress = "0x2260fac5e5542a773aa44fbcfedf7c193bc2c599"
	unknownAddr = "0x000000000000000000000000000000000000dead"
)

var fixedNow = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

func newTestAggregator(t *testing.T) (*testutil.FakeProvider, *Aggregator) {
	t.Helper()
	fake := testutil.NewFakeProvider(t)

	coins := []struct {
		id, symbol, address string
		price               func(i int) float64
	}{
		{"weth", "weth", wethAddress, func(i int) float64 { return 3000 + float64(i) }},
		{"usd-coin", "usdc", usdcAddress, func(int) float64 { return 1 }},
		{"wrapped-bitcoin", "wbtc", wbtcAddress, func(i int) float64 { return 60000 - float64(i) }},
	}
	chartStart := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	for _, c := range coins {
		fake.AddCoin(testutil.FakeCoin{
			ID:        c.id,
			Symbol:    c.symbol,
			Platforms: map[string]string{"ethereum": c.address},
		})
		prices, volumes := testutil.HourlyChart(chartStart, fixedNow, c.price, func(int) float64 { return 1e6 })
		fake.SetChart(c.id, prices, volumes)
	}

	client := fake.Client(t)
	agg := NewAggregator(
		resolver.New(client, nil),
		series.NewFetcher(client, nil),
		nil,
		WithClock(func() time.Time { return fixedNow }),
	)
	return fake, agg
}

func TestAggregatePairSeries(t *testing.T) {
	fake, agg := newTestAggregator(t)

	res, err := agg.AggregatePairSeries(context.Background(),
		[]string{wethAddress, usdcAddress, wbtcAddress}, "mainnet", "USD", 2)
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "usd", res.VsCurrency)
	assert.Equal(t, []string{"weth", "usdc", "wbtc"}, res.Symbols())
	assert.Equal(t, "5", fake.Days("weth"))

	require.Len(t, res.Pairs, 3)
	wantOrder := [][2]string{{"weth", "usdc"}, {"weth", "wbtc"}, {"usdc", "wbtc"}}
	for k, p := range res.Pairs {
		assert.Equal(t, wantOrder[k][0], p.Base)
		assert.Equal(t, wantOrder[k][1], p.Quote)
		require.Len(t, p.Timestamps, 73)
		require.Len(t, p.RelativePrice, 73)
		require.Len(t, p.CombinedVolume, 73)
		for i := 1; i < len(p.Timestamps); i++ {
			assert.Equal(t, time.Hour, p.Timestamps[i].Sub(p.Timestamps[i-1]))
		}
	}

	assert.Equal(t, time.Date(2024, 5, 16, 23, 30, 0, 0, time.UTC), res.Grid.Start)
	assert.Equal(t, time.Date(2024, 5, 19, 23, 30, 0, 0, time.UTC), res.Grid.End)

	// Grid start 2024-05-16 23:30 takes the 23:00 sample, 47 hours after chart start.
	wethPrice := 3000.0 + 47
	assert.InDelta(t, wethPrice, res.Pairs[0].RelativePrice[0], 1e-9)
	assert.InDelta(t, 1e6/wethPrice+1e6, res.Pairs[0].CombinedVolume[0], 1e-6)

	prices := res.PriceMatrix()
	volumes := res.VolumeMatrix()
	require.Len(t, prices, 3)
	require.Len(t, volumes, 3)
	assert.Equal(t, res.Pairs[2].RelativePrice, prices[2])
	assert.Equal(t, res.Pairs[1].CombinedVolume, volumes[1])
}

func TestAggregatePairSeriesSelectPair(t *testing.T) {
	_, agg := newTestAggregator(t)

	res, err := agg.AggregatePairSeries(context.Background(),
		[]string{wethAddress, usdcAddress}, "mainnet", "usd", 1)
	require.NoError(t, err)

	direct, err := res.Pair(model.ByName("WETH"), model.ByName("usdc"))
	require.NoError(t, err)
	inverse, err := res.Pair(model.ByIndex(1), model.ByIndex(0))
	require.NoError(t, err)

	assert.Equal(t, "usdc", inverse.Base)
	assert.Equal(t, "weth", inverse.Quote)
	for i := range direct.RelativePrice {
		assert.InDelta(t, 1.0, direct.RelativePrice[i]*inverse.RelativePrice[i], 1e-12)
	}
	assert.Equal(t, direct.CombinedVolume, inverse.CombinedVolume)

	_, err = res.Pair(model.ByName("weth"), model.ByName("weth"))
	assert.Error(t, err)
	_, err = res.Pair(model.ByName("dai"), model.ByName("weth"))
	assert.Error(t, err)
}

func TestAggregatePairSeriesZeroLookback(t *testing.T) {
	_, agg := newTestAggregator(t)

	res, err := agg.AggregatePairSeries(context.Background(),
		[]string{wethAddress, usdcAddress}, "mainnet", "usd", 0)
	require.NoError(t, err)
	require.Len(t, res.Pairs, 1)
	assert.Len(t, res.Pairs[0].RelativePrice, 25)
	assert.Equal(t, 25, res.Grid.Len())
}

func TestAggregatePairSeriesGridIndependentOfAssets(t *testing.T) {
	_, agg := newTestAggregator(t)
	ctx := context.Background()

	two, err := agg.AggregatePairSeries(ctx, []string{wethAddress, usdcAddress}, "mainnet", "usd", 2)
	require.NoError(t, err)
	three, err := agg.AggregatePairSeries(ctx, []string{wethAddress, usdcAddress, wbtcAddress}, "mainnet", "usd", 2)
	require.NoError(t, err)

	assert.Equal(t, two.Grid, three.Grid)
	assert.Equal(t, two.Pairs[0], three.Pairs[0])
	assert.NotEqual(t, two.RunID, three.RunID)
}

func TestAggregatePairSeriesUnknownAddress(t *testing.T) {
	_, agg := newTestAggregator(t)

	res, err := agg.AggregatePairSeries(context.Background(),
		[]string{wethAddress, unknownAddr, usdcAddress}, "mainnet", "usd", 2)

	assert.Nil(t, res)
	var notFound *model.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, unknownAddr, notFound.Key)
}

func TestAggregatePairSeriesUnknownChain(t *testing.T) {
	fake, agg := newTestAggregator(t)

	res, err := agg.AggregatePairSeries(context.Background(),
		[]string{wethAddress, usdcAddress}, "solana", "usd", 2)

	assert.Nil(t, res)
	var cfgErr *model.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Empty(t, fake.Requests())
}

func TestAggregatePairSeriesValidation(t *testing.T) {
	fake, agg := newTestAggregator(t)
	ctx := context.Background()

	_, err := agg.AggregatePairSeries(ctx, []string{wethAddress}, "mainnet", "usd", 2)
	assert.ErrorIs(t, err, model.ErrConfiguration)

	_, err = agg.AggregatePairSeries(ctx, []string{wethAddress, usdcAddress}, "mainnet", "usd", -1)
	assert.ErrorIs(t, err, model.ErrConfiguration)

	_, err = agg.AggregatePairSeries(ctx, []string{wethAddress, usdcAddress}, "mainnet", " ", 2)
	assert.ErrorIs(t, err, model.ErrConfiguration)

	assert.Empty(t, fake.Requests())
}

func TestAggregatePairSeriesInsufficientHistory(t *testing.T) {
	fake, agg := newTestAggregator(t)
	late := time.Date(2024, 5, 18, 0, 0, 0, 0, time.UTC)
	prices, volumes := testutil.HourlyChart(late, fixedNow, func(int) float64 { return 1 }, func(int) float64 { return 1 })
	fake.SetChart("usd-coin", prices, volumes)

	_, err := agg.AggregatePairSeries(context.Background(),
		[]string{wethAddress, usdcAddress}, "mainnet", "usd", 2)

	var alignErr *model.DataAlignmentError
	require.ErrorAs(t, err, &alignErr)
	assert.Equal(t, "usd-coin", alignErr.MarketID)
}
