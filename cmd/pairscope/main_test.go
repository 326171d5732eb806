package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pairScope/internal/model"
	"pairScope/internal/testutil"
)

const (
	wethAddress = "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"
	usdcAddress = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
)

func newFake(t *testing.T) *testutil.FakeProvider {
	t.Helper()
	fake := testutil.NewFakeProvider(t)
	fake.AddCoin(testutil.FakeCoin{ID: "weth", Symbol: "weth", Platforms: map[string]string{"ethereum": wethAddress}})
	fake.AddCoin(testutil.FakeCoin{ID: "usd-coin", Symbol: "usdc", Platforms: map[string]string{"ethereum": usdcAddress}})

	end := time.Now().UTC().Truncate(time.Hour)
	start := end.Add(-6 * 24 * time.Hour)
	prices, volumes := testutil.HourlyChart(start, end, func(int) float64 { return 2000 }, func(int) float64 { return 4000 })
	fake.SetChart("weth", prices, volumes)
	prices, volumes = testutil.HourlyChart(start, end, func(int) float64 { return 1 }, func(int) float64 { return 100 })
	fake.SetChart("usd-coin", prices, volumes)
	return fake
}

func execute(t *testing.T, fake *testutil.FakeProvider, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args,
		"--api-url", fake.Server.URL,
		"--rate-limit", "600000",
		"--max-retries", "0",
		"--log-level", "error",
	))
	err := root.Execute()
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	fake := newFake(t)

	_, err := execute(t, fake, "resolve", "--address", wethAddress+",0x1234")
	require.Error(t, err)
	assert.Empty(t, fake.Requests())

	out, err := execute(t, fake, "resolve", "--address", wethAddress+","+usdcAddress)
	require.NoError(t, err)
	assert.Equal(t, wethAddress+"\tweth\n"+usdcAddress+"\tusd-coin\n", out)
}

func TestAggregateCommandJSONLines(t *testing.T) {
	fake := newFake(t)

	out, err := execute(t, fake, "aggregate", "--address", wethAddress+","+usdcAddress, "--days", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	var record struct {
		RunID          string    `json:"run_id"`
		Chain          string    `json:"chain"`
		Base           string    `json:"base"`
		Quote          string    `json:"quote"`
		RelativePrice  []float64 `json:"relative_price"`
		CombinedVolume []float64 `json:"combined_volume"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.NotEmpty(t, record.RunID)
	assert.Equal(t, "mainnet", record.Chain)
	assert.Equal(t, "weth", record.Base)
	assert.Equal(t, "usdc", record.Quote)
	require.Len(t, record.RelativePrice, 49)
	assert.Equal(t, 2000.0, record.RelativePrice[0])
	assert.Equal(t, 102.0, record.CombinedVolume[0])
	assert.Equal(t, "4", fake.Days("weth"))
}

func TestAggregateCommandPair(t *testing.T) {
	fake := newFake(t)

	out, err := execute(t, fake, "aggregate", "--address", wethAddress+","+usdcAddress, "--days", "0", "--pair", "usdc,0")
	require.NoError(t, err)
	assert.Contains(t, out, "usdc/weth")
	assert.Contains(t, out, "0.00050000")
}

func TestAggregateCommandUnknownChain(t *testing.T) {
	fake := newFake(t)

	_, err := execute(t, fake, "aggregate", "--address", wethAddress+","+usdcAddress, "--chain", "solana")
	assert.ErrorIs(t, err, model.ErrConfiguration)
	assert.Empty(t, fake.Requests())
}
