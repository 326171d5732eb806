package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pairScope/internal/model"
)

func TestJsonlStoragePutPairBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "pairs.jsonl")
	ts := time.Date(2024, 5, 16, 23, 30, 0, 0, time.UTC)
	pairs := []model.PairSeries{
		{I: 0, J: 1, Base: "weth", Quote: "usdc", Timestamps: []time.Time{ts}, RelativePrice: []float64{3000}, CombinedVolume: []float64{12}},
		{I: 0, J: 2, Base: "weth", Quote: "wbtc", Timestamps: []time.Time{ts}, RelativePrice: []float64{0.05}, CombinedVolume: []float64{7}},
	}

	store := NewJsonlStorage(path)
	require.NoError(t, store.PutPairBatch(NewPairRecords("run-1", "mainnet", "usd", pairs)))
	require.NoError(t, store.PutPairBatch(NewPairRecords("run-2", "mainnet", "usd", pairs[:1])))
	require.NoError(t, store.PutPairBatch(nil))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, lines, 3)
	assert.Equal(t, "run-1", lines[0]["run_id"])
	assert.Equal(t, "weth", lines[0]["base"])
	assert.Equal(t, "usdc", lines[0]["quote"])
	assert.Equal(t, "usd", lines[0]["vs_currency"])
	assert.Equal(t, []any{3000.0}, lines[0]["relative_price"])
	assert.Equal(t, []any{"2024-05-16T23:30:00Z"}, lines[0]["timestamps"])
	assert.Equal(t, 2.0, lines[1]["j"])
	assert.Equal(t, "run-2", lines[2]["run_id"])
}

var _ Storage = (*JsonlStorage)(nil)
