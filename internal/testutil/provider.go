// Package testutil provides an in-memory CoinGecko stand-in for tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"pairScope/internal/coingecko"
)

// FakeCoin is the metadata served for a market id.
type FakeCoin struct {
	ID        string            `json:"id"`
	Symbol    string            `json:"symbol"`
	Platforms map[string]string `json:"platforms"`
}

type fakeChart struct {
	Prices       [][]float64 `json:"prices"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}

// FakeProvider serves contract, coin and market_chart endpoints from memory
// and records every request path.
type FakeProvider struct {
	Server *httptest.Server

	mu        sync.Mutex
	contracts map[string]FakeCoin
	coins     map[string]FakeCoin
	charts    map[string]fakeChart
	failures  map[string]int
	requests  []string
	days      map[string]string
}

// NewFakeProvider starts a server that is closed when the test ends.
func NewFakeProvider(t *testing.T) *FakeProvider {
	t.Helper()
	f := &FakeProvider{
		contracts: make(map[string]FakeCoin),
		coins:     make(map[string]FakeCoin),
		charts:    make(map[string]fakeChart),
		failures:  make(map[string]int),
		days:      make(map[string]string),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Server.Close)
	return f
}

// Client returns a provider client pointed at the fake with retries off.
func (f *FakeProvider) Client(t *testing.T) *coingecko.Client {
	t.Helper()
	client, err := coingecko.NewClient(coingecko.ClientConfig{
		BaseURL:         f.Server.URL,
		RateLimitPerMin: 600000,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

// AddCoin registers a coin under its id and under every platform contract.
func (f *FakeProvider) AddCoin(coin FakeCoin) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.coins[coin.ID] = coin
	for platform, address := range coin.Platforms {
		f.contracts[platform+"/"+strings.ToLower(address)] = coin
	}
}

// SetChart sets the market_chart body for a market id.
func (f *FakeProvider) SetChart(id string, prices, volumes [][]float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.charts[id] = fakeChart{Prices: prices, TotalVolumes: volumes}
}

// Fail makes requests whose path equals path answer with status.
func (f *FakeProvider) Fail(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = status
}

// Requests returns the request paths seen so far.
func (f *FakeProvider) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

// Days returns the days query parameter last requested for a market id.
func (f *FakeProvider) Days(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.days[id]
}

func (f *FakeProvider) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.URL.Path)
	status, failing := f.failures[r.URL.Path]
	f.mu.Unlock()

	if failing {
		writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/coins/"), "/")
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case len(parts) == 3 && parts[1] == "contract":
		coin, ok := f.contracts[parts[0]+"/"+parts[2]]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "coin not found"})
			return
		}
		writeJSON(w, http.StatusOK, coin)
	case len(parts) == 2 && parts[1] == "market_chart":
		chart, ok := f.charts[parts[0]]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "coin not found"})
			return
		}
		f.days[parts[0]] = r.URL.Query().Get("days")
		writeJSON(w, http.StatusOK, chart)
	case len(parts) == 1:
		coin, ok := f.coins[parts[0]]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "coin not found"})
			return
		}
		writeJSON(w, http.StatusOK, coin)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown path"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// HourlyChart builds price and volume arrays with one sample per hour from
// start (inclusive) to end (exclusive). price and volume receive the sample
// index.
func HourlyChart(start, end time.Time, price, volume func(i int) float64) ([][]float64, [][]float64) {
	var prices, volumes [][]float64
	i := 0
	for ts := start; ts.Before(end); ts = ts.Add(time.Hour) {
		ms := float64(ts.UnixMilli())
		prices = append(prices, []float64{ms, price(i)})
		volumes = append(volumes, []float64{ms, volume(i)})
		i++
	}
	return prices, volumes
}
