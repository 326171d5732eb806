// Package aggregate turns per-asset provider series into pairwise relative
// price and combined volume series on a shared hourly grid.
package aggregate

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pairScope/internal/chain"
	"pairScope/internal/model"
)

// AssetResolver maps contract addresses to provider identities.
type AssetResolver interface {
	ResolveAssets(ctx context.Context, addresses []string, chainName string) ([]model.AssetIdentity, error)
}

// SeriesFetcher fetches raw observations for many markets at once.
type SeriesFetcher interface {
	FetchAll(ctx context.Context, marketIDs []string, vsCurrency string, lookbackDays int) ([][]model.Observation, error)
}

// Aggregator runs resolve, fetch, align and combine for one set of assets.
type Aggregator struct {
	resolver AssetResolver
	fetcher  SeriesFetcher
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock overrides the clock used to build the grid.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

func NewAggregator(resolver AssetResolver, fetcher SeriesFetcher, logger *zap.Logger, opts ...Option) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Aggregator{
		resolver: resolver,
		fetcher:  fetcher,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Result is the output of one aggregation call.
type Result struct {
	RunID      string                `json:"run_id"`
	VsCurrency string                `json:"vs_currency"`
	Assets     []model.AssetIdentity `json:"assets"`
	Grid       model.Grid            `json:"-"`
	Pairs      []model.PairSeries    `json:"pairs"`
}

// PriceMatrix returns one relative price row per pair, in pair order.
func (r *Result) PriceMatrix() [][]float64 {
	rows := make([][]float64, len(r.Pairs))
	for k, p := range r.Pairs {
		rows[k] = p.RelativePrice
	}
	return rows
}

// VolumeMatrix returns one combined volume row per pair, in pair order.
func (r *Result) VolumeMatrix() [][]float64 {
	rows := make([][]float64, len(r.Pairs))
	for k, p := range r.Pairs {
		rows[k] = p.CombinedVolume
	}
	return rows
}

// Symbols returns the asset symbols in input order.
func (r *Result) Symbols() []string {
	symbols := make([]string, len(r.Assets))
	for i, a := range r.Assets {
		symbols[i] = a.Symbol
	}
	return symbols
}

// Pair returns the series of base priced in quote. When base comes after
// quote in input order the stored pair is inverted.
func (r *Result) Pair(base, quote model.AssetRef) (model.PairSeries, error) {
	symbols := r.Symbols()
	i, err := base.Resolve(symbols)
	if err != nil {
		return model.PairSeries{}, fmt.Errorf("base: %w", err)
	}
	j, err := quote.Resolve(symbols)
	if err != nil {
		return model.PairSeries{}, fmt.Errorf("quote: %w", err)
	}
	if i == j {
		return model.PairSeries{}, fmt.Errorf("base and quote are the same asset %q", symbols[i])
	}
	if i < j {
		k, err := model.PairIndex(len(symbols), i, j)
		if err != nil {
			return model.PairSeries{}, err
		}
		return r.Pairs[k], nil
	}

	k, err := model.PairIndex(len(symbols), j, i)
	if err != nil {
		return model.PairSeries{}, err
	}
	return invert(r.Pairs[k]), nil
}

func invert(p model.PairSeries) model.PairSeries {
	out := model.PairSeries{
		I:              p.J,
		J:              p.I,
		Base:           p.Quote,
		Quote:          p.Base,
		Timestamps:     p.Timestamps,
		RelativePrice:  make([]float64, len(p.RelativePrice)),
		CombinedVolume: p.CombinedVolume,
	}
	for t, v := range p.RelativePrice {
		out.RelativePrice[t] = 1 / v
	}
	return out
}

// AggregatePairSeries resolves addresses on chainName, fetches their series
// quoted in vsCurrency and returns every pairwise series over the last
// lookbackDays+1 days. Arguments are validated before any network call and
// the call fails as a whole on the first error.
func (a *Aggregator) AggregatePairSeries(ctx context.Context, addresses []string, chainName, vsCurrency string, lookbackDays int) (*Result, error) {
	if len(addresses) < 2 {
		return nil, &model.ConfigurationError{Setting: "addresses", Value: strconv.Itoa(len(addresses)), Reason: "need at least two"}
	}
	if lookbackDays < 0 {
		return nil, &model.ConfigurationError{Setting: "lookback days", Value: strconv.Itoa(lookbackDays), Reason: "must be >= 0"}
	}
	vsCurrency = strings.ToLower(strings.TrimSpace(vsCurrency))
	if vsCurrency == "" {
		return nil, &model.ConfigurationError{Setting: "vs currency", Reason: "must not be empty"}
	}
	if _, err := chain.PlatformKey(chainName); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := a.logger.With(zap.String("run_id", runID))
	grid := NewGrid(a.now(), lookbackDays)

	logger.Info("aggregate start",
		zap.Int("assets", len(addresses)),
		zap.String("chain", chain.Normalize(chainName)),
		zap.String("vs_currency", vsCurrency),
		zap.Int("lookback_days", lookbackDays),
		zap.Time("grid_start", grid.Start),
		zap.Time("grid_end", grid.End),
	)

	assets, err := a.resolver.ResolveAssets(ctx, addresses, chainName)
	if err != nil {
		return nil, fmt.Errorf("resolve assets: %w", err)
	}
	marketIDs := make([]string, len(assets))
	for i, asset := range assets {
		marketIDs[i] = asset.MarketID
	}
	logger.Info("assets resolved", zap.Strings("market_ids", marketIDs))

	raw, err := a.fetcher.FetchAll(ctx, marketIDs, vsCurrency, lookbackDays)
	if err != nil {
		return nil, fmt.Errorf("fetch series: %w", err)
	}

	aligned := make([]model.AlignedSeries, len(raw))
	for i, obs := range raw {
		series, err := Align(marketIDs[i], obs, grid)
		if err != nil {
			return nil, err
		}
		aligned[i] = series
		logger.Debug("series aligned", zap.String("market_id", marketIDs[i]), zap.Int("raw", len(obs)))
	}

	result := &Result{
		RunID:      runID,
		VsCurrency: vsCurrency,
		Assets:     assets,
		Grid:       grid,
	}
	result.Pairs, err = Combine(aligned, result.Symbols())
	if err != nil {
		return nil, err
	}

	logger.Info("aggregate complete",
		zap.Int("pairs", len(result.Pairs)),
		zap.Int("points", grid.Len()),
	)
	return result, nil
}
