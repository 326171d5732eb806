// Package series retrieves raw price and volume observations per market.
package series

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"pairScope/internal/batch"
	"pairScope/internal/model"
)

// lookbackHeadroom is added to the requested lookback so alignment, which
// needs lookbackDays+1 days plus forward-fill history, always has data.
const lookbackHeadroom = 3

// ChartSource is the subset of the provider client the fetcher needs.
type ChartSource interface {
	MarketChart(ctx context.Context, marketID, vsCurrency string, days int) (*model.MarketChart, error)
}

type Fetcher struct {
	source ChartSource
	logger *zap.Logger
}

func NewFetcher(source ChartSource, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{source: source, logger: logger}
}

// RequestDays is the number of days actually requested for a lookback.
func RequestDays(lookbackDays int) int {
	return lookbackDays + lookbackHeadroom
}

// FetchRawSeries returns the observations of one market, sorted by time.
func (f *Fetcher) FetchRawSeries(ctx context.Context, marketID, vsCurrency string, lookbackDays int) ([]model.Observation, error) {
	if lookbackDays < 0 {
		return nil, &model.ConfigurationError{Setting: "lookback days", Value: fmt.Sprint(lookbackDays), Reason: "must be >= 0"}
	}

	chart, err := f.source.MarketChart(ctx, marketID, vsCurrency, RequestDays(lookbackDays))
	if err != nil {
		var upstream *model.UpstreamError
		if errors.As(err, &upstream) && upstream.StatusCode == http.StatusNotFound {
			return nil, &model.NotFoundError{Kind: "market_id", Key: marketID, Err: err}
		}
		return nil, err
	}

	observations := Merge(chart)
	f.logger.Debug("fetched series",
		zap.String("market_id", marketID),
		zap.Int("prices", len(chart.Prices)),
		zap.Int("volumes", len(chart.Volumes)),
		zap.Int("observations", len(observations)),
	)
	return observations, nil
}

// FetchAll fetches every market concurrently. Output order matches input.
func (f *Fetcher) FetchAll(ctx context.Context, marketIDs []string, vsCurrency string, lookbackDays int) ([][]model.Observation, error) {
	return batch.Map(ctx, marketIDs, func(ctx context.Context, _ int, id string) ([]model.Observation, error) {
		obs, err := f.FetchRawSeries(ctx, id, vsCurrency, lookbackDays)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", id, err)
		}
		return obs, nil
	})
}

// Merge joins the price and volume arrays on exact timestamp. Timestamps
// present in only one array are dropped; duplicates keep the last sample.
func Merge(chart *model.MarketChart) []model.Observation {
	if chart == nil {
		return nil
	}

	volumes := make(map[int64]float64, len(chart.Volumes))
	for _, v := range chart.Volumes {
		volumes[v.TimestampMs] = v.Value
	}

	byTs := make(map[int64]model.Observation, len(chart.Prices))
	for _, p := range chart.Prices {
		vol, ok := volumes[p.TimestampMs]
		if !ok {
			continue
		}
		byTs[p.TimestampMs] = model.Observation{
			Timestamp: time.UnixMilli(p.TimestampMs).UTC(),
			Price:     p.Value,
			Volume:    vol,
		}
	}

	observations := make([]model.Observation, 0, len(byTs))
	for _, obs := range byTs {
		observations = append(observations, obs)
	}
	sort.Slice(observations, func(i, j int) bool {
		return observations[i].Timestamp.Before(observations[j].Timestamp)
	})
	return observations
}
