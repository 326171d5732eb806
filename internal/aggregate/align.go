package aggregate

import (
	"math"

	"pairScope/internal/model"
)

// Align places a raw series on grid. The final raw observation is dropped
// because the provider reports it for the still-open interval. Remaining
// observations are forward-filled onto the grid and volume is converted from
// quote currency to asset units.
func Align(marketID string, raw []model.Observation, grid model.Grid) (model.AlignedSeries, error) {
	if len(raw) > 0 {
		raw = raw[:len(raw)-1]
	}

	points, err := Resample(marketID, raw, grid)
	if err != nil {
		return model.AlignedSeries{}, err
	}

	for i := range points {
		price := points[i].Price
		if !(price > 0) || math.IsInf(price, 0) {
			return model.AlignedSeries{}, &model.DataAlignmentError{
				MarketID: marketID,
				At:       points[i].Timestamp,
				Reason:   "price must be positive to convert volume",
			}
		}
		points[i].Volume /= price
	}
	return model.AlignedSeries{MarketID: marketID, Points: points}, nil
}

// Resample forward-fills raw onto grid: each grid instant takes the latest
// observation at or before it. raw must be sorted by timestamp. Resampling a
// series that already sits on grid returns it unchanged.
func Resample(marketID string, raw []model.Observation, grid model.Grid) ([]model.SeriesPoint, error) {
	points := make([]model.SeriesPoint, 0, grid.Len())
	next := 0
	for _, ts := range grid.Times {
		for next < len(raw) && !raw[next].Timestamp.After(ts) {
			next++
		}
		if next == 0 {
			return nil, &model.DataAlignmentError{
				MarketID: marketID,
				At:       ts,
				Reason:   "no observation at or before grid instant",
			}
		}
		src := raw[next-1]
		points = append(points, model.SeriesPoint{Timestamp: ts, Price: src.Price, Volume: src.Volume})
	}
	return points, nil
}

// Observations converts aligned points back to observations, so an aligned
// series can be resampled again.
func Observations(points []model.SeriesPoint) []model.Observation {
	out := make([]model.Observation, len(points))
	for i, p := range points {
		out[i] = model.Observation(p)
	}
	return out
}
