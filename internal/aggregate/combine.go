package aggregate

import (
	"fmt"
	"math"
	"time"

	"pairScope/internal/model"
)

// Combine derives relative price and combined volume for every unordered
// pair (i, j), i < j, with i ascending in the outer loop and j in the inner.
// symbols, when given, labels each pair's base and quote and must match the
// series length.
func Combine(series []model.AlignedSeries, symbols []string) ([]model.PairSeries, error) {
	n := len(series)
	if symbols != nil && len(symbols) != n {
		return nil, fmt.Errorf("combine: %d symbols for %d series", len(symbols), n)
	}
	if n < 2 {
		return []model.PairSeries{}, nil
	}

	for k := 1; k < n; k++ {
		if err := sameGrid(series[0], series[k]); err != nil {
			return nil, err
		}
	}

	pairs := make([]model.PairSeries, 0, model.PairCount(n))
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			pair, err := combinePair(series[i], series[j])
			if err != nil {
				return nil, err
			}
			pair.I, pair.J = i, j
			if symbols != nil {
				pair.Base, pair.Quote = symbols[i], symbols[j]
			}
			pairs = append(pairs, pair)
		}
	}
	return pairs, nil
}

func combinePair(base, quote model.AlignedSeries) (model.PairSeries, error) {
	size := base.Len()
	pair := model.PairSeries{
		Timestamps:     make([]time.Time, size),
		RelativePrice:  make([]float64, size),
		CombinedVolume: make([]float64, size),
	}
	for t := 0; t < size; t++ {
		bp, qp := base.Points[t], quote.Points[t]
		if qp.Price == 0 || math.IsNaN(qp.Price) || math.IsInf(qp.Price, 0) {
			return model.PairSeries{}, &model.DataAlignmentError{
				MarketID: quote.MarketID,
				At:       qp.Timestamp,
				Reason:   "quote price is zero or not finite",
			}
		}
		pair.Timestamps[t] = bp.Timestamp
		pair.RelativePrice[t] = bp.Price / qp.Price
		pair.CombinedVolume[t] = bp.Volume + qp.Volume
	}
	return pair, nil
}

func sameGrid(a, b model.AlignedSeries) error {
	if a.Len() != b.Len() {
		return &model.DataAlignmentError{
			MarketID: b.MarketID,
			Reason:   fmt.Sprintf("series has %d points, expected %d", b.Len(), a.Len()),
		}
	}
	for t := range a.Points {
		if !a.Points[t].Timestamp.Equal(b.Points[t].Timestamp) {
			return &model.DataAlignmentError{
				MarketID: b.MarketID,
				At:       b.Points[t].Timestamp,
				Reason:   "series is not on the shared grid",
			}
		}
	}
	return nil
}
