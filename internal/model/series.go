package model

import "time"

// Observation is one raw provider sample, denominated in the quote currency.
type Observation struct {
	Timestamp time.Time
	Price     float64
	Volume    float64
}

// SeriesPoint is one slot of an aligned series. Volume is in asset units.
type SeriesPoint struct {
	Timestamp time.Time
	Price     float64
	Volume    float64
}

// AlignedSeries is a per-asset series resampled onto a Grid.
type AlignedSeries struct {
	MarketID string
	Points   []SeriesPoint
}

// Len returns the number of grid slots.
func (s AlignedSeries) Len() int {
	return len(s.Points)
}

// PairSeries holds the derived series for assets I and J, I < J.
type PairSeries struct {
	I              int         `json:"i"`
	J              int         `json:"j"`
	Base           string      `json:"base"`
	Quote          string      `json:"quote"`
	Timestamps     []time.Time `json:"timestamps"`
	RelativePrice  []float64   `json:"relative_price"`
	CombinedVolume []float64   `json:"combined_volume"`
}

// Grid is the canonical hourly timeline shared by every series of one call.
type Grid struct {
	Start time.Time
	End   time.Time
	Step  time.Duration
	Times []time.Time
}

// Len returns the number of grid instants.
func (g Grid) Len() int {
	return len(g.Times)
}
