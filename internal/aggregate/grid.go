package aggregate

import (
	"time"

	"pairScope/internal/model"
)

const gridStep = time.Hour

// NewGrid builds the canonical hourly grid for a lookback window. The grid
// ends at 23:30 UTC of the day before now and spans lookbackDays+1 days, so
// it holds (lookbackDays+1)*24+1 instants.
func NewGrid(now time.Time, lookbackDays int) model.Grid {
	y, m, d := now.UTC().Add(-24 * time.Hour).Date()
	end := time.Date(y, m, d, 23, 30, 0, 0, time.UTC)
	start := end.Add(-time.Duration(lookbackDays+1) * 24 * time.Hour)

	times := make([]time.Time, 0, (lookbackDays+1)*24+1)
	for ts := start; !ts.After(end); ts = ts.Add(gridStep) {
		times = append(times, ts)
	}
	return model.Grid{Start: start, End: end, Step: gridStep, Times: times}
}
