// Package report renders aggregation results as console tables.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/olekukonko/tablewriter"

	"pairScope/internal/model"
)

const timeLayout = "2006-01-02 15:04"

// Summary writes one row per pair with the range and mean of the relative
// price and the mean combined volume.
func Summary(w io.Writer, runID, vsCurrency string, grid model.Grid, pairs []model.PairSeries) error {
	fmt.Fprintf(w, "run %s | %s | %d points %s .. %s UTC\n",
		runID, vsCurrency, grid.Len(), grid.Start.Format(timeLayout), grid.End.Format(timeLayout))

	table := tablewriter.NewWriter(w)
	table.Header("#", "Pair", "Last", "Min", "Max", "Mean", "Avg Volume")
	for k, p := range pairs {
		stats := describe(p.RelativePrice)
		volume := describe(p.CombinedVolume)
		if err := table.Append(
			fmt.Sprintf("%d", k+1),
			pairLabel(p),
			formatFloat(stats.last),
			formatFloat(stats.min),
			formatFloat(stats.max),
			formatFloat(stats.mean),
			formatFloat(volume.mean),
		); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}

// Pair writes the full series of one pair, one row per grid instant.
func Pair(w io.Writer, pair model.PairSeries) error {
	fmt.Fprintf(w, "%s\n", pairLabel(pair))

	table := tablewriter.NewWriter(w)
	table.Header("Time (UTC)", "Relative Price", "Combined Volume")
	for t, ts := range pair.Timestamps {
		if err := table.Append(
			ts.UTC().Format(timeLayout),
			formatFloat(pair.RelativePrice[t]),
			formatFloat(pair.CombinedVolume[t]),
		); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render pair: %w", err)
	}
	return nil
}

func pairLabel(p model.PairSeries) string {
	if p.Base == "" && p.Quote == "" {
		return fmt.Sprintf("%d/%d", p.I, p.J)
	}
	return p.Base + "/" + p.Quote
}

type stats struct {
	last, min, max, mean float64
}

func describe(values []float64) stats {
	if len(values) == 0 {
		return stats{last: math.NaN(), min: math.NaN(), max: math.NaN(), mean: math.NaN()}
	}
	s := stats{last: values[len(values)-1], min: values[0], max: values[0]}
	var sum float64
	for _, v := range values {
		s.min = math.Min(s.min, v)
		s.max = math.Max(s.max, v)
		sum += v
	}
	s.mean = sum / float64(len(values))
	return s
}

func formatFloat(v float64) string {
	switch abs := math.Abs(v); {
	case math.IsNaN(v):
		return "-"
	case abs >= 1000:
		return fmt.Sprintf("%.2f", v)
	case abs >= 1:
		return fmt.Sprintf("%.4f", v)
	default:
		return fmt.Sprintf("%.8f", v)
	}
}
