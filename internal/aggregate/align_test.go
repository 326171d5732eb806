package aggregate

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"pairScope/internal/model"
)

var alignNow = time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

// hourly returns observations on the hour from start (inclusive) to end
// (exclusive).
func hourly(start, end time.Time, price, volume float64) []model.Observation {
	var out []model.Observation
	for ts := start; ts.Before(end); ts = ts.Add(time.Hour) {
		out = append(out, model.Observation{Timestamp: ts, Price: price, Volume: volume})
	}
	return out
}

func TestAlignForwardFillsAndConvertsVolume(t *testing.T) {
	grid := NewGrid(alignNow, 0)
	raw := hourly(time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC), time.Date(2024, 1, 3, 1, 0, 0, 0, time.UTC), 2, 10)
	raw[5].Price = 4

	got, err := Align("weth", raw, grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MarketID != "weth" || got.Len() != grid.Len() {
		t.Fatalf("unexpected series: %s len %d", got.MarketID, got.Len())
	}
	for i, p := range got.Points {
		if !p.Timestamp.Equal(grid.Times[i]) {
			t.Fatalf("point %d at %s, want %s", i, p.Timestamp, grid.Times[i])
		}
	}
	if got.Points[5].Price != 4 || got.Points[5].Volume != 2.5 {
		t.Fatalf("point 5 mismatch: %+v", got.Points[5])
	}
	if got.Points[6].Price != 2 || got.Points[6].Volume != 5 {
		t.Fatalf("point 6 mismatch: %+v", got.Points[6])
	}
}

func TestAlignDropsFinalObservation(t *testing.T) {
	grid := NewGrid(alignNow, 0)
	raw := hourly(grid.Start.Add(-30*time.Minute), grid.End, 1, 1)
	raw = append(raw, model.Observation{Timestamp: grid.End.Add(-15 * time.Minute), Price: 99, Volume: 99})

	got, err := Align("usd-coin", raw, grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last := got.Points[got.Len()-1]; last.Price != 1 {
		t.Fatalf("final observation leaked into grid: %+v", last)
	}
}

func TestAlignStartBeforeFirstObservation(t *testing.T) {
	grid := NewGrid(alignNow, 0)
	raw := hourly(grid.Start.Add(30*time.Minute), grid.End.Add(2*time.Hour), 1, 1)

	_, err := Align("late-coin", raw, grid)
	var alignErr *model.DataAlignmentError
	if !errors.As(err, &alignErr) {
		t.Fatalf("expected DataAlignmentError, got %v", err)
	}
	if alignErr.MarketID != "late-coin" || !alignErr.At.Equal(grid.Start) {
		t.Fatalf("unexpected error detail: %+v", alignErr)
	}
}

func TestAlignEmpty(t *testing.T) {
	grid := NewGrid(alignNow, 0)
	if _, err := Align("none", nil, grid); !errors.Is(err, model.ErrDataAlignment) {
		t.Fatalf("expected alignment error, got %v", err)
	}
}

func TestAlignZeroPrice(t *testing.T) {
	grid := NewGrid(alignNow, 0)
	raw := hourly(grid.Start.Add(-time.Hour), grid.End.Add(2*time.Hour), 1, 1)
	raw[3].Price = 0

	_, err := Align("broken", raw, grid)
	var alignErr *model.DataAlignmentError
	if !errors.As(err, &alignErr) {
		t.Fatalf("expected DataAlignmentError, got %v", err)
	}
	if !alignErr.At.Equal(grid.Times[2]) {
		t.Fatalf("expected failure at %s, got %s", grid.Times[2], alignErr.At)
	}
}

func TestResampleIdempotent(t *testing.T) {
	grid := NewGrid(alignNow, 1)
	raw := hourly(grid.Start.Add(-3*time.Hour), grid.End.Add(3*time.Hour), 0, 0)
	for i := range raw {
		raw[i].Timestamp = raw[i].Timestamp.Add(time.Duration(i%50) * time.Minute)
		raw[i].Price = float64(i + 1)
		raw[i].Volume = float64(i * 7)
	}

	once, err := Resample("x", raw, grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := Resample("x", Observations(once), grid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("resample is not idempotent")
	}
}
