package analysis

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestChangePct(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single point has no prior reference", []float64{100}, 0},
		{"up", []float64{100, 102}, 2},
		{"down", []float64{102, 100}, -100.0 / 51.0},
		{"flat", []float64{50, 50}, 0},
		{"uses last two points only", []float64{10, 20, 99, 100}, 100.0 / 99.0},
		{"zero previous close", []float64{0, 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChangePct(tt.closes)
			if !almostEqual(got, tt.want) {
				t.Errorf("ChangePct(%v) = %v, want %v", tt.closes, got, tt.want)
			}
		})
	}
}

func TestMovingAverage(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}

	avg, ok := MovingAverage(closes, 3)
	if !ok {
		t.Fatal("MovingAverage(len 5, window 3) should be available")
	}
	if !almostEqual(avg, 4) {
		t.Errorf("avg = %v, want 4 (trailing three closes)", avg)
	}

	if _, ok := MovingAverage(closes, 6); ok {
		t.Error("window longer than series must be unavailable")
	}
	if _, ok := MovingAverage(nil, 20); ok {
		t.Error("empty series must be unavailable")
	}
	if _, ok := MovingAverage(closes, 0); ok {
		t.Error("non-positive window must be unavailable")
	}
}

func TestMovingAverageGating(t *testing.T) {
	// A 45-point series yields a 20-day average but never a 60-day one.
	closes := make([]float64, 45)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	if _, ok := MovingAverage(closes, 20); !ok {
		t.Error("20-day average should be available for 45 points")
	}
	if _, ok := MovingAverage(closes, 60); ok {
		t.Error("60-day average must be unavailable for 45 points")
	}
}

func TestTrendSlice(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}

	got := TrendSlice(closes, 3)
	if len(got) != 3 || got[0] != 3 || got[2] != 5 {
		t.Errorf("TrendSlice = %v, want [3 4 5]", got)
	}

	got = TrendSlice(closes, 10)
	if len(got) != 5 {
		t.Errorf("short series should be returned whole, got %v", got)
	}
}
