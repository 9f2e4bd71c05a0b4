// Package analysis computes derived figures from a chronological close-price
// series. All functions are pure; short series degrade gracefully instead of
// returning errors.
package analysis

// ChangePct returns the period-over-period change of the last close in
// percent. A series with fewer than two points has no prior reference and
// reports 0.
func ChangePct(closes []float64) float64 {
	if len(closes) < 2 {
		return 0
	}
	prev := closes[len(closes)-2]
	if prev == 0 {
		return 0
	}
	return (closes[len(closes)-1] - prev) / prev * 100
}

// MovingAverage returns the arithmetic mean of the trailing window closes.
// ok is false when the series is shorter than the window; the average is then
// unavailable, never zero or extrapolated.
func MovingAverage(closes []float64, window int) (avg float64, ok bool) {
	if window <= 0 || len(closes) < window {
		return 0, false
	}
	sum := 0.0
	for _, c := range closes[len(closes)-window:] {
		sum += c
	}
	return sum / float64(window), true
}

// TrendSlice returns the most recent n closes, or the whole series when it is
// shorter. The result aliases the input; rows copy it on assembly.
func TrendSlice(closes []float64, n int) []float64 {
	if len(closes) <= n {
		return closes
	}
	return closes[len(closes)-n:]
}
