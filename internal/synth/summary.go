package synth

import (
	"fmt"
	"math"
	"slices"
)

// Summary holds descriptive statistics of a Series, rounded to 2 decimals.
type Summary struct {
	Min                   float64 `json:"min"`
	Max                   float64 `json:"max"`
	Mean                  float64 `json:"mean"`
	Median                float64 `json:"median"`
	P95                   float64 `json:"p95"`
	P99                   float64 `json:"p99"`
	StdDev                float64 `json:"std_dev"`
	DeltaVsPreviousPeriod float64 `json:"delta_vs_previous_period"`
}

// Summarize computes the Summary of series. It fails with ErrEmptySeries on zero points.
func Summarize(series Series) (Summary, error) {
	if len(series) == 0 {
		return Summary{}, fmt.Errorf("%w: cannot summarize zero points", ErrEmptySeries)
	}

	values := series.Values()
	var acc welford
	for _, v := range values {
		acc.add(v)
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return Summary{
		Min:                   Round2(sorted[0]),
		Max:                   Round2(sorted[len(sorted)-1]),
		Mean:                  Round2(acc.mean),
		Median:                Round2(Percentile(sorted, 0.5)),
		P95:                   Round2(Percentile(sorted, 0.95)),
		P99:                   Round2(Percentile(sorted, 0.99)),
		StdDev:                Round2(acc.stdDev()),
		DeltaVsPreviousPeriod: Round2(TrendDelta(values)),
	}, nil
}

// Percentile interpolates linearly between closest ranks at (n-1)*q.
// sorted must be ascending and non-empty.
func Percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := q * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	w := rank - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// TrendDelta is the percent change from the mean of the first half of values to the
// mean of the second half, split at floor(n/2). It is 0 when the first half has a
// non-positive mean or is empty.
func TrendDelta(values []float64) float64 {
	mid := len(values) / 2
	if mid == 0 {
		return 0
	}
	previous := mean(values[:mid])
	current := mean(values[mid:])
	if previous <= 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
