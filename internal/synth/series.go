// Package synth builds synthetic metric series: a diurnal baseline with Gaussian noise,
// known-shape anomaly injection, and descriptive statistics over the result.
package synth

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// TimePoint is one sample of a Series.
type TimePoint struct {
	Timestamp time.Time
	Value     float64
}

// MarshalJSON renders the timestamp as RFC 3339 and rounds the value to 2 decimals.
// Values keep full precision in memory.
func (p TimePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Timestamp string  `json:"timestamp"`
		Value     float64 `json:"value"`
	}{
		Timestamp: p.Timestamp.Format(time.RFC3339Nano),
		Value:     Round2(p.Value),
	})
}

// Series is an ordered sequence of points, ascending in time.
type Series []TimePoint

// Values returns the sample values in chronological order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Clone returns an independent copy.
func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// Scale returns a copy with every value multiplied by factor.
func (s Series) Scale(factor float64) Series {
	out := s.Clone()
	for i := range out {
		out[i].Value *= factor
	}
	return out
}

// Params describes a baseline series.
type Params struct {
	DurationHours   float64 `json:"duration_hours"`
	IntervalMinutes float64 `json:"interval_minutes"`
	Baseline        float64 `json:"baseline"`
	NoiseStdDev     float64 `json:"noise_stddev"`
}

// Validate rejects non-finite fields, non-positive durations and intervals, and negative noise.
func (p Params) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"duration_hours", p.DurationHours},
		{"interval_minutes", p.IntervalMinutes},
		{"baseline", p.Baseline},
		{"noise_stddev", p.NoiseStdDev},
	} {
		if !finite(f.value) {
			return fmt.Errorf("%w: %s must be finite, got %g", ErrInvalidParameter, f.name, f.value)
		}
	}
	if p.DurationHours <= 0 {
		return fmt.Errorf("%w: duration_hours must be positive, got %g", ErrInvalidParameter, p.DurationHours)
	}
	if p.IntervalMinutes <= 0 {
		return fmt.Errorf("%w: interval_minutes must be positive, got %g", ErrInvalidParameter, p.IntervalMinutes)
	}
	if p.NoiseStdDev < 0 {
		return fmt.Errorf("%w: noise_stddev must not be negative, got %g", ErrInvalidParameter, p.NoiseStdDev)
	}
	return nil
}

// PointCount is floor(duration_hours*60/interval_minutes). A window that is a whole
// number of intervals up to float error (7 minutes as 7/60 hours) counts every interval.
func (p Params) PointCount() int {
	return int(math.Floor(p.DurationHours*60/p.IntervalMinutes + pointEpsilon))
}

const pointEpsilon = 1e-9

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DiurnalFactor is the day/night multiplier for t's local hour: 0.7 at 06:00, 1.0 at
// noon and midnight, 1.3 at 18:00.
func DiurnalFactor(t time.Time) float64 {
	return 1 + 0.3*math.Sin(float64(t.Hour()-12)*math.Pi/12)
}

// Generate builds a baseline series ending at now. Points are spaced IntervalMinutes
// apart, shaped by DiurnalFactor, perturbed by N(0, NoiseStdDev) drawn from src and
// floored at zero. A nil src falls back to DefaultSource.
func Generate(p Params, now time.Time, src Source) (Series, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	step := time.Duration(p.IntervalMinutes * float64(time.Minute))
	if step <= 0 {
		return nil, fmt.Errorf("%w: interval_minutes %g is below clock resolution", ErrInvalidParameter, p.IntervalMinutes)
	}
	if src == nil {
		src = DefaultSource()
	}

	if p.DurationHours*60/p.IntervalMinutes > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %g hours at %g minute intervals is too many points", ErrInvalidParameter, p.DurationHours, p.IntervalMinutes)
	}
	n := p.PointCount()
	series := make(Series, n)
	for i := 0; i < n; i++ {
		ts := now.Add(-time.Duration(n-1-i) * step)
		value := p.Baseline*DiurnalFactor(ts) + src.NormFloat64()*p.NoiseStdDev
		series[i] = TimePoint{Timestamp: ts, Value: math.Max(0, value)}
	}
	return series, nil
}

// Round2 rounds v to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
