package synth

import (
	"fmt"
	"math"
	"strings"
)

// AnomalyKind names an injectable anomaly shape.
type AnomalyKind string

const (
	// Spike jumps to magnitude× and decays exponentially back toward the original value.
	Spike AnomalyKind = "spike"
	// Gradual ramps linearly to magnitude× over the first half of the window, then holds.
	Gradual AnomalyKind = "gradual"
	// Drop cuts the value to 30% for the whole window regardless of magnitude.
	Drop AnomalyKind = "drop"
)

// dropFactor is the constant multiplier of a Drop.
const dropFactor = 0.3

// AnomalyKinds lists the supported kinds in a stable order.
func AnomalyKinds() []AnomalyKind {
	return []AnomalyKind{Spike, Gradual, Drop}
}

// ParseAnomalyKind maps a case-insensitive name to an AnomalyKind.
func ParseAnomalyKind(s string) (AnomalyKind, error) {
	k := AnomalyKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: anomaly kind %q", ErrUnsupportedVariant, s)
	}
	return k, nil
}

// Valid reports whether k is one of the supported kinds.
func (k AnomalyKind) Valid() bool {
	switch k {
	case Spike, Gradual, Drop:
		return true
	}
	return false
}

// AnomalySpec places one anomaly inside a series, in fractions of its length.
type AnomalySpec struct {
	Kind             AnomalyKind `json:"kind"`
	StartFraction    float64     `json:"start_fraction"`
	DurationFraction float64     `json:"duration_fraction"`
	Magnitude        float64     `json:"magnitude"`
}

// Validate checks the kind and that StartFraction is in [0,1] and DurationFraction in (0,1].
func (s AnomalySpec) Validate() error {
	if !s.Kind.Valid() {
		return fmt.Errorf("%w: anomaly kind %q", ErrUnsupportedVariant, s.Kind)
	}
	if s.StartFraction < 0 || s.StartFraction > 1 || math.IsNaN(s.StartFraction) {
		return fmt.Errorf("%w: start_fraction must be in [0,1], got %g", ErrInvalidParameter, s.StartFraction)
	}
	if s.DurationFraction <= 0 || s.DurationFraction > 1 || math.IsNaN(s.DurationFraction) {
		return fmt.Errorf("%w: duration_fraction must be in (0,1], got %g", ErrInvalidParameter, s.DurationFraction)
	}
	if !finite(s.Magnitude) {
		return fmt.Errorf("%w: magnitude must be finite, got %g", ErrInvalidParameter, s.Magnitude)
	}
	return nil
}

// Window returns the affected index range [start, end) for a series of length n
// together with the nominal window length used by the shape functions.
func (s AnomalySpec) Window(n int) (start, end, length int) {
	start = int(math.Floor(float64(n) * s.StartFraction))
	length = int(math.Floor(float64(n) * s.DurationFraction))
	end = min(start+length, n)
	if start > end {
		start = end
	}
	return start, end, length
}

// Factor is the multiplier applied to the point at offset k of a window of the given length.
func Factor(kind AnomalyKind, k, length int, magnitude float64) float64 {
	if length < 1 {
		return 1
	}
	switch kind {
	case Spike:
		return magnitude * math.Exp(-float64(k)/(float64(length)/3))
	case Gradual:
		progress := float64(k) / float64(length)
		return 1 + (magnitude-1)*math.Min(progress*2, 1)
	case Drop:
		return dropFactor
	}
	return 1
}

// Inject returns a copy of series with the anomaly applied. The input is left untouched.
func Inject(series Series, spec AnomalySpec) (Series, error) {
	out := series.Clone()
	if err := InjectInPlace(out, spec); err != nil {
		return nil, err
	}
	return out, nil
}

// InjectInPlace multiplies the values inside the anomaly window of series.
// An empty window is a no-op. Repeated calls compose multiplicatively.
func InjectInPlace(series Series, spec AnomalySpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	start, end, length := spec.Window(len(series))
	if length < 1 {
		return nil
	}
	for i := start; i < end; i++ {
		series[i].Value *= Factor(spec.Kind, i-start, length, spec.Magnitude)
	}
	return nil
}
