package synth

import "errors"

var (
	// ErrInvalidParameter reports a non-positive duration, interval or window size.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrEmptySeries reports a summary requested over zero points.
	ErrEmptySeries = errors.New("empty series")
	// ErrUnsupportedVariant reports an unknown anomaly kind, metric type, environment or scenario.
	ErrUnsupportedVariant = errors.New("unsupported variant")
)
