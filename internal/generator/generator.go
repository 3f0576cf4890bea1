// Package generator turns catalog profiles into telemetry documents: per-metric reports,
// logs, traces, alerts, incident scenarios, period comparisons and window snapshots.
package generator

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rewired-gh/synthtel/internal/catalog"
	"github.com/rewired-gh/synthtel/internal/metrics"
	"github.com/rewired-gh/synthtel/internal/synth"
)

type Config struct {
	IntervalMinutes float64
	DefaultHours    int
	MaxHours        int
	MaxLogHours     int
	MaxTraces       int
}

func DefaultConfig() Config {
	return Config{
		IntervalMinutes: 5,
		DefaultHours:    24,
		MaxHours:        168,
		MaxLogHours:     24,
		MaxTraces:       500,
	}
}

// Option customizes a Generator.
type Option func(*Generator)

// WithClock replaces time.Now as the reference instant of generated data.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// Generator is safe for concurrent use when its Source is.
type Generator struct {
	catalog *catalog.Catalog
	src     synth.Source
	config  Config
	now     func() time.Time
}

// New creates a Generator. A nil src uses synth.DefaultSource and zero config fields
// fall back to DefaultConfig.
func New(cat *catalog.Catalog, src synth.Source, config Config, opts ...Option) *Generator {
	def := DefaultConfig()
	if config.IntervalMinutes <= 0 {
		config.IntervalMinutes = def.IntervalMinutes
	}
	if config.DefaultHours <= 0 {
		config.DefaultHours = def.DefaultHours
	}
	if config.MaxHours <= 0 {
		config.MaxHours = def.MaxHours
	}
	if config.MaxLogHours <= 0 {
		config.MaxLogHours = def.MaxLogHours
	}
	if config.MaxTraces <= 0 {
		config.MaxTraces = def.MaxTraces
	}
	if cat == nil {
		cat = catalog.Default()
	}
	if src == nil {
		src = synth.DefaultSource()
	}

	g := &Generator{
		catalog: cat,
		src:     src,
		config:  config,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Catalog returns the catalog the generator draws profiles from.
func (g *Generator) Catalog() *catalog.Catalog {
	return g.catalog
}

// Config returns the effective configuration.
func (g *Generator) Config() Config {
	return g.config
}

func (g *Generator) checkService(service string) error {
	if strings.TrimSpace(service) == "" {
		return fmt.Errorf("%w: service must not be empty", synth.ErrInvalidParameter)
	}
	return nil
}

func checkRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s must be in [%d, %d], got %d", synth.ErrInvalidParameter, name, lo, hi, v)
	}
	return nil
}

// series synthesizes the catalog profile of metric, optionally with its anomaly.
func (g *Generator) series(metric catalog.MetricKind, env catalog.Environment, hours int, withAnomaly bool, now time.Time) (synth.Series, catalog.Profile, error) {
	profile, err := g.catalog.Profile(metric, env)
	if err != nil {
		return nil, catalog.Profile{}, err
	}

	s, err := g.generate(string(metric), profile.Params(float64(hours), g.config.IntervalMinutes), now)
	if err != nil {
		return nil, catalog.Profile{}, fmt.Errorf("failed to generate %s: %w", metric, err)
	}

	if withAnomaly {
		if err := g.inject(s, profile.Anomaly); err != nil {
			return nil, catalog.Profile{}, fmt.Errorf("failed to inject %s anomaly: %w", metric, err)
		}
	}
	return s, profile, nil
}

func (g *Generator) generate(label string, p synth.Params, now time.Time) (synth.Series, error) {
	s, err := synth.Generate(p, now, g.src)
	if err != nil {
		return nil, err
	}
	metrics.PointsGeneratedTotal.WithLabelValues(label).Add(float64(len(s)))
	return s, nil
}

func (g *Generator) inject(s synth.Series, spec synth.AnomalySpec) error {
	if err := synth.InjectInPlace(s, spec); err != nil {
		return err
	}
	metrics.AnomaliesInjectedTotal.WithLabelValues(string(spec.Kind)).Inc()
	return nil
}

// uniform draws from [lo, hi).
func uniform(src synth.Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// between draws an integer from [lo, hi].
func between(src synth.Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}

// weighted picks an index with probability proportional to its weight.
func weighted(src synth.Source, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	r := src.Float64() * total
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}

func pick[T any](src synth.Source, items []T) T {
	return items[src.IntN(len(items))]
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
