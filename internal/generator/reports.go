package generator

import (
	"fmt"
	"strings"

	"github.com/rewired-gh/synthtel/internal/catalog"
	"github.com/rewired-gh/synthtel/internal/models"
	"github.com/rewired-gh/synthtel/internal/synth"
)

// ReportKind selects a metric report shape.
type ReportKind string

const (
	ReportCPU         ReportKind = "cpu"
	ReportMemory      ReportKind = "memory"
	ReportRequestRate ReportKind = "request_rate"
	ReportErrorRate   ReportKind = "error_rate"
	ReportLatency     ReportKind = "latency"
)

func ReportKinds() []ReportKind {
	return []ReportKind{ReportCPU, ReportMemory, ReportRequestRate, ReportErrorRate, ReportLatency}
}

var reportAliases = map[string]ReportKind{
	string(catalog.CPUUsage):    ReportCPU,
	string(catalog.MemoryUsage): ReportMemory,
	string(catalog.RequestRate): ReportRequestRate,
	string(catalog.ErrorRate):   ReportErrorRate,
	string(catalog.LatencyP50):  ReportLatency,
	string(catalog.LatencyP95):  ReportLatency,
	string(catalog.LatencyP99):  ReportLatency,
}

// ParseReportKind accepts a report kind or any catalog metric name.
func ParseReportKind(s string) (ReportKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range ReportKinds() {
		if string(k) == name {
			return k, nil
		}
	}
	if k, ok := reportAliases[name]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: metric %q", synth.ErrUnsupportedVariant, s)
}

// Metric builds the report of the given kind. The report is nil whenever err is not.
func (g *Generator) Metric(kind ReportKind, service string, env catalog.Environment, hours int, withAnomaly bool) (models.MetricReport, error) {
	var (
		report models.MetricReport
		err    error
	)
	switch kind {
	case ReportCPU:
		var r *models.CPUReport
		r, err = g.CPU(service, env, hours, withAnomaly)
		report = r
	case ReportLatency:
		var r *models.LatencyReport
		r, err = g.Latency(service, env, hours, withAnomaly)
		report = r
	case ReportMemory, ReportRequestRate, ReportErrorRate:
		var r *models.SeriesReport
		r, err = g.single(singleMetrics[kind], service, env, hours, withAnomaly)
		report = r
	default:
		return nil, fmt.Errorf("%w: metric %q", synth.ErrUnsupportedVariant, kind)
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

var singleMetrics = map[ReportKind]catalog.MetricKind{
	ReportMemory:      catalog.MemoryUsage,
	ReportRequestRate: catalog.RequestRate,
	ReportErrorRate:   catalog.ErrorRate,
}

func (g *Generator) checkReport(service string, hours int) error {
	if err := g.checkService(service); err != nil {
		return err
	}
	return checkRange("hours", hours, 1, g.config.MaxHours)
}

// CPU returns the aggregated CPU series and one series per pod. Pods run at
// baseline × U(0.8, 1.2) with noise 3 and never carry the anomaly.
func (g *Generator) CPU(service string, env catalog.Environment, hours int, withAnomaly bool) (*models.CPUReport, error) {
	if err := g.checkReport(service, hours); err != nil {
		return nil, err
	}
	now := g.now()

	aggregated, profile, err := g.series(catalog.CPUUsage, env, hours, withAnomaly, now)
	if err != nil {
		return nil, err
	}
	stats, err := synth.Summarize(aggregated)
	if err != nil {
		return nil, err
	}

	pods := make(map[string]synth.Series, g.catalog.Pods(env))
	for i := 0; i < g.catalog.Pods(env); i++ {
		params := synth.Params{
			DurationHours:   float64(hours),
			IntervalMinutes: g.config.IntervalMinutes,
			Baseline:        profile.Baseline * uniform(g.src, 0.8, 1.2),
			NoiseStdDev:     podNoise,
		}
		s, err := g.generate(string(catalog.CPUUsage), params, now)
		if err != nil {
			return nil, fmt.Errorf("failed to generate pod series: %w", err)
		}
		pods[catalog.PodName(service, i)] = s
	}

	return &models.CPUReport{
		Header:     header(service, env, catalog.CPUUsage, profile.Unit),
		Aggregated: aggregated,
		Pods:       pods,
		Statistics: stats,
	}, nil
}

const (
	podNoise  = 3
	maxPoints = 50000
)

func (g *Generator) Memory(service string, env catalog.Environment, hours int, withAnomaly bool) (*models.SeriesReport, error) {
	return g.single(catalog.MemoryUsage, service, env, hours, withAnomaly)
}

func (g *Generator) RequestRate(service string, env catalog.Environment, hours int, withAnomaly bool) (*models.SeriesReport, error) {
	return g.single(catalog.RequestRate, service, env, hours, withAnomaly)
}

func (g *Generator) ErrorRate(service string, env catalog.Environment, hours int, withAnomaly bool) (*models.SeriesReport, error) {
	return g.single(catalog.ErrorRate, service, env, hours, withAnomaly)
}

func (g *Generator) single(metric catalog.MetricKind, service string, env catalog.Environment, hours int, withAnomaly bool) (*models.SeriesReport, error) {
	if err := g.checkReport(service, hours); err != nil {
		return nil, err
	}
	s, profile, err := g.series(metric, env, hours, withAnomaly, g.now())
	if err != nil {
		return nil, err
	}
	stats, err := synth.Summarize(s)
	if err != nil {
		return nil, err
	}
	return &models.SeriesReport{
		Header:     header(service, env, metric, profile.Unit),
		Data:       s,
		Statistics: stats,
	}, nil
}

// Latency returns p50, p95 and p99 series sharing one set of timestamps.
func (g *Generator) Latency(service string, env catalog.Environment, hours int, withAnomaly bool) (*models.LatencyReport, error) {
	if err := g.checkReport(service, hours); err != nil {
		return nil, err
	}
	now := g.now()

	kinds := []catalog.MetricKind{catalog.LatencyP50, catalog.LatencyP95, catalog.LatencyP99}
	series := make([]synth.Series, len(kinds))
	stats := make([]synth.Summary, len(kinds))
	var unit string
	for i, kind := range kinds {
		s, profile, err := g.series(kind, env, hours, withAnomaly, now)
		if err != nil {
			return nil, err
		}
		if stats[i], err = synth.Summarize(s); err != nil {
			return nil, err
		}
		series[i] = s
		unit = profile.Unit
	}

	return &models.LatencyReport{
		Header: header(service, env, "latency", unit),
		P50:    series[0],
		P95:    series[1],
		P99:    series[2],
		Statistics: models.LatencyStatistics{
			P50: stats[0],
			P95: stats[1],
			P99: stats[2],
		},
	}, nil
}

func header(service string, env catalog.Environment, metric catalog.MetricKind, unit string) models.Header {
	return models.Header{
		Service:     service,
		Environment: string(env),
		Metric:      string(metric),
		Unit:        unit,
	}
}

// Series synthesizes a series from raw parameters, optionally injecting one anomaly.
func (g *Generator) Series(params synth.Params, anomaly *synth.AnomalySpec) (*models.RawSeriesReport, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.DurationHours > float64(g.config.MaxHours) {
		return nil, fmt.Errorf("%w: duration_hours must be at most %d, got %g", synth.ErrInvalidParameter, g.config.MaxHours, params.DurationHours)
	}
	if n := params.PointCount(); n < 1 || n > maxPoints {
		return nil, fmt.Errorf("%w: window yields %d points, want 1 to %d", synth.ErrInvalidParameter, n, maxPoints)
	}
	s, err := g.generate("custom", params, g.now())
	if err != nil {
		return nil, err
	}
	if anomaly != nil {
		if err := g.inject(s, *anomaly); err != nil {
			return nil, err
		}
	}
	stats, err := synth.Summarize(s)
	if err != nil {
		return nil, err
	}
	return &models.RawSeriesReport{
		Params:     params,
		Anomaly:    anomaly,
		Data:       s,
		Statistics: stats,
	}, nil
}
