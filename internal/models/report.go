// Package models defines the telemetry documents handed to callers: metric reports,
// logs, traces, alerts, incident scenarios and period comparisons.
package models

import (
	"time"

	"github.com/rewired-gh/synthtel/internal/synth"
)

// MetricReport is implemented by every per-metric document. The concrete type decides
// the JSON shape: SeriesReport carries "data", CPUReport "aggregated" and "pods",
// LatencyReport "p50", "p95" and "p99".
type MetricReport interface {
	MetricName() string
	// Primary is the series a report is compared and summarized by.
	Primary() synth.Series
	PrimaryStatistics() synth.Summary
}

// Header is shared by all metric reports.
type Header struct {
	Service     string `json:"service"`
	Environment string `json:"environment"`
	Metric      string `json:"metric"`
	Unit        string `json:"unit"`
}

// MetricName returns the metric identifier of the report.
func (h Header) MetricName() string { return h.Metric }

// SeriesReport is a single-series metric (memory, request rate, error rate).
type SeriesReport struct {
	Header
	Data       synth.Series  `json:"data"`
	Statistics synth.Summary `json:"statistics"`
}

func (r *SeriesReport) Primary() synth.Series            { return r.Data }
func (r *SeriesReport) PrimaryStatistics() synth.Summary { return r.Statistics }

// CPUReport is the service-wide CPU series plus one series per pod.
type CPUReport struct {
	Header
	Aggregated synth.Series            `json:"aggregated"`
	Pods       map[string]synth.Series `json:"pods"`
	Statistics synth.Summary           `json:"statistics"`
}

func (r *CPUReport) Primary() synth.Series            { return r.Aggregated }
func (r *CPUReport) PrimaryStatistics() synth.Summary { return r.Statistics }

// LatencyStatistics summarizes each latency percentile series.
type LatencyStatistics struct {
	P50 synth.Summary `json:"p50"`
	P95 synth.Summary `json:"p95"`
	P99 synth.Summary `json:"p99"`
}

// LatencyReport carries the p50, p95 and p99 latency series.
type LatencyReport struct {
	Header
	P50        synth.Series      `json:"p50"`
	P95        synth.Series      `json:"p95"`
	P99        synth.Series      `json:"p99"`
	Statistics LatencyStatistics `json:"statistics"`
}

// Primary is the p95 series, the percentile most dashboards alert on.
func (r *LatencyReport) Primary() synth.Series            { return r.P95 }
func (r *LatencyReport) PrimaryStatistics() synth.Summary { return r.Statistics.P95 }

// RawSeriesReport is the direct output of the synthesizer for ad-hoc parameters.
type RawSeriesReport struct {
	Params     synth.Params       `json:"params"`
	Anomaly    *synth.AnomalySpec `json:"anomaly,omitempty"`
	Data       synth.Series       `json:"data"`
	Statistics synth.Summary      `json:"statistics"`
}

// WindowPoint is one minute of a compact multi-metric snapshot.
type WindowPoint struct {
	Timestamp       time.Time `json:"timestamp"`
	CPUPercent      float64   `json:"cpu_percent"`
	MemoryPercent   float64   `json:"memory_percent"`
	LatencyMsP50    float64   `json:"latency_ms_p50"`
	LatencyMsP95    float64   `json:"latency_ms_p95"`
	ErrorRatePerMin float64   `json:"error_rate_per_min"`
}

// WindowReport is a short per-minute snapshot of one service.
type WindowReport struct {
	Service       string        `json:"service"`
	Env           string        `json:"env"`
	WindowMinutes int           `json:"window_minutes"`
	Points        []WindowPoint `json:"points"`
}
