package models

import "time"

// Scenario bundles correlated telemetry describing one fabricated incident.
type Scenario struct {
	ID                 string         `json:"scenario_id"`
	Kind               string         `json:"scenario"`
	Service            string         `json:"service"`
	Environment        string         `json:"environment"`
	GeneratedAt        time.Time      `json:"generated_at"`
	Description        string         `json:"description"`
	CPU                *CPUReport     `json:"cpu"`
	Latency            *LatencyReport `json:"latency"`
	Memory             *SeriesReport  `json:"memory"`
	ErrorRate          *SeriesReport  `json:"error_rate"`
	RequestRate        *SeriesReport  `json:"request_rate,omitempty"`
	Logs               []LogEntry     `json:"logs"`
	Traces             []Trace        `json:"traces"`
	Alerts             []Alert        `json:"alerts"`
	RootCause          string         `json:"root_cause"`
	RecommendedActions []string       `json:"recommended_actions"`
}

// Reports returns the metric reports of the scenario in display order.
func (s *Scenario) Reports() []MetricReport {
	reports := []MetricReport{s.CPU, s.Latency, s.Memory, s.ErrorRate}
	if s.RequestRate != nil {
		reports = append(reports, s.RequestRate)
	}
	return reports
}

// Trend labels of a comparison.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// ComparisonSummary describes how the current period differs from the past one.
type ComparisonSummary struct {
	SignificantChange bool    `json:"significant_change"`
	Trend             string  `json:"trend"`
	ChangePercent     float64 `json:"change_percent"`
	Explanation       string  `json:"explanation"`
}

// Comparison puts an anomalous current period next to a clean past period.
type Comparison struct {
	Service           string            `json:"service"`
	Environment       string            `json:"environment"`
	MetricType        string            `json:"metric_type"`
	CurrentPeriod     MetricReport      `json:"current_period"`
	PastPeriod        MetricReport      `json:"past_period"`
	ComparisonSummary ComparisonSummary `json:"comparison_summary"`
}
