package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rewired-gh/synthtel/internal/synth"
)

func strPtr(s string) *string { return &s }

func TestTraceValidate(t *testing.T) {
	now := time.Now()
	valid := func() Trace {
		return Trace{
			TraceID:     "trace-123456",
			RootService: "api-gateway",
			SpanCount:   2,
			Spans: []Span{
				{TraceID: "trace-123456", SpanID: "span-0-0", StartTime: now, DurationMs: 120},
				{TraceID: "trace-123456", SpanID: "span-0-1", ParentSpanID: strPtr("span-0-0"), StartTime: now, DurationMs: 30},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Trace)
		wantErr bool
	}{
		{"valid trace", func(*Trace) {}, false},
		{"empty ID", func(tr *Trace) { tr.TraceID = "" }, true},
		{"span count mismatch", func(tr *Trace) { tr.SpanCount = 3 }, true},
		{"root has parent", func(tr *Trace) { tr.Spans[0].ParentSpanID = strPtr("x") }, true},
		{"orphan child", func(tr *Trace) { tr.Spans[1].ParentSpanID = strPtr("span-9-9") }, true},
		{"foreign span", func(tr *Trace) { tr.Spans[1].TraceID = "trace-000000" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := valid()
			tt.mutate(&tr)
			err := tr.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Trace.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAlertValidate(t *testing.T) {
	fired := time.Now().Add(-time.Hour)
	resolved := fired.Add(10 * time.Minute)
	minutes := 10

	tests := []struct {
		name    string
		alert   Alert
		wantErr bool
	}{
		{
			name: "resolved alert",
			alert: Alert{AlertID: "alert-12345", AlertName: "HighLatency", Severity: SeverityCritical,
				FiredAt: fired, ResolvedAt: &resolved, DurationMinutes: &minutes, Status: AlertResolved},
		},
		{
			name:  "firing alert",
			alert: Alert{AlertID: "alert-12345", AlertName: "HighCPUUsage", Severity: SeverityWarning, FiredAt: fired, Status: AlertFiring},
		},
		{
			name:    "resolved without timestamp",
			alert:   Alert{AlertID: "alert-1", AlertName: "x", Severity: SeverityWarning, FiredAt: fired, Status: AlertResolved},
			wantErr: true,
		},
		{
			name:    "unknown severity",
			alert:   Alert{AlertID: "alert-1", AlertName: "x", Severity: "page", FiredAt: fired, Status: AlertFiring},
			wantErr: true,
		},
		{
			name:    "empty ID",
			alert:   Alert{AlertName: "x", Severity: SeverityWarning, Status: AlertFiring},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.alert.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Alert.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReportJSONShapes(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	series := synth.Series{{Timestamp: ts, Value: 1.234}}

	tests := []struct {
		name   string
		report MetricReport
		keys   []string
	}{
		{"series", &SeriesReport{Header: Header{Metric: "memory_usage"}, Data: series}, []string{`"data"`, `"statistics"`, `"unit"`}},
		{"cpu", &CPUReport{Header: Header{Metric: "cpu_usage"}, Aggregated: series, Pods: map[string]synth.Series{"a-00": series}}, []string{`"aggregated"`, `"pods"`, `"a-00"`}},
		{"latency", &LatencyReport{Header: Header{Metric: "latency"}, P50: series, P95: series, P99: series}, []string{`"p50"`, `"p95"`, `"p99"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.report)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			for _, k := range tt.keys {
				if !strings.Contains(string(raw), k) {
					t.Errorf("Expected %s in %s", k, raw)
				}
			}
			if !strings.Contains(string(raw), `"value":1.23`) {
				t.Errorf("Expected rounded value in %s", raw)
			}
			if tt.report.Primary()[0].Value != 1.234 {
				t.Error("Primary should keep full precision")
			}
		})
	}
}

func TestScenarioReports(t *testing.T) {
	s := Scenario{CPU: &CPUReport{}, Latency: &LatencyReport{}, Memory: &SeriesReport{}, ErrorRate: &SeriesReport{}}
	if got := len(s.Reports()); got != 4 {
		t.Errorf("Expected 4 reports, got %d", got)
	}
	s.RequestRate = &SeriesReport{}
	if got := len(s.Reports()); got != 5 {
		t.Errorf("Expected 5 reports, got %d", got)
	}
}
