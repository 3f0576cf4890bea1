package models

import (
	"errors"
	"fmt"
	"time"
)

// Log levels.
const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// LogEntry is one structured application log line.
type LogEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Level       string    `json:"level"`
	TraceID     string    `json:"trace_id"`
	SpanID      string    `json:"span_id"`
	Pod         string    `json:"pod"`
	Message     string    `json:"message"`
	StackTrace  string    `json:"stack_trace,omitempty"`
}

// Span statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Span is one timed operation of a trace. ParentSpanID is nil for the root.
type Span struct {
	TraceID      string    `json:"trace_id"`
	SpanID       string    `json:"span_id"`
	ParentSpanID *string   `json:"parent_span_id"`
	Service      string    `json:"service"`
	Operation    string    `json:"operation"`
	StartTime    time.Time `json:"start_time"`
	DurationMs   int       `json:"duration_ms"`
	Status       string    `json:"status"`
}

// Trace is a root span with its direct children.
type Trace struct {
	TraceID         string `json:"trace_id"`
	RootService     string `json:"root_service"`
	Environment     string `json:"environment"`
	TotalDurationMs int    `json:"total_duration_ms"`
	SpanCount       int    `json:"span_count"`
	Spans           []Span `json:"spans"`
}

// Validate checks the span tree: one root first, every child pointing at it.
func (t *Trace) Validate() error {
	if t.TraceID == "" {
		return errors.New("trace ID must not be empty")
	}
	if len(t.Spans) == 0 {
		return errors.New("trace must have at least one span")
	}
	if t.SpanCount != len(t.Spans) {
		return fmt.Errorf("span count %d does not match %d spans", t.SpanCount, len(t.Spans))
	}
	root := t.Spans[0]
	if root.ParentSpanID != nil {
		return errors.New("first span must be the root")
	}
	for _, s := range t.Spans {
		if s.TraceID != t.TraceID {
			return fmt.Errorf("span %s belongs to trace %s", s.SpanID, s.TraceID)
		}
		if s.DurationMs < 0 {
			return fmt.Errorf("span %s has negative duration", s.SpanID)
		}
	}
	for _, s := range t.Spans[1:] {
		if s.ParentSpanID == nil || *s.ParentSpanID != root.SpanID {
			return fmt.Errorf("span %s is not a child of the root", s.SpanID)
		}
	}
	return nil
}

// Alert statuses and severities.
const (
	AlertFiring   = "firing"
	AlertResolved = "resolved"

	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Alert is one fired alert. ResolvedAt and DurationMinutes are nil while firing.
type Alert struct {
	AlertID         string     `json:"alert_id"`
	AlertName       string     `json:"alert_name"`
	Service         string     `json:"service"`
	Environment     string     `json:"environment"`
	Severity        string     `json:"severity"`
	Threshold       string     `json:"threshold"`
	FiredAt         time.Time  `json:"fired_at"`
	ResolvedAt      *time.Time `json:"resolved_at"`
	DurationMinutes *int       `json:"duration_minutes"`
	Status          string     `json:"status"`
}

// Validate checks alert field constraints.
func (a *Alert) Validate() error {
	if a.AlertID == "" {
		return errors.New("alert ID must not be empty")
	}
	if a.AlertName == "" {
		return errors.New("alert name must not be empty")
	}
	if a.Severity != SeverityWarning && a.Severity != SeverityCritical {
		return fmt.Errorf("unknown severity %q", a.Severity)
	}
	switch a.Status {
	case AlertResolved:
		if a.ResolvedAt == nil || a.DurationMinutes == nil {
			return errors.New("resolved alert must carry resolved_at and duration_minutes")
		}
		if a.ResolvedAt.Before(a.FiredAt) {
			return errors.New("resolved at must be >= fired at")
		}
	case AlertFiring:
		if a.ResolvedAt != nil {
			return errors.New("firing alert must not be resolved")
		}
	default:
		return fmt.Errorf("unknown status %q", a.Status)
	}
	return nil
}
