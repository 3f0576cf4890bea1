package generator

import (
	"fmt"
	"slices"
	"time"

	"github.com/rewired-gh/synthtel/internal/catalog"
	"github.com/rewired-gh/synthtel/internal/models"
)

var (
	logLevels     = []string{models.LevelInfo, models.LevelWarn, models.LevelError}
	normalWeights = []float64{0.85, 0.12, 0.03}
	errorWeights  = []float64{0.60, 0.20, 0.20}

	logMessages = map[string][]string{
		models.LevelInfo: {
			"Request processed successfully",
			"Database query executed",
			"Cache hit for key",
			"User authenticated",
			"Payment processed",
		},
		models.LevelWarn: {
			"High latency detected",
			"Connection pool near capacity",
			"Retry attempt for failed request",
			"Rate limit approaching threshold",
		},
		models.LevelError: {
			"Database connection timeout",
			"Failed to process payment",
			"Service unavailable: downstream dependency",
			"Memory allocation failed",
			"Invalid request parameters",
		},
	}
)

const stackTrace = "at com.example.service.Handler.process(Handler.java:42)"

// Logs returns hours × logs-per-hour entries spread over the last hours, oldest first.
// withErrors shifts the level mix towards WARN and ERROR.
func (g *Generator) Logs(service string, env catalog.Environment, hours int, withErrors bool) ([]models.LogEntry, error) {
	if err := g.checkService(service); err != nil {
		return nil, err
	}
	if err := checkRange("hours", hours, 1, g.config.MaxLogHours); err != nil {
		return nil, err
	}

	now := g.now()
	weights := normalWeights
	if withErrors {
		weights = errorWeights
	}
	pods := max(g.catalog.Pods(env), 1)

	count := hours * g.catalog.LogsPerHour(env)
	logs := make([]models.LogEntry, 0, count)
	for i := 0; i < count; i++ {
		level := logLevels[weighted(g.src, weights)]
		entry := models.LogEntry{
			Timestamp:   now.Add(-time.Duration(between(g.src, 0, hours*3600)) * time.Second),
			Service:     service,
			Environment: string(env),
			Level:       level,
			TraceID:     fmt.Sprintf("trace-%d", between(g.src, 100000, 999999)),
			SpanID:      fmt.Sprintf("span-%d", between(g.src, 100000, 999999)),
			Pod:         catalog.PodName(service, g.src.IntN(pods)),
			Message:     pick(g.src, logMessages[level]),
		}
		if level == models.LevelError {
			entry.StackTrace = stackTrace
		}
		logs = append(logs, entry)
	}

	slices.SortStableFunc(logs, func(a, b models.LogEntry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return logs, nil
}

const (
	rootService   = "api-gateway"
	rootOperation = "POST /api/payment"
)

// Traces returns count traces started within the last hour. Each has an api-gateway
// root and three sequential children: service, db-proxy and auth-service. Slow traces
// stretch every span and fail 30% of children.
func (g *Generator) Traces(service string, env catalog.Environment, count int, slow bool) ([]models.Trace, error) {
	if err := g.checkService(service); err != nil {
		return nil, err
	}
	if err := checkRange("count", count, 1, g.config.MaxTraces); err != nil {
		return nil, err
	}

	now := g.now()
	rootLo, rootHi, childLo, childHi := 50, 200, 10, 50
	if slow {
		rootLo, rootHi, childLo, childHi = 500, 2000, 100, 800
	}

	traces := make([]models.Trace, 0, count)
	for i := 0; i < count; i++ {
		traceID := fmt.Sprintf("trace-%d", between(g.src, 100000, 999999))
		start := now.Add(-time.Duration(between(g.src, 0, 3600)) * time.Second)
		rootID := fmt.Sprintf("span-%d-0", i)
		rootDuration := between(g.src, rootLo, rootHi)

		spans := []models.Span{{
			TraceID:    traceID,
			SpanID:     rootID,
			Service:    rootService,
			Operation:  rootOperation,
			StartTime:  start,
			DurationMs: rootDuration,
			Status:     models.StatusOK,
		}}

		offset := 5
		for idx, child := range []string{service, "db-proxy", "auth-service"} {
			duration := between(g.src, childLo, childHi)
			status := models.StatusOK
			if slow && g.src.Float64() < 0.3 {
				status = models.StatusError
			}
			parent := rootID
			spans = append(spans, models.Span{
				TraceID:      traceID,
				SpanID:       fmt.Sprintf("span-%d-%d", i, idx+1),
				ParentSpanID: &parent,
				Service:      child,
				Operation:    child + ".process",
				StartTime:    start.Add(time.Duration(offset) * time.Millisecond),
				DurationMs:   duration,
				Status:       status,
			})
			offset += duration
		}

		trace := models.Trace{
			TraceID:         traceID,
			RootService:     rootService,
			Environment:     string(env),
			TotalDurationMs: rootDuration,
			SpanCount:       len(spans),
			Spans:           spans,
		}
		if err := trace.Validate(); err != nil {
			return nil, fmt.Errorf("invalid trace %s: %w", traceID, err)
		}
		traces = append(traces, trace)
	}
	return traces, nil
}

type alertTemplate struct {
	name      string
	threshold string
	severity  string
}

var alertTemplates = []alertTemplate{
	{"HighCPUUsage", "80%", models.SeverityWarning},
	{"HighLatency", "500ms", models.SeverityCritical},
	{"ErrorRateSpike", "5%", models.SeverityCritical},
	{"MemoryPressure", "85%", models.SeverityWarning},
	{"LowDiskSpace", "90%", models.SeverityWarning},
}

// Alerts returns zero to three alerts fired within the last hours, newest first.
// One in five is still firing, as is any alert whose resolution would lie in the future.
func (g *Generator) Alerts(service string, env catalog.Environment, hours int) ([]models.Alert, error) {
	if err := g.checkService(service); err != nil {
		return nil, err
	}
	if err := checkRange("hours", hours, 1, g.config.MaxHours); err != nil {
		return nil, err
	}

	now := g.now()
	n := between(g.src, 0, 3)
	alerts := make([]models.Alert, 0, n)
	for i := 0; i < n; i++ {
		tmpl := pick(g.src, alertTemplates)
		fired := now.Add(-time.Duration(between(g.src, 30, hours*60)) * time.Minute)
		minutes := between(g.src, 5, 45)

		alert := models.Alert{
			AlertID:     fmt.Sprintf("alert-%d", between(g.src, 10000, 99999)),
			AlertName:   tmpl.name,
			Service:     service,
			Environment: string(env),
			Severity:    tmpl.severity,
			Threshold:   tmpl.threshold,
			FiredAt:     fired,
			Status:      models.AlertFiring,
		}
		resolved := fired.Add(time.Duration(minutes) * time.Minute)
		if g.src.Float64() >= 0.2 && !resolved.After(now) {
			alert.ResolvedAt = &resolved
			alert.DurationMinutes = &minutes
			alert.Status = models.AlertResolved
		}
		if err := alert.Validate(); err != nil {
			return nil, fmt.Errorf("invalid alert %s: %w", alert.AlertID, err)
		}
		alerts = append(alerts, alert)
	}

	slices.SortStableFunc(alerts, func(a, b models.Alert) int {
		return b.FiredAt.Compare(a.FiredAt)
	})
	return alerts, nil
}
