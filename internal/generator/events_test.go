package generator

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rewired-gh/synthtel/internal/catalog"
	"github.com/rewired-gh/synthtel/internal/models"
	"github.com/rewired-gh/synthtel/internal/synth"
)

func TestLogs(t *testing.T) {
	g := newTestGenerator(10)

	logs, err := g.Logs("order-service", catalog.Staging, 2, false)
	if err != nil {
		t.Fatalf("Logs failed: %v", err)
	}
	if len(logs) != 400 {
		t.Fatalf("Expected 400 logs, got %d", len(logs))
	}

	oldest := fixedNow.Add(-2 * time.Hour)
	for i, l := range logs {
		if i > 0 && l.Timestamp.Before(logs[i-1].Timestamp) {
			t.Fatalf("Logs not sorted at %d", i)
		}
		if l.Timestamp.Before(oldest) || l.Timestamp.After(fixedNow) {
			t.Errorf("Log %d timestamp %v outside window", i, l.Timestamp)
		}
		if (l.Level == models.LevelError) != (l.StackTrace != "") {
			t.Errorf("Log %d: level %s with stack trace %q", i, l.Level, l.StackTrace)
		}
		if !strings.HasPrefix(l.Pod, "order-service-0") {
			t.Errorf("Log %d: unexpected pod %s", i, l.Pod)
		}
		if len(l.TraceID) != len("trace-123456") || !strings.HasPrefix(l.TraceID, "trace-") {
			t.Errorf("Log %d: unexpected trace ID %s", i, l.TraceID)
		}
		if l.Message == "" {
			t.Errorf("Log %d: empty message", i)
		}
	}

	if _, err := g.Logs("order-service", catalog.Staging, 25, false); !errors.Is(err, synth.ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter, got %v", err)
	}
}

func TestLogsErrorMix(t *testing.T) {
	count := func(withErrors bool) int {
		logs, err := newTestGenerator(11).Logs("payment-api", catalog.Prod, 1, withErrors)
		if err != nil {
			t.Fatalf("Logs failed: %v", err)
		}
		n := 0
		for _, l := range logs {
			if l.Level == models.LevelError {
				n++
			}
		}
		return n
	}

	normal, noisy := count(false), count(true)
	// 3% versus 20% of 1000 lines
	if normal > 80 {
		t.Errorf("Expected few errors in normal mode, got %d", normal)
	}
	if noisy < 120 {
		t.Errorf("Expected many errors with errors enabled, got %d", noisy)
	}
}

func TestWeighted(t *testing.T) {
	g := newTestGenerator(12)
	hits := make([]int, 3)
	for i := 0; i < 10000; i++ {
		hits[weighted(g.src, []float64{0.85, 0.12, 0.03})]++
	}
	if hits[0] < 8000 || hits[2] > 600 {
		t.Errorf("Unexpected distribution %v", hits)
	}
	if got := weighted(g.src, []float64{0, 0, 1}); got != 2 {
		t.Errorf("Expected index 2, got %d", got)
	}
}

func TestTraces(t *testing.T) {
	tests := []struct {
		name          string
		slow          bool
		rootLo, rootH int
		childLo       int
		childHi       int
	}{
		{"normal", false, 50, 200, 10, 50},
		{"slow", true, 500, 2000, 100, 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traces, err := newTestGenerator(13).Traces("payment-api", catalog.Prod, 15, tt.slow)
			if err != nil {
				t.Fatalf("Traces failed: %v", err)
			}
			if len(traces) != 15 {
				t.Fatalf("Expected 15 traces, got %d", len(traces))
			}
			for i, tr := range traces {
				if err := tr.Validate(); err != nil {
					t.Fatalf("Trace %d invalid: %v", i, err)
				}
				if tr.SpanCount != 4 {
					t.Errorf("Expected 4 spans, got %d", tr.SpanCount)
				}
				root := tr.Spans[0]
				if root.Service != "api-gateway" || root.Operation != "POST /api/payment" {
					t.Errorf("Unexpected root %+v", root)
				}
				if tr.TotalDurationMs != root.DurationMs || root.DurationMs < tt.rootLo || root.DurationMs > tt.rootH {
					t.Errorf("Root duration %d outside [%d, %d]", root.DurationMs, tt.rootLo, tt.rootH)
				}

				wantServices := []string{"payment-api", "db-proxy", "auth-service"}
				offset := 5 * time.Millisecond
				for j, child := range tr.Spans[1:] {
					if child.Service != wantServices[j] {
						t.Errorf("Child %d: expected %s, got %s", j, wantServices[j], child.Service)
					}
					if child.DurationMs < tt.childLo || child.DurationMs > tt.childHi {
						t.Errorf("Child duration %d outside [%d, %d]", child.DurationMs, tt.childLo, tt.childHi)
					}
					if got := child.StartTime.Sub(root.StartTime); got != offset {
						t.Errorf("Child %d: expected offset %v, got %v", j, offset, got)
					}
					offset += time.Duration(child.DurationMs) * time.Millisecond
					if !tt.slow && child.Status != models.StatusOK {
						t.Errorf("Expected ok status for normal traces, got %s", child.Status)
					}
				}
			}
		})
	}
}

func TestTracesInvalidCount(t *testing.T) {
	g := newTestGenerator(14)
	for _, n := range []int{0, 501} {
		if _, err := g.Traces("payment-api", catalog.Dev, n, false); !errors.Is(err, synth.ErrInvalidParameter) {
			t.Errorf("Traces(%d): expected ErrInvalidParameter, got %v", n, err)
		}
	}
}

func TestAlerts(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		alerts, err := newTestGenerator(seed).Alerts("cache-service", catalog.Dev, 24)
		if err != nil {
			t.Fatalf("Alerts failed: %v", err)
		}
		if len(alerts) > 3 {
			t.Fatalf("Expected at most 3 alerts, got %d", len(alerts))
		}
		for i, a := range alerts {
			if err := a.Validate(); err != nil {
				t.Errorf("Seed %d alert %d invalid: %v", seed, i, err)
			}
			if i > 0 && a.FiredAt.After(alerts[i-1].FiredAt) {
				t.Errorf("Seed %d: alerts not sorted newest first", seed)
			}
			if age := fixedNow.Sub(a.FiredAt); age < 30*time.Minute || age > 24*time.Hour {
				t.Errorf("Seed %d: alert age %v outside window", seed, age)
			}
			if a.ResolvedAt != nil && a.ResolvedAt.After(fixedNow) {
				t.Errorf("Seed %d: resolved in the future", seed)
			}
		}
	}
}

func TestScenario(t *testing.T) {
	tests := []struct {
		kind        ScenarioKind
		requestRate bool
	}{
		{CPUSpike, false},
		{DatabaseSlowdown, false},
		{TrafficSurge, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			sc, err := newTestGenerator(20).Scenario(tt.kind, "payment-api", catalog.Staging)
			if err != nil {
				t.Fatalf("Scenario failed: %v", err)
			}
			if _, err := uuid.Parse(sc.ID); err != nil {
				t.Errorf("Expected UUID scenario ID, got %q", sc.ID)
			}
			if sc.Kind != string(tt.kind) || sc.Description == "" || sc.RootCause == "" {
				t.Errorf("Incomplete scenario %+v", sc)
			}
			if (sc.RequestRate != nil) != tt.requestRate {
				t.Errorf("Expected request rate present = %v", tt.requestRate)
			}
			if len(sc.Traces) != 20 {
				t.Errorf("Expected 20 traces, got %d", len(sc.Traces))
			}
			if len(sc.Logs) != 200 {
				t.Errorf("Expected 200 logs, got %d", len(sc.Logs))
			}
			if len(sc.RecommendedActions) != 3 {
				t.Errorf("Expected 3 actions, got %d", len(sc.RecommendedActions))
			}
			for _, a := range sc.RecommendedActions {
				if strings.Contains(a, "%!") {
					t.Errorf("Malformed action %q", a)
				}
			}
			if len(sc.CPU.Aggregated) != 288 {
				t.Errorf("Expected 24h of CPU, got %d points", len(sc.CPU.Aggregated))
			}
		})
	}
}

func TestScenarioActionsNameService(t *testing.T) {
	sc, err := newTestGenerator(21).Scenario(TrafficSurge, "order-service", catalog.Prod)
	if err != nil {
		t.Fatalf("Scenario failed: %v", err)
	}
	if sc.RecommendedActions[0] != "Enable auto-scaling for order-service" {
		t.Errorf("Unexpected action %q", sc.RecommendedActions[0])
	}
	if sc.RecommendedActions[2] != "Scale replicas: 5 → 10 immediately" {
		t.Errorf("Unexpected action %q", sc.RecommendedActions[2])
	}
}

func TestScenarioUnknown(t *testing.T) {
	if _, err := ParseScenarioKind("disk_full"); !errors.Is(err, synth.ErrUnsupportedVariant) {
		t.Errorf("Expected ErrUnsupportedVariant, got %v", err)
	}
	if _, err := newTestGenerator(22).Scenario("disk_full", "payment-api", catalog.Prod); !errors.Is(err, synth.ErrUnsupportedVariant) {
		t.Errorf("Expected ErrUnsupportedVariant, got %v", err)
	}
	kind, err := ParseScenarioKind(" Traffic_Surge ")
	if err != nil || kind != TrafficSurge {
		t.Errorf("Expected traffic_surge, got %q (%v)", kind, err)
	}
}
