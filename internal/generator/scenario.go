package generator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rewired-gh/synthtel/internal/catalog"
	"github.com/rewired-gh/synthtel/internal/logger"
	"github.com/rewired-gh/synthtel/internal/metrics"
	"github.com/rewired-gh/synthtel/internal/models"
	"github.com/rewired-gh/synthtel/internal/synth"
)

// ScenarioKind names a canned incident.
type ScenarioKind string

const (
	CPUSpike         ScenarioKind = "cpu_spike"
	DatabaseSlowdown ScenarioKind = "database_slowdown"
	TrafficSurge     ScenarioKind = "traffic_surge"
)

func ScenarioKinds() []ScenarioKind {
	return []ScenarioKind{CPUSpike, DatabaseSlowdown, TrafficSurge}
}

func ParseScenarioKind(s string) (ScenarioKind, error) {
	kind := ScenarioKind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := recipes[kind]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("%w: scenario %q", synth.ErrUnsupportedVariant, s)
}

// recipe lists which metrics of a scenario carry their anomaly.
type recipe struct {
	description string
	cpu         bool
	latency     bool
	memory      bool
	errorRate   bool
	// requestRate also decides whether the request rate series is included.
	requestRate bool
	rootCause   string
	actions     []string
}

var recipes = map[ScenarioKind]recipe{
	CPUSpike: {
		description: "CPU spike leading to increased latency and pod restarts",
		cpu:         true,
		latency:     true,
		rootCause:   "CPU hot loop in payment processing code",
		actions: []string{
			"Investigate %[1]s logs for CPU-intensive operations",
			"Profile code for optimization opportunities",
			"Consider horizontal scaling: increase replicas from %[2]d to %[3]d",
		},
	},
	DatabaseSlowdown: {
		description: "Database query latency causing cascading slowdown",
		latency:     true,
		errorRate:   true,
		rootCause:   "Missing database index on frequently queried table",
		actions: []string{
			"Check db-proxy connection pool utilization",
			"Review slow query logs",
			"Add missing indexes on the tables %[1]s queries most",
		},
	},
	TrafficSurge: {
		description: "Sudden traffic increase overwhelming service capacity",
		cpu:         true,
		latency:     true,
		memory:      true,
		errorRate:   true,
		requestRate: true,
		rootCause:   "Marketing campaign drove 3x normal traffic",
		actions: []string{
			"Enable auto-scaling for %[1]s",
			"Increase rate limiting thresholds temporarily",
			"Scale replicas: %[2]d → %[4]d immediately",
		},
	},
}

const (
	scenarioLogHours = 1
	scenarioTraces   = 20
)

// Scenario assembles correlated metrics, logs, traces and alerts for one incident.
func (g *Generator) Scenario(kind ScenarioKind, service string, env catalog.Environment) (*models.Scenario, error) {
	r, ok := recipes[kind]
	if !ok {
		return nil, fmt.Errorf("%w: scenario %q", synth.ErrUnsupportedVariant, kind)
	}
	if err := g.checkService(service); err != nil {
		return nil, err
	}

	hours := g.config.DefaultHours
	sc := &models.Scenario{
		ID:          uuid.NewString(),
		Kind:        string(kind),
		Service:     service,
		Environment: string(env),
		GeneratedAt: g.now(),
		Description: r.description,
		RootCause:   r.rootCause,
	}

	var err error
	if sc.CPU, err = g.CPU(service, env, hours, r.cpu); err != nil {
		return nil, err
	}
	if sc.Latency, err = g.Latency(service, env, hours, r.latency); err != nil {
		return nil, err
	}
	if sc.Memory, err = g.Memory(service, env, hours, r.memory); err != nil {
		return nil, err
	}
	if sc.ErrorRate, err = g.ErrorRate(service, env, hours, r.errorRate); err != nil {
		return nil, err
	}
	if r.requestRate {
		if sc.RequestRate, err = g.RequestRate(service, env, hours, true); err != nil {
			return nil, err
		}
	}
	if sc.Logs, err = g.Logs(service, env, scenarioLogHours, true); err != nil {
		return nil, err
	}
	if sc.Traces, err = g.Traces(service, env, scenarioTraces, true); err != nil {
		return nil, err
	}
	if sc.Alerts, err = g.Alerts(service, env, hours); err != nil {
		return nil, err
	}

	pods := g.catalog.Pods(env)
	sc.RecommendedActions = make([]string, len(r.actions))
	for i, a := range r.actions {
		if strings.Contains(a, "%") {
			a = fmt.Sprintf(a, service, pods, pods+2, pods+5)
		}
		sc.RecommendedActions[i] = a
	}

	metrics.ScenariosGeneratedTotal.WithLabelValues(string(kind)).Inc()
	logger.Debug("Generated scenario %s (%s) for %s/%s", sc.ID, kind, service, env)
	return sc, nil
}
