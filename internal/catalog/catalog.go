// Package catalog holds the fictitious fleet (services, environments, pods) and the
// per-metric baseline and noise constants used to synthesize telemetry for it.
package catalog

import (
	"fmt"
	"strings"

	"github.com/rewired-gh/synthtel/internal/synth"
)

// Environment is a deployment tier of the fictitious fleet.
type Environment string

const (
	Dev     Environment = "dev"
	Staging Environment = "staging"
	Prod    Environment = "prod"
)

// Environments lists the tiers from least to most loaded.
func Environments() []Environment {
	return []Environment{Dev, Staging, Prod}
}

// ParseEnvironment accepts dev, staging or prod (case-insensitive).
func ParseEnvironment(s string) (Environment, error) {
	env := Environment(strings.ToLower(strings.TrimSpace(s)))
	switch env {
	case Dev, Staging, Prod:
		return env, nil
	}
	return "", fmt.Errorf("%w: environment %q", synth.ErrUnsupportedVariant, s)
}

// MetricKind identifies one synthesized series type.
type MetricKind string

const (
	CPUUsage    MetricKind = "cpu_usage"
	MemoryUsage MetricKind = "memory_usage"
	RequestRate MetricKind = "request_rate"
	ErrorRate   MetricKind = "error_rate"
	LatencyP50  MetricKind = "latency_p50"
	LatencyP95  MetricKind = "latency_p95"
	LatencyP99  MetricKind = "latency_p99"
)

// MetricKinds lists every series type in the catalog.
func MetricKinds() []MetricKind {
	return []MetricKind{CPUUsage, MemoryUsage, RequestRate, ErrorRate, LatencyP50, LatencyP95, LatencyP99}
}

// Key addresses a Profile.
type Key struct {
	Metric MetricKind
	Env    Environment
}

// Profile is the generation recipe of one metric in one environment.
type Profile struct {
	Baseline float64
	Noise    float64
	Unit     string
	// Anomaly is injected when a caller asks for an anomalous series.
	Anomaly synth.AnomalySpec
}

// Params returns synthesizer parameters for the given window.
func (p Profile) Params(hours, intervalMinutes float64) synth.Params {
	return synth.Params{
		DurationHours:   hours,
		IntervalMinutes: intervalMinutes,
		Baseline:        p.Baseline,
		NoiseStdDev:     p.Noise,
	}
}

// Default anomaly window, as fractions of the series length.
const (
	AnomalyStart    = 0.6
	AnomalyDuration = 0.1
)

const (
	UnitPercent           = "percent"
	UnitRequestsPerSecond = "requests_per_second"
	UnitMilliseconds      = "milliseconds"
)

var defaultServices = []string{
	"payment-api", "auth-service", "user-service",
	"db-proxy", "cache-service", "notification-service",
	"order-service", "inventory-service",
}

// Catalog is a read-only lookup of profiles, pod counts and services.
type Catalog struct {
	profiles    map[Key]Profile
	pods        map[Environment]int
	logsPerHour map[Environment]int
	services    []string
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c := &Catalog{
		profiles:    make(map[Key]Profile),
		pods:        map[Environment]int{Dev: 2, Staging: 3, Prod: 5},
		logsPerHour: map[Environment]int{Dev: 50, Staging: 200, Prod: 1000},
		services:    append([]string(nil), defaultServices...),
	}

	levels := func(dev, staging, prod float64) map[Environment]float64 {
		return map[Environment]float64{Dev: dev, Staging: staging, Prod: prod}
	}
	add := func(metric MetricKind, baselines map[Environment]float64, noise func(float64) float64, unit string, kind synth.AnomalyKind, magnitude float64) {
		for env, base := range baselines {
			c.profiles[Key{Metric: metric, Env: env}] = Profile{
				Baseline: base,
				Noise:    noise(base),
				Unit:     unit,
				Anomaly: synth.AnomalySpec{
					Kind:             kind,
					StartFraction:    AnomalyStart,
					DurationFraction: AnomalyDuration,
					Magnitude:        magnitude,
				},
			}
		}
	}
	fixed := func(n float64) func(float64) float64 { return func(float64) float64 { return n } }

	add(CPUUsage, levels(30, 45, 60), fixed(5), UnitPercent, synth.Spike, 2.5)
	add(MemoryUsage, levels(40, 55, 70), fixed(3), UnitPercent, synth.Gradual, 1.6)
	add(RequestRate, levels(50, 200, 1000), func(b float64) float64 { return b * 0.1 }, UnitRequestsPerSecond, synth.Spike, 3.0)
	add(ErrorRate, levels(0.5, 0.3, 0.1), fixed(0.1), UnitPercent, synth.Spike, 10.0)
	add(LatencyP50, levels(50, 80, 120), fixed(10), UnitMilliseconds, synth.Gradual, 1.8)
	add(LatencyP95, levels(50*2.5, 80*2.5, 120*2.5), fixed(20), UnitMilliseconds, synth.Spike, 3.0)
	add(LatencyP99, levels(50*4, 80*4, 120*4), fixed(30), UnitMilliseconds, synth.Spike, 4.0)

	return c
}

// WithServices returns a copy of c serving the given service names. An empty list keeps
// the current services.
func (c *Catalog) WithServices(services []string) *Catalog {
	if len(services) == 0 {
		return c
	}
	out := *c
	out.services = append([]string(nil), services...)
	return &out
}

// Profile looks up the recipe for metric in env.
func (c *Catalog) Profile(metric MetricKind, env Environment) (Profile, error) {
	p, ok := c.profiles[Key{Metric: metric, Env: env}]
	if !ok {
		return Profile{}, fmt.Errorf("%w: no profile for %s in %s", synth.ErrUnsupportedVariant, metric, env)
	}
	return p, nil
}

// Pods is the replica count of every service in env.
func (c *Catalog) Pods(env Environment) int {
	return c.pods[env]
}

// LogsPerHour is the log volume of one service in env.
func (c *Catalog) LogsPerHour(env Environment) int {
	return c.logsPerHour[env]
}

// Services lists the fictitious service names.
func (c *Catalog) Services() []string {
	return append([]string(nil), c.services...)
}

// PodName formats the name of replica i of service.
func PodName(service string, i int) string {
	return fmt.Sprintf("%s-%02d", service, i)
}
