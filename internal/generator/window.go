package generator

import (
	"math"
	"time"

	"github.com/rewired-gh/synthtel/internal/catalog"
	"github.com/rewired-gh/synthtel/internal/models"
	"github.com/rewired-gh/synthtel/internal/synth"
)

const (
	MinWindowMinutes = 5
	MaxWindowMinutes = 24 * 60
)

var windowSpike = synth.AnomalySpec{
	Kind:             synth.Spike,
	StartFraction:    0.6,
	DurationFraction: 0.2,
	Magnitude:        1.5,
}

// Window returns a per-minute snapshot of the last windowMinutes. Latency and error rate
// are derived from CPU so that the spike late in the window shows up in all of them.
func (g *Generator) Window(service string, env catalog.Environment, windowMinutes int) (*models.WindowReport, error) {
	if err := g.checkService(service); err != nil {
		return nil, err
	}
	if err := checkRange("window_minutes", windowMinutes, MinWindowMinutes, MaxWindowMinutes); err != nil {
		return nil, err
	}

	now := g.now().Truncate(time.Minute)
	hours := float64(windowMinutes) / 60

	cpuProfile, err := g.catalog.Profile(catalog.CPUUsage, env)
	if err != nil {
		return nil, err
	}
	cpu, err := g.generate(string(catalog.CPUUsage), cpuProfile.Params(hours, 1), now)
	if err != nil {
		return nil, err
	}
	if err := g.inject(cpu, windowSpike); err != nil {
		return nil, err
	}

	memProfile, err := g.catalog.Profile(catalog.MemoryUsage, env)
	if err != nil {
		return nil, err
	}
	mem, err := g.generate(string(catalog.MemoryUsage), memProfile.Params(hours, 1), now)
	if err != nil {
		return nil, err
	}

	points := make([]models.WindowPoint, len(cpu))
	for i := range cpu {
		c := clamp(cpu[i].Value, 1, 99)
		p50 := math.Max(10, 40+2*c+uniform(g.src, -15, 15))
		p95 := p50 + uniform(g.src, 80, 200)
		errRate := math.Max(0, 0.01*c/50+uniform(g.src, 0, 0.03))

		points[i] = models.WindowPoint{
			Timestamp:       cpu[i].Timestamp,
			CPUPercent:      roundTo(c, 1),
			MemoryPercent:   roundTo(clamp(mem[i].Value, 5, 95), 1),
			LatencyMsP50:    roundTo(p50, 1),
			LatencyMsP95:    roundTo(p95, 1),
			ErrorRatePerMin: roundTo(errRate, 4),
		}
	}

	return &models.WindowReport{
		Service:       service,
		Env:           string(env),
		WindowMinutes: windowMinutes,
		Points:        points,
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
