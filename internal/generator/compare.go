package generator

import (
	"fmt"
	"math"

	"github.com/rewired-gh/synthtel/internal/catalog"
	"github.com/rewired-gh/synthtel/internal/models"
	"github.com/rewired-gh/synthtel/internal/synth"
)

const (
	trendThreshold       = 5.0
	significantThreshold = 10.0
)

// Compare contrasts an anomalous current period with a clean past period. Only cpu,
// latency and error_rate are comparable.
func (g *Generator) Compare(service string, env catalog.Environment, kind ReportKind, currentHours, pastHours int) (*models.Comparison, error) {
	switch kind {
	case ReportCPU, ReportLatency, ReportErrorRate:
	default:
		return nil, fmt.Errorf("%w: cannot compare %q", synth.ErrUnsupportedVariant, kind)
	}

	current, err := g.Metric(kind, service, env, currentHours, true)
	if err != nil {
		return nil, fmt.Errorf("current period: %w", err)
	}
	past, err := g.Metric(kind, service, env, pastHours, false)
	if err != nil {
		return nil, fmt.Errorf("past period: %w", err)
	}

	return &models.Comparison{
		Service:           service,
		Environment:       string(env),
		MetricType:        string(kind),
		CurrentPeriod:     current,
		PastPeriod:        past,
		ComparisonSummary: summarizeChange(string(kind), current.PrimaryStatistics().Mean, past.PrimaryStatistics().Mean),
	}, nil
}

func summarizeChange(metric string, current, past float64) models.ComparisonSummary {
	var change float64
	if past > 0 {
		change = synth.Round2((current - past) / past * 100)
	}

	s := models.ComparisonSummary{
		SignificantChange: math.Abs(change) >= significantThreshold,
		ChangePercent:     change,
	}
	switch {
	case change > trendThreshold:
		s.Trend = models.TrendIncreasing
		s.Explanation = fmt.Sprintf("%s increased by %.2f%% compared to the previous period", metric, change)
	case change < -trendThreshold:
		s.Trend = models.TrendDecreasing
		s.Explanation = fmt.Sprintf("%s decreased by %.2f%% compared to the previous period", metric, -change)
	default:
		s.Trend = models.TrendStable
		s.Explanation = fmt.Sprintf("%s is stable compared to the previous period (%+.2f%%)", metric, change)
	}
	return s
}
