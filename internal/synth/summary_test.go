package synth

import (
	"errors"
	"testing"
	"time"
)

func seriesOf(values ...float64) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = TimePoint{Timestamp: fixedNow.Add(time.Duration(i) * time.Minute), Value: v}
	}
	return s
}

func TestSummarizeOneToHundred(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i + 1)
	}
	got, err := Summarize(seriesOf(values...))
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	want := Summary{
		Min:    1,
		Max:    100,
		Mean:   50.5,
		Median: 50.5,
		P95:    95.05,
		P99:    99.01,
		StdDev: 28.87,
		// first half mean 25.5, second half mean 75.5
		DeltaVsPreviousPeriod: 196.08,
	}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
}

func TestSummarizeTrendDelta(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"doubled second half", []float64{5, 5, 5, 10, 10, 10}, 100},
		{"halved second half", []float64{8, 8, 4, 4}, -50},
		{"flat", []float64{3, 3, 3, 3}, 0},
		{"odd length puts extra point in second half", []float64{2, 4, 4}, 100},
		{"zero first half", []float64{0, 0, 7, 7}, 0},
		{"single point", []float64{42}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Summarize(seriesOf(tt.values...))
			if err != nil {
				t.Fatalf("Summarize failed: %v", err)
			}
			if got.DeltaVsPreviousPeriod != tt.want {
				t.Errorf("Delta = %f, want %f", got.DeltaVsPreviousPeriod, tt.want)
			}
		})
	}
}

func TestSummarizeSinglePoint(t *testing.T) {
	got, err := Summarize(seriesOf(7.5))
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if got.Min != 7.5 || got.Max != 7.5 || got.Median != 7.5 || got.P99 != 7.5 || got.StdDev != 0 {
		t.Errorf("Unexpected summary for single point: %+v", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if _, err := Summarize(nil); !errors.Is(err, ErrEmptySeries) {
		t.Errorf("Expected ErrEmptySeries, got %v", err)
	}
}

func TestPercentileInterpolation(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 10},
		{1, 40},
		{0.5, 25},
		{0.25, 17.5},
	}
	for _, tt := range tests {
		if got := Percentile(sorted, tt.q); got != tt.want {
			t.Errorf("Percentile(%v) = %f, want %f", tt.q, got, tt.want)
		}
	}
}
