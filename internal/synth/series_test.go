package synth

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 3, 14, 23, 55, 0, 0, time.UTC)

func TestGenerateLength(t *testing.T) {
	tests := []struct {
		name     string
		hours    float64
		interval float64
		want     int
	}{
		{"24h at 5m", 24, 5, 288},
		{"1h at 1m", 1, 1, 60},
		{"fractional", 1.5, 7, 12},
		{"window shorter than interval", 0.01, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := Generate(Params{DurationHours: tt.hours, IntervalMinutes: tt.interval, Baseline: 50, NoiseStdDev: 5}, fixedNow, NewSource(1))
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if len(series) != tt.want {
				t.Fatalf("Expected %d points, got %d", tt.want, len(series))
			}
			if tt.want == 0 {
				return
			}
			if !series[len(series)-1].Timestamp.Equal(fixedNow) {
				t.Errorf("Last timestamp = %v, want %v", series[len(series)-1].Timestamp, fixedNow)
			}
			for i := 1; i < len(series); i++ {
				if !series[i].Timestamp.After(series[i-1].Timestamp) {
					t.Fatalf("Timestamps not strictly ascending at %d: %v then %v", i, series[i-1].Timestamp, series[i].Timestamp)
				}
			}
		})
	}
}

func TestGenerateNonNegative(t *testing.T) {
	// Noise far larger than the baseline forces the clamp to engage.
	series, err := Generate(Params{DurationHours: 48, IntervalMinutes: 1, Baseline: 0.1, NoiseStdDev: 10}, fixedNow, NewSource(42))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	zeros := 0
	for i, p := range series {
		if p.Value < 0 {
			t.Fatalf("Point %d has negative value %f", i, p.Value)
		}
		if p.Value == 0 {
			zeros++
		}
	}
	if zeros == 0 {
		t.Error("Expected some points clamped to zero")
	}
}

func TestGenerateDiurnalShape(t *testing.T) {
	series, err := Generate(Params{DurationHours: 24, IntervalMinutes: 60, Baseline: 100}, fixedNow, NewSource(7))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	byHour := make(map[int]float64)
	for _, p := range series {
		byHour[p.Timestamp.Hour()] = p.Value
	}
	evening, ok := byHour[18]
	if !ok {
		t.Fatal("No point at hour 18")
	}
	morning, ok := byHour[6]
	if !ok {
		t.Fatal("No point at hour 6")
	}
	if evening <= morning {
		t.Errorf("Expected hour 18 (%f) above hour 6 (%f)", evening, morning)
	}
	if math.Abs(evening-130) > 1e-9 {
		t.Errorf("Expected 130 at hour 18, got %f", evening)
	}
	if math.Abs(morning-70) > 1e-9 {
		t.Errorf("Expected 70 at hour 6, got %f", morning)
	}
}

func TestDiurnalFactorRange(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 24; h++ {
		f := DiurnalFactor(day.Add(time.Duration(h) * time.Hour))
		if f < 0.7-1e-12 || f > 1.3+1e-12 {
			t.Errorf("Factor at hour %d out of range: %f", h, f)
		}
	}
}

func TestGenerateInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"zero duration", Params{DurationHours: 0, IntervalMinutes: 5}},
		{"negative duration", Params{DurationHours: -1, IntervalMinutes: 5}},
		{"zero interval", Params{DurationHours: 1, IntervalMinutes: 0}},
		{"negative noise", Params{DurationHours: 1, IntervalMinutes: 5, NoiseStdDev: -1}},
		{"sub-nanosecond interval", Params{DurationHours: 1e-15, IntervalMinutes: 1e-15}},
		{"NaN duration", Params{DurationHours: math.NaN(), IntervalMinutes: 5, Baseline: 50}},
		{"infinite duration", Params{DurationHours: math.Inf(1), IntervalMinutes: 5, Baseline: 50}},
		{"NaN interval", Params{DurationHours: 1, IntervalMinutes: math.NaN()}},
		{"infinite interval", Params{DurationHours: 1, IntervalMinutes: math.Inf(1)}},
		{"NaN baseline", Params{DurationHours: 1, IntervalMinutes: 5, Baseline: math.NaN()}},
		{"infinite baseline", Params{DurationHours: 1, IntervalMinutes: 5, Baseline: math.Inf(-1)}},
		{"too many points", Params{DurationHours: 1e300, IntervalMinutes: 5}},
		{"NaN noise", Params{DurationHours: 1, IntervalMinutes: 5, Baseline: 50, NoiseStdDev: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.params, fixedNow, NewSource(1))
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestTimePointMarshalJSON(t *testing.T) {
	p := TimePoint{Timestamp: time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC), Value: 12.3456}
	got, err := p.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	want := `{"timestamp":"2024-03-14T09:30:00Z","value":12.35}`
	if string(got) != want {
		t.Errorf("MarshalJSON = %s, want %s", got, want)
	}
}

func TestSourceConcurrentUse(t *testing.T) {
	src := NewSource(3)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Generate(Params{DurationHours: 2, IntervalMinutes: 1, Baseline: 10, NoiseStdDev: 1}, fixedNow, src); err != nil {
				t.Errorf("Generate failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := src.IntN(0); got != 0 {
		t.Errorf("IntN(0) = %d, want 0", got)
	}
}
