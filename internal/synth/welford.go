package synth

import "math"

// welford accumulates a running mean and sum of squared deviations in one pass.
type welford struct {
	count int
	mean  float64
	m2    float64
}

func (w *welford) add(x float64) {
	w.count++
	delta := x - w.mean
	w.mean += delta / float64(w.count)
	delta2 := x - w.mean
	w.m2 += delta * delta2
}

// stdDev is the population standard deviation (divides by n).
func (w *welford) stdDev() float64 {
	if w.count == 0 {
		return 0
	}
	return math.Sqrt(w.m2 / float64(w.count))
}

func mean(values []float64) float64 {
	var w welford
	for _, v := range values {
		w.add(v)
	}
	return w.mean
}
