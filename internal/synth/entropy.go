package synth

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the entropy consumed by the synthesizer and the templated generators.
// Implementations must be safe for concurrent use.
type Source interface {
	Float64() float64
	NormFloat64() float64
	IntN(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource returns a Source seeded with seed and guarded by a mutex.
func NewSource(seed int64) Source {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *lockedSource) NormFloat64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.NormFloat64()
}

// IntN returns a value in [0, n). It returns 0 when n <= 0.
func (s *lockedSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

var (
	defaultOnce   sync.Once
	defaultSource Source
)

// DefaultSource returns the process-wide time-seeded Source.
func DefaultSource() Source {
	defaultOnce.Do(func() {
		defaultSource = NewSource(time.Now().UnixNano())
	})
	return defaultSource
}
