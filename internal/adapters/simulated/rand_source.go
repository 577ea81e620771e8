package simulated

import (
	"math/rand"
	"sync"
	"time"
)

// RandSource implements ports.ValueSource over math/rand. A zero seed picks a
// time-based one; tests pass a fixed seed for reproducible sequences.
type RandSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandSource(seed int64) *RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandSource) IntBetween(min, max int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if max <= min {
		return min
	}
	return min + s.rng.Intn(max-min+1)
}

func (s *RandSource) FloatBetween(min, max float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Float64()*(max-min)
}

func (s *RandSource) Pick(choices ...string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(choices) == 0 {
		return ""
	}
	return choices[s.rng.Intn(len(choices))]
}
