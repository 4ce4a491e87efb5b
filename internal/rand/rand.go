// Package rand provides the injectable randomness consumed by the
// content and temporal signals. Production analyses share the process
// generator; tests substitute a deterministic sequence.
package rand

import (
	mathrand "math/rand/v2"
	"sync"
)

// Source yields values in [0, 1). Implementations handed to concurrent
// analyses must be safe for concurrent use.
type Source interface {
	Float64() float64
}

type defaultSource struct{}

func (defaultSource) Float64() float64 {
	return mathrand.Float64()
}

// Default returns the production source, backed by math/rand/v2's
// process-wide generator (safe for concurrent use, independent draws).
func Default() Source {
	return defaultSource{}
}

// Seeded returns a deterministic PCG-backed source for reproducible runs.
func Seeded(seed uint64) Source {
	return &locked{rng: mathrand.New(mathrand.NewPCG(seed, seed))}
}

type locked struct {
	mu  sync.Mutex
	rng *mathrand.Rand
}

func (l *locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.rng.Float64()
}

// Fixed returns a source replaying the given values in order, cycling
// when exhausted. Panics on an empty list.
func Fixed(values ...float64) Source {
	if len(values) == 0 {
		panic("rand: Fixed requires at least one value")
	}

	return &sequence{values: values}
}

type sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func (s *sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.values[s.next%len(s.values)]
	s.next++

	return v
}
