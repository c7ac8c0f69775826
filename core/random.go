package core

import (
	"math/rand/v2"
	"time"
)

// Source supplies the random draws consumed by Generate.
// Float64 must return values in [0,1).
type Source interface {
	Float64() float64
	Bool() bool
}

type pcgSource struct {
	rng *rand.Rand
}

// NewSource returns a PCG-backed Source. The same seed and stream
// reproduce the same draws.
func NewSource(seed, stream uint64) Source {
	return &pcgSource{rng: rand.New(rand.NewPCG(seed, stream))}
}

func (s *pcgSource) Float64() float64 {
	return s.rng.Float64()
}

// Bool is a fair coin; true maps to a positive sign
func (s *pcgSource) Bool() bool {
	return s.rng.Float64() < 0.5
}

// TimeSeed returns a seed for callers that don't pin one
func TimeSeed() uint64 {
	return uint64(time.Now().UnixNano())
}
