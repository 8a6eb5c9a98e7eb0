// Package rng provides the reproducible random stream used for level
// generation, and helpers that turn any dice.Roller into uniform draws.
package rng

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/tower-defense/internal/errors"
)

// linear congruential parameters; the stream must stay stable across releases
// because players share seeds
const (
	modulus    = 233280
	multiplier = 9301
	increment  = 49297
)

// MaxSeed bounds generated seeds
const MaxSeed = 1_000_000

// Source produces floats in [0, 1)
type Source interface {
	Next() float64
}

// Seeded is a deterministic Source. The same seed always yields the same
// sequence. It also satisfies dice.Roller so seeded and unseeded randomness
// can be passed around interchangeably.
type Seeded struct {
	seed  int64
	state int64
}

// New creates a stream for seed
func New(seed int64) *Seeded {
	s := &Seeded{}
	s.Reseed(seed)
	return s
}

// Reseed restarts the sequence from seed
func (s *Seeded) Reseed(seed int64) {
	s.seed = seed
	s.state = ((seed % modulus) + modulus) % modulus
}

// Seed returns the seed the stream was started with
func (s *Seeded) Seed() int64 {
	return s.seed
}

// Next returns the next value in [0, 1)
func (s *Seeded) Next() float64 {
	s.state = (s.state*multiplier + increment) % modulus
	return float64(s.state) / modulus
}

// Roll implements dice.Roller, returning a value in [1, size]
func (s *Seeded) Roll(size int) (int, error) {
	if size < 1 {
		return 0, errors.InvalidArgumentf("rng: die size must be positive, got %d", size)
	}
	return int(s.Next()*float64(size)) + 1, nil
}

// RollN implements dice.Roller
func (s *Seeded) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("rng: count must not be negative, got %d", count)
	}
	out := make([]int, count)
	for i := range out {
		v, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

var _ dice.Roller = (*Seeded)(nil)

// resolution is the die size used when a roller is not a Source
const resolution = 1 << 30

// Float draws a uniform value in [0, 1) from r. A Source is used directly;
// any other roller is rolled with a large die. A roller error yields 0.
func Float(r dice.Roller) float64 {
	if src, ok := r.(Source); ok {
		return src.Next()
	}
	n, err := r.Roll(resolution)
	if err != nil {
		return 0
	}
	return float64(n-1) / resolution
}

// Chance reports whether a draw from r falls under p
func Chance(r dice.Roller, p float64) bool {
	return Float(r) < p
}

// Intn draws a uniform index in [0, n); n must be positive
func Intn(r dice.Roller, n int) int {
	i := int(Float(r) * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Between draws a uniform value in [lo, hi)
func Between(r dice.Roller, lo, hi float64) float64 {
	return lo + Float(r)*(hi-lo)
}

// NewSeed picks a fresh seed in [0, MaxSeed) for matches started without one
func NewSeed() int64 {
	return int64(Intn(dice.DefaultRoller, MaxSeed))
}
