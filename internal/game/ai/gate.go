package ai

import (
	"math/rand"
	"time"
)

// Percenter answers "does an event with this percent chance happen".
type Percenter interface {
	PercentTrue(chance int) bool
}

// PercenterFunc adapts a function to Percenter.
type PercenterFunc func(chance int) bool

// PercentTrue implements Percenter.
func (f PercenterFunc) PercentTrue(chance int) bool { return f(chance) }

// FixedRoll is a Percenter that always rolls the same value in [0, 100).
// Like RandomGate, a chance of 100 or more always passes and 0 or less never does.
type FixedRoll int

// PercentTrue implements Percenter.
func (r FixedRoll) PercentTrue(chance int) bool {
	if chance <= 0 {
		return false
	}
	if chance >= 100 {
		return true
	}
	return int(r) < chance
}

// RandomGate is a seeded Percenter.
type RandomGate struct {
	rng  *rand.Rand
	seed int64
}

// NewRandomGate creates a gate seeded with seed. Zero picks a time based seed.
func NewRandomGate(seed int64) *RandomGate {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomGate{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed returns the seed in use, so a run can be reproduced.
func (g *RandomGate) Seed() int64 { return g.seed }

// PercentTrue implements Percenter.
func (g *RandomGate) PercentTrue(chance int) bool {
	if chance <= 0 {
		return false
	}
	if chance >= 100 {
		return true
	}
	return g.rng.Intn(100) < chance
}
