// Package sched decides which robot is activated next.
package sched

import (
	"math/rand/v2"
	"sync"
)

// Scheduler picks the index of the next robot to activate among n robots.
// n is always positive.
type Scheduler interface {
	Next(n int) int
}

// Random picks uniformly with replacement, so any robot may be activated
// arbitrarily often or rarely in the short run. It models a fully
// asynchronous adversary; fairness only holds in the limit.
type Random struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed uint64
}

// NewRandom creates a scheduler with a deterministic PCG source.
func NewRandom(seed uint64) *Random {
	r := &Random{}
	r.Reseed(seed)
	return r
}

// Next returns a robot index in [0, n).
func (r *Random) Next(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// Reseed restarts the sequence from seed.
func (r *Random) Reseed(seed uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seed = seed
	r.rng = rand.New(rand.NewPCG(seed, 0))
}

// Seed returns the seed of the current sequence.
func (r *Random) Seed() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seed
}

// RoundRobin activates robots 0, 1, ..., n-1 and starts over.
type RoundRobin struct {
	mu   sync.Mutex
	next int
}

// NewRoundRobin creates a round-robin scheduler starting at robot 0.
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// Next returns the next index in cyclic order.
func (r *RoundRobin) Next(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.next % n
	r.next = i + 1
	return i
}

// Sequence replays a fixed activation order, cycling when exhausted.
// Indices outside [0, n) wrap around.
type Sequence struct {
	mu    sync.Mutex
	order []int
	pos   int
}

// NewSequence creates a scheduler replaying order.
func NewSequence(order ...int) *Sequence {
	return &Sequence{order: append([]int(nil), order...)}
}

// Next returns the next index of the sequence.
func (s *Sequence) Next(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) == 0 {
		return 0
	}
	i := s.order[s.pos%len(s.order)]
	s.pos++
	return ((i % n) + n) % n
}
