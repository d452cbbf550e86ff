// Package dice provides the random source shared by combat and mission
// assignment. A session owns exactly one Source and consumes it in order,
// so a fixed seed replays the same game.
package dice

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Faces is the number of sides on a combat die.
const Faces = 6

// Source yields die rolls and uniform indices.
type Source interface {
	// Roll returns a value in [1, Faces].
	Roll() int
	// Intn returns a value in [0, n). It panics if n <= 0.
	Intn(n int) int
}

// Rand is a Source backed by a seeded PCG generator.
type Rand struct {
	seed uint64
	rng  *rand.Rand
}

// NewSource creates a seeded source.
func NewSource(seed uint64) *Rand {
	return &Rand{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed the source was created with.
func (r *Rand) Seed() uint64 { return r.seed }

func (r *Rand) Roll() int { return r.rng.Intn(Faces) + 1 }

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("dice: Intn called with n=%d", n))
	}
	return r.rng.Intn(n)
}

// Sequence is a scripted Source. Roll and Intn consume the same queue;
// values are returned as given (Intn reduces them modulo n). When the
// queue runs dry the source panics, which makes a test that draws more
// than it scripted fail loudly.
type Sequence struct {
	values []int
	pos    int
}

// NewSequence returns a Source that yields values in order.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) next() int {
	if s.pos >= len(s.values) {
		panic(fmt.Sprintf("dice: sequence exhausted after %d draws", s.pos))
	}
	v := s.values[s.pos]
	s.pos++
	return v
}

func (s *Sequence) Roll() int {
	v := s.next()
	if v < 1 || v > Faces {
		panic(fmt.Sprintf("dice: scripted roll %d outside [1,%d]", v, Faces))
	}
	return v
}

func (s *Sequence) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("dice: Intn called with n=%d", n))
	}
	return s.next() % n
}

// Remaining returns how many scripted values are left.
func (s *Sequence) Remaining() int { return len(s.values) - s.pos }
