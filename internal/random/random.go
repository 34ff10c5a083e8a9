// Package random provides the pseudo-random source used for shuffling and
// card orientation.
//
// Sources are not safe for concurrent use. A seeded source replays the same
// sequence, which tests rely on; NewSystem seeds from crypto/rand.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source abstracts random number generation for deterministic testing.
type Source interface {
	// IntN returns a non-negative random int in [0, n). It panics if n <= 0.
	IntN(n int) int
	// Bool returns a fair coin flip.
	Bool() bool
}

// PCG is a Source backed by math/rand/v2's PCG generator.
type PCG struct {
	r *rand.Rand
}

// New returns a source seeded with seed.
func New(seed int64) *PCG {
	s := uint64(seed)
	return &PCG{r: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

// NewSystem returns a source seeded from crypto/rand.
// If crypto/rand fails the seed comes from the runtime-seeded global generator.
func NewSystem() *PCG {
	seed, err := NewSeed()
	if err != nil {
		seed = rand.Int64()
	}
	return New(seed)
}

// IntN implements Source.
func (p *PCG) IntN(n int) int { return p.r.IntN(n) }

// Bool implements Source.
func (p *PCG) Bool() bool { return p.r.IntN(2) == 1 }

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("reading random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Shuffle returns a shuffled copy of items using Fisher-Yates.
// The input slice is not modified.
func Shuffle[T any](src Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
