// Package prng provides per-call pseudo-random generators backed by the
// lattigo keyed PRNG. Callers create one generator per operation; nothing in
// this package is shared between goroutines.
package prng

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/tuneinsight/lattigo/v4/utils"
)

const bufSize = 1024

// Source adapts a lattigo PRNG to the math/rand/v2 Source interface. Output
// is read from the PRNG in blocks of bufSize bytes.
type Source struct {
	prng utils.PRNG
	buf  [bufSize]byte
	pos  int
}

func newSource(p utils.PRNG) *Source {
	return &Source{prng: p, pos: bufSize}
}

// Uint64 returns the next 8 bytes of the stream as a little-endian integer.
func (s *Source) Uint64() uint64 {
	if s.pos == bufSize {
		if _, err := s.prng.Read(s.buf[:]); err != nil {
			// The underlying XOF has a practically unbounded output length.
			panic(fmt.Sprintf("prng: read failed: %v", err))
		}
		s.pos = 0
	}
	v := binary.LittleEndian.Uint64(s.buf[s.pos:])
	s.pos += 8
	return v
}

// New returns a generator keyed from process entropy.
func New() (*rand.Rand, error) {
	p, err := utils.NewPRNG()
	if err != nil {
		return nil, fmt.Errorf("prng: seed from entropy: %w", err)
	}
	return rand.New(newSource(p)), nil
}

// NewKeyed returns a generator whose stream is fully determined by key.
func NewKeyed(key []byte) (*rand.Rand, error) {
	p, err := utils.NewKeyedPRNG(key)
	if err != nil {
		return nil, fmt.Errorf("prng: keyed seed: %w", err)
	}
	return rand.New(newSource(p)), nil
}

// Factory creates a fresh generator for a single operation.
type Factory func() (*rand.Rand, error)

// Entropy is the production Factory.
func Entropy() Factory {
	return New
}

// Seeded returns a Factory whose generators all replay the stream derived
// from seed. Intended for deterministic tests.
func Seeded(seed uint64) Factory {
	key := make([]byte, 8)
	binary.LittleEndian.PutUint64(key, seed)
	return func() (*rand.Rand, error) {
		return NewKeyed(key)
	}
}
