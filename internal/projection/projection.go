package projection

import (
	"fmt"
	"math"

	"github.com/biovault/biovault-go/internal/crypto"
	"github.com/biovault/biovault-go/internal/prng"
)

// Transform turns a feature vector into length protected bits under key.
type Transform interface {
	Protect(vector []float64, key uint64, length int) ([]bool, error)
}

// Projection is the sign random projection transform.
type Projection struct{}

var _ Transform = Projection{}

// Protect implements Transform.
func (Projection) Protect(vector []float64, key uint64, length int) ([]bool, error) {
	if err := checkInput(vector, length); err != nil {
		return nil, err
	}

	seed, err := crypto.DeriveSeed(key, crypto.InfoProjection)
	if err != nil {
		return nil, err
	}
	rng, err := prng.NewKeyed(seed)
	if err != nil {
		return nil, fmt.Errorf("projection: seeding matrix: %w", err)
	}

	// Row-major len(vector) x length matrix, consumed row by row so the
	// whole matrix is never held in memory.
	acc := make([]float64, length)
	g := gaussian{next: rng.Uint64}
	for _, x := range vector {
		if x == 0 {
			g.skip(length)
			continue
		}
		for j := range acc {
			acc[j] += x * g.sample()
		}
	}

	bits := make([]bool, length)
	for j, s := range acc {
		bits[j] = s > 0
	}
	return bits, nil
}

// gaussian draws standard normal values by the Box-Muller transform, so the
// stream depends only on the underlying uint64 sequence.
type gaussian struct {
	next  func() uint64
	spare float64
	have  bool
}

func (g *gaussian) sample() float64 {
	if g.have {
		g.have = false
		return g.spare
	}
	// u1 in (0, 1], u2 in [0, 1).
	u1 := float64(g.next()>>11+1) / (1 << 53)
	u2 := float64(g.next()>>11) / (1 << 53)
	r := math.Sqrt(-2 * math.Log(u1))
	sin, cos := math.Sincos(2 * math.Pi * u2)
	g.spare, g.have = r*sin, true
	return r * cos
}

// skip advances the stream past n samples without computing them.
func (g *gaussian) skip(n int) {
	for ; n > 0; n-- {
		if g.have {
			g.have = false
			continue
		}
		g.next()
		g.next()
		g.have = true
	}
}

func checkInput(vector []float64, length int) error {
	if len(vector) == 0 {
		return ErrEmptyVector
	}
	if length <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	nonzero := false
	for i, x := range vector {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w at index %d", ErrNonFinite, i)
		}
		nonzero = nonzero || x != 0
	}
	if !nonzero {
		return ErrZeroVector
	}
	return nil
}
