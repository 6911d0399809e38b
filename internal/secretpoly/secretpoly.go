// Package secretpoly binds a 32-bit secret to a polynomial over GF(p) and
// recovers it from sampled points.
//
// The encoded polynomial is [secret, crc16(secret), r2, ..., rd]. A recovered
// polynomial is accepted only when its two low-order coefficients form a
// secret/checksum pair, so a wrong point sample is rejected with probability
// about 1 - 2^-16 without the secret ever being stored.
package secretpoly

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/biovault/biovault-go/internal/checksum"
	"github.com/biovault/biovault-go/internal/field"
)

const (
	// DefaultFillerMax is the upper bound of the filler coefficient range [1, max].
	DefaultFillerMax = 1000

	// MaxDegree bounds the polynomial degree. A vault needs more than
	// 2*(degree+1) points, far beyond what a frame can hold at this degree.
	MaxDegree = 256
)

var (
	// ErrDegree is returned for a degree outside [1, MaxDegree].
	ErrDegree = errors.New("secretpoly: degree out of range")

	// ErrPointCount is returned when recovery is not given exactly degree+1 points.
	ErrPointCount = errors.New("secretpoly: need exactly degree+1 points")
)

// Point is a vault coordinate pair: domain u and range v = P(u).
type Point struct {
	U uint64
	V uint64
}

// Encode builds the secret polynomial of the given degree. Filler
// coefficients are drawn from rng in [1, fillerMax]; fillerMax is clamped to
// the field. rng must be seeded from entropy in production, never from the
// secret.
func Encode(rng *rand.Rand, secret uint32, degree int, fillerMax uint64) (field.Poly, uint16, error) {
	if degree < 1 || degree > MaxDegree {
		return nil, 0, ErrDegree
	}
	if fillerMax == 0 || fillerMax >= field.Modulus {
		fillerMax = field.Modulus - 1
	}

	sum := checksum.Compute(secret)
	p := make(field.Poly, degree+1)
	p[0] = uint64(secret)
	p[1] = uint64(sum)
	for i := 2; i <= degree; i++ {
		p[i] = 1 + rng.Uint64N(fillerMax)
	}
	return p, sum, nil
}

// Evaluate returns P(u) with u reduced into the field.
func Evaluate(p field.Poly, u uint64) uint64 {
	return p.Eval(field.Reduce(u))
}

// Candidate is the result of interpolating one point sample.
type Candidate struct {
	Poly     field.Poly
	Secret   uint32
	Checksum uint16

	// inRange is false when c0 or c1 exceed the secret/checksum widths;
	// such a candidate can never be genuine.
	inRange bool
}

// Valid reports whether the candidate's checksum matches its secret.
func (c Candidate) Valid() bool {
	return c.inRange && checksum.Verify(c.Secret, c.Checksum)
}

// Recover interpolates the polynomial through exactly degree+1 points and
// extracts the secret and checksum coefficients. Duplicate domain values
// yield field.ErrDuplicateNode.
func Recover(points []Point, degree int) (Candidate, error) {
	if degree < 1 || degree > MaxDegree {
		return Candidate{}, ErrDegree
	}
	if len(points) != degree+1 {
		return Candidate{}, fmt.Errorf("%w: got %d, degree %d", ErrPointCount, len(points), degree)
	}

	xs := make([]uint64, len(points))
	ys := make([]uint64, len(points))
	for i, pt := range points {
		xs[i], ys[i] = pt.U, pt.V
	}

	p, err := field.Interpolate(xs, ys)
	if err != nil {
		return Candidate{}, err
	}

	c0, c1 := p.Coefficient(0), p.Coefficient(1)
	return Candidate{
		Poly:     p,
		Secret:   checksum.Reduce(c0),
		Checksum: uint16(c1),
		inRange:  c0 <= math.MaxUint32 && c1 <= math.MaxUint16,
	}, nil
}

// Inliers counts the points that lie exactly on p.
func Inliers(p field.Poly, points []Point) int {
	n := 0
	for _, pt := range points {
		if Evaluate(p, pt.U) == pt.V {
			n++
		}
	}
	return n
}
