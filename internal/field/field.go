package field

import (
	"math/bits"

	"github.com/tuneinsight/lattigo/v4/ring"
)

// Modulus is the Mersenne prime 2^61 - 1.
const Modulus uint64 = 1<<61 - 1

// Reduce maps an arbitrary uint64 to its canonical residue.
func Reduce(a uint64) uint64 {
	return a % Modulus
}

// Add returns a + b mod p. Inputs must be canonical.
func Add(a, b uint64) uint64 {
	s := a + b
	if s >= Modulus {
		s -= Modulus
	}
	return s
}

// Sub returns a - b mod p. Inputs must be canonical.
func Sub(a, b uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + Modulus - b
}

// Mul returns a * b mod p. Inputs must be canonical.
func Mul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	// hi < 2^58 < p, so the division cannot overflow.
	_, r := bits.Div64(hi, lo, Modulus)
	return r
}

// Inv returns the multiplicative inverse of a via Fermat's little theorem.
func Inv(a uint64) (uint64, error) {
	a = Reduce(a)
	if a == 0 {
		return 0, ErrZeroInverse
	}
	return ring.ModExp(a, Modulus-2, Modulus), nil
}
