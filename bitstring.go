package biovault

import (
	"fmt"
	"math/big"
	"math/bits"
	"strings"

	"github.com/biovault/biovault-go/internal/crypto"
)

// BitString is a fixed-length protected hash. Bit 0 is the most significant
// bit of the packed form and of Int().
type BitString struct {
	n      int
	packed []byte
}

func newBitString(b []bool) BitString {
	packed := make([]byte, (len(b)+7)/8)
	for i, set := range b {
		if set {
			packed[i/8] |= 0x80 >> (i % 8)
		}
	}
	return BitString{n: len(b), packed: packed}
}

// Len returns the declared length in bits.
func (b BitString) Len() int { return b.n }

// Bit reports whether bit i is set. It panics if i is outside [0, Len()).
func (b BitString) Bit(i int) bool {
	if i < 0 || i >= b.n {
		panic(fmt.Sprintf("biovault: bit index %d out of range [0, %d)", i, b.n))
	}
	return b.packed[i/8]&(0x80>>(i%8)) != 0
}

// Bits returns the bits in order.
func (b BitString) Bits() []bool {
	out := make([]bool, b.n)
	for i := range out {
		out[i] = b.Bit(i)
	}
	return out
}

// Bytes returns a copy of the packed bits, zero padded to a whole byte.
func (b BitString) Bytes() []byte {
	out := make([]byte, len(b.packed))
	copy(out, b.packed)
	return out
}

// String returns the bits as '0' and '1' characters.
func (b BitString) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		if b.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Int returns the big-integer packing, first bit most significant.
func (b BitString) Int() *big.Int {
	x := new(big.Int).SetBytes(b.packed)
	if pad := len(b.packed)*8 - b.n; pad > 0 {
		x.Rsh(x, uint(pad))
	}
	return x
}

// Base64URL returns the packed bits as unpadded URL-safe base64.
func (b BitString) Base64URL() string {
	return crypto.ToBase64URL(b.packed)
}

// Equal reports whether both strings have the same length and bits.
func (b BitString) Equal(o BitString) bool {
	if b.n != o.n {
		return false
	}
	d, _ := HammingDistance(b, o)
	return d == 0
}

// MarshalText implements encoding.TextMarshaler.
func (b BitString) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BitString) UnmarshalText(text []byte) error {
	parsed, err := ParseBitString(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// HammingDistance counts differing bits. Strings of different lengths are
// not comparable.
func HammingDistance(a, b BitString) (int, error) {
	if a.n != b.n {
		return 0, inputError("match", ErrLengthMismatch, "%d and %d bits", a.n, b.n)
	}
	d := 0
	for i := range a.packed {
		d += bits.OnesCount8(a.packed[i] ^ b.packed[i])
	}
	return d, nil
}

// ParseBitString parses a string of '0' and '1' characters.
func ParseBitString(s string) (BitString, error) {
	b := make([]bool, len(s))
	for i, r := range s {
		switch r {
		case '0':
		case '1':
			b[i] = true
		default:
			return BitString{}, fmt.Errorf("%w: character %q at %d", ErrInvalidImportData, r, i)
		}
	}
	return newBitString(b), nil
}

// BitStringFromBase64URL decodes n bits packed by Base64URL.
func BitStringFromBase64URL(s string, n int) (BitString, error) {
	packed, err := crypto.DecodeBase64(s)
	if err != nil {
		return BitString{}, fmt.Errorf("%w: %v", ErrInvalidImportData, err)
	}
	if n < 0 || len(packed) != (n+7)/8 {
		return BitString{}, fmt.Errorf("%w: %d bytes for %d bits", ErrInvalidImportData, len(packed), n)
	}
	if pad := len(packed)*8 - n; pad > 0 && packed[len(packed)-1]&(1<<pad-1) != 0 {
		return BitString{}, fmt.Errorf("%w: nonzero padding bits", ErrInvalidImportData)
	}
	return BitString{n: n, packed: packed}, nil
}

// BitStringFromInt unpacks the n low bits of x, most significant first.
func BitStringFromInt(x *big.Int, n int) (BitString, error) {
	if x == nil {
		return BitString{}, fmt.Errorf("%w: nil integer", ErrInvalidImportData)
	}
	if x.Sign() < 0 || x.BitLen() > n {
		return BitString{}, fmt.Errorf("%w: integer does not fit in %d bits", ErrInvalidImportData, n)
	}
	b := make([]bool, n)
	for i := range b {
		b[i] = x.Bit(n-1-i) == 1
	}
	return newBitString(b), nil
}
