package projection

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"slices"

	"github.com/cloudflare/circl/xof"

	"github.com/biovault/biovault-go/internal/crypto"
)

// Scramble is the median binarization, permutation and XOR mask transform.
type Scramble struct{}

var _ Transform = Scramble{}

// Protect implements Transform. length must not exceed len(vector).
func (Scramble) Protect(vector []float64, key uint64, length int) ([]bool, error) {
	if err := checkInput(vector, length); err != nil {
		return nil, err
	}
	if length > len(vector) {
		return nil, fmt.Errorf("%w: %d > %d", ErrVectorTooShort, length, len(vector))
	}

	code := Binarize(vector)

	seed, err := crypto.DeriveSeed(key, crypto.InfoScramble)
	if err != nil {
		return nil, err
	}
	s := newStream(seed)

	perm := s.permutation(len(code))
	out := make([]bool, length)
	var mask uint64
	for i := range out {
		if i%64 == 0 {
			mask = s.uint64()
		}
		out[i] = code[perm[i]] != (mask>>(i%64)&1 == 1)
	}
	return out, nil
}

// Binarize maps each component to true when it is strictly above the median.
func Binarize(vector []float64) []bool {
	sorted := slices.Clone(vector)
	slices.Sort(sorted)
	n := len(sorted)
	med := sorted[n/2]
	if n%2 == 0 {
		med = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	code := make([]bool, n)
	for i, x := range vector {
		code[i] = x > med
	}
	return code
}

// stream is a SHAKE256 output stream keyed by a derived seed.
type stream struct {
	r   io.Reader
	buf [8]byte
}

func newStream(seed []byte) *stream {
	x := xof.SHAKE256.New()
	_, _ = x.Write(seed)
	return &stream{r: x}
}

func (s *stream) uint64() uint64 {
	// SHAKE output is unbounded; Read never fails.
	_, _ = io.ReadFull(s.r, s.buf[:])
	return binary.LittleEndian.Uint64(s.buf[:])
}

// intn returns a uniform value in [0, n) by multiply-and-reject.
func (s *stream) intn(n uint64) uint64 {
	hi, lo := bits.Mul64(s.uint64(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(s.uint64(), n)
		}
	}
	return hi
}

// permutation returns a Fisher-Yates shuffle of [0, n).
func (s *stream) permutation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := int(s.intn(uint64(i + 1)))
		p[i], p[j] = p[j], p[i]
	}
	return p
}
