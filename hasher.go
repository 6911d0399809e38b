package biovault

import (
	"errors"
	"fmt"

	"github.com/biovault/biovault-go/internal/crypto"
	"github.com/biovault/biovault-go/internal/grid"
	"github.com/biovault/biovault-go/internal/projection"
)

// Hasher produces cancelable protected hashes. The same (vector, key) always
// yields the same hash; hashes of one vector under different keys are
// uncorrelated, so a leaked hash is revoked by issuing a new key.
type Hasher struct {
	cfg       hasherConfig
	transform projection.Transform
}

// MatchResult is the comparison of two protected hashes.
type MatchResult struct {
	Matched    bool
	Similarity float64 // 1 - Hamming distance / length
	Distance   int
}

// NewHasher creates a hasher with the given options.
func NewHasher(opts ...HasherOption) (*Hasher, error) {
	cfg := defaultHasherConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &Hasher{cfg: cfg}
	switch cfg.strategy {
	case StrategyProjection:
		h.transform = projection.Projection{}
	case StrategyScramble:
		h.transform = projection.Scramble{}
	default:
		return nil, &ConfigError{Option: "strategy", Message: fmt.Sprintf("unknown strategy %q", cfg.strategy)}
	}

	if cfg.length < 1 {
		return nil, &ConfigError{Option: "hash length", Message: "must be at least 1 bit"}
	}
	if cfg.threshold < 0 || cfg.threshold >= 1 {
		return nil, &ConfigError{Option: "threshold", Message: fmt.Sprintf("%v, must be in [0, 1)", cfg.threshold)}
	}
	if err := cfg.grid.Validate(); err != nil {
		return nil, &ConfigError{Option: "grid", Message: err.Error()}
	}
	return h, nil
}

// Length returns the hash length in bits.
func (h *Hasher) Length() int { return h.cfg.length }

// Threshold returns the match threshold.
func (h *Hasher) Threshold() float64 { return h.cfg.threshold }

// Strategy returns the transform strategy.
func (h *Hasher) Strategy() Strategy { return h.cfg.strategy }

// Hash protects a dense feature vector under key.
func (h *Hasher) Hash(vector []float64, key uint64) (BitString, error) {
	b, err := h.transform.Protect(vector, key, h.cfg.length)
	if err != nil {
		return BitString{}, hashError(err)
	}
	return newBitString(b), nil
}

// HashPoints rasterizes a point set into the density grid and protects the
// flattened grid under key. Points without an angle only contribute to the
// density channel.
func (h *Hasher) HashPoints(fs FeatureSet, key uint64) (BitString, error) {
	pts := make([]grid.Point, len(fs.points))
	for i, p := range fs.points {
		pts[i] = grid.Point{X: float64(p.X), Y: float64(p.Y), Angle: p.Angle, HasAngle: p.HasAngle}
	}
	vector, err := grid.Rasterize(pts, h.cfg.grid)
	if errors.Is(err, grid.ErrNoPoints) {
		return BitString{}, inputError("hash", ErrInsufficientFeatures, "no point inside the density grid")
	}
	if err != nil {
		return BitString{}, hashError(err)
	}
	return h.Hash(vector, key)
}

// Match compares two hashes made with the same key and length.
func (h *Hasher) Match(a, b BitString) (MatchResult, error) {
	d, err := HammingDistance(a, b)
	if err != nil {
		return MatchResult{}, err
	}
	if a.n == 0 {
		return MatchResult{}, inputError("match", ErrLengthMismatch, "empty hashes")
	}
	sim := 1 - float64(d)/float64(a.n)
	return MatchResult{Matched: sim > h.cfg.threshold, Similarity: sim, Distance: d}, nil
}

func hashError(err error) error {
	switch {
	case errors.Is(err, projection.ErrEmptyVector),
		errors.Is(err, projection.ErrNonFinite),
		errors.Is(err, projection.ErrZeroVector),
		errors.Is(err, projection.ErrVectorTooShort):
		return inputError("hash", ErrInvalidVector, "%v", err)
	}
	return fmt.Errorf("hash: %w", err)
}

// GenerateKey returns a fresh random 64-bit template key.
func GenerateKey() (uint64, error) {
	return crypto.GenerateKey()
}

// GenerateSecret returns a fresh random vault secret.
func GenerateSecret() (uint32, error) {
	return crypto.GenerateSecret()
}
