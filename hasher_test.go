package biovault

import (
	"errors"
	"math"
	"testing"
)

func embedding(seed uint64, n int) []float64 {
	rng := testRand(seed)
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.NormFloat64()
	}
	return v
}

func newTestHasher(t *testing.T, opts ...HasherOption) *Hasher {
	t.Helper()
	h, err := NewHasher(opts...)
	if err != nil {
		t.Fatalf("NewHasher() error = %v", err)
	}
	return h
}

var strategies = []Strategy{StrategyProjection, StrategyScramble}

func TestHasher_Deterministic(t *testing.T) {
	v := embedding(1, 512)
	for _, s := range strategies {
		t.Run(string(s), func(t *testing.T) {
			h := newTestHasher(t, WithStrategy(s))
			a, err := h.Hash(v, 7)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			b, err := h.Hash(v, 7)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if !a.Equal(b) {
				t.Error("Hash() not deterministic")
			}
			if a.Len() != 256 {
				t.Errorf("Len() = %d, want 256", a.Len())
			}
		})
	}
}

func TestHasher_CancelableDense(t *testing.T) {
	const trials = 30
	for _, s := range strategies {
		t.Run(string(s), func(t *testing.T) {
			h := newTestHasher(t, WithStrategy(s))
			total := 0
			for i := 0; i < trials; i++ {
				v := embedding(uint64(100+i), 512)
				a, _ := h.Hash(v, uint64(2*i+1))
				b, _ := h.Hash(v, uint64(2*i+2))
				d, err := HammingDistance(a, b)
				if err != nil {
					t.Fatalf("HammingDistance() error = %v", err)
				}
				total += d
			}
			mean := float64(total) / trials
			if math.Abs(mean-128) > 10 {
				t.Errorf("mean Hamming distance = %.1f, want about 128", mean)
			}
		})
	}
}

func TestHasher_CancelableGrid(t *testing.T) {
	const trials = 8
	for _, s := range strategies {
		t.Run(string(s), func(t *testing.T) {
			h := newTestHasher(t, WithStrategy(s))
			total := 0
			for i := 0; i < trials; i++ {
				fs := OrientedMinutiae(syntheticMinutiae(testRand(uint64(200+i)), 40, 100, 500, 20)...)
				a, err := h.HashPoints(fs, uint64(3*i+1))
				if err != nil {
					t.Fatalf("HashPoints() error = %v", err)
				}
				b, _ := h.HashPoints(fs, uint64(3*i+2))
				d, _ := HammingDistance(a, b)
				total += d
			}
			mean := float64(total) / trials
			if math.Abs(mean-128) > 16 {
				t.Errorf("mean Hamming distance = %.1f, want about 128", mean)
			}
		})
	}
}

func TestHasher_MatchGenuineAndImpostor(t *testing.T) {
	h := newTestHasher(t, FaceHasherOptions()...)
	v := embedding(3, 128)
	noisy := make([]float64, len(v))
	rng := testRand(4)
	for i, x := range v {
		noisy[i] = x + 0.05*rng.NormFloat64()
	}

	enrolled, _ := h.Hash(v, 99)
	probe, _ := h.Hash(noisy, 99)
	m, err := h.Match(enrolled, probe)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if !m.Matched {
		t.Errorf("genuine Match() = %+v, want match", m)
	}

	other, _ := h.Hash(embedding(5, 128), 99)
	m, _ = h.Match(enrolled, other)
	if m.Matched {
		t.Errorf("impostor Match() = %+v, want no match", m)
	}

	revoked, _ := h.Hash(v, 100)
	m, _ = h.Match(enrolled, revoked)
	if m.Matched {
		t.Errorf("Match() across keys = %+v, want no match", m)
	}
}

func TestHasher_HashPointsNoiseTolerant(t *testing.T) {
	h := newTestHasher(t, EmbeddingHasherOptions()...)
	rng := testRand(6)
	pts := syntheticMinutiae(rng, 40, 100, 500, 20)

	enrolled, err := h.HashPoints(OrientedMinutiae(pts...), 5)
	if err != nil {
		t.Fatalf("HashPoints() error = %v", err)
	}
	probe, _ := h.HashPoints(OrientedMinutiae(jitter(rng, pts, 2)...), 5)

	m, err := h.Match(enrolled, probe)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if !m.Matched {
		t.Errorf("Match(jittered) = %+v, want match", m)
	}
}

func TestHasher_MatchSimilarity(t *testing.T) {
	h := newTestHasher(t, WithThreshold(0.5))
	a, _ := ParseBitString("11110000")
	b, _ := ParseBitString("11111111")

	m, err := h.Match(a, b)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if m.Distance != 4 || m.Similarity != 0.5 || m.Matched {
		t.Errorf("Match() = %+v, want distance 4, similarity 0.5, strict threshold", m)
	}
}

func TestHasher_Errors(t *testing.T) {
	h := newTestHasher(t)

	if _, err := h.Hash(nil, 1); !errors.Is(err, ErrInvalidVector) {
		t.Errorf("Hash(nil) error = %v, want ErrInvalidVector", err)
	}
	if _, err := h.Hash([]float64{1, math.NaN()}, 1); !errors.Is(err, ErrInvalidVector) {
		t.Errorf("Hash(NaN) error = %v, want ErrInvalidVector", err)
	}

	s := newTestHasher(t, WithStrategy(StrategyScramble))
	if _, err := s.Hash(embedding(1, 100), 1); !errors.Is(err, ErrInvalidVector) {
		t.Errorf("scramble Hash(short) error = %v, want ErrInvalidVector", err)
	}

	a, _ := h.Hash(embedding(1, 64), 1)
	f := newTestHasher(t, FaceHasherOptions()...)
	b, _ := f.Hash(embedding(1, 64), 1)
	if _, err := h.Match(a, b); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Match() error = %v, want ErrLengthMismatch", err)
	}
}

func TestHasher_RejectsKeyIndependentInput(t *testing.T) {
	h := newTestHasher(t)

	for _, key := range []uint64{1, 2} {
		if _, err := h.Hash(make([]float64, 64), key); !errors.Is(err, ErrInvalidVector) {
			t.Errorf("Hash(zeros, %d) error = %v, want ErrInvalidVector", key, err)
		}
	}

	tests := []struct {
		name string
		fs   FeatureSet
	}{
		{"empty", PlainPoints()},
		{"off grid", PlainPoints(Point(0, 300), Point(599, 300))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := h.HashPoints(tt.fs, 99); !errors.Is(err, ErrInsufficientFeatures) {
				t.Errorf("HashPoints() error = %v, want ErrInsufficientFeatures", err)
			}
		})
	}
}

func TestNewHasher_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []HasherOption
	}{
		{"strategy", []HasherOption{WithStrategy("rot13")}},
		{"length", []HasherOption{WithHashLength(0)}},
		{"threshold", []HasherOption{WithThreshold(1)}},
		{"grid", []HasherOption{WithGrid(0, 300, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewHasher(tt.opts...); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewHasher() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestGenerateKey(t *testing.T) {
	a, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	b, _ := GenerateKey()
	if a == b {
		t.Error("GenerateKey() repeated a key")
	}
	if _, err := GenerateSecret(); err != nil {
		t.Fatalf("GenerateSecret() error = %v", err)
	}
}
