package biovault

import (
	"log/slog"

	"github.com/biovault/biovault-go/internal/align"
	"github.com/biovault/biovault-go/internal/chaff"
	"github.com/biovault/biovault-go/internal/grid"
	"github.com/biovault/biovault-go/internal/prng"
	"github.com/biovault/biovault-go/internal/secretpoly"
)

// Strategy selects the cancelable transform used by a Hasher.
type Strategy string

const (
	// StrategyProjection binarizes a keyed Gaussian random projection (BioHash).
	StrategyProjection Strategy = "projection"
	// StrategyScramble median-binarizes the vector, applies a keyed
	// permutation and XORs a keyed mask.
	StrategyScramble Strategy = "scramble"
)

const (
	defaultDegree           = 8
	defaultVaultSize        = 250
	defaultMatchTolerance   = 10.0
	defaultRANSACIterations = 2000
	defaultAlignMinScore    = 0.1

	defaultHashLength = 256
	defaultThreshold  = 0.65

	faceHashLength = 128
	faceThreshold  = 0.85
)

// engineConfig holds configuration for the vault engine.
type engineConfig struct {
	degree           int
	vaultSize        int
	minVaultSize     int // 0 means 2*(degree+1)+1
	chaffDistance    int
	matchTolerance   float64
	ransacIterations int
	frame            Frame
	fillerMax        uint64
	helperData       bool

	// Alignment
	alignSweep    int
	alignStep     int
	alignRadius   float64
	alignMinScore float64

	rng    prng.Factory
	logger *slog.Logger
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		degree:           defaultDegree,
		vaultSize:        defaultVaultSize,
		chaffDistance:    chaff.DefaultMinDistance,
		matchTolerance:   defaultMatchTolerance,
		ransacIterations: defaultRANSACIterations,
		frame:            DefaultFrame(),
		fillerMax:        secretpoly.DefaultFillerMax,
		helperData:       true,
		alignSweep:       align.DefaultSweepDeg,
		alignStep:        align.DefaultStepDeg,
		alignRadius:      align.DefaultRadius,
		alignMinScore:    defaultAlignMinScore,
		rng:              prng.Entropy(),
	}
}

// hasherConfig holds configuration for a Hasher.
type hasherConfig struct {
	length    int
	threshold float64
	strategy  Strategy
	grid      grid.Config
}

func defaultHasherConfig() hasherConfig {
	return hasherConfig{
		length:    defaultHashLength,
		threshold: defaultThreshold,
		strategy:  StrategyProjection,
		grid:      grid.DefaultConfig(),
	}
}

// authConfig holds the collaborators of an Authenticator.
type authConfig struct {
	face         VectorExtractor
	finger       PointSetExtractor
	faceHasher   *Hasher
	fingerHasher *Hasher
	logger       *slog.Logger
}

// Option configures the vault engine.
type Option func(*engineConfig)

// HasherOption configures a Hasher.
type HasherOption func(*hasherConfig)

// AuthOption configures an Authenticator.
type AuthOption func(*authConfig)

// WithDegree sets the secret polynomial degree, at most 256. Unlocking needs
// degree+1 genuine matches.
func WithDegree(d int) Option {
	return func(c *engineConfig) {
		c.degree = d
	}
}

// WithVaultSize sets the total number of genuine plus chaff points.
func WithVaultSize(n int) Option {
	return func(c *engineConfig) {
		c.vaultSize = n
	}
}

// WithMinVaultSize sets the smallest vault Lock accepts when chaff placement
// runs out of room. It must exceed 2*(degree+1).
func WithMinVaultSize(n int) Option {
	return func(c *engineConfig) {
		c.minVaultSize = n
	}
}

// WithChaffDistance sets the minimum L-infinity pixel distance between a
// chaff point and any other vault point.
func WithChaffDistance(px int) Option {
	return func(c *engineConfig) {
		c.chaffDistance = px
	}
}

// WithMatchTolerance sets the Euclidean pixel radius within which a
// candidate point selects a vault point.
func WithMatchTolerance(px float64) Option {
	return func(c *engineConfig) {
		c.matchTolerance = px
	}
}

// WithRANSACIterations bounds the number of recovery samples per unlock
// attempt.
func WithRANSACIterations(n int) Option {
	return func(c *engineConfig) {
		c.ransacIterations = n
	}
}

// WithFrame sets the image frame. Height must not exceed 1000 pixels.
func WithFrame(width, height int) Option {
	return func(c *engineConfig) {
		c.frame = Frame{Width: width, Height: height}
	}
}

// WithAlignment configures the rotation search used for oriented sets.
// Alignment results scoring at or below minScore are ignored.
func WithAlignment(sweepDeg, stepDeg int, radius, minScore float64) Option {
	return func(c *engineConfig) {
		c.alignSweep = sweepDeg
		c.alignStep = stepDeg
		c.alignRadius = radius
		c.alignMinScore = minScore
	}
}

// WithHelperData controls whether oriented enrollment sets are stored in the
// vault for alignment. Helper data reveals the genuine point locations to
// anyone holding the vault; disable it when candidates are pre-aligned.
// Enrolled points closer together than the chaff distance are likewise
// recognisable as genuine whether or not helper data is kept.
func WithHelperData(enabled bool) Option {
	return func(c *engineConfig) {
		c.helperData = enabled
	}
}

// WithFillerMax sets the upper bound of the random filler coefficients.
func WithFillerMax(n uint64) Option {
	return func(c *engineConfig) {
		c.fillerMax = n
	}
}

// WithRandomSeed makes every Lock and Unlock call replay the same random
// stream. For tests only.
func WithRandomSeed(seed uint64) Option {
	return func(c *engineConfig) {
		c.rng = prng.Seeded(seed)
	}
}

// WithLogger sets a logger for debug diagnostics. Secrets and coefficients
// are never logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *engineConfig) {
		c.logger = l
	}
}

// WithHashLength sets the protected hash length in bits.
func WithHashLength(bits int) HasherOption {
	return func(c *hasherConfig) {
		c.length = bits
	}
}

// WithThreshold sets the similarity above which two hashes match.
func WithThreshold(t float64) HasherOption {
	return func(c *hasherConfig) {
		c.threshold = t
	}
}

// WithStrategy selects the cancelable transform.
func WithStrategy(s Strategy) HasherOption {
	return func(c *hasherConfig) {
		c.strategy = s
	}
}

// WithGrid sets the density grid used by HashPoints: cells per side, pixel
// span mapped onto the grid and blur sigma in cells.
func WithGrid(size int, span, sigma float64) HasherOption {
	return func(c *hasherConfig) {
		c.grid = grid.Config{Size: size, Span: span, Sigma: sigma}
	}
}

// FaceHasherOptions returns the 128-bit, 0.85 threshold preset used for face
// embeddings.
func FaceHasherOptions() []HasherOption {
	return []HasherOption{WithHashLength(faceHashLength), WithThreshold(faceThreshold)}
}

// EmbeddingHasherOptions returns the 256-bit, 0.65 threshold preset used for
// embeddings and fingerprint density grids.
func EmbeddingHasherOptions() []HasherOption {
	return []HasherOption{WithHashLength(defaultHashLength), WithThreshold(defaultThreshold)}
}

// WithFaceExtractor sets the face embedding extractor.
func WithFaceExtractor(e VectorExtractor) AuthOption {
	return func(c *authConfig) {
		c.face = e
	}
}

// WithFingerExtractor sets the fingerprint minutiae extractor.
func WithFingerExtractor(e PointSetExtractor) AuthOption {
	return func(c *authConfig) {
		c.finger = e
	}
}

// WithFaceHasher overrides the face hasher.
func WithFaceHasher(h *Hasher) AuthOption {
	return func(c *authConfig) {
		c.faceHasher = h
	}
}

// WithFingerHasher overrides the fingerprint density grid hasher.
func WithFingerHasher(h *Hasher) AuthOption {
	return func(c *authConfig) {
		c.fingerHasher = h
	}
}

// WithAuthLogger sets a logger for per-modality decisions.
func WithAuthLogger(l *slog.Logger) AuthOption {
	return func(c *authConfig) {
		c.logger = l
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
