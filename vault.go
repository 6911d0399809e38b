package biovault

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/biovault/biovault-go/internal/align"
	"github.com/biovault/biovault-go/internal/chaff"
	"github.com/biovault/biovault-go/internal/field"
	"github.com/biovault/biovault-go/internal/secretpoly"
	"github.com/biovault/biovault-go/internal/spatial"
)

// Engine locks secrets into fuzzy vaults and unlocks them with candidate
// feature sets. An Engine holds only configuration and is safe for
// concurrent use; every call draws from its own random generator.
type Engine struct {
	cfg engineConfig
	log *slog.Logger
}

// NewEngine creates an engine with the given options.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.minVaultSize == 0 {
		cfg.minVaultSize = 2*(cfg.degree+1) + 1
	}

	log := cfg.logger
	if log == nil {
		log = discardLogger()
	}
	return &Engine{cfg: cfg, log: log}, nil
}

func (c *engineConfig) validate() error {
	if c.degree < 1 || c.degree > secretpoly.MaxDegree {
		return &ConfigError{Option: "degree", Message: fmt.Sprintf("%d, must be in [1, %d]", c.degree, secretpoly.MaxDegree)}
	}
	floor := 2 * (c.degree + 1)
	switch {
	case c.vaultSize <= floor:
		return &ConfigError{Option: "vault size", Message: fmt.Sprintf("%d, must exceed 2*(degree+1) = %d", c.vaultSize, floor)}
	case c.minVaultSize != 0 && (c.minVaultSize <= floor || c.minVaultSize > c.vaultSize):
		return &ConfigError{Option: "min vault size", Message: fmt.Sprintf("%d, must be in (%d, %d]", c.minVaultSize, floor, c.vaultSize)}
	case c.chaffDistance < 1:
		return &ConfigError{Option: "chaff distance", Message: "must be at least 1 pixel"}
	case !(c.matchTolerance > 0):
		return &ConfigError{Option: "match tolerance", Message: "must be positive"}
	case c.ransacIterations < 1:
		return &ConfigError{Option: "RANSAC iterations", Message: "must be at least 1"}
	case !c.frame.toSpatial().Valid():
		return &ConfigError{Option: "frame", Message: fmt.Sprintf("%dx%d, height must be in [1, %d]", c.frame.Width, c.frame.Height, spatial.Scale)}
	case c.fillerMax < 1:
		return &ConfigError{Option: "filler max", Message: "must be at least 1"}
	case c.alignSweep < 0 || c.alignSweep > 180 || c.alignStep < 1:
		return &ConfigError{Option: "alignment", Message: "sweep must be in [0, 180] and step positive"}
	case !(c.alignRadius > 0) || c.alignMinScore < 0 || c.alignMinScore >= 1:
		return &ConfigError{Option: "alignment", Message: "radius must be positive and min score in [0, 1)"}
	case c.rng == nil:
		return &ConfigError{Option: "random source", Message: "is nil"}
	}
	return nil
}

// Degree returns the configured polynomial degree.
func (e *Engine) Degree() int { return e.cfg.degree }

// VaultSize returns the configured total vault size.
func (e *Engine) VaultSize() int { return e.cfg.vaultSize }

// VaultPoint is a stored (domain, range) pair.
type VaultPoint struct {
	U uint64
	V uint64
}

// Vault is a locked template. It never contains the secret, its checksum or
// the filler coefficients, and is immutable once created.
type Vault struct {
	degree int
	points []VaultPoint
	helper []FeaturePoint
}

// Degree returns the polynomial degree the vault was locked with.
func (v *Vault) Degree() int { return v.degree }

// Len returns the number of stored points.
func (v *Vault) Len() int { return len(v.points) }

// Points returns a copy of the stored points in storage order.
func (v *Vault) Points() []VaultPoint {
	out := make([]VaultPoint, len(v.points))
	copy(out, v.points)
	return out
}

// HasHelperData reports whether the vault carries an alignment reference.
func (v *Vault) HasHelperData() bool { return len(v.helper) > 0 }

// HelperData returns the alignment reference as an oriented set.
func (v *Vault) HelperData() FeatureSet {
	return OrientedMinutiae(v.helper...)
}

func (v *Vault) validate() error {
	if v == nil {
		return errors.New("nil vault")
	}
	if v.degree < 1 || v.degree > secretpoly.MaxDegree {
		return fmt.Errorf("degree %d", v.degree)
	}
	if floor := 2 * (v.degree + 1); len(v.points) <= floor {
		return fmt.Errorf("%d points, need more than %d", len(v.points), floor)
	}
	seen := make(map[uint64]struct{}, len(v.points))
	for i, p := range v.points {
		if p.V >= field.Modulus {
			return fmt.Errorf("point %d: range value outside field", i)
		}
		if _, ok := seen[p.U]; ok {
			return fmt.Errorf("point %d: duplicate domain value %d", i, p.U)
		}
		seen[p.U] = struct{}{}
	}
	return nil
}

// Lock binds secret to the feature set and returns the vault.
func (e *Engine) Lock(secret uint32, fs FeatureSet) (*Vault, error) {
	cfg := e.cfg
	if err := fs.Validate(cfg.frame); err != nil {
		return nil, &InputError{Op: "lock", Err: err}
	}

	points := fs.dedup()
	if len(points) < cfg.degree+1 {
		return nil, inputError("lock", ErrInsufficientFeatures,
			"%d distinct points, need %d", len(points), cfg.degree+1)
	}
	if len(points) >= cfg.vaultSize {
		return nil, inputError("lock", ErrTooManyFeatures,
			"%d distinct points, vault size %d", len(points), cfg.vaultSize)
	}

	rng, err := cfg.rng()
	if err != nil {
		return nil, fmt.Errorf("lock: %w", err)
	}

	poly, _, err := secretpoly.Encode(rng, secret, cfg.degree, cfg.fillerMax)
	if err != nil {
		return nil, fmt.Errorf("lock: %w", err)
	}

	genuine := make([]chaff.Point, len(points))
	for i, p := range points {
		u := spatial.Encode(p.X, p.Y)
		genuine[i] = chaff.Point{X: p.X, Y: p.Y, V: secretpoly.Evaluate(poly, u)}
	}

	decoys := chaff.Generate(rng, cfg.vaultSize-len(genuine), genuine, chaff.Config{
		Frame:       cfg.frame.toSpatial(),
		MinDistance: cfg.chaffDistance,
		Modulus:     field.Modulus,
	})

	all := make([]VaultPoint, 0, len(genuine)+len(decoys))
	for _, g := range genuine {
		all = append(all, VaultPoint{U: spatial.Encode(g.X, g.Y), V: g.V})
	}
	for _, d := range decoys {
		u := spatial.Encode(d.X, d.Y)
		if secretpoly.Evaluate(poly, u) == d.V {
			// A decoy on the polynomial would be a genuine point.
			continue
		}
		all = append(all, VaultPoint{U: u, V: d.V})
	}

	if len(all) < cfg.minVaultSize {
		return nil, inputError("lock", ErrVaultTooSmall,
			"%d points after chaff, need %d", len(all), cfg.minVaultSize)
	}
	if len(all) < cfg.vaultSize {
		e.log.Warn("vault below configured size",
			slog.Int("size", len(all)),
			slog.Int("configured", cfg.vaultSize))
	}

	rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })

	v := &Vault{degree: cfg.degree, points: all}
	if fs.Oriented() && cfg.helperData {
		v.helper = points
	}

	e.log.Debug("vault locked",
		slog.Int("genuine", len(genuine)),
		slog.Int("chaff", len(all)-len(genuine)),
		slog.Bool("helper", v.HasHelperData()))
	return v, nil
}

// UnlockResult is the outcome of an unlock attempt. A failed attempt is a
// normal result with Matched false, not an error.
type UnlockResult struct {
	Matched    bool
	Secret     uint32  // valid only when Matched
	Confidence float64 // 1 on success, 0 otherwise

	// Aligned reports whether the successful attempt used rotated candidate
	// coordinates.
	Aligned        bool
	AlignmentScore float64

	// Matches is the number of vault points selected by the candidate in the
	// last attempt; Iterations the RANSAC samples drawn across attempts.
	Matches    int
	Iterations int
}

// Unlock tries to recover the secret with a candidate feature set. For
// oriented candidates against a vault with helper data, an aligned attempt
// runs first and the raw coordinates are tried if it fails.
func (e *Engine) Unlock(v *Vault, candidate FeatureSet) (UnlockResult, error) {
	if err := v.validate(); err != nil {
		return UnlockResult{}, inputError("unlock", ErrInvalidVault, "%v", err)
	}
	if err := candidate.Validate(e.cfg.frame); err != nil {
		return UnlockResult{}, &InputError{Op: "unlock", Err: err}
	}

	var res UnlockResult
	if candidate.Len() == 0 {
		return res, nil
	}

	rng, err := e.cfg.rng()
	if err != nil {
		return res, fmt.Errorf("unlock: %w", err)
	}

	raw := make([]align.Point, candidate.Len())
	for i, p := range candidate.points {
		raw[i] = align.Point{X: float64(p.X), Y: float64(p.Y)}
	}

	if v.HasHelperData() && candidate.Oriented() {
		ref := make([]align.Point, len(v.helper))
		for i, p := range v.helper {
			ref[i] = align.Point{X: float64(p.X), Y: float64(p.Y)}
		}
		ar := align.Align(ref, raw, align.Config{
			SweepDeg: e.cfg.alignSweep,
			StepDeg:  e.cfg.alignStep,
			Radius:   e.cfg.alignRadius,
		})
		res.AlignmentScore = ar.Score

		e.log.Debug("alignment",
			slog.Float64("score", ar.Score),
			slog.Int("rotation", ar.RotationDeg))

		if ar.OK && ar.Score > e.cfg.alignMinScore {
			aligned := make([]align.Point, len(raw))
			for i, p := range raw {
				aligned[i] = ar.Apply(p)
			}
			if e.attempt(rng, v, aligned, &res) {
				res.Aligned = true
				return res, nil
			}
		}
	}

	e.attempt(rng, v, raw, &res)
	return res, nil
}

// attempt runs matching and RANSAC recovery for one set of candidate
// coordinates and records the outcome in res.
func (e *Engine) attempt(rng *rand.Rand, v *Vault, cand []align.Point, res *UnlockResult) bool {
	matches := e.match(v, cand)
	res.Matches = len(matches)

	d := v.degree
	if len(matches) < d+2 {
		e.log.Debug("too few matches", slog.Int("matches", len(matches)), slog.Int("need", d+2))
		return false
	}

	idx := make([]int, len(matches))
	for i := range idx {
		idx[i] = i
	}
	sample := make([]secretpoly.Point, d+1)

	for iter := 0; iter < e.cfg.ransacIterations; iter++ {
		res.Iterations++

		// Partial Fisher-Yates: the first d+1 slots are a uniform sample.
		for i := range sample {
			j := i + rng.IntN(len(idx)-i)
			idx[i], idx[j] = idx[j], idx[i]
			sample[i] = matches[idx[i]]
		}

		c, err := secretpoly.Recover(sample, d)
		if err != nil {
			// Degenerate sample, e.g. duplicate domain values.
			continue
		}
		if secretpoly.Inliers(c.Poly, matches) < d+3 {
			continue
		}
		if !c.Valid() {
			continue
		}

		res.Matched = true
		res.Secret = c.Secret
		res.Confidence = 1
		e.log.Debug("vault unlocked",
			slog.Int("matches", len(matches)),
			slog.Int("iterations", res.Iterations))
		return true
	}

	e.log.Debug("RANSAC budget exhausted", slog.Int("matches", len(matches)))
	return false
}

// match returns the vault points that have a candidate within the match
// tolerance, deduplicated by (u, v).
func (e *Engine) match(v *Vault, cand []align.Point) []secretpoly.Point {
	tol2 := e.cfg.matchTolerance * e.cfg.matchTolerance
	seen := make(map[VaultPoint]struct{})
	var out []secretpoly.Point

	for _, vp := range v.points {
		x, y := spatial.Decode(vp.U)
		fx, fy := float64(x), float64(y)
		for _, c := range cand {
			dx, dy := c.X-fx, c.Y-fy
			if dx*dx+dy*dy > tol2 {
				continue
			}
			if _, ok := seen[vp]; !ok {
				seen[vp] = struct{}{}
				out = append(out, secretpoly.Point{U: vp.U, V: vp.V})
			}
			break
		}
	}
	return out
}
