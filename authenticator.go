package biovault

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Modality names a biometric source.
type Modality string

const (
	// ModalityFace is a face embedding protected by a projection hash.
	ModalityFace Modality = "face"
	// ModalityFinger is a minutiae set protected by a fuzzy vault and a
	// density grid hash.
	ModalityFinger Modality = "finger"
)

// VectorExtractor turns a raw sample into a dense feature vector.
type VectorExtractor interface {
	ExtractVector(ctx context.Context, sample []byte) ([]float64, error)
}

// PointSetExtractor turns a raw sample into a feature point set.
type PointSetExtractor interface {
	ExtractPoints(ctx context.Context, sample []byte) (FeatureSet, error)
}

// Sample holds the raw captures presented for one enrollment or
// verification. Nil fields are not supplied.
type Sample struct {
	Face   []byte
	Finger []byte
}

// Enrollment is the persisted, protected template of one subject. It holds
// no raw biometric data and no secret.
type Enrollment struct {
	Key         uint64     `json:"key"`
	FaceHash    *BitString `json:"faceHash,omitempty"`
	FingerVault *Vault     `json:"fingerVault,omitempty"`
	FingerHash  *BitString `json:"fingerHash,omitempty"`
}

// ModalityResult is the verdict for one modality.
type ModalityResult struct {
	Modality   Modality
	Matched    bool
	Similarity float64

	// Fingerprint only.
	VaultUnlocked bool
	Vault         UnlockResult
}

// Decision is the combined verification outcome. Accepted is true only when
// every supplied modality matched.
type Decision struct {
	Accepted bool
	Results  []ModalityResult

	// Secret is the vault secret, set when the fingerprint vault unlocked.
	Secret    uint32
	HasSecret bool
}

// Authenticator runs the enrollment and verification workflow over
// caller-supplied extractors.
type Authenticator struct {
	engine *Engine
	cfg    authConfig
	log    *slog.Logger
}

// NewAuthenticator creates an authenticator around engine.
func NewAuthenticator(engine *Engine, opts ...AuthOption) (*Authenticator, error) {
	if engine == nil {
		return nil, &ConfigError{Option: "engine", Message: "is nil"}
	}

	cfg := authConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.face == nil && cfg.finger == nil {
		return nil, &ConfigError{Option: "extractors", Message: "at least one extractor is required"}
	}

	var err error
	if cfg.faceHasher == nil {
		if cfg.faceHasher, err = NewHasher(FaceHasherOptions()...); err != nil {
			return nil, err
		}
	}
	if cfg.fingerHasher == nil {
		if cfg.fingerHasher, err = NewHasher(EmbeddingHasherOptions()...); err != nil {
			return nil, err
		}
	}

	log := cfg.logger
	if log == nil {
		log = discardLogger()
	}
	return &Authenticator{engine: engine, cfg: cfg, log: log}, nil
}

// Enroll protects every supplied modality under a fresh key and, for the
// fingerprint, a fresh vault secret.
func (a *Authenticator) Enroll(ctx context.Context, s Sample) (*Enrollment, error) {
	if err := a.checkSample("enroll", s, nil); err != nil {
		return nil, err
	}

	key, err := GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("enroll: %w", err)
	}
	enr := &Enrollment{Key: key}

	if s.Face != nil {
		vec, err := a.cfg.face.ExtractVector(ctx, s.Face)
		if err != nil {
			return nil, &ExtractionError{Modality: ModalityFace, Err: err}
		}
		h, err := a.cfg.faceHasher.Hash(vec, key)
		if err != nil {
			return nil, err
		}
		enr.FaceHash = &h
	}

	if s.Finger != nil {
		fs, err := a.cfg.finger.ExtractPoints(ctx, s.Finger)
		if err != nil {
			return nil, &ExtractionError{Modality: ModalityFinger, Err: err}
		}
		secret, err := GenerateSecret()
		if err != nil {
			return nil, fmt.Errorf("enroll: %w", err)
		}
		v, err := a.engine.Lock(secret, fs)
		if err != nil {
			return nil, err
		}
		h, err := a.cfg.fingerHasher.HashPoints(fs, key)
		if err != nil {
			return nil, err
		}
		enr.FingerVault = v
		enr.FingerHash = &h
	}

	a.log.Debug("enrolled",
		slog.Bool("face", enr.FaceHash != nil),
		slog.Bool("finger", enr.FingerVault != nil))
	return enr, nil
}

// Verify checks every supplied modality against the enrollment. A rejected
// subject is a Decision with Accepted false, not an error.
func (a *Authenticator) Verify(ctx context.Context, enr *Enrollment, s Sample) (*Decision, error) {
	if enr == nil {
		return nil, inputError("verify", ErrMissingModality, "nil enrollment")
	}
	if err := a.checkSample("verify", s, enr); err != nil {
		return nil, err
	}

	d := &Decision{Accepted: true}

	if s.Face != nil {
		vec, err := a.cfg.face.ExtractVector(ctx, s.Face)
		if err != nil {
			return nil, &ExtractionError{Modality: ModalityFace, Err: err}
		}
		h, err := a.cfg.faceHasher.Hash(vec, enr.Key)
		if err != nil {
			return nil, err
		}
		m, err := a.cfg.faceHasher.Match(h, *enr.FaceHash)
		if err != nil {
			return nil, err
		}
		d.Results = append(d.Results, ModalityResult{
			Modality:   ModalityFace,
			Matched:    m.Matched,
			Similarity: m.Similarity,
		})
		d.Accepted = d.Accepted && m.Matched
	}

	if s.Finger != nil {
		fs, err := a.cfg.finger.ExtractPoints(ctx, s.Finger)
		if err != nil {
			return nil, &ExtractionError{Modality: ModalityFinger, Err: err}
		}
		ur, err := a.engine.Unlock(enr.FingerVault, fs)
		if err != nil {
			return nil, err
		}
		// A probe with nothing on the density grid cannot match.
		var m MatchResult
		h, err := a.cfg.fingerHasher.HashPoints(fs, enr.Key)
		switch {
		case errors.Is(err, ErrInsufficientFeatures):
		case err != nil:
			return nil, err
		default:
			if m, err = a.cfg.fingerHasher.Match(h, *enr.FingerHash); err != nil {
				return nil, err
			}
		}

		matched := ur.Matched && m.Matched
		d.Results = append(d.Results, ModalityResult{
			Modality:      ModalityFinger,
			Matched:       matched,
			Similarity:    m.Similarity,
			VaultUnlocked: ur.Matched,
			Vault:         ur,
		})
		if ur.Matched {
			d.Secret, d.HasSecret = ur.Secret, true
		}
		d.Accepted = d.Accepted && matched
	}

	for _, r := range d.Results {
		a.log.Debug("modality verdict",
			slog.String("modality", string(r.Modality)),
			slog.Bool("matched", r.Matched),
			slog.Float64("similarity", r.Similarity))
	}
	return d, nil
}

// checkSample verifies that s supplies at least one modality, that an
// extractor exists for each, and, when enr is set, that each was enrolled.
func (a *Authenticator) checkSample(op string, s Sample, enr *Enrollment) error {
	if s.Face == nil && s.Finger == nil {
		return inputError(op, ErrMissingModality, "sample supplies no modality")
	}
	if s.Face != nil {
		if a.cfg.face == nil {
			return inputError(op, ErrMissingModality, "no face extractor")
		}
		if enr != nil && enr.FaceHash == nil {
			return inputError(op, ErrMissingModality, "face not enrolled")
		}
	}
	if s.Finger != nil {
		if a.cfg.finger == nil {
			return inputError(op, ErrMissingModality, "no finger extractor")
		}
		if enr != nil && (enr.FingerVault == nil || enr.FingerHash == nil) {
			return inputError(op, ErrMissingModality, "finger not enrolled")
		}
	}
	return nil
}
