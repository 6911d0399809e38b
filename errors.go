package biovault

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInsufficientFeatures is returned when a feature set has fewer than
	// degree+1 distinct points after deduplication.
	ErrInsufficientFeatures = errors.New("insufficient features")

	// ErrTooManyFeatures is returned when the genuine points alone would fill
	// the vault.
	ErrTooManyFeatures = errors.New("too many features for vault size")

	// ErrInvalidFeature is returned for a feature point outside the frame or
	// with a non-finite angle.
	ErrInvalidFeature = errors.New("invalid feature point")

	// ErrVaultTooSmall is returned when chaff generation could not reach the
	// minimum secure vault size.
	ErrVaultTooSmall = errors.New("vault below minimum secure size")

	// ErrInvalidVault is returned when a vault is nil or malformed.
	ErrInvalidVault = errors.New("invalid vault")

	// ErrInvalidImportData is returned when imported vault data is invalid.
	ErrInvalidImportData = errors.New("invalid import data")

	// ErrLengthMismatch is returned when two protected hashes of different
	// lengths are compared.
	ErrLengthMismatch = errors.New("hash length mismatch")

	// ErrInvalidVector is returned for an empty or non-finite feature vector.
	ErrInvalidVector = errors.New("invalid feature vector")

	// ErrInvalidConfig is returned when an option value is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrExtractionFailed is returned when a feature extractor fails.
	ErrExtractionFailed = errors.New("feature extraction failed")

	// ErrMissingModality is returned when a sample or enrollment lacks a
	// modality the authenticator needs.
	ErrMissingModality = errors.New("missing modality")
)

// BioVaultError is implemented by all typed errors of this package.
type BioVaultError interface {
	error
	BioVaultError() // marker method
}

// InputError reports malformed or insufficient caller input. It is never
// retried internally.
type InputError struct {
	Op     string // "lock", "unlock", "hash", "match", "import"
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *InputError) Unwrap() error {
	return e.Err
}

// BioVaultError implements the BioVaultError interface.
func (e *InputError) BioVaultError() {}

func inputError(op string, err error, format string, args ...any) error {
	return &InputError{Op: op, Err: err, Reason: fmt.Sprintf(format, args...)}
}

// ConfigError reports a rejected option.
type ConfigError struct {
	Option  string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Option, e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// BioVaultError implements the BioVaultError interface.
func (e *ConfigError) BioVaultError() {}

// ExtractionError wraps a failure reported by a feature extractor.
type ExtractionError struct {
	Modality Modality
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction failed: %v", e.Modality, e.Err)
}

// Unwrap returns the extractor's error.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtractionFailed
}

// BioVaultError implements the BioVaultError interface.
func (e *ExtractionError) BioVaultError() {}
