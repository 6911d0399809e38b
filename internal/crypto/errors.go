package crypto

import "errors"

var (
	// ErrEmptyInfo is returned when key expansion is asked for no purpose.
	ErrEmptyInfo = errors.New("empty derivation info")

	// ErrInvalidLength is returned for a non-positive output length.
	ErrInvalidLength = errors.New("invalid derived key length")

	// ErrRandomSource is returned when the random source fails.
	ErrRandomSource = errors.New("random source failure")
)
