package projection

import "errors"

var (
	// ErrEmptyVector is returned for a zero-length input vector.
	ErrEmptyVector = errors.New("projection: empty vector")

	// ErrInvalidLength is returned for a non-positive output length.
	ErrInvalidLength = errors.New("projection: invalid output length")

	// ErrVectorTooShort is returned when Scramble is asked for more bits than
	// the vector provides.
	ErrVectorTooShort = errors.New("projection: vector shorter than output length")

	// ErrZeroVector is returned for a vector with no nonzero component. Its
	// protected form would not depend on the key.
	ErrZeroVector = errors.New("projection: all-zero vector")

	// ErrNonFinite is returned when the vector contains NaN or Inf.
	ErrNonFinite = errors.New("projection: non-finite component")
)
