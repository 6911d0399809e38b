package field

import "errors"

var (
	// ErrDuplicateNode is returned when two interpolation nodes share the
	// same x value, which makes the Lagrange basis undefined.
	ErrDuplicateNode = errors.New("field: duplicate interpolation node")

	// ErrNodeCount is returned when the node and value slices are empty or
	// differ in length.
	ErrNodeCount = errors.New("field: invalid number of interpolation nodes")

	// ErrZeroInverse is returned when inverting zero.
	ErrZeroInverse = errors.New("field: zero has no inverse")
)
