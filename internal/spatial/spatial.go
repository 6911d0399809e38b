// Package spatial maps frame coordinates to the scalar vault domain.
package spatial

import "errors"

// Scale is the multiplier applied to x. It must exceed every y coordinate for
// the encoding to be injective.
const Scale = 1000

// Default frame dimensions in pixels.
const (
	DefaultWidth  = 600
	DefaultHeight = 600
)

// ErrOutOfFrame is returned for coordinates outside the frame.
var ErrOutOfFrame = errors.New("spatial: coordinate outside frame")

// Frame is the sampling region for genuine and chaff points.
type Frame struct {
	Width  int
	Height int
}

// DefaultFrame returns the 600x600 frame.
func DefaultFrame() Frame {
	return Frame{Width: DefaultWidth, Height: DefaultHeight}
}

// Valid reports whether the frame can be encoded without collisions.
func (f Frame) Valid() bool {
	return f.Width > 0 && f.Height > 0 && f.Height <= Scale
}

// Contains reports whether (x, y) lies in [0, Width) x [0, Height).
func (f Frame) Contains(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// Encode returns u = x*Scale + y.
func Encode(x, y int) uint64 {
	return uint64(x)*Scale + uint64(y)
}

// Decode inverts Encode.
func Decode(u uint64) (x, y int) {
	return int(u / Scale), int(u % Scale)
}
