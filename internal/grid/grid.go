// Package grid rasterizes a point set into a smoothed density grid.
//
// The grid has three channels: occupancy count, and the cosine and sine of
// point orientation accumulated per cell. Points are centred on their
// centroid and scaled by Size/Span, so the grid is translation invariant.
// Every channel is smoothed with a Gaussian blur before being flattened.
package grid

import (
	"errors"
	"math"
)

// Defaults.
const (
	DefaultSize  = 64
	DefaultSpan  = 300.0
	DefaultSigma = 1.0

	// Truncate is the blur kernel radius in standard deviations.
	Truncate = 4.0

	// Channels is the number of planes in the flattened vector.
	Channels = 3
)

var (
	// ErrInvalidConfig is returned for a non-positive size, span or sigma.
	ErrInvalidConfig = errors.New("grid: invalid configuration")

	// ErrNoPoints is returned when no point lands inside the grid.
	ErrNoPoints = errors.New("grid: no point inside the grid")
)

// Point is an input point. Angle is in degrees and only counts toward the
// orientation channels when HasAngle is set.
type Point struct {
	X, Y     float64
	Angle    float64
	HasAngle bool
}

// Config sets the raster geometry.
type Config struct {
	Size  int     // cells per side
	Span  float64 // pixels mapped onto Size cells
	Sigma float64 // blur standard deviation in cells, 0 disables blurring
}

// DefaultConfig returns a 64x64 grid over 300 px with sigma 1.
func DefaultConfig() Config {
	return Config{Size: DefaultSize, Span: DefaultSpan, Sigma: DefaultSigma}
}

// Validate checks the geometry.
func (c Config) Validate() error {
	if c.Size <= 0 || c.Span <= 0 || c.Sigma < 0 || math.IsNaN(c.Sigma) {
		return ErrInvalidConfig
	}
	return nil
}

// Len is the length of the flattened vector.
func (c Config) Len() int {
	return Channels * c.Size * c.Size
}

// Rasterize returns density, cosine and sine planes concatenated, each
// row-major. An empty point set yields an all-zero vector.
func Rasterize(points []Point, cfg Config) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := cfg.Size
	plane := n * n
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	out := make([]float64, Channels*plane)

	var cx, cy float64
	for _, p := range points {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(points))
	cy /= float64(len(points))

	scale := float64(n) / cfg.Span
	half := float64(n) / 2
	den, cos, sin := out[:plane], out[plane:2*plane], out[2*plane:]
	occupied := 0
	for _, p := range points {
		// Truncation toward zero, then bounds check.
		gx := int((p.X-cx)*scale + half)
		gy := int((p.Y-cy)*scale + half)
		if gx < 0 || gx >= n || gy < 0 || gy >= n {
			continue
		}
		i := gy*n + gx
		den[i]++
		occupied++
		if p.HasAngle {
			s, c := math.Sincos(p.Angle * math.Pi / 180)
			cos[i] += c
			sin[i] += s
		}
	}

	if occupied == 0 {
		return nil, ErrNoPoints
	}

	if cfg.Sigma > 0 {
		k := Kernel(cfg.Sigma)
		for ch := 0; ch < Channels; ch++ {
			Blur(out[ch*plane:(ch+1)*plane], n, k)
		}
	}
	return out, nil
}
