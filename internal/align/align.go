// Package align estimates the rotation between two oriented point sets.
//
// Both sets are centred on their centroids and the candidate is swept through
// a fixed range of rotations. The score of a rotation is the fraction of
// reference points that have a rotated candidate point within the radius.
package align

import "math"

// Defaults.
const (
	DefaultSweepDeg = 45
	DefaultStepDeg  = 2
	DefaultRadius   = 15.0
)

// Point is a 2-D coordinate.
type Point struct {
	X float64
	Y float64
}

// Config bounds the rotation search.
type Config struct {
	SweepDeg int     // search [-SweepDeg, +SweepDeg]
	StepDeg  int     // step between tried rotations
	Radius   float64 // hit radius in pixels, exclusive
}

// DefaultConfig returns a ±45° sweep in 2° steps with a 15 px radius.
func DefaultConfig() Config {
	return Config{SweepDeg: DefaultSweepDeg, StepDeg: DefaultStepDeg, Radius: DefaultRadius}
}

// Result describes the best rotation found. OK is false when alignment was
// unavailable; a zero Score must not be read as a match signal.
type Result struct {
	Score        float64
	RotationDeg  int
	RefCentroid  Point
	CandCentroid Point
	OK           bool
}

// Apply maps a candidate point into the reference frame: rotate about the
// candidate centroid, then translate onto the reference centroid.
func (r Result) Apply(p Point) Point {
	if !r.OK {
		return p
	}
	sin, cos := math.Sincos(float64(r.RotationDeg) * math.Pi / 180)
	dx, dy := p.X-r.CandCentroid.X, p.Y-r.CandCentroid.Y
	return Point{
		X: dx*cos - dy*sin + r.RefCentroid.X,
		Y: dx*sin + dy*cos + r.RefCentroid.Y,
	}
}

// Align searches rotations low to high; the first rotation reaching the best
// score wins.
func Align(ref, cand []Point, cfg Config) Result {
	if len(ref) < 2 || len(cand) < 2 {
		return Result{}
	}
	if cfg.StepDeg <= 0 {
		cfg.StepDeg = DefaultStepDeg
	}
	if cfg.SweepDeg < 0 {
		cfg.SweepDeg = DefaultSweepDeg
	}
	if cfg.Radius <= 0 {
		cfg.Radius = DefaultRadius
	}

	rc, cc := centroid(ref), centroid(cand)
	refC := center(ref, rc)
	candC := center(cand, cc)
	r2 := cfg.Radius * cfg.Radius
	denom := float64(max(len(ref), len(cand)))

	rotated := make([]Point, len(candC))
	best := Result{RefCentroid: rc, CandCentroid: cc}
	for deg := -cfg.SweepDeg; deg <= cfg.SweepDeg; deg += cfg.StepDeg {
		sin, cos := math.Sincos(float64(deg) * math.Pi / 180)
		for i, p := range candC {
			rotated[i] = Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
		}

		hits := 0
		for _, p := range refC {
			if hasNeighbour(p, rotated, r2) {
				hits++
			}
		}

		if score := float64(hits) / denom; score > best.Score {
			best.Score = score
			best.RotationDeg = deg
			best.OK = true
		}
	}
	return best
}

func hasNeighbour(p Point, set []Point, r2 float64) bool {
	for _, q := range set {
		dx, dy := q.X-p.X, q.Y-p.Y
		if dx*dx+dy*dy < r2 {
			return true
		}
	}
	return false
}

func centroid(pts []Point) Point {
	var c Point
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(pts))
	return Point{X: c.X / n, Y: c.Y / n}
}

func center(pts []Point, c Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{X: p.X - c.X, Y: p.Y - c.Y}
	}
	return out
}
