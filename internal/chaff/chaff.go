// Package chaff generates decoy vault points.
//
// Decoys are placed in the frame away from every genuine and previously
// accepted decoy location, and their range values are drawn from the span of
// the genuine values widened by a fifth on each side, so neither position nor
// magnitude separates them from genuine points.
//
// Genuine points are not held to the minimum distance among themselves, so
// any two vault points closer than it are both genuine. Like helper data,
// this leaks location; callers wanting to avoid it thin the enrolled set to
// the same spacing before locking.
package chaff

import (
	"math/rand/v2"

	"github.com/biovault/biovault-go/internal/spatial"
)

// Defaults.
const (
	DefaultMinDistance = 15
	DefaultRetryFactor = 50
)

// Point is a located vault point before domain encoding.
type Point struct {
	X int
	Y int
	V uint64
}

// Config controls placement.
type Config struct {
	Frame       spatial.Frame
	MinDistance int // L-infinity pixels
	RetryFactor int // attempts per requested point
	Modulus     uint64
}

func (c Config) withDefaults() Config {
	if !c.Frame.Valid() {
		c.Frame = spatial.DefaultFrame()
	}
	if c.MinDistance <= 0 {
		c.MinDistance = DefaultMinDistance
	}
	if c.RetryFactor <= 0 {
		c.RetryFactor = DefaultRetryFactor
	}
	return c
}

// Generate returns up to n decoys. It stops early when the retry budget of
// RetryFactor*n attempts runs out; callers compare the final vault size
// against their security minimum.
func Generate(rng *rand.Rand, n int, genuine []Point, cfg Config) []Point {
	if n <= 0 {
		return nil
	}
	cfg = cfg.withDefaults()

	lo, hi := valueRange(genuine, cfg.Modulus)
	occ := newOccupancy(cfg.Frame, cfg.MinDistance)
	for _, g := range genuine {
		occ.mark(g.X, g.Y)
	}

	out := make([]Point, 0, n)
	budget := cfg.RetryFactor * n
	for attempt := 0; attempt < budget && len(out) < n; attempt++ {
		x := rng.IntN(cfg.Frame.Width)
		y := rng.IntN(cfg.Frame.Height)
		if occ.near(x, y) {
			continue
		}
		occ.mark(x, y)
		out = append(out, Point{X: x, Y: y, V: lo + rng.Uint64N(hi-lo+1)})
	}
	return out
}

// valueRange widens [min, max] of the genuine values by 20% of the span on
// each side, clamped to [0, modulus).
func valueRange(genuine []Point, modulus uint64) (lo, hi uint64) {
	if modulus == 0 {
		modulus = 1 << 63
	}
	if len(genuine) == 0 {
		return 0, modulus - 1
	}

	lo, hi = genuine[0].V, genuine[0].V
	for _, g := range genuine[1:] {
		lo = min(lo, g.V)
		hi = max(hi, g.V)
	}

	pad := (hi - lo) / 5
	if lo > pad {
		lo -= pad
	} else {
		lo = 0
	}
	if hi < modulus-1-pad {
		hi += pad
	} else {
		hi = modulus - 1
	}
	return lo, hi
}

// occupancy answers L-infinity proximity queries with a bucket grid whose
// cell side equals the minimum distance, so only the 3x3 neighbourhood of a
// cell needs scanning.
type occupancy struct {
	dist  int
	cols  int
	rows  int
	cells [][]Point
}

func newOccupancy(f spatial.Frame, dist int) *occupancy {
	cols := f.Width/dist + 1
	rows := f.Height/dist + 1
	return &occupancy{dist: dist, cols: cols, rows: rows, cells: make([][]Point, cols*rows)}
}

func (o *occupancy) cell(x, y int) (int, int) {
	cx, cy := x/o.dist, y/o.dist
	return min(max(cx, 0), o.cols-1), min(max(cy, 0), o.rows-1)
}

func (o *occupancy) mark(x, y int) {
	cx, cy := o.cell(x, y)
	i := cy*o.cols + cx
	o.cells[i] = append(o.cells[i], Point{X: x, Y: y})
}

func (o *occupancy) near(x, y int) bool {
	cx, cy := o.cell(x, y)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := cx+dx, cy+dy
			if nx < 0 || ny < 0 || nx >= o.cols || ny >= o.rows {
				continue
			}
			for _, p := range o.cells[ny*o.cols+nx] {
				if abs(p.X-x) < o.dist && abs(p.Y-y) < o.dist {
					return true
				}
			}
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
