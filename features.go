package biovault

import (
	"fmt"
	"math"

	"github.com/biovault/biovault-go/internal/spatial"
)

// MinutiaKind classifies a ridge feature.
type MinutiaKind uint8

const (
	// KindUnknown is used for plain points and unclassified minutiae.
	KindUnknown MinutiaKind = iota
	// KindEnding is a ridge ending.
	KindEnding
	// KindBifurcation is a ridge bifurcation.
	KindBifurcation
)

func (k MinutiaKind) String() string {
	switch k {
	case KindEnding:
		return "ending"
	case KindBifurcation:
		return "bifurcation"
	default:
		return "unknown"
	}
}

// FeaturePoint is one extracted feature in pixel coordinates. Angle is in
// degrees and only meaningful when HasAngle is set.
type FeaturePoint struct {
	X        int
	Y        int
	Angle    float64
	HasAngle bool
	Kind     MinutiaKind
}

// Point returns a plain feature point.
func Point(x, y int) FeaturePoint {
	return FeaturePoint{X: x, Y: y}
}

// Minutia returns an oriented feature point.
func Minutia(x, y int, angle float64, kind MinutiaKind) FeaturePoint {
	return FeaturePoint{X: x, Y: y, Angle: angle, HasAngle: true, Kind: kind}
}

// Frame is the image region feature coordinates must lie in.
type Frame struct {
	Width  int
	Height int
}

// DefaultFrame returns the 600x600 frame.
func DefaultFrame() Frame {
	f := spatial.DefaultFrame()
	return Frame{Width: f.Width, Height: f.Height}
}

func (f Frame) toSpatial() spatial.Frame {
	return spatial.Frame{Width: f.Width, Height: f.Height}
}

// FeatureSet is an unordered collection of feature points: either plain
// points, or oriented minutiae usable for geometric alignment. The zero value
// is an empty plain set.
type FeatureSet struct {
	oriented bool
	points   []FeaturePoint
}

// PlainPoints builds a plain point set. Orientation data is dropped.
func PlainPoints(points ...FeaturePoint) FeatureSet {
	out := make([]FeaturePoint, len(points))
	for i, p := range points {
		out[i] = FeaturePoint{X: p.X, Y: p.Y}
	}
	return FeatureSet{points: out}
}

// OrientedMinutiae builds an oriented set. Every point is treated as
// carrying an angle.
func OrientedMinutiae(points ...FeaturePoint) FeatureSet {
	out := make([]FeaturePoint, len(points))
	for i, p := range points {
		p.HasAngle = true
		out[i] = p
	}
	return FeatureSet{oriented: true, points: out}
}

// Oriented reports whether the set carries minutia angles.
func (fs FeatureSet) Oriented() bool { return fs.oriented }

// Len returns the number of points, duplicates included.
func (fs FeatureSet) Len() int { return len(fs.points) }

// Points returns a copy of the points.
func (fs FeatureSet) Points() []FeaturePoint {
	out := make([]FeaturePoint, len(fs.points))
	copy(out, fs.points)
	return out
}

// Validate checks every point against the frame.
func (fs FeatureSet) Validate(f Frame) error {
	sf := f.toSpatial()
	for i, p := range fs.points {
		if !sf.Contains(p.X, p.Y) {
			return fmt.Errorf("%w: point %d (%d, %d) outside %dx%d frame",
				ErrInvalidFeature, i, p.X, p.Y, f.Width, f.Height)
		}
		if p.HasAngle && (math.IsNaN(p.Angle) || math.IsInf(p.Angle, 0)) {
			return fmt.Errorf("%w: point %d has non-finite angle", ErrInvalidFeature, i)
		}
	}
	return nil
}

// dedup drops points that encode to an already seen domain value, keeping
// the first.
func (fs FeatureSet) dedup() []FeaturePoint {
	seen := make(map[uint64]struct{}, len(fs.points))
	out := make([]FeaturePoint, 0, len(fs.points))
	for _, p := range fs.points {
		u := spatial.Encode(p.X, p.Y)
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, p)
	}
	return out
}
