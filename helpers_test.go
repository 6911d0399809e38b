package biovault

import (
	"math"
	"math/rand/v2"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed*31+7))
}

// syntheticMinutiae returns n oriented minutiae inside [lo, hi) on both axes,
// at least minGap pixels apart.
func syntheticMinutiae(rng *rand.Rand, n int, lo, hi, minGap int) []FeaturePoint {
	var out []FeaturePoint
	for len(out) < n {
		x := lo + rng.IntN(hi-lo)
		y := lo + rng.IntN(hi-lo)
		ok := true
		for _, p := range out {
			if math.Hypot(float64(p.X-x), float64(p.Y-y)) < float64(minGap) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		kind := KindEnding
		if rng.IntN(2) == 0 {
			kind = KindBifurcation
		}
		out = append(out, Minutia(x, y, rng.Float64()*360, kind))
	}
	return out
}

// disjointPoints returns n points at least gap pixels from every reference
// point.
func disjointPoints(rng *rand.Rand, n int, ref []FeaturePoint, gap float64) []FeaturePoint {
	var out []FeaturePoint
	for len(out) < n {
		x, y := rng.IntN(600), rng.IntN(600)
		ok := true
		for _, p := range ref {
			if math.Hypot(float64(p.X-x), float64(p.Y-y)) < gap {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, Point(x, y))
		}
	}
	return out
}

// jitter moves every point by up to ±d pixels per axis.
func jitter(rng *rand.Rand, pts []FeaturePoint, d int) []FeaturePoint {
	out := make([]FeaturePoint, len(pts))
	for i, p := range pts {
		p.X += rng.IntN(2*d+1) - d
		p.Y += rng.IntN(2*d+1) - d
		out[i] = p
	}
	return out
}

// rotate turns pts by deg about their centroid and shifts them by (tx, ty),
// rounding to whole pixels. Angles rotate with the points.
func rotate(pts []FeaturePoint, deg float64, tx, ty int) []FeaturePoint {
	var cx, cy float64
	for _, p := range pts {
		cx += float64(p.X)
		cy += float64(p.Y)
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))

	sin, cos := math.Sincos(deg * math.Pi / 180)
	out := make([]FeaturePoint, len(pts))
	for i, p := range pts {
		dx, dy := float64(p.X)-cx, float64(p.Y)-cy
		p.X = int(math.Round(dx*cos-dy*sin+cx)) + tx
		p.Y = int(math.Round(dx*sin+dy*cos+cy)) + ty
		p.Angle = math.Mod(p.Angle+deg+360, 360)
		out[i] = p
	}
	return out
}

func shuffled(rng *rand.Rand, pts []FeaturePoint) []FeaturePoint {
	out := append([]FeaturePoint(nil), pts...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
