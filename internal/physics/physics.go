// Package physics provides distance, wrapping and collision helpers for a
// toroidal 2D world.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(DistanceSquared(x1, y1, x2, y2))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// Wrap maps v into [0, size). A non-positive size leaves v unchanged.
func Wrap(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}

// WrappedDelta returns the shortest signed offset from a to b on a circle
// of circumference size.
func WrappedDelta(a, b, size float64) float64 {
	d := b - a
	if size <= 0 {
		return d
	}
	half := size / 2
	if d > half {
		d -= size
	} else if d < -half {
		d += size
	}
	return d
}

// WrappedDistanceSquared is DistanceSquared measured across the seams of a
// w x h torus.
func WrappedDistanceSquared(x1, y1, x2, y2, w, h float64) float64 {
	dx := WrappedDelta(x1, x2, w)
	dy := WrappedDelta(y1, y2, h)
	return dx*dx + dy*dy
}

// WrappedCirclesOverlap is CirclesOverlap on a w x h torus.
func WrappedCirclesOverlap(x1, y1, r1, x2, y2, r2, w, h float64) bool {
	minDist := r1 + r2
	return WrappedDistanceSquared(x1, y1, x2, y2, w, h) < minDist*minDist
}

// WrappedPointInCircle is PointInCircle on a w x h torus.
func WrappedPointInCircle(px, py, cx, cy, radius, w, h float64) bool {
	return WrappedDistanceSquared(px, py, cx, cy, w, h) <= radius*radius
}

// NormalizeAngle maps an angle in radians into [-π, π].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
