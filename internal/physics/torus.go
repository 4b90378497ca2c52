package physics

import "math"

// Side is the edge length of the [-1, 1] torus.
const Side = 2.0

// WrapDelta returns to - from along one axis, taking the shorter way around the torus.
func WrapDelta(from, to float64) float64 {
	d := to - from
	if d > 1 {
		d -= Side
	}
	if d < -1 {
		d += Side
	}
	return d
}

// WrappedDelta is WrapDelta applied to both axes.
func WrappedDelta(px, py, qx, qy float64) (dx, dy float64) {
	return WrapDelta(px, qx), WrapDelta(py, qy)
}

// WrappedDistance is the Euclidean length of WrappedDelta.
func WrappedDistance(px, py, qx, qy float64) float64 {
	dx, dy := WrappedDelta(px, py, qx, qy)
	return math.Hypot(dx, dy)
}

// WrapPosition teleports a coordinate that left [-1, 1] to the opposite edge.
func WrapPosition(v float64) float64 {
	if v < -1 {
		return 1
	}
	if v > 1 {
		return -1
	}
	return v
}

// LatticeCoord maps lattice index i of an n-cell axis onto [-1, 1].
func LatticeCoord(i, n int) float64 {
	return -1 + Side*float64(i)/float64(n)
}
