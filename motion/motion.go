// Package motion implements the stylized orbital motion of the scene.
//
// Positions are recomputed from absolute elapsed time on every frame instead
// of being integrated from frame deltas, so a body is always in the same place
// for the same t no matter how many frames were rendered or skipped. Axial
// rotation is the opposite: a per-frame accumulator that ignores time.
package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Angle returns the orbit angle in radians after t milliseconds for a body
// with revolution speed s, where k is the global speed multiplier.
func Angle(t, k, s float64) float64 {
	return t * k * s
}

// Position returns the position on a circular orbit of radius r around
// center, in the plane y = center.Y. Bodies that do not revolve (s or r is
// zero) stay at center.
func Position(t, k, s, r float64, center mgl64.Vec3) mgl64.Vec3 {
	if s == 0 || r == 0 {
		return center
	}
	theta := Angle(t, k, s)
	return mgl64.Vec3{
		center.X() + r*math.Cos(theta),
		center.Y(),
		center.Z() + r*math.Sin(theta),
	}
}

// Period returns the time for one full revolution, 2π/(k·s).
// It reports false for bodies that never complete one.
func Period(k, s float64) (float64, bool) {
	if k == 0 || s == 0 {
		return 0, false
	}
	return 2 * math.Pi / (k * s), true
}

// Wrap returns angle reduced to [0, 2π).
func Wrap(angle float64) float64 {
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
