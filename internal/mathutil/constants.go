package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// TwoPi is one full turn in radians.
	TwoPi = 2 * math.Pi

	// Epsilon is the tolerance below which a vector is treated as zero length.
	Epsilon = 1e-12
)

var (
	// WorldUp is the up convention shared by cameras and tile orientation.
	WorldUp = mgl64.Vec3{0, 1, 0}

	// Forward is the local axis a look-at orientation points at its target.
	Forward = mgl64.Vec3{0, 0, 1}
)

// WrapAngle reduces a to [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	if a >= TwoPi {
		a = 0
	}
	return a
}

// AngleDist returns the shortest angular distance between two angles in radians (0–π).
func AngleDist(a, b float64) float64 {
	d := WrapAngle(a - b)
	if d > math.Pi {
		return TwoPi - d
	}
	return d
}
