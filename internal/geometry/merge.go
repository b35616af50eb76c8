package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultMergeTolerance is the grid size positions are snapped to before
// being compared.
const DefaultMergeTolerance = 1e-4

// MergeVertices drops positions that coincide once quantised to tolerance.
// The first occurrence wins, so the output order is stable for a given input.
func MergeVertices(positions []mgl64.Vec3, tolerance float64) []mgl64.Vec3 {
	if tolerance <= 0 {
		tolerance = DefaultMergeTolerance
	}
	shift := 1 / tolerance

	seen := make(map[[3]int64]struct{}, len(positions)/2)
	out := make([]mgl64.Vec3, 0, len(positions)/2)
	for _, p := range positions {
		key := [3]int64{
			int64(math.Round(p[0] * shift)),
			int64(math.Round(p[1] * shift)),
			int64(math.Round(p[2] * shift)),
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
