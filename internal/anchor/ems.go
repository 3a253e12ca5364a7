package anchor

import (
	"sort"

	"github.com/binstack/cellpack/internal/entity"
)

// ExtremeSurfaceGenerator implements the Extreme-Surface (EMS) anchor
// rule: one anchor per support surface, at that surface's
// (XMin, YMin, Z) corner.
type ExtremeSurfaceGenerator struct{}

// Name returns the generator's registry name.
func (g *ExtremeSurfaceGenerator) Name() string { return "ems" }

// Anchors returns one point per support surface, ordered (z, YMin,
// XMin) ascending.
func (g *ExtremeSurfaceGenerator) Anchors(cage *entity.Cage) []entity.Point3 {
	surfaces := cage.Surfaces()

	points := make([]entity.Point3, 0, len(surfaces))
	for _, s := range surfaces {
		points = append(points, entity.Point3{X: s.Rect.XMin, Y: s.Rect.YMin, Z: s.Z})
	}

	sort.Slice(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return points
}
