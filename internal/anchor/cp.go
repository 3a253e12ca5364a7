package anchor

import (
	"sort"

	"github.com/binstack/cellpack/internal/entity"
	"github.com/binstack/cellpack/internal/geom"
)

// CornerPointGenerator implements the Corner-Point anchor rule: every
// packed item contributes up to three child anchors — the point just
// past its far X edge, just past its far Y edge, and (unless the item
// is fragile) just above its top face — seeded with the cage origin.
// Fragile items never contribute a top anchor, so this generator never
// offers a point on top of them. The constraint checker does not test
// fragility itself; this omission is what keeps items off fragile tops.
type CornerPointGenerator struct{}

// Name returns the generator's registry name.
func (g *CornerPointGenerator) Name() string { return "cp" }

// Anchors returns the Corner-Point candidate set: the origin plus up to
// three child points per packed item, filtered to stay within cage
// bounds and out of the interior of any packed item, deduplicated, and
// ordered (z, y, x) ascending.
func (g *CornerPointGenerator) Anchors(cage *entity.Cage) []entity.Point3 {
	packed := cage.PackedItems()

	points := []entity.Point3{{X: 0, Y: 0, Z: 0}}
	for _, p := range packed {
		d := p.Item.RotatedDims(p.Rotation)
		points = append(points,
			entity.Point3{X: p.Position.X + d.L, Y: p.Position.Y, Z: p.Position.Z},
			entity.Point3{X: p.Position.X, Y: p.Position.Y + d.W, Z: p.Position.Z},
		)
		if !p.Item.Fragile {
			points = append(points, entity.Point3{X: p.Position.X, Y: p.Position.Y, Z: p.Position.Z + d.H})
		}
	}

	filtered := make([]entity.Point3, 0, len(points))
	for _, pt := range points {
		if !withinCageBounds(pt, cage.Dims) {
			continue
		}
		if isInsideAnyPackedItem(pt, packed) {
			continue
		}
		filtered = append(filtered, pt)
	}

	dedup := dedupPoints(filtered)

	sort.Slice(dedup, func(i, j int) bool {
		a, b := dedup[i], dedup[j]
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return dedup
}

func withinCageBounds(pt entity.Point3, dims entity.Dims) bool {
	const tau = geom.Tolerance
	return pt.X >= -tau && pt.X < dims.L-tau &&
		pt.Y >= -tau && pt.Y < dims.W-tau &&
		pt.Z >= -tau && pt.Z < dims.H-tau
}

func isInsideAnyPackedItem(pt entity.Point3, packed []entity.PlacedItem) bool {
	for _, p := range packed {
		box := p.Box()
		if pt.X > box.XMin+geom.Tolerance && pt.X < box.XMax-geom.Tolerance &&
			pt.Y > box.YMin+geom.Tolerance && pt.Y < box.YMax-geom.Tolerance &&
			pt.Z > box.ZMin+geom.Tolerance && pt.Z < box.ZMax-geom.Tolerance {
			return true
		}
	}
	return false
}

func dedupPoints(points []entity.Point3) []entity.Point3 {
	out := make([]entity.Point3, 0, len(points))
	for _, pt := range points {
		duplicate := false
		for _, seen := range out {
			if pointsEqual(pt, seen) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, pt)
		}
	}
	return out
}

func pointsEqual(a, b entity.Point3) bool {
	const tau = geom.Tolerance
	return absDiff(a.X, b.X) < tau && absDiff(a.Y, b.Y) < tau && absDiff(a.Z, b.Z) < tau
}

func absDiff(a, b float64) float64 {
	if a < b {
		return b - a
	}
	return a - b
}
