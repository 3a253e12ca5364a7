package constraint

import (
	"fmt"

	"github.com/binstack/cellpack/internal/entity"
	"github.com/binstack/cellpack/internal/geom"
)

// Params bundles the process-wide constants the five predicates depend
// on. Populated from config.Config at startup; see that package for
// documented defaults.
type Params struct {
	StabilityFactor   float64
	MergeMargin       float64
	SafetyMarginRatio float64
}

// Check evaluates all five feasibility predicates for placing item at
// pos with rotation rot in cage, and ANDs them into a single Result. All
// five predicates are evaluated unconditionally — never short-circuited
// — because they are pure and a rejected placement should be fully
// explainable.
func Check(cage *entity.Cage, item entity.Item, pos entity.Point3, rot entity.Rotation, params Params) Result {
	d := item.RotatedDims(rot)

	boundary := checkBoundary(cage, pos, d)
	weight := checkWeight(cage, item)
	stackability := checkStackability(cage, pos, d, params)
	insertion := checkInsertionPath(cage, pos, d)
	cog := checkCenterOfGravity(cage, item, pos, rot, params)

	predicates := []PredicateResult{boundary, weight, stackability, insertion, cog}
	satisfied := true
	for _, p := range predicates {
		if !p.Satisfied {
			satisfied = false
		}
	}
	return Result{Satisfied: satisfied, Predicates: predicates}
}

func checkBoundary(cage *entity.Cage, pos entity.Point3, d entity.Dims) PredicateResult {
	const name = "Boundary"
	tau := geom.Tolerance

	if pos.X < -tau || pos.Y < -tau || pos.Z < -tau {
		return newPredicateResult(name, false, "position has a negative component")
	}
	if pos.X+d.L > cage.Dims.L+tau {
		return newPredicateResult(name, false, fmt.Sprintf("x extent %v exceeds cage length %v", pos.X+d.L, cage.Dims.L))
	}
	if pos.Y+d.W > cage.Dims.W+tau {
		return newPredicateResult(name, false, fmt.Sprintf("y extent %v exceeds cage width %v", pos.Y+d.W, cage.Dims.W))
	}
	if pos.Z+d.H > cage.Dims.H+tau {
		return newPredicateResult(name, false, fmt.Sprintf("z extent %v exceeds cage height %v", pos.Z+d.H, cage.Dims.H))
	}
	return newPredicateResult(name, true, "")
}

func checkWeight(cage *entity.Cage, item entity.Item) PredicateResult {
	const name = "Weight"
	total := cage.CurrentWeight() + item.Weight
	if total > cage.WeightLimit {
		return newPredicateResult(name, false, fmt.Sprintf("total weight %v would exceed limit %v", total, cage.WeightLimit))
	}
	return newPredicateResult(name, true, "")
}

func checkStackability(cage *entity.Cage, pos entity.Point3, d entity.Dims, params Params) PredicateResult {
	const name = "Stackability"

	footprint := geom.Rect{XMin: pos.X, YMin: pos.Y, XMax: pos.X + d.L, YMax: pos.Y + d.W}
	area := footprint.Area()
	if area <= 0 {
		return newPredicateResult(name, true, "zero-area footprint trivially supported")
	}

	var supported float64
	for _, s := range cage.Surfaces() {
		if absDiff(s.Z, pos.Z) < params.MergeMargin {
			supported += geom.IntersectionArea(footprint, s.Rect)
		}
	}

	required := params.StabilityFactor*area - geom.Tolerance
	if supported < required {
		return newPredicateResult(name, false, fmt.Sprintf("supported area %v below required %v (%.0f%% of %v)", supported, required, params.StabilityFactor*100, area))
	}
	return newPredicateResult(name, true, "")
}

// checkInsertionPath implements the "both prisms blocked ⇒ reject"
// resolution of the source specification's ambiguity: a placement is
// only infeasible if neither a top-down nor a side (conveyor-facing)
// insertion path is clear of already-packed items.
func checkInsertionPath(cage *entity.Cage, pos entity.Point3, d entity.Dims) PredicateResult {
	const name = "InsertionPath"

	topDown := geom.Box{
		XMin: pos.X, YMin: pos.Y, ZMin: pos.Z,
		XMax: pos.X + d.L, YMax: pos.Y + d.W, ZMax: cage.Dims.H,
	}
	side := geom.Box{
		XMin: pos.X, YMin: pos.Y, ZMin: pos.Z,
		XMax: pos.X + d.L, YMax: cage.Dims.W, ZMax: pos.Z + d.H,
	}

	topBlocked := false
	sideBlocked := false
	for _, p := range cage.PackedItems() {
		box := p.Box()
		if box.Overlaps(topDown) {
			topBlocked = true
		}
		if box.Overlaps(side) {
			sideBlocked = true
		}
		if topBlocked && sideBlocked {
			return newPredicateResult(name, false, "both top-down and side insertion paths are blocked")
		}
	}
	return newPredicateResult(name, true, "")
}

func checkCenterOfGravity(cage *entity.Cage, item entity.Item, pos entity.Point3, rot entity.Rotation, params Params) PredicateResult {
	const name = "CenterOfGravity"

	packed := cage.PackedItems()
	if len(packed) == 0 {
		return newPredicateResult(name, true, "first item in an empty cage trivially satisfies center-of-gravity")
	}

	var weightSum, xSum, ySum float64
	accumulate := func(center entity.Point3, weight float64) {
		weightSum += weight
		xSum += center.X * weight
		ySum += center.Y * weight
	}

	for _, p := range packed {
		box := p.Box()
		center := entity.Point3{X: (box.XMin + box.XMax) / 2, Y: (box.YMin + box.YMax) / 2}
		accumulate(center, p.Item.Weight)
	}

	d := item.RotatedDims(rot)
	newCenter := entity.Point3{X: pos.X + d.L/2, Y: pos.Y + d.W/2}
	accumulate(newCenter, item.Weight)

	cx := xSum / weightSum
	cy := ySum / weightSum

	ratio := params.SafetyMarginRatio
	margin := (1 - ratio) / 2
	xLo, xHi := cage.Dims.L*margin, cage.Dims.L*(1-margin)
	yLo, yHi := cage.Dims.W*margin, cage.Dims.W*(1-margin)

	tau := geom.Tolerance
	if cx < xLo-tau || cx > xHi+tau || cy < yLo-tau || cy > yHi+tau {
		return newPredicateResult(name, false, fmt.Sprintf("centroid (%v, %v) falls outside safety rectangle [%v,%v]x[%v,%v]", cx, cy, xLo, xHi, yLo, yHi))
	}
	return newPredicateResult(name, true, "")
}

func absDiff(a, b float64) float64 {
	if a < b {
		return b - a
	}
	return a - b
}
