package surface

import (
	"errors"
	"fmt"
	"sort"

	"github.com/binstack/cellpack/internal/entity"
	"github.com/binstack/cellpack/internal/geom"
)

// ErrInvalidSurface signals an internal-inconsistency: a merge produced
// a surface with non-positive area. This is never expected in normal
// operation and halts the call rather than silently dropping the
// offending rectangle. (Degenerate remainders of a cut are an expected
// outcome and are simply discarded.)
var ErrInvalidSurface = errors.New("surface: invalid surface geometry")

// Options controls the optional merge pass. The zero value runs the
// merge pass; set DisableMerge for the deterministic/debug path where a
// caller wants to inspect the raw cut output.
type Options struct {
	DisableMerge bool
	MergeMargin  float64
}

const defaultMergeMargin = 1e-6

// Update rewrites surfaces to account for an item that was just
// committed at placed.Position. It implements the cut/emit/merge
// algorithm: surfaces coplanar with and overlapping the item's
// footprint are clipped into up to four remainder rectangles, a new
// top surface is emitted at the item's upper face, and (unless
// disabled) coplanar remainders are merged back together.
func Update(placed entity.PlacedItem, surfaces []entity.SupportSurface) ([]entity.SupportSurface, error) {
	return UpdateWithOptions(placed, surfaces, Options{})
}

// UpdateWithOptions is Update with explicit control over the merge pass.
func UpdateWithOptions(placed entity.PlacedItem, surfaces []entity.SupportSurface, opts Options) ([]entity.SupportSurface, error) {
	margin := opts.MergeMargin
	if margin <= 0 {
		margin = defaultMergeMargin
	}

	footprint := placed.Footprint()
	zBottom, zTop := placed.ZRange()

	var next []entity.SupportSurface
	for _, s := range surfaces {
		if absDiff(s.Z, zBottom) >= margin {
			next = append(next, s)
			continue
		}
		clip := geom.Intersect(footprint, s.Rect)
		if clip.Area() <= geom.Tolerance {
			next = append(next, s)
			continue
		}
		for _, remainder := range splitAround(s.Rect, clip) {
			if remainder.Area() <= geom.Tolerance {
				continue
			}
			next = append(next, entity.SupportSurface{
				Z:               s.Z,
				Rect:            remainder,
				SupportingItems: s.SupportingItems,
			})
		}
	}

	next = append(next, entity.SupportSurface{
		Z:               zTop,
		Rect:            footprint,
		SupportingItems: []int{placed.Item.ID},
	})

	if opts.DisableMerge {
		return next, nil
	}
	return MergeCoplanar(next, margin)
}

// splitAround dissects outer into the up to four rectangles remaining
// after clip (which must lie within outer) is removed: left, right,
// below and above, where below/above span only clip's width and
// left/right span the full height of outer. The five pieces (four
// remainders plus clip) exactly partition outer.
func splitAround(outer, clip geom.Rect) [4]geom.Rect {
	return [4]geom.Rect{
		{XMin: outer.XMin, YMin: outer.YMin, XMax: clip.XMin, YMax: outer.YMax},
		{XMin: clip.XMax, YMin: outer.YMin, XMax: outer.XMax, YMax: outer.YMax},
		{XMin: clip.XMin, YMin: outer.YMin, XMax: clip.XMax, YMax: clip.YMin},
		{XMin: clip.XMin, YMin: clip.YMax, XMax: clip.XMax, YMax: outer.YMax},
	}
}

// MergeCoplanar repeatedly scans each z-group of surfaces for an
// edge-aligned, span-equal pair and replaces it with their union,
// regardless of which items support either half, until no merge
// fires. The merged surface's supporting items is the union of both
// halves'. It is exported separately so callers (and property tests)
// can assert idempotence: merging an already-merged set must be a
// no-op.
func MergeCoplanar(surfaces []entity.SupportSurface, margin float64) ([]entity.SupportSurface, error) {
	if margin <= 0 {
		margin = defaultMergeMargin
	}

	working := make([]entity.SupportSurface, len(surfaces))
	copy(working, surfaces)

	for {
		merged := false
		for i := 0; i < len(working) && !merged; i++ {
			for j := i + 1; j < len(working); j++ {
				if absDiff(working[i].Z, working[j].Z) >= margin {
					continue
				}
				union, ok := coplanarUnion(working[i].Rect, working[j].Rect)
				if !ok {
					continue
				}
				if union.Area() <= geom.Tolerance {
					return nil, fmt.Errorf("merging surfaces at z=%v: %w", working[i].Z, ErrInvalidSurface)
				}
				working[i] = entity.SupportSurface{
					Z:               working[i].Z,
					Rect:            union,
					SupportingItems: unionSupport(working[i].SupportingItems, working[j].SupportingItems),
				}
				working = append(working[:j], working[j+1:]...)
				merged = true
				break
			}
		}
		if !merged {
			break
		}
	}
	return working, nil
}

// coplanarUnion returns the union of a and b as a single rectangle
// when they share a full edge (same Y-span and adjacent in X, or same
// X-span and adjacent in Y), and false otherwise.
func coplanarUnion(a, b geom.Rect) (geom.Rect, bool) {
	const tau = geom.Tolerance

	if absDiff(a.YMin, b.YMin) < tau && absDiff(a.YMax, b.YMax) < tau {
		if absDiff(a.XMax, b.XMin) < tau {
			return geom.Rect{XMin: a.XMin, YMin: a.YMin, XMax: b.XMax, YMax: a.YMax}, true
		}
		if absDiff(b.XMax, a.XMin) < tau {
			return geom.Rect{XMin: b.XMin, YMin: a.YMin, XMax: a.XMax, YMax: a.YMax}, true
		}
	}
	if absDiff(a.XMin, b.XMin) < tau && absDiff(a.XMax, b.XMax) < tau {
		if absDiff(a.YMax, b.YMin) < tau {
			return geom.Rect{XMin: a.XMin, YMin: a.YMin, XMax: a.XMax, YMax: b.YMax}, true
		}
		if absDiff(b.YMax, a.YMin) < tau {
			return geom.Rect{XMin: a.XMin, YMin: b.YMin, XMax: a.XMax, YMax: a.YMax}, true
		}
	}
	return geom.Rect{}, false
}

// unionSupport returns the sorted set union of a and b, so a merged
// surface's supporting items never depends on which half was scanned
// first.
func unionSupport(a, b []int) []int {
	seen := make(map[int]bool, len(a)+len(b))
	out := make([]int, 0, len(a)+len(b))
	for _, ids := range [2][]int{a, b} {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	sort.Ints(out)
	return out
}

func absDiff(a, b float64) float64 {
	if a < b {
		return b - a
	}
	return a - b
}
