package entity

import "github.com/binstack/cellpack/internal/geom"

// FloorSupport is the sentinel supporting-item id used by the initial
// floor surface (and by any surface whose support ultimately traces back
// to the cage floor rather than a placed item).
const FloorSupport = -1

// SupportSurface is an axis-aligned rectangle at a fixed height on which
// items may rest, together with the set of item ids (or FloorSupport)
// that jointly hold it up.
type SupportSurface struct {
	Z               float64
	Rect            geom.Rect
	SupportingItems []int
}

// cloneSupportingItems returns an independent copy of s's supporting-item
// ids, so mutating the clone's slice never aliases the original's backing
// array.
func (s SupportSurface) cloneSupportingItems() []int {
	out := make([]int, len(s.SupportingItems))
	copy(out, s.SupportingItems)
	return out
}

// Clone returns an independent copy of s.
func (s SupportSurface) Clone() SupportSurface {
	return SupportSurface{Z: s.Z, Rect: s.Rect, SupportingItems: s.cloneSupportingItems()}
}
