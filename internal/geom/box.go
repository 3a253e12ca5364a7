package geom

// Box is an axis-aligned box in 3D, used for the insertion-path swept
// prisms and the non-overlap invariant between packed items.
type Box struct {
	XMin, YMin, ZMin float64
	XMax, YMax, ZMax float64
}

// Overlaps reports whether b and other intersect on all three axes, each
// axis compared within Tolerance. Shared faces/edges (measure-zero
// overlap) do not count as an overlap.
func (b Box) Overlaps(other Box) bool {
	return axisGap(b.XMin, b.XMax, other.XMin, other.XMax) &&
		axisGap(b.YMin, b.YMax, other.YMin, other.YMax) &&
		axisGap(b.ZMin, b.ZMax, other.ZMin, other.ZMax)
}

// axisGap reports whether the two 1D intervals overlap on more than a
// measure-zero set, within Tolerance.
func axisGap(aMin, aMax, bMin, bMax float64) bool {
	return aMin < bMax-Tolerance && bMin < aMax-Tolerance
}
