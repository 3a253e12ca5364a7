package geom

// Tolerance is the absolute epsilon (τ) used for all boundary, overlap,
// and equality comparisons in the packing core.
const Tolerance = 1e-6

// Rect is an axis-aligned rectangle in the (x, y) plane, used for item
// footprints and support surfaces.
type Rect struct {
	XMin, YMin, XMax, YMax float64
}

// Area returns the rectangle's area, or 0 for a degenerate (inverted or
// zero-width/height) rectangle.
func (r Rect) Area() float64 {
	w := r.XMax - r.XMin
	h := r.YMax - r.YMin
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// IntersectionArea returns the area of overlap between a and b, clamped
// to 0 on both axes independently before multiplying.
func IntersectionArea(a, b Rect) float64 {
	w := axisOverlap(a.XMin, a.XMax, b.XMin, b.XMax)
	h := axisOverlap(a.YMin, a.YMax, b.YMin, b.YMax)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Intersect returns the intersection rectangle of a and b. The result is
// degenerate (Area() == 0) when a and b do not overlap.
func Intersect(a, b Rect) Rect {
	return Rect{
		XMin: max(a.XMin, b.XMin),
		YMin: max(a.YMin, b.YMin),
		XMax: min(a.XMax, b.XMax),
		YMax: min(a.YMax, b.YMax),
	}
}

// Contains reports whether outer fully contains inner, within Tolerance.
func Contains(inner, outer Rect) bool {
	return inner.XMin >= outer.XMin-Tolerance &&
		inner.YMin >= outer.YMin-Tolerance &&
		inner.XMax <= outer.XMax+Tolerance &&
		inner.YMax <= outer.YMax+Tolerance
}

// ContainsPointInterior reports whether (x, y) lies in the strict interior of r
// (not merely on its boundary), within Tolerance.
func (r Rect) ContainsPointInterior(x, y float64) bool {
	return x > r.XMin+Tolerance && x < r.XMax-Tolerance &&
		y > r.YMin+Tolerance && y < r.YMax-Tolerance
}

func axisOverlap(aMin, aMax, bMin, bMax float64) float64 {
	lo := max(aMin, bMin)
	hi := min(aMax, bMax)
	return hi - lo
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
