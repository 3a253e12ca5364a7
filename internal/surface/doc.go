// Package surface maintains the set of support surfaces a cage exposes
// for future placements. Each committed item cuts the surface it landed
// on into up to four remainder rectangles and contributes a new top
// surface at its own height; an optional merge pass recombines adjacent
// coplanar remainders so the surface set does not fragment without
// bound over a long packing run.
package surface
