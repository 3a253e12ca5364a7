// Package geom provides pure, allocation-free geometric primitives used
// throughout the packing core: axis-aligned rectangles for footprints and
// support surfaces, and axis-aligned boxes for the 3D insertion-path and
// non-overlap checks.
//
// All comparisons in this package use Tolerance as an absolute epsilon;
// callers should not re-derive their own tolerance constants.
package geom
