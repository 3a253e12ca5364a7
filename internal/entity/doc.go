// Package entity defines the value types of the packing domain: Item,
// its six axis-aligned rotations, Cage (the container being packed), and
// SupportSurface (the rectangles items may rest on).
//
// Item is immutable and carries no placement state; once a Cage accepts
// it via Cage.Commit, the position and rotation are recorded in a
// PlacedItem. Cage is the one mutable type in this package; it is
// mutated only through Commit and SetSurfaces, never through direct
// field assignment by callers outside this package's own
// invariant-preserving methods.
package entity
