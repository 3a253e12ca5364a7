package entity

import "fmt"

// Dims is a length/width/height triple in centimeters.
type Dims struct {
	L, W, H float64
}

// Point3 is a 3D coordinate (x, y, z) in centimeters.
type Point3 struct {
	X, Y, Z float64
}

// Rotation identifies one of the six axis-aligned orientations a box may
// be placed in.
type Rotation int

// The six rotation types, indexed 0..5. Each is a deterministic
// permutation of (L, W, H); see rotationTable.
const (
	Rotation0 Rotation = iota // (l, w, h)
	Rotation1                 // (w, l, h)
	Rotation2                 // (l, h, w)
	Rotation3                 // (h, l, w)
	Rotation4                 // (w, h, l)
	Rotation5                 // (h, w, l)
	numRotations
)

// rotationTable maps a Rotation to the (i, j, k) index permutation of
// (L, W, H) it selects. Fixed by the specification; never reordered.
var rotationTable = [numRotations][3]int{
	Rotation0: {0, 1, 2},
	Rotation1: {1, 0, 2},
	Rotation2: {0, 2, 1},
	Rotation3: {2, 0, 1},
	Rotation4: {1, 2, 0},
	Rotation5: {2, 1, 0},
}

// Valid reports whether r is one of the six defined rotation types.
func (r Rotation) Valid() bool {
	return r >= Rotation0 && r < numRotations
}

// String returns the string representation of a Rotation.
func (r Rotation) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Unknown(%d)", int(r))
	}
	return fmt.Sprintf("Rotation%d", int(r))
}

// Rotated returns d permuted according to r. Passing an invalid Rotation
// is a programming error — rotation indices only ever originate from
// this package or from Item.AllowedRotations — so Rotated panics rather
// than returning a zero value that would silently corrupt downstream
// feasibility math.
func (d Dims) Rotated(r Rotation) Dims {
	if !r.Valid() {
		panic(fmt.Sprintf("entity: invalid rotation index %d", int(r)))
	}
	axes := [3]float64{d.L, d.W, d.H}
	perm := rotationTable[r]
	return Dims{L: axes[perm[0]], W: axes[perm[1]], H: axes[perm[2]]}
}

// Volume returns L*W*H.
func (d Dims) Volume() float64 {
	return d.L * d.W * d.H
}
