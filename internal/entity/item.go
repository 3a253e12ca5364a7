package entity

import (
	"fmt"

	"github.com/binstack/cellpack/internal/geom"
)

// Item is an immutable physical box description. Placement state
// (Position, Rotation) is populated only inside a PlacedItem, once a
// Cage accepts the item via Cage.Commit — Item itself never carries
// placement fields, so the same Item value can be queried for candidate
// placements without risk of a stale position leaking into feasibility
// math.
type Item struct {
	ID               int
	BaseDims         Dims
	Weight           float64
	AllowedRotations []Rotation
	Fragile          bool

	// measurementError is the ε inflation constant (cm) baked into
	// CalcDims at construction time, carried here so CalcDims is pure.
	measurementError float64
}

// NewItem constructs an Item, precomputing nothing but validating shape.
// measurementError is the ε (cm) added to each base dimension for all
// feasibility math, per the calc_dimensions rule.
func NewItem(id int, base Dims, weight float64, allowedRotations []Rotation, fragile bool, measurementError float64) (Item, error) {
	if base.L <= 0 || base.W <= 0 || base.H <= 0 {
		return Item{}, fmt.Errorf("entity: item %d has non-positive base dimensions %+v", id, base)
	}
	if weight <= 0 {
		return Item{}, fmt.Errorf("entity: item %d has non-positive weight %v", id, weight)
	}
	if len(allowedRotations) == 0 {
		return Item{}, fmt.Errorf("entity: item %d has an empty allowed-rotations set", id)
	}
	for _, r := range allowedRotations {
		if !r.Valid() {
			return Item{}, fmt.Errorf("entity: item %d allows invalid rotation index %d", id, int(r))
		}
	}
	return Item{
		ID:               id,
		BaseDims:         base,
		Weight:           weight,
		AllowedRotations: allowedRotations,
		Fragile:          fragile,
		measurementError: measurementError,
	}, nil
}

// CalcDims returns (L+ε, W+ε, H+ε), the dimensions all feasibility math
// uses. Derived on demand from BaseDims rather than cached on
// construction, so Item stays a plain comparable-by-value struct.
func (it Item) CalcDims() Dims {
	eps := it.measurementError
	return Dims{L: it.BaseDims.L + eps, W: it.BaseDims.W + eps, H: it.BaseDims.H + eps}
}

// RotatedDims returns CalcDims() permuted by r.
func (it Item) RotatedDims(r Rotation) Dims {
	return it.CalcDims().Rotated(r)
}

// AllowsRotation reports whether r is in the item's allowed-rotations set.
func (it Item) AllowsRotation(r Rotation) bool {
	for _, ar := range it.AllowedRotations {
		if ar == r {
			return true
		}
	}
	return false
}

// ToDict serializes the item to a nested mapping with primitive leaves,
// for the HTTP/export boundary layer. Placement fields are included only
// when the item has actually been placed; see PlacedItem.ToDict.
func (it Item) ToDict() map[string]any {
	rotations := make([]int, len(it.AllowedRotations))
	for i, r := range it.AllowedRotations {
		rotations[i] = int(r)
	}
	return map[string]any{
		"id": it.ID,
		"base_dimensions": []float64{
			it.BaseDims.L, it.BaseDims.W, it.BaseDims.H,
		},
		"weight":            it.Weight,
		"allowed_rotations": rotations,
		"is_fragile":        it.Fragile,
	}
}

// PlacedItem pairs an Item with the placement decision committed for it.
type PlacedItem struct {
	Item     Item
	Position Point3
	Rotation Rotation
}

// Footprint returns the 2D axis-aligned footprint of the placed item.
func (p PlacedItem) Footprint() geom.Rect {
	d := p.Item.RotatedDims(p.Rotation)
	return geom.Rect{
		XMin: p.Position.X, YMin: p.Position.Y,
		XMax: p.Position.X + d.L, YMax: p.Position.Y + d.W,
	}
}

// Box returns the 3D axis-aligned bounding box of the placed item.
func (p PlacedItem) Box() geom.Box {
	d := p.Item.RotatedDims(p.Rotation)
	return geom.Box{
		XMin: p.Position.X, YMin: p.Position.Y, ZMin: p.Position.Z,
		XMax: p.Position.X + d.L, YMax: p.Position.Y + d.W, ZMax: p.Position.Z + d.H,
	}
}

// ZRange returns the [zBottom, zTop) height range the placed item occupies.
func (p PlacedItem) ZRange() (zBottom, zTop float64) {
	d := p.Item.RotatedDims(p.Rotation)
	return p.Position.Z, p.Position.Z + d.H
}

// ToDict serializes the placed item including its committed position and
// rotation, for the HTTP/export boundary layer.
func (p PlacedItem) ToDict() map[string]any {
	m := p.Item.ToDict()
	m["position"] = []float64{p.Position.X, p.Position.Y, p.Position.Z}
	m["rotation_type"] = int(p.Rotation)
	return m
}
