package entity

import (
	"fmt"

	"github.com/binstack/cellpack/internal/geom"
)

// Cage is the mutable container state (called "CageTrolley" in the
// source specification). It is mutated only through Commit and
// SetSurfaces, which the packers invoke after a placement with the
// output of surface.Update; callers never assign its slices directly. Anchor
// generators recompute their candidate points from PackedItems and
// Surfaces on every call rather than caching state on the cage.
type Cage struct {
	ID          string
	Dims        Dims
	WeightLimit float64

	packedItems []PlacedItem
	surfaces    []SupportSurface
}

// NewCage creates an empty cage: a single floor surface spanning the
// full footprint at z=0.
func NewCage(id string, dims Dims, weightLimit float64) *Cage {
	return &Cage{
		ID:          id,
		Dims:        dims,
		WeightLimit: weightLimit,
		surfaces: []SupportSurface{
			{
				Z:               0,
				Rect:            floorRect(dims),
				SupportingItems: []int{FloorSupport},
			},
		},
	}
}

func floorRect(dims Dims) geom.Rect {
	return geom.Rect{XMin: 0, YMin: 0, XMax: dims.L, YMax: dims.W}
}

// PackedItems returns a copy of the cage's packed items, in insertion
// order.
func (c *Cage) PackedItems() []PlacedItem {
	out := make([]PlacedItem, len(c.packedItems))
	copy(out, c.packedItems)
	return out
}

// Surfaces returns a copy of the cage's current support surfaces.
func (c *Cage) Surfaces() []SupportSurface {
	out := make([]SupportSurface, len(c.surfaces))
	copy(out, c.surfaces)
	return out
}

// SetSurfaces replaces the cage's support surfaces. Called by the
// packers after surface.Update produces the post-placement set.
func (c *Cage) SetSurfaces(surfaces []SupportSurface) {
	c.surfaces = surfaces
}

// CurrentWeight returns the sum of the weights of all packed items.
func (c *Cage) CurrentWeight() float64 {
	var total float64
	for _, p := range c.packedItems {
		total += p.Item.Weight
	}
	return total
}

// Commit appends item to the packed set at the given position and
// rotation. It does not validate feasibility — callers (the heuristic
// and MCTS packers) are responsible for checking internal/constraint
// before committing, per the specification's contract that add_item
// commits unconditionally.
func (c *Cage) Commit(item Item, pos Point3, rot Rotation) error {
	if !rot.Valid() {
		return fmt.Errorf("entity: cannot commit item %d with invalid rotation %d", item.ID, int(rot))
	}
	c.packedItems = append(c.packedItems, PlacedItem{Item: item, Position: pos, Rotation: rot})
	return nil
}

// Clone returns a shallow copy of the cage suitable for MCTS simulation:
// PackedItems and Surfaces are copied into independent backing slices
// (each PlacedItem/SupportSurface becomes an independent value), while
// the Item descriptors referenced by each PlacedItem are shared, since
// they are immutable outside their own placement fields. Mutating the
// clone's packed/surface slices never affects the original cage.
func (c *Cage) Clone() *Cage {
	clone := &Cage{
		ID:          c.ID,
		Dims:        c.Dims,
		WeightLimit: c.WeightLimit,
	}
	clone.packedItems = make([]PlacedItem, len(c.packedItems))
	copy(clone.packedItems, c.packedItems)

	clone.surfaces = make([]SupportSurface, len(c.surfaces))
	for i, s := range c.surfaces {
		clone.surfaces[i] = s.Clone()
	}

	return clone
}

// ToDict serializes the cage to a nested mapping with primitive leaves,
// for the HTTP/export boundary layer.
func (c *Cage) ToDict() map[string]any {
	items := make([]map[string]any, len(c.packedItems))
	for i, p := range c.packedItems {
		items[i] = p.ToDict()
	}
	surfaces := make([]map[string]any, len(c.surfaces))
	for i, s := range c.surfaces {
		surfaces[i] = map[string]any{
			"z":    s.Z,
			"rect": []float64{s.Rect.XMin, s.Rect.YMin, s.Rect.XMax, s.Rect.YMax},
			"supporting_items": s.SupportingItems,
		}
	}
	return map[string]any{
		"id":             c.ID,
		"dimensions":     []float64{c.Dims.L, c.Dims.W, c.Dims.H},
		"weight_limit":   c.WeightLimit,
		"current_weight": c.CurrentWeight(),
		"packed_items":   items,
		"support_surfaces": surfaces,
	}
}
