package packer

import (
	"errors"
	"sort"

	"github.com/binstack/cellpack/internal/entity"
)

// ErrEmptyCandidates is returned by Pack when called with no candidate
// items: an input-validation failure a caller can retry with a
// different window, not an internal inconsistency.
var ErrEmptyCandidates = errors.New("packer: Pack called with an empty candidate list")

// Placement records one committed decision: which item, at what
// rotation, at what anchor point.
type Placement struct {
	Item     entity.Item
	Position entity.Point3
	Rotation entity.Rotation
}

// Packer chooses and commits the next placement from a window of
// candidate items. Pack returns (nil, nil) when no candidate can be
// placed anywhere feasible — a normal outcome, not an error — and
// leaves cage untouched in that case. A non-nil error signals input
// validation failure or an internal inconsistency.
type Packer interface {
	Name() string
	Pack(cage *entity.Cage, candidates []entity.Item) (*Placement, error)
}

// sortedRotations returns a copy of rotations sorted ascending by
// index, so a caller iterating (item, rotation, anchor) combinations
// does so in a fixed order regardless of how the item's
// AllowedRotations slice was built.
func sortedRotations(rotations []entity.Rotation) []entity.Rotation {
	out := make([]entity.Rotation, len(rotations))
	copy(out, rotations)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func removeItemAt(items []entity.Item, idx int) []entity.Item {
	out := make([]entity.Item, 0, len(items)-1)
	out = append(out, items[:idx]...)
	out = append(out, items[idx+1:]...)
	return out
}
