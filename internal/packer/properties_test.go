package packer

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/binstack/cellpack/internal/anchor"
	"github.com/binstack/cellpack/internal/entity"
	"github.com/binstack/cellpack/internal/geom"
	"github.com/binstack/cellpack/internal/scoring"
)

// TestProperty_HeuristicNeverOverlapsOrOverfills runs the heuristic
// packer against randomly generated item streams and checks, after
// every committed decision, that no two packed items overlap, every
// packed item stays within the cage's bounds, and the cage's total
// weight never exceeds its limit (spec.md §8's non-overlap,
// containment, and weight invariants).
func TestProperty_HeuristicNeverOverlapsOrOverfills(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cageDims := entity.Dims{
			L: rapid.Float64Range(5, 20).Draw(t, "cageL"),
			W: rapid.Float64Range(5, 20).Draw(t, "cageW"),
			H: rapid.Float64Range(5, 20).Draw(t, "cageH"),
		}
		weightLimit := rapid.Float64Range(10, 1000).Draw(t, "weightLimit")
		cage := entity.NewCage("prop", cageDims, weightLimit)

		p := NewHeuristic(&anchor.CornerPointGenerator{}, defaultParams(), scoring.DefaultWeights())

		n := rapid.IntRange(1, 8).Draw(t, "itemCount")
		for i := 0; i < n; i++ {
			dims := entity.Dims{
				L: rapid.Float64Range(0.5, 6).Draw(t, "l"),
				W: rapid.Float64Range(0.5, 6).Draw(t, "w"),
				H: rapid.Float64Range(0.5, 6).Draw(t, "h"),
			}
			weight := rapid.Float64Range(0.1, 50).Draw(t, "weight")
			item, err := entity.NewItem(i, dims, weight, []entity.Rotation{entity.Rotation0}, false, 0)
			if err != nil {
				continue
			}

			if _, err := p.Pack(cage, []entity.Item{item}); err != nil {
				t.Fatalf("Pack returned an error: %v", err)
			}

			assertNoOverlaps(t, cage)
			assertContained(t, cage)
			assertWeightWithinLimit(t, cage)
		}
	})
}

func assertNoOverlaps(t *rapid.T, cage *entity.Cage) {
	t.Helper()
	packed := cage.PackedItems()
	for i := range packed {
		for j := i + 1; j < len(packed); j++ {
			if packed[i].Box().Overlaps(packed[j].Box()) {
				t.Fatalf("items %d and %d overlap: %+v vs %+v", packed[i].Item.ID, packed[j].Item.ID, packed[i].Box(), packed[j].Box())
			}
		}
	}
}

func assertContained(t *rapid.T, cage *entity.Cage) {
	t.Helper()
	const tau = geom.Tolerance
	for _, p := range cage.PackedItems() {
		box := p.Box()
		if box.XMin < -tau || box.YMin < -tau || box.ZMin < -tau ||
			box.XMax > cage.Dims.L+tau || box.YMax > cage.Dims.W+tau || box.ZMax > cage.Dims.H+tau {
			t.Fatalf("item %d box %+v escapes cage bounds %+v", p.Item.ID, box, cage.Dims)
		}
	}
}

func assertWeightWithinLimit(t *rapid.T, cage *entity.Cage) {
	t.Helper()
	if cage.CurrentWeight() > cage.WeightLimit+geom.Tolerance {
		t.Fatalf("cage weight %v exceeds limit %v", cage.CurrentWeight(), cage.WeightLimit)
	}
}
