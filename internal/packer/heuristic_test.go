package packer

import (
	"testing"

	"github.com/binstack/cellpack/internal/anchor"
	"github.com/binstack/cellpack/internal/constraint"
	"github.com/binstack/cellpack/internal/entity"
	"github.com/binstack/cellpack/internal/scoring"
)

func defaultParams() constraint.Params {
	return constraint.Params{StabilityFactor: 0.75, MergeMargin: 1e-6, SafetyMarginRatio: 0.8}
}

// Scenario 2 (spec.md §8): two identical items, Corner-Point heuristic
// picks the higher-scoring (lower-z) anchor, and the first-discovered
// candidate wins a tie.
func TestHeuristic_TwoIdenticalItems(t *testing.T) {
	cage := entity.NewCage("c1", entity.Dims{10, 10, 10}, 100)
	p := NewHeuristic(&anchor.CornerPointGenerator{}, defaultParams(), scoring.DefaultWeights())

	itemA, _ := entity.NewItem(1, entity.Dims{2, 2, 2}, 5, []entity.Rotation{entity.Rotation0}, false, 0)
	itemB, _ := entity.NewItem(2, entity.Dims{2, 2, 2}, 5, []entity.Rotation{entity.Rotation0}, false, 0)

	first, err := p.Pack(cage, []entity.Item{itemA, itemB})
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if first == nil {
		t.Fatal("expected a feasible placement into an empty cage")
	}
	if first.Position != (entity.Point3{0, 0, 0}) {
		t.Errorf("first placement position = %v, want origin", first.Position)
	}
	if first.Item.ID != itemA.ID {
		t.Errorf("expected the first-listed candidate (id=%d) to win the tie, got id=%d", itemA.ID, first.Item.ID)
	}

	second, err := p.Pack(cage, []entity.Item{itemB})
	if err != nil {
		t.Fatalf("second Pack failed: %v", err)
	}
	if second == nil {
		t.Fatal("expected a feasible placement for the second item")
	}
	if second.Position.Z != 0 {
		t.Errorf("expected the second item to land on the floor (z=0), got %v", second.Position)
	}
}

func TestHeuristic_NoFeasiblePlacementReturnsNilNil(t *testing.T) {
	cage := entity.NewCage("c1", entity.Dims{1, 1, 1}, 100)
	p := NewHeuristic(&anchor.CornerPointGenerator{}, defaultParams(), scoring.DefaultWeights())

	tooBig, _ := entity.NewItem(1, entity.Dims{5, 5, 5}, 1, []entity.Rotation{entity.Rotation0}, false, 0)
	result, err := p.Pack(cage, []entity.Item{tooBig})
	if err != nil {
		t.Fatalf("expected no-feasible-placement to be (nil, nil), got error: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil placement, got %+v", result)
	}
	if len(cage.PackedItems()) != 0 {
		t.Error("expected cage to be untouched after a failed Pack")
	}
}

func TestHeuristic_EmptyCandidatesIsError(t *testing.T) {
	cage := entity.NewCage("c1", entity.Dims{10, 10, 10}, 100)
	p := NewHeuristic(&anchor.CornerPointGenerator{}, defaultParams(), scoring.DefaultWeights())

	if _, err := p.Pack(cage, nil); err == nil {
		t.Error("expected an error for an empty candidate list")
	}
}
