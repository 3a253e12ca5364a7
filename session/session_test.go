package session

import (
	"errors"
	"testing"

	"github.com/binstack/cellpack/internal/constraint"
	"github.com/binstack/cellpack/internal/entity"
	"github.com/binstack/cellpack/internal/packer"
	"github.com/binstack/cellpack/internal/scoring"
)

func defaultParams() constraint.Params {
	return constraint.Params{StabilityFactor: 0.75, MergeMargin: 1e-6, SafetyMarginRatio: 0.8}
}

func TestSession_StartsIdle(t *testing.T) {
	s := New(defaultParams(), scoring.DefaultWeights())
	if got := s.State(); got != Idle {
		t.Errorf("State() = %v, want Idle", got)
	}
	if _, err := s.Cage(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Cage() error = %v, want ErrNoSession", err)
	}
}

func TestSession_StartActivates(t *testing.T) {
	s := New(defaultParams(), scoring.DefaultWeights())
	cage := s.Start("c1", entity.Dims{L: 10, W: 10, H: 10}, 100)

	if got := s.State(); got != Active {
		t.Errorf("State() = %v, want Active", got)
	}
	if cage.ID != "c1" {
		t.Errorf("cage id = %q, want c1", cage.ID)
	}

	got, err := s.Cage()
	if err != nil {
		t.Fatalf("Cage() error = %v", err)
	}
	if got != cage {
		t.Error("Cage() did not return the started cage")
	}
}

func TestSession_StartReplacesInFlightSession(t *testing.T) {
	s := New(defaultParams(), scoring.DefaultWeights())
	first := s.Start("first", entity.Dims{L: 10, W: 10, H: 10}, 100)
	item, _ := entity.NewItem(1, entity.Dims{L: 2, W: 2, H: 2}, 5, []entity.Rotation{entity.Rotation0}, false, 0)
	if err := first.Commit(item, entity.Point3{}, entity.Rotation0); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	second := s.Start("second", entity.Dims{L: 5, W: 5, H: 5}, 50)
	if second.ID != "second" {
		t.Errorf("expected a fresh cage named second, got %q", second.ID)
	}
	if len(second.PackedItems()) != 0 {
		t.Error("expected the replacement cage to be empty")
	}
}

func TestSession_DecideWithoutStartIsError(t *testing.T) {
	s := New(defaultParams(), scoring.DefaultWeights())
	item, _ := entity.NewItem(1, entity.Dims{L: 2, W: 2, H: 2}, 5, []entity.Rotation{entity.Rotation0}, false, 0)

	_, err := s.Decide("cp", "heuristic", 0, 1, []entity.Item{item})
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("Decide() error = %v, want ErrNoSession", err)
	}
}

func TestSession_DecideUnknownStrategyIsError(t *testing.T) {
	s := New(defaultParams(), scoring.DefaultWeights())
	s.Start("c1", entity.Dims{L: 10, W: 10, H: 10}, 100)
	item, _ := entity.NewItem(1, entity.Dims{L: 2, W: 2, H: 2}, 5, []entity.Rotation{entity.Rotation0}, false, 0)

	if _, err := s.Decide("bogus", "heuristic", 0, 1, []entity.Item{item}); err == nil {
		t.Error("expected an error for an unknown anchor strategy")
	}
}

func TestSession_DecideUnknownAlgorithmIsError(t *testing.T) {
	s := New(defaultParams(), scoring.DefaultWeights())
	s.Start("c1", entity.Dims{L: 10, W: 10, H: 10}, 100)
	item, _ := entity.NewItem(1, entity.Dims{L: 2, W: 2, H: 2}, 5, []entity.Rotation{entity.Rotation0}, false, 0)

	if _, err := s.Decide("cp", "bogus", 0, 1, []entity.Item{item}); err == nil {
		t.Error("expected an error for an unknown packing algorithm")
	}
	if got := s.State(); got != Active {
		t.Errorf("State() = %v, want Active (a rejected tuple is not corruption)", got)
	}
}

func TestSession_DecideCommitsFeasiblePlacement(t *testing.T) {
	s := New(defaultParams(), scoring.DefaultWeights())
	s.Start("c1", entity.Dims{L: 10, W: 10, H: 10}, 100)
	item, _ := entity.NewItem(1, entity.Dims{L: 2, W: 2, H: 2}, 5, []entity.Rotation{entity.Rotation0}, false, 0)

	placement, err := s.Decide("cp", "heuristic", 0, 1, []entity.Item{item})
	if err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if placement == nil {
		t.Fatal("expected a feasible placement into an empty cage")
	}

	cage, _ := s.Cage()
	if len(cage.PackedItems()) != 1 {
		t.Errorf("expected 1 packed item after Decide, got %d", len(cage.PackedItems()))
	}
	if got := s.State(); got != Active {
		t.Errorf("State() = %v, want Active", got)
	}
}

func TestSession_DecideNoFeasiblePlacementStaysActive(t *testing.T) {
	s := New(defaultParams(), scoring.DefaultWeights())
	s.Start("c1", entity.Dims{L: 1, W: 1, H: 1}, 100)
	tooBig, _ := entity.NewItem(1, entity.Dims{L: 5, W: 5, H: 5}, 5, []entity.Rotation{entity.Rotation0}, false, 0)

	placement, err := s.Decide("cp", "heuristic", 0, 1, []entity.Item{tooBig})
	if err != nil {
		t.Fatalf("Decide() error = %v", err)
	}
	if placement != nil {
		t.Errorf("expected no feasible placement, got %+v", placement)
	}
	if got := s.State(); got != Active {
		t.Errorf("State() = %v, want Active after a no-feasible-placement decision", got)
	}
}

func TestSession_DecideEmptyCandidatesIsInputValidationNotCorruption(t *testing.T) {
	s := New(defaultParams(), scoring.DefaultWeights())
	s.Start("c1", entity.Dims{L: 10, W: 10, H: 10}, 100)

	_, err := s.Decide("cp", "heuristic", 0, 1, nil)
	if !errors.Is(err, packer.ErrEmptyCandidates) {
		t.Errorf("Decide() error = %v, want ErrEmptyCandidates", err)
	}
	if got := s.State(); got != Active {
		t.Errorf("State() = %v, want Active (empty candidates is input validation, not corruption)", got)
	}
}

func TestState_String(t *testing.T) {
	cases := map[State]string{Idle: "idle", Active: "active", Stuck: "stuck", State(99): "unknown"}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
