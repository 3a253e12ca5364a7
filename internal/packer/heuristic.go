package packer

import (
	"fmt"

	"github.com/binstack/cellpack/internal/anchor"
	"github.com/binstack/cellpack/internal/constraint"
	"github.com/binstack/cellpack/internal/entity"
	"github.com/binstack/cellpack/internal/scoring"
	"github.com/binstack/cellpack/internal/surface"
)

// Heuristic implements an exhaustive best-score search over every
// (candidate, rotation, anchor) combination.
type Heuristic struct {
	Anchors anchor.Generator
	Params  constraint.Params
	Weights scoring.Weights
}

// NewHeuristic constructs a Heuristic packer.
func NewHeuristic(gen anchor.Generator, params constraint.Params, weights scoring.Weights) *Heuristic {
	return &Heuristic{Anchors: gen, Params: params, Weights: weights}
}

// Name returns the packer's registry name.
func (h *Heuristic) Name() string { return "heuristic" }

// Pack searches candidates in order, each item's allowed rotations in
// ascending index order, and the anchor generator's anchors in
// generator order, keeping the running best-scoring feasible
// placement under a strict greater-than comparison so the
// first-discovered tie wins. On success it commits the placement and
// refreshes the cage's support surfaces for the next decision.
func (h *Heuristic) Pack(cage *entity.Cage, candidates []entity.Item) (*Placement, error) {
	if len(candidates) == 0 {
		return nil, ErrEmptyCandidates
	}

	anchors := h.Anchors.Anchors(cage)

	var best *Placement
	var bestScore float64
	for _, item := range candidates {
		for _, rot := range sortedRotations(item.AllowedRotations) {
			for _, pos := range anchors {
				result := constraint.Check(cage, item, pos, rot, h.Params)
				if !result.Satisfied {
					continue
				}
				score := scoring.Score(pos, h.Weights)
				if best == nil || score > bestScore {
					placement := Placement{Item: item, Position: pos, Rotation: rot}
					best = &placement
					bestScore = score
				}
			}
		}
	}

	if best == nil {
		return nil, nil
	}
	if err := commitAndRefresh(cage, *best); err != nil {
		return nil, err
	}
	return best, nil
}

// commitAndRefresh commits a chosen placement to cage and rewrites its
// support surfaces. Constraint re-verification is intentionally
// skipped here: the caller already checked feasibility during search,
// and re-checking on commit would only duplicate that work.
func commitAndRefresh(cage *entity.Cage, placement Placement) error {
	if err := cage.Commit(placement.Item, placement.Position, placement.Rotation); err != nil {
		return fmt.Errorf("packer: committing chosen placement: %w", err)
	}
	placed := entity.PlacedItem{Item: placement.Item, Position: placement.Position, Rotation: placement.Rotation}
	updated, err := surface.Update(placed, cage.Surfaces())
	if err != nil {
		return fmt.Errorf("packer: updating support surfaces: %w", err)
	}
	cage.SetSurfaces(updated)
	return nil
}
