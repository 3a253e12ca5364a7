package scoring

import "github.com/binstack/cellpack/internal/entity"

// Weights bundles the scoring function's term coefficients. Only WZ is
// active; WStability and WCoG are accepted so the signature will not
// need to change once those terms gain real behavior, but they
// currently multiply an always-zero placeholder term.
type Weights struct {
	WZ         float64
	WStability float64
	WCoG       float64
}

// DefaultWeights returns the documented default: only the height term
// active.
func DefaultWeights() Weights {
	return Weights{WZ: 1.0}
}

// Score ranks a candidate anchor point: lower z scores higher, via
// WZ * 1/(1+z). The stability and center-of-gravity terms are reserved
// extension points and currently contribute 0.
func Score(pos entity.Point3, weights Weights) float64 {
	heightTerm := weights.WZ * (1 / (1 + pos.Z))
	stabilityTerm := weights.WStability * 0
	cogTerm := weights.WCoG * 0
	return heightTerm + stabilityTerm + cogTerm
}
