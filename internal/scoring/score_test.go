package scoring

import (
	"testing"

	"github.com/binstack/cellpack/internal/entity"
)

func TestScore_PrefersLowerZ(t *testing.T) {
	w := DefaultWeights()
	low := Score(entity.Point3{X: 0, Y: 0, Z: 0}, w)
	high := Score(entity.Point3{X: 0, Y: 0, Z: 5}, w)
	if !(low > high) {
		t.Errorf("Score(z=0) = %v, Score(z=5) = %v, want low > high", low, high)
	}
}

func TestScore_ZeroWZYieldsZero(t *testing.T) {
	w := Weights{}
	if got := Score(entity.Point3{X: 1, Y: 1, Z: 1}, w); got != 0 {
		t.Errorf("Score with zero weights = %v, want 0", got)
	}
}
