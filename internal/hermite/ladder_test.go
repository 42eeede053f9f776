package hermite

import (
	"math"
	"testing"
)

func TestLadderCoefficients(t *testing.T) {
	l := NewLadder(4, 1, 1)

	for j := 0; j < 4; j++ {
		if want := math.Sqrt(float64(j + 1)); l.SqrtNPlus[j] != want {
			t.Errorf("SqrtNPlus[%d] = %f, want %f", j, l.SqrtNPlus[j], want)
		}
		if want := math.Sqrt(float64(j)); l.SqrtNMinus[j] != want {
			t.Errorf("SqrtNMinus[%d] = %f, want %f", j, l.SqrtNMinus[j], want)
		}
	}
}

func TestLadderMinusVanishesAtZero(t *testing.T) {
	l := NewLadder(3, 2, 5)

	if l.SqrtNMinus[0] != 0 || l.SqrtMMinus[0] != 0 || l.SqrtPMinus[0] != 0 {
		t.Error("minus coefficient at index 0 must be exactly zero")
	}
}

func TestLadderAxisLengths(t *testing.T) {
	l := NewLadder(20, 1, 3)

	if len(l.SqrtNPlus) != 20 || len(l.SqrtMPlus) != 1 || len(l.SqrtPPlus) != 3 {
		t.Errorf("ladder lengths (%d,%d,%d), want (20,1,3)",
			len(l.SqrtNPlus), len(l.SqrtMPlus), len(l.SqrtPPlus))
	}
}
