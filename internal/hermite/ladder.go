// Package hermite holds the velocity-space recurrence coefficients for
// the Hermite expansion. Multiplying a Hermite series by the velocity
// variable, or differentiating it, couples moment j to j+1 and j-1 with
// weights sqrt(j+1) and sqrt(j); the six arrays here precompute those
// weights for the three velocity axes.
package hermite

import "math"

// Ladder holds sqrt(j+1) ("plus") and sqrt(j) ("minus") per retained
// moment index for each velocity axis. Minus[0] is 0: there is no
// moment below the first, and a coupling that would reference it
// contributes nothing.
type Ladder struct {
	Nn, Nm, Np int

	SqrtNPlus, SqrtNMinus []float64
	SqrtMPlus, SqrtMMinus []float64
	SqrtPPlus, SqrtPMinus []float64
}

// NewLadder builds the recurrence coefficients for a truncation
// retaining Nn x Nm x Np Hermite moments.
func NewLadder(nn, nm, np int) *Ladder {
	l := &Ladder{Nn: nn, Nm: nm, Np: np}
	l.SqrtNPlus, l.SqrtNMinus = ladderPair(nn)
	l.SqrtMPlus, l.SqrtMMinus = ladderPair(nm)
	l.SqrtPPlus, l.SqrtPMinus = ladderPair(np)
	return l
}

func ladderPair(n int) (plus, minus []float64) {
	plus = make([]float64, n)
	minus = make([]float64, n)
	for j := 0; j < n; j++ {
		plus[j] = math.Sqrt(float64(j + 1))
		minus[j] = math.Sqrt(float64(j))
	}
	return plus, minus
}
