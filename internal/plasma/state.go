// Package plasma implements a collisional two-species Vlasov-Maxwell
// system discretized with Hermite moments in velocity space and Fourier
// modes in configuration space. The packed spectral state evolves as one
// coupled ODE: distribution coefficients for every species and Hermite
// triplet, followed by the six electromagnetic field components.
package plasma

import "fmt"

// Shape fixes the truncation of one simulation: Fourier modes per
// spatial axis, Hermite moments per velocity axis, and species count.
type Shape struct {
	Nx, Ny, Nz int
	Nn, Nm, Np int
	Ns         int
}

// GridSize is the number of spatial Fourier modes.
func (s Shape) GridSize() int { return s.Ny * s.Nx * s.Nz }

// Moments is the number of retained Hermite triplets per species.
func (s Shape) Moments() int { return s.Nn * s.Nm * s.Np }

// CkSize is the length of the distribution-coefficient block.
func (s Shape) CkSize() int { return s.Ns * s.Moments() * s.GridSize() }

// FkSize is the length of the field-coefficient block (E and B, three
// components each).
func (s Shape) FkSize() int { return 6 * s.GridSize() }

// StateSize is the length of the packed state vector.
func (s Shape) StateSize() int { return s.CkSize() + s.FkSize() }

// MomentIndex maps a Hermite triplet to its flat index, n fastest.
func (s Shape) MomentIndex(n, m, p int) int {
	return n + s.Nn*(m+s.Nm*p)
}

// Moment decodes a flat moment index back to its triplet.
func (s Shape) Moment(j int) (n, m, p int) {
	n = j % s.Nn
	m = (j / s.Nn) % s.Nm
	p = j / (s.Nn * s.Nm)
	return n, m, p
}

// Block returns the offset of one (species, moment) grid block inside
// the distribution section of the packed state.
func (s Shape) Block(species, moment int) int {
	return (species*s.Moments() + moment) * s.GridSize()
}

func (s Shape) validate() error {
	for _, v := range []struct {
		name string
		n    int
	}{
		{"Nx", s.Nx}, {"Ny", s.Ny}, {"Nz", s.Nz},
		{"Nn", s.Nn}, {"Nm", s.Nm}, {"Np", s.Np}, {"Ns", s.Ns},
	} {
		if v.n < 1 {
			return fmt.Errorf("%w: %s = %d", ErrBadShape, v.name, v.n)
		}
	}
	return nil
}

// SplitState views a packed state as its distribution and field
// sections. The slices alias the input; no copy is made.
func (s Shape) SplitState(y []complex128) (ck, fk []complex128, err error) {
	if len(y) != s.StateSize() {
		return nil, nil, fmt.Errorf("%w: state length %d, want %d (Ck %d + Fk %d)",
			ErrBadShape, len(y), s.StateSize(), s.CkSize(), s.FkSize())
	}
	return y[:s.CkSize()], y[s.CkSize():], nil
}
