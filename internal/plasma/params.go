package plasma

import (
	"fmt"
	"math"

	"github.com/mwinther/hfvm/internal/hermite"
	"github.com/mwinther/hfvm/internal/spectral"
)

// Parameters carries everything one run needs: species properties,
// collision settings, domain geometry, derived spectral arrays, and the
// initial state. Callers start from Default, override fields, then call
// Finalize once; after that the struct is treated as read-only by every
// right-hand-side evaluation.
type Parameters struct {
	Shape Shape

	// Per-species physics. Qs and OmegaCs have Ns entries; AlphaS and
	// US hold three components per species, x fastest.
	Qs      []float64 // signed charge
	OmegaCs []float64 // cyclotron frequency; entry 0 sets the field normalization
	AlphaS  []float64 // thermal velocity scale per axis
	US      []float64 // drift velocity per axis

	Nu float64 // collision rate
	D  float64 // spectral hyperdiffusion

	Lx, Ly, Lz float64

	TMax         float64
	OdeTolerance float64

	// Dn1 is the relative density perturbation seeded on the first
	// spatial harmonic of species 0.
	Dn1 float64

	// Derived by Finalize.
	Grid            *spectral.Grid
	Ladder          *hermite.Ladder
	CollisionMatrix []float64

	// Initial state blocks. Left nil, Finalize builds the default
	// perturbed Maxwellian; callers may supply their own.
	Ck0, Fk0 []complex128

	finalized bool
}

// Default returns the reference two-species setup: unit electrons and
// heavier singly-charged ions at equal temperature, a Langmuir-scale
// box, and no collisions or drifts. Species beyond the second copy the
// ion values.
func Default(shape Shape) *Parameters {
	const massRatio = 1836.0

	p := &Parameters{
		Shape:        shape,
		Qs:           make([]float64, shape.Ns),
		OmegaCs:      make([]float64, shape.Ns),
		AlphaS:       make([]float64, 3*shape.Ns),
		US:           make([]float64, 3*shape.Ns),
		Lx:           4 * math.Pi,
		Ly:           1,
		Lz:           1,
		TMax:         50,
		OdeTolerance: 1e-6,
		Dn1:          1e-3,
	}

	for s := 0; s < shape.Ns; s++ {
		q, omega, alpha := 1.0, 1/massRatio, 1/math.Sqrt(massRatio)
		if s == 0 {
			q, omega, alpha = -1.0, 1.0, 1.0
		}
		p.Qs[s] = q
		p.OmegaCs[s] = omega
		for d := 0; d < 3; d++ {
			p.AlphaS[3*s+d] = alpha
		}
	}
	return p
}

// Finalize builds the derived arrays (grid, ladder, collision matrix,
// initial conditions) and validates every array length against the
// shape. It must be called exactly once before the parameters are used.
func (p *Parameters) Finalize() error {
	if p.finalized {
		return fmt.Errorf("%w: parameters already finalized", ErrBadParameters)
	}
	if err := p.Shape.validate(); err != nil {
		return err
	}
	if err := p.validatePhysics(); err != nil {
		return err
	}

	p.Grid = spectral.NewGrid(p.Lx, p.Ly, p.Lz, p.Shape.Nx, p.Shape.Ny, p.Shape.Nz)
	p.Ladder = hermite.NewLadder(p.Shape.Nn, p.Shape.Nm, p.Shape.Np)
	p.CollisionMatrix = collisionMatrix(p.Shape)

	if p.Ck0 == nil {
		p.Ck0 = p.defaultCk0()
	}
	if p.Fk0 == nil {
		p.Fk0 = make([]complex128, p.Shape.FkSize())
	}
	if len(p.Ck0) != p.Shape.CkSize() {
		return fmt.Errorf("%w: Ck0 length %d, want %d", ErrBadShape, len(p.Ck0), p.Shape.CkSize())
	}
	if len(p.Fk0) != p.Shape.FkSize() {
		return fmt.Errorf("%w: Fk0 length %d, want %d", ErrBadShape, len(p.Fk0), p.Shape.FkSize())
	}

	p.finalized = true
	return nil
}

func (p *Parameters) validatePhysics() error {
	ns := p.Shape.Ns
	if len(p.Qs) != ns || len(p.OmegaCs) != ns {
		return fmt.Errorf("%w: Qs/OmegaCs need %d entries", ErrBadShape, ns)
	}
	if len(p.AlphaS) != 3*ns || len(p.US) != 3*ns {
		return fmt.Errorf("%w: AlphaS/US need %d entries", ErrBadShape, 3*ns)
	}
	for i, a := range p.AlphaS {
		if a <= 0 {
			return fmt.Errorf("%w: AlphaS[%d] = %g must be positive", ErrBadParameters, i, a)
		}
	}
	if p.OmegaCs[0] == 0 {
		return fmt.Errorf("%w: OmegaCs[0] must be nonzero (field normalization)", ErrBadParameters)
	}
	if p.Lx <= 0 || p.Ly <= 0 || p.Lz <= 0 {
		return fmt.Errorf("%w: domain lengths must be positive", ErrBadParameters)
	}
	if p.Nu < 0 || p.D < 0 {
		return fmt.Errorf("%w: Nu and D must be non-negative", ErrBadParameters)
	}
	if p.TMax <= 0 {
		return fmt.Errorf("%w: TMax must be positive", ErrBadParameters)
	}
	if p.OdeTolerance <= 0 {
		return fmt.Errorf("%w: OdeTolerance must be positive", ErrBadParameters)
	}
	return nil
}

// InitialState packs Ck0 and Fk0 into one contiguous vector.
func (p *Parameters) InitialState() []complex128 {
	y := make([]complex128, p.Shape.StateSize())
	copy(y, p.Ck0)
	copy(y[p.Shape.CkSize():], p.Fk0)
	return y
}

// defaultCk0 seeds each species with a uniform Maxwellian of unit
// density plus, on species 0, a cosine density perturbation of relative
// amplitude Dn1 on the first x harmonic.
func (p *Parameters) defaultCk0() []complex128 {
	sh := p.Shape
	ck := make([]complex128, sh.CkSize())

	cy := spectral.Center(sh.Ny)
	cx := spectral.Center(sh.Nx)
	cz := spectral.Center(sh.Nz)
	zero := spectral.Index(cy, cx, cz, sh.Nx, sh.Nz)

	for s := 0; s < sh.Ns; s++ {
		aProd := p.AlphaS[3*s] * p.AlphaS[3*s+1] * p.AlphaS[3*s+2]
		base := sh.Block(s, sh.MomentIndex(0, 0, 0))
		ck[base+zero] = complex(1/aProd, 0)

		if s == 0 && sh.Nx > 2 && p.Dn1 != 0 {
			amp := complex(p.Dn1/(2*aProd), 0)
			ck[base+spectral.Index(cy, cx+1, cz, sh.Nx, sh.Nz)] = amp
			ck[base+spectral.Index(cy, cx-1, cz, sh.Nx, sh.Nz)] = amp
		}
	}
	return ck
}

// collisionMatrix maps each Hermite triplet to its damping rate: the
// total index n+m+p, with the collisional invariants (density,
// momentum, energy: total index below 3) left undamped.
func collisionMatrix(sh Shape) []float64 {
	col := make([]float64, sh.Moments())
	for j := range col {
		n, m, p := sh.Moment(j)
		if total := n + m + p; total >= 3 {
			col[j] = float64(total)
		}
	}
	return col
}
