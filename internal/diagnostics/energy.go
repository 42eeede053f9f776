// Package diagnostics derives scalar time series from a sampled
// trajectory: electromagnetic and kinetic energy, their total, and
// density-fluctuation traces. The core solver performs no NaN/Inf or
// magnitude checks of its own; callers inspect these series instead.
package diagnostics

import (
	"math"

	"github.com/mwinther/hfvm/internal/plasma"
	"github.com/mwinther/hfvm/internal/spectral"
)

// Series bundles the energy traces for one run, one entry per sample.
type Series struct {
	Time    []float64
	EM      []float64
	Kinetic []float64   // summed over species
	Species [][]float64 // kinetic energy per species
	Total   []float64
}

// Energies computes the full energy bookkeeping for a trajectory.
func Energies(out *plasma.Output) *Series {
	n := len(out.Time)
	s := &Series{
		Time:    out.Time,
		EM:      make([]float64, n),
		Kinetic: make([]float64, n),
		Species: make([][]float64, out.Shape.Ns),
		Total:   make([]float64, n),
	}
	for sp := range s.Species {
		s.Species[sp] = make([]float64, n)
	}

	for it := 0; it < n; it++ {
		s.EM[it] = EMEnergy(out, it)
		for sp := 0; sp < out.Shape.Ns; sp++ {
			ke := KineticEnergy(out, it, sp)
			s.Species[sp][it] = ke
			s.Kinetic[it] += ke
		}
		s.Total[it] = s.EM[it] + s.Kinetic[it]
	}
	return s
}

// EMEnergy is the box-averaged field energy density. With the forward
// transform normalization, summing |Fk|^2 over modes equals the spatial
// mean of |F|^2; the Omega_ce factor puts field and kinetic energy on
// the same scale.
func EMEnergy(out *plasma.Output, it int) float64 {
	return emFromFk(out.Params, out.Fk[it])
}

func emFromFk(par *plasma.Parameters, fk []complex128) float64 {
	sum := 0.0
	for _, v := range fk {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}
	return 0.5 * par.OmegaCs[0] * sum
}

// KineticEnergy is the box-averaged kinetic energy density of one
// species, assembled from the k=0 entries of the Hermite moments with
// total index up to two: <v_d^2> = (u_d^2+alpha_d^2) C0 +
// 2 u_d alpha_d C1_d + sqrt(2) alpha_d^2 C2_d, weighted by the species
// mass Omega_ce/Omega_cs.
func KineticEnergy(out *plasma.Output, it, species int) float64 {
	return kineticFromCk(out.Params, out.Ck[it], species)
}

func kineticFromCk(par *plasma.Parameters, ck []complex128, species int) float64 {
	sh := par.Shape

	zero := spectral.Index(spectral.Center(sh.Ny), spectral.Center(sh.Nx),
		spectral.Center(sh.Nz), sh.Nx, sh.Nz)

	at := func(n, m, p int) float64 {
		if n >= sh.Nn || m >= sh.Nm || p >= sh.Np {
			return 0
		}
		return real(ck[sh.Block(species, sh.MomentIndex(n, m, p))+zero])
	}

	c0 := at(0, 0, 0)
	first := [3]float64{at(1, 0, 0), at(0, 1, 0), at(0, 0, 1)}
	second := [3]float64{at(2, 0, 0), at(0, 2, 0), at(0, 0, 2)}

	aProd := par.AlphaS[3*species] * par.AlphaS[3*species+1] * par.AlphaS[3*species+2]
	mass := par.OmegaCs[0] / par.OmegaCs[species]

	sum := 0.0
	for d := 0; d < 3; d++ {
		u := par.US[3*species+d]
		a := par.AlphaS[3*species+d]
		sum += (u*u+a*a)*c0 + 2*u*a*first[d] + math.Sqrt2*a*a*second[d]
	}
	return 0.5 * mass * aProd * sum
}

// InstantEnergies computes the electromagnetic and summed kinetic
// energy of one raw solver state, for progress reporting while a run
// is still in flight.
func InstantEnergies(par *plasma.Parameters, y []complex128) (em, kinetic float64, err error) {
	ck, fk, err := par.Shape.SplitState(y)
	if err != nil {
		return 0, 0, err
	}
	em = emFromFk(par, fk)
	for sp := 0; sp < par.Shape.Ns; sp++ {
		kinetic += kineticFromCk(par, ck, sp)
	}
	return em, kinetic, nil
}

// DensityFluctuation traces |Im dn_k| for one species at the spatial
// harmonic offset (nx, ny, nz) from the zero mode, alpha-weighted to a
// physical density amplitude.
func DensityFluctuation(out *plasma.Output, species, nx, ny, nz int) []float64 {
	sh := out.Shape
	par := out.Params

	idx := spectral.Index(spectral.Center(sh.Ny)+ny, spectral.Center(sh.Nx)+nx,
		spectral.Center(sh.Nz)+nz, sh.Nx, sh.Nz)
	aProd := par.AlphaS[3*species] * par.AlphaS[3*species+1] * par.AlphaS[3*species+2]

	trace := make([]float64, len(out.Time))
	for it := range trace {
		v := out.DCk[it][sh.Block(species, 0)+idx]
		trace[it] = math.Abs(imag(v)) * aProd
	}
	return trace
}

// RelativeDrift is the maximum |x(t)-x(0)| / |x(0)| over a series,
// used to judge conservation.
func RelativeDrift(series []float64) float64 {
	if len(series) == 0 || series[0] == 0 {
		return 0
	}
	maxDrift := 0.0
	for _, v := range series[1:] {
		drift := math.Abs(v-series[0]) / math.Abs(series[0])
		if drift > maxDrift {
			maxDrift = drift
		}
	}
	return maxDrift
}
