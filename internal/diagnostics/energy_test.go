package diagnostics

import (
	"context"
	"math"
	"testing"

	"github.com/mwinther/hfvm/internal/plasma"
	"github.com/mwinther/hfvm/internal/spectral"
)

func runShort(t *testing.T, par *plasma.Parameters, timesteps int) *plasma.Output {
	t.Helper()
	out, err := plasma.Simulate(context.Background(), par, plasma.RunOptions{
		Timesteps: timesteps,
		Dt:        0.01,
	})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestEMEnergySingleMode(t *testing.T) {
	sh := plasma.Shape{Nx: 5, Ny: 1, Nz: 1, Nn: 2, Nm: 1, Np: 1, Ns: 2}
	par := plasma.Default(sh)
	par.TMax = 0.001
	par.Dn1 = 0

	fk := make([]complex128, sh.FkSize())
	fk[2] = complex(0, 0.3) // one Ex harmonic
	par.Fk0 = fk

	out := runShort(t, par, 2)
	want := 0.5 * par.OmegaCs[0] * 0.09
	if got := EMEnergy(out, 0); math.Abs(got-want) > 1e-12 {
		t.Errorf("EM energy %g, want %g", got, want)
	}
}

func TestKineticEnergyMaxwellian(t *testing.T) {
	sh := plasma.Shape{Nx: 5, Ny: 1, Nz: 1, Nn: 3, Nm: 1, Np: 1, Ns: 2}
	par := plasma.Default(sh)
	par.TMax = 0.001
	par.Dn1 = 0

	out := runShort(t, par, 2)

	for sp := 0; sp < sh.Ns; sp++ {
		a := [3]float64{par.AlphaS[3*sp], par.AlphaS[3*sp+1], par.AlphaS[3*sp+2]}
		mass := par.OmegaCs[0] / par.OmegaCs[sp]
		// Unit density: KE = m/2 * (ax^2+ay^2+az^2).
		want := 0.5 * mass * (a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
		if got := KineticEnergy(out, 0, sp); math.Abs(got-want) > 1e-12 {
			t.Errorf("species %d kinetic energy %g, want %g", sp, got, want)
		}
	}
}

func TestEnergyConservation(t *testing.T) {
	// No collisions, no diffusion, no initial field perturbation: the
	// total energy exchanged between the Langmuir oscillation and the
	// particles must be conserved to integrator accuracy.
	sh := plasma.Shape{Nx: 9, Ny: 1, Nz: 1, Nn: 8, Nm: 1, Np: 1, Ns: 2}
	par := plasma.Default(sh)
	par.TMax = 2.0
	par.Dn1 = 0.01
	par.OdeTolerance = 1e-9

	out := runShort(t, par, 51)
	s := Energies(out)

	if drift := RelativeDrift(s.Total); drift > 1e-5 {
		t.Errorf("total energy drift %e exceeds tolerance", drift)
	}
}

func TestDensityFluctuationMatchesDCk(t *testing.T) {
	sh := plasma.Shape{Nx: 9, Ny: 1, Nz: 1, Nn: 4, Nm: 1, Np: 1, Ns: 2}
	par := plasma.Default(sh)
	par.TMax = 0.5

	out := runShort(t, par, 11)
	trace := DensityFluctuation(out, 0, 1, 0, 0)

	if len(trace) != 11 {
		t.Fatalf("trace length %d, want 11", len(trace))
	}

	idx := spectral.Index(0, spectral.Center(sh.Nx)+1, 0, sh.Nx, sh.Nz)
	aProd := par.AlphaS[0] * par.AlphaS[1] * par.AlphaS[2]
	for it := range trace {
		want := math.Abs(imag(out.DCk[it][idx])) * aProd
		if trace[it] != want {
			t.Fatalf("trace[%d] = %g, want %g", it, trace[it], want)
		}
	}
}
