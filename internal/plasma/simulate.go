package plasma

import (
	"context"
	"fmt"

	"github.com/mwinther/hfvm/internal/solver"
	"github.com/mwinther/hfvm/internal/spectral"
)

// RunOptions configures one simulation run.
type RunOptions struct {
	Timesteps int     // number of output samples over [0, TMax]
	Dt        float64 // initial integrator step
	MaxSteps  int     // internal step budget; 0 means the default 1e6

	// Integrator defaults to Dormand-Prince RK45.
	Integrator solver.AdaptiveIntegrator

	// OnSample reports progress after each stored sample, with the raw
	// state for instantaneous diagnostics.
	OnSample func(i int, t float64, y []complex128)
}

// Output is the sampled trajectory plus the parameters that produced
// it. Ck rows are indexed (species x moment, y, x, z) flat per sample;
// Fk rows hold the six field components. DCk is Ck with the background
// (n=0, k=0) entry removed per species.
type Output struct {
	Shape  Shape
	Params *Parameters

	Time []float64
	Ck   [][]complex128
	Fk   [][]complex128
	DCk  [][]complex128

	Steps int
}

// CkAt reads one distribution coefficient: sample it, coefficient block
// b (species*moments + moment), spatial indices (iy, ix, iz).
func (o *Output) CkAt(it, b, iy, ix, iz int) complex128 {
	sh := o.Shape
	return o.Ck[it][b*sh.GridSize()+spectral.Index(iy, ix, iz, sh.Nx, sh.Nz)]
}

// FkAt reads one field coefficient; components are ordered Ex, Ey, Ez,
// Bx, By, Bz.
func (o *Output) FkAt(it, comp, iy, ix, iz int) complex128 {
	sh := o.Shape
	return o.Fk[it][comp*sh.GridSize()+spectral.Index(iy, ix, iz, sh.Nx, sh.Nz)]
}

// Simulate integrates the Vlasov-Maxwell system for finalized (or
// default-initializable) parameters and returns the sampled trajectory.
// The adaptive integrator runs with atol = rtol = OdeTolerance; if it
// cannot reach TMax within the step budget, the run fails rather than
// returning a truncated trajectory.
func Simulate(ctx context.Context, par *Parameters, opts RunOptions) (*Output, error) {
	if !par.finalized {
		if err := par.Finalize(); err != nil {
			return nil, err
		}
	}
	if opts.Timesteps < 2 {
		return nil, fmt.Errorf("%w: need at least 2 timesteps, got %d", ErrBadParameters, opts.Timesteps)
	}
	if opts.Dt <= 0 {
		return nil, fmt.Errorf("%w: initial step must be positive, got %g", ErrBadParameters, opts.Dt)
	}

	sys, err := NewSystem(par)
	if err != nil {
		return nil, err
	}

	integ := opts.Integrator
	if integ == nil {
		integ = solver.NewRK45()
	}

	time := make([]float64, opts.Timesteps)
	for i := range time {
		time[i] = par.TMax * float64(i) / float64(opts.Timesteps-1)
	}

	cfg := solver.DefaultConfig()
	cfg.Dt0 = opts.Dt
	cfg.Tol = par.OdeTolerance
	if opts.MaxSteps > 0 {
		cfg.MaxSteps = opts.MaxSteps
	}
	if opts.OnSample != nil {
		cfg.OnSample = func(i int, t float64, y solver.State) {
			opts.OnSample(i, t, y)
		}
	}

	res, err := solver.Solve(ctx, sys, par.InitialState(), time, integ, cfg)
	if err != nil {
		return nil, fmt.Errorf("plasma: integration failed: %w", err)
	}

	return assemble(par, res), nil
}

// assemble splits the raw solver trajectory into labeled Ck/Fk arrays
// and derives the perturbation DCk by zeroing the background mode.
func assemble(par *Parameters, res *solver.Result) *Output {
	sh := par.Shape
	out := &Output{
		Shape:  sh,
		Params: par,
		Time:   res.Times,
		Ck:     make([][]complex128, len(res.States)),
		Fk:     make([][]complex128, len(res.States)),
		DCk:    make([][]complex128, len(res.States)),
		Steps:  res.Steps,
	}

	zero := spectral.Index(spectral.Center(sh.Ny), spectral.Center(sh.Nx),
		spectral.Center(sh.Nz), sh.Nx, sh.Nz)

	for it, y := range res.States {
		out.Ck[it] = y[:sh.CkSize()]
		out.Fk[it] = y[sh.CkSize():]

		d := make([]complex128, sh.CkSize())
		copy(d, out.Ck[it])
		for s := 0; s < sh.Ns; s++ {
			d[sh.Block(s, 0)+zero] = 0
		}
		out.DCk[it] = d
	}
	return out
}
