package solver

import (
	"context"
	"fmt"
	"math"
)

// Solve integrates sys from ts[0] and samples the trajectory at every
// time in ts. Between samples the integrator steps adaptively, carrying
// its step size across intervals and clamping the final substep so each
// sample lands exactly on its output time. The total number of step
// attempts, rejections included, is bounded by cfg.MaxSteps; exceeding
// the budget fails the whole run.
func Solve(ctx context.Context, sys System, y0 State, ts []float64, integ AdaptiveIntegrator, cfg Config) (*Result, error) {
	if len(ts) == 0 {
		return nil, ErrEmptyTimes
	}
	if len(y0) != sys.Dim() {
		return nil, fmt.Errorf("solver: state length %d does not match system dimension %d", len(y0), sys.Dim())
	}
	if cfg.Dt0 <= 0 {
		return nil, fmt.Errorf("solver: initial step size must be positive, got %g", cfg.Dt0)
	}
	if cfg.Tol <= 0 {
		return nil, fmt.Errorf("solver: tolerance must be positive, got %g", cfg.Tol)
	}

	res := &Result{
		Times:  make([]float64, 0, len(ts)),
		States: make([]State, 0, len(ts)),
	}

	y := y0.Clone()
	t := ts[0]
	dt := cfg.Dt0

	record := func(i int, t float64) {
		res.Times = append(res.Times, t)
		res.States = append(res.States, y.Clone())
		if cfg.OnSample != nil {
			cfg.OnSample(i, t, y)
		}
	}
	record(0, t)

	for i := 1; i < len(ts); i++ {
		target := ts[i]

		for t < target {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			default:
			}

			if res.Steps >= cfg.MaxSteps {
				return res, &StepError{Step: res.Steps, Time: t, Wrapped: ErrMaxSteps}
			}

			h := math.Min(dt, target-t)
			yNew, errRatio, dtNext := integ.StepAdaptive(sys, y, t, h, cfg.Tol)
			res.Steps++

			if errRatio > 1 {
				// Rejected: retry from the same state with the smaller step.
				dt = dtNext
				if dt < cfg.MinDt {
					return res, &StepError{Step: res.Steps, Time: t, Wrapped: ErrStepTooSmall}
				}
				continue
			}

			y = yNew
			t += h
			// Snap to the sample time once rounding leaves no
			// representable step.
			if target-t < 1e-14*math.Max(1, math.Abs(target)) {
				t = target
			}
			// Only grow the carried step when the attempt was not clamped
			// to the sample boundary.
			if h == dt || dtNext > dt {
				dt = dtNext
			}
		}

		record(i, target)
	}

	return res, nil
}
