// Package solver integrates systems of complex-valued ODEs. It supplies
// the state and system contracts, fixed-step and adaptive Runge-Kutta
// steppers, and a driver that samples the trajectory at prescribed
// output times under a hard budget on internal steps.
package solver

import (
	"math"
	"math/cmplx"
)

// State is a flat vector of complex degrees of freedom at one instant.
type State []complex128

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}
	return math.Sqrt(sum)
}

// System is an autonomous or time-dependent ODE dY/dt = f(t, Y). Derive
// must be a pure function of its arguments: the adaptive controller
// re-evaluates rejected steps, so repeated calls with the same inputs
// must return the same derivative.
type System interface {
	Derive(t float64, y State) State
	Dim() int
}

// Integrator advances a system by one fixed step.
type Integrator interface {
	Step(sys System, y State, t, dt float64) State
}

// AdaptiveIntegrator additionally attempts an error-controlled step,
// returning the candidate state, the ratio of estimated error to the
// tolerance (accept when <= 1), and the suggested next step size.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, y State, t, dt, tol float64) (State, float64, float64)
}

// Config controls the sampling driver.
type Config struct {
	Dt0      float64 // initial step size
	Tol      float64 // combined absolute/relative step tolerance
	MaxSteps int     // hard budget on internal step attempts
	MinDt    float64 // step underflow threshold

	// OnSample, when set, is called after each output time is reached.
	OnSample func(i int, t float64, y State)
}

func DefaultConfig() Config {
	return Config{
		Dt0:      0.01,
		Tol:      1e-6,
		MaxSteps: 1000000,
		MinDt:    1e-12,
	}
}

// Result is a sampled trajectory.
type Result struct {
	Times  []float64
	States []State
	Steps  int // internal step attempts, including rejections
}
