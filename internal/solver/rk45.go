package solver

import "math"

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// RK45 is the Dormand-Prince 5(4) embedded pair: the fifth-order
// solution advances the state and the fourth-order difference
// estimates the local error.
type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (r *RK45) Step(sys System, y State, t, dt float64) State {
	newY, _, _ := r.StepAdaptive(sys, y, t, dt, 1e-6)
	return newY
}

// StepAdaptive attempts one step and returns the candidate state, the
// error-to-tolerance ratio (the step should be rejected when > 1), and
// the suggested next step size. The error norm combines absolute and
// relative scales per component, so tol acts as both atol and rtol.
func (r *RK45) StepAdaptive(sys System, y State, t, dt, tol float64) (State, float64, float64) {
	n := len(y)
	h := complex(dt, 0)

	k1 := sys.Derive(t, y)

	y2 := make(State, n)
	for i := 0; i < n; i++ {
		y2[i] = y[i] + h*complex(b21, 0)*k1[i]
	}
	k2 := sys.Derive(t+a2*dt, y2)

	y3 := make(State, n)
	for i := 0; i < n; i++ {
		y3[i] = y[i] + h*(complex(b31, 0)*k1[i]+complex(b32, 0)*k2[i])
	}
	k3 := sys.Derive(t+a3*dt, y3)

	y4 := make(State, n)
	for i := 0; i < n; i++ {
		y4[i] = y[i] + h*(complex(b41, 0)*k1[i]+complex(b42, 0)*k2[i]+complex(b43, 0)*k3[i])
	}
	k4 := sys.Derive(t+a4*dt, y4)

	y5 := make(State, n)
	for i := 0; i < n; i++ {
		y5[i] = y[i] + h*(complex(b51, 0)*k1[i]+complex(b52, 0)*k2[i]+complex(b53, 0)*k3[i]+complex(b54, 0)*k4[i])
	}
	k5 := sys.Derive(t+a5*dt, y5)

	y6 := make(State, n)
	for i := 0; i < n; i++ {
		y6[i] = y[i] + h*(complex(b61, 0)*k1[i]+complex(b62, 0)*k2[i]+complex(b63, 0)*k3[i]+complex(b64, 0)*k4[i]+complex(b65, 0)*k5[i])
	}
	k6 := sys.Derive(t+dt, y6)

	yNew := make(State, n)
	for i := 0; i < n; i++ {
		yNew[i] = y[i] + h*(complex(c1, 0)*k1[i]+complex(c3, 0)*k3[i]+complex(c4, 0)*k4[i]+complex(c5, 0)*k5[i]+complex(c6, 0)*k6[i])
	}

	k7 := sys.Derive(t+dt, yNew)

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := h * (complex(dc1, 0)*k1[i] + complex(dc3, 0)*k3[i] + complex(dc4, 0)*k4[i] + complex(dc5, 0)*k5[i] + complex(dc6, 0)*k6[i] + complex(dc7, 0)*k7[i])
		scale := cabs(y[i]) + cabs(h*k1[i]) + 1e-10
		errMax = math.Max(errMax, cabs(errEst)/scale)
	}

	errRatio := errMax / tol

	var dtNext float64
	switch {
	case errRatio > 1:
		dtNext = dt * math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
	case errRatio > 0:
		dtNext = dt * math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
	default:
		dtNext = dt * r.maxScale
	}

	return yNew, errRatio, dtNext
}

// cabs is the L1 magnitude, used only for step-error scaling.
func cabs(v complex128) float64 {
	return math.Abs(real(v)) + math.Abs(imag(v))
}
