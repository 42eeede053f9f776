package solver

// RK4 is the classic fixed-step fourth-order Runge-Kutta scheme.
type RK4 struct {
	scratch State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(sys System, y State, t, dt float64) State {
	n := len(y)
	if len(r.scratch) != n {
		r.scratch = make(State, n)
	}
	h := complex(dt, 0)

	k1 := sys.Derive(t, y)

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*0.5*k1[i]
	}
	k2 := sys.Derive(t+dt*0.5, r.scratch)

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*0.5*k2[i]
	}
	k3 := sys.Derive(t+dt*0.5, r.scratch)

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*k3[i]
	}
	k4 := sys.Derive(t+dt, r.scratch)

	result := make(State, n)
	h6 := h / 6.0
	for i := 0; i < n; i++ {
		result[i] = y[i] + h6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return result
}
