package solver

// Euler is the first-order explicit scheme, kept for debugging and
// step-size comparisons.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys System, y State, t, dt float64) State {
	dy := sys.Derive(t, y)
	result := make(State, len(y))
	h := complex(dt, 0)
	for i := range y {
		result[i] = y[i] + h*dy[i]
	}
	return result
}
