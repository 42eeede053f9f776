package solver

import "testing"

type benchSystem struct{ n int }

func (b benchSystem) Dim() int { return b.n }

func (b benchSystem) Derive(t float64, y State) State {
	dy := make(State, b.n)
	for i := range y {
		dy[i] = 1i * y[i]
	}
	return dy
}

func benchState(n int) State {
	y := make(State, n)
	for i := range y {
		y[i] = complex(float64(i%7)*0.1, 0.3)
	}
	return y
}

func BenchmarkEuler(b *testing.B) {
	integ := NewEuler()
	sys := benchSystem{n: 1024}
	y := benchState(1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y = integ.Step(sys, y, 0, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integ := NewRK4()
	sys := benchSystem{n: 1024}
	y := benchState(1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y = integ.Step(sys, y, 0, 0.01)
	}
}

func BenchmarkRK45(b *testing.B) {
	integ := NewRK45()
	sys := benchSystem{n: 1024}
	y := benchState(1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y = integ.Step(sys, y, 0, 0.01)
	}
}
