package solver

import (
	"context"
	"errors"
	"math/cmplx"
	"testing"
)

func sampleTimes(n int, tMax float64) []float64 {
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = tMax * float64(i) / float64(n-1)
	}
	return ts
}

func TestSolveSamplesAtRequestedTimes(t *testing.T) {
	ts := sampleTimes(11, 1.0)
	cfg := DefaultConfig()

	res, err := Solve(context.Background(), rotator{}, State{1}, ts, NewRK45(), cfg)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if len(res.Times) != len(ts) || len(res.States) != len(ts) {
		t.Fatalf("got %d samples, want %d", len(res.Times), len(ts))
	}
	for i, tt := range ts {
		if res.Times[i] != tt {
			t.Errorf("sample %d at t=%f, want %f", i, res.Times[i], tt)
		}
	}

	// Final sample must match the exact rotation.
	want := cmplx.Exp(complex(0, 1))
	if cmplx.Abs(res.States[len(ts)-1][0]-want) > 1e-6 {
		t.Errorf("final state %v, want %v", res.States[len(ts)-1][0], want)
	}
}

func TestSolveMaxStepsFatal(t *testing.T) {
	ts := sampleTimes(5, 10.0)
	cfg := DefaultConfig()
	cfg.MaxSteps = 3

	_, err := Solve(context.Background(), rotator{}, State{1}, ts, NewRK45(), cfg)
	if !errors.Is(err, ErrMaxSteps) {
		t.Fatalf("expected ErrMaxSteps, got %v", err)
	}

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatal("expected a StepError wrapper")
	}
	if stepErr.Step != 3 {
		t.Errorf("failure at step %d, want 3", stepErr.Step)
	}
}

func TestSolveValidatesInputs(t *testing.T) {
	cfg := DefaultConfig()

	if _, err := Solve(context.Background(), rotator{}, State{1}, nil, NewRK45(), cfg); !errors.Is(err, ErrEmptyTimes) {
		t.Errorf("expected ErrEmptyTimes, got %v", err)
	}

	if _, err := Solve(context.Background(), rotator{}, State{1, 2}, sampleTimes(3, 1), NewRK45(), cfg); err == nil {
		t.Error("expected dimension mismatch error")
	}

	bad := cfg
	bad.Tol = 0
	if _, err := Solve(context.Background(), rotator{}, State{1}, sampleTimes(3, 1), NewRK45(), bad); err == nil {
		t.Error("expected tolerance validation error")
	}
}

func TestSolveOnSample(t *testing.T) {
	ts := sampleTimes(4, 0.3)
	cfg := DefaultConfig()

	var seen []float64
	cfg.OnSample = func(i int, t float64, y State) {
		seen = append(seen, t)
	}

	if _, err := Solve(context.Background(), rotator{}, State{1}, ts, NewRK45(), cfg); err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if len(seen) != len(ts) {
		t.Errorf("observer saw %d samples, want %d", len(seen), len(ts))
	}
}

func TestSolveContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Solve(ctx, rotator{}, State{1}, sampleTimes(5, 1), NewRK45(), DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParallel(t *testing.T) {
	done := make([]bool, 16)
	err := Parallel(context.Background(), 16, 4, func(ctx context.Context, idx int) error {
		done[idx] = true
		return nil
	})
	if err != nil {
		t.Fatalf("Parallel failed: %v", err)
	}
	for i, d := range done {
		if !d {
			t.Errorf("job %d never ran", i)
		}
	}
}
