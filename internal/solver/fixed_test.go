package solver

import (
	"context"
	"math/cmplx"
	"testing"
)

func TestFixedStep_AlwaysAccepts(t *testing.T) {
	integ := FixedStep(NewRK4())
	y := State{1}

	yNew, errRatio, dtNext := integ.StepAdaptive(rotator{}, y, 0, 0.01, 1e-6)
	if errRatio != 0 {
		t.Errorf("expected error ratio 0, got %g", errRatio)
	}
	if dtNext != 0.01 {
		t.Errorf("expected unchanged step 0.01, got %g", dtNext)
	}
	if !yNew.IsValid() {
		t.Fatal("invalid state")
	}
}

func TestFixedStep_Solve(t *testing.T) {
	ts := []float64{0, 0.5, 1.0}
	cfg := DefaultConfig()
	cfg.Dt0 = 0.001

	res, err := Solve(context.Background(), rotator{}, State{1}, ts, FixedStep(NewRK4()), cfg)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	want := cmplx.Exp(complex(0, 1.0))
	got := res.States[2][0]
	if cmplx.Abs(got-want) > 1e-8 {
		t.Errorf("final state %v, want %v", got, want)
	}
}
