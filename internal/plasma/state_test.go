package plasma

import (
	"errors"
	"testing"
)

func TestShapeSizes(t *testing.T) {
	sh := Shape{Nx: 33, Ny: 1, Nz: 1, Nn: 20, Nm: 1, Np: 1, Ns: 2}

	if sh.GridSize() != 33 {
		t.Errorf("GridSize = %d, want 33", sh.GridSize())
	}
	if sh.Moments() != 20 {
		t.Errorf("Moments = %d, want 20", sh.Moments())
	}
	if sh.CkSize() != 2*20*33 {
		t.Errorf("CkSize = %d, want %d", sh.CkSize(), 2*20*33)
	}
	if sh.FkSize() != 6*33 {
		t.Errorf("FkSize = %d, want %d", sh.FkSize(), 6*33)
	}
	if sh.StateSize() != sh.CkSize()+sh.FkSize() {
		t.Error("StateSize must be CkSize + FkSize")
	}
}

func TestMomentIndexRoundTrip(t *testing.T) {
	sh := Shape{Nx: 1, Ny: 1, Nz: 1, Nn: 4, Nm: 3, Np: 2, Ns: 1}

	for p := 0; p < sh.Np; p++ {
		for m := 0; m < sh.Nm; m++ {
			for n := 0; n < sh.Nn; n++ {
				j := sh.MomentIndex(n, m, p)
				gn, gm, gp := sh.Moment(j)
				if gn != n || gm != m || gp != p {
					t.Fatalf("moment %d decoded to (%d,%d,%d), want (%d,%d,%d)",
						j, gn, gm, gp, n, m, p)
				}
			}
		}
	}
}

func TestSplitStateExact(t *testing.T) {
	sh := Shape{Nx: 3, Ny: 1, Nz: 1, Nn: 2, Nm: 1, Np: 1, Ns: 1}

	y := make([]complex128, sh.StateSize())
	ck, fk, err := sh.SplitState(y)
	if err != nil {
		t.Fatal(err)
	}
	if len(ck) != sh.CkSize() || len(fk) != sh.FkSize() {
		t.Errorf("split lengths (%d,%d), want (%d,%d)", len(ck), len(fk), sh.CkSize(), sh.FkSize())
	}

	// Any padding or truncation is a fatal configuration error.
	if _, _, err := sh.SplitState(make([]complex128, sh.StateSize()+1)); !errors.Is(err, ErrBadShape) {
		t.Errorf("expected ErrBadShape, got %v", err)
	}
}
