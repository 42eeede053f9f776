package spectral

import "testing"

func TestDealiasMaskOuterThird(t *testing.T) {
	nx := 33
	m := DealiasMask(1, nx, 1)

	kept := 0
	for ix := 0; ix < nx; ix++ {
		k := ix - nx/2
		if k < 0 {
			k = -k
		}
		want := 3*k <= nx
		if m[Index(0, ix, 0, nx, 1)] != want {
			t.Fatalf("mask at centered index %d = %v, want %v", k, m[ix], want)
		}
		if want {
			kept++
		}
	}

	if wantKept := 2*(nx/3) + 1; kept != wantKept {
		t.Errorf("kept %d modes, want %d", kept, wantKept)
	}
}

func TestDealiasMaskSingletonAxes(t *testing.T) {
	m := DealiasMask(1, 1, 1)
	if len(m) != 1 || !m[0] {
		t.Error("size-1 axes must be unmasked")
	}

	// Mixed shape: y and z exempt, x truncated.
	m = DealiasMask(1, 9, 1)
	masked := 0
	for _, keep := range m {
		if !keep {
			masked++
		}
	}
	if masked == 0 {
		t.Error("expected truncation on the x axis")
	}
}

func TestDealiasMaskCached(t *testing.T) {
	a := DealiasMask(2, 6, 2)
	b := DealiasMask(2, 6, 2)
	if &a[0] != &b[0] {
		t.Error("expected the same cached mask for one shape")
	}
}
