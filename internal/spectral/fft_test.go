package spectral

import (
	"math/cmplx"
	"math/rand"
	"testing"
)

func randomField(n int, rng *rand.Rand) []complex128 {
	data := make([]complex128, n)
	for i := range data {
		data[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	return data
}

func TestTransformRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	cases := []struct{ ny, nx, nz int }{
		{1, 33, 1},
		{1, 8, 1},
		{4, 5, 3},
		{1, 1, 1},
	}

	for _, c := range cases {
		orig := randomField(c.ny*c.nx*c.nz, rng)

		phys := InverseShifted(orig, c.ny, c.nx, c.nz)
		back := ForwardShifted(phys, c.ny, c.nx, c.nz)

		for i := range orig {
			if cmplx.Abs(back[i]-orig[i]) > 1e-10 {
				t.Fatalf("shape (%d,%d,%d): round trip mismatch at %d: %v != %v",
					c.ny, c.nx, c.nz, i, back[i], orig[i])
			}
		}
	}
}

func TestForwardNormalization(t *testing.T) {
	// A constant real-space field must transform to a single zero-mode
	// coefficient equal to the constant (1/N on the forward transform).
	ny, nx, nz := 1, 16, 1
	data := make([]complex128, nx)
	for i := range data {
		data[i] = 2.5
	}

	fk := ForwardShifted(data, ny, nx, nz)
	for ix := 0; ix < nx; ix++ {
		want := complex(0, 0)
		if ix == Center(nx) {
			want = 2.5
		}
		if cmplx.Abs(fk[ix]-want) > 1e-12 {
			t.Fatalf("coefficient %d = %v, want %v", ix, fk[ix], want)
		}
	}
}

func TestInverseIsUnscaledSum(t *testing.T) {
	// A single unit zero-mode coefficient must invert to a constant 1
	// field: the inverse transform carries no 1/N.
	nx := 9
	fk := make([]complex128, nx)
	fk[Center(nx)] = 1

	f := InverseShifted(fk, 1, nx, 1)
	for i := range f {
		if cmplx.Abs(f[i]-1) > 1e-12 {
			t.Fatalf("real-space value %d = %v, want 1", i, f[i])
		}
	}
}
