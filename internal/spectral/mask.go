package spectral

import "sync"

var (
	maskMu    sync.Mutex
	maskCache = map[[3]int][]bool{}
)

// DealiasMask returns the 2/3-rule mask for a (Ny, Nx, Nz) grid: true
// where a mode is kept, false on the outer third of wavenumber indices
// along each axis. Quadratic nonlinear products alias energy into the
// outer third, so those modes are zeroed after every transform of a
// pointwise product. Axes of size 1 carry no aliasing and are exempt.
//
// Masks are cached per shape; the mask for one shape is built once per
// process.
func DealiasMask(ny, nx, nz int) []bool {
	key := [3]int{ny, nx, nz}

	maskMu.Lock()
	defer maskMu.Unlock()
	if m, ok := maskCache[key]; ok {
		return m
	}

	m := make([]bool, ny*nx*nz)
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			for iz := 0; iz < nz; iz++ {
				m[Index(iy, ix, iz, nx, nz)] = axisKept(iy, ny) &&
					axisKept(ix, nx) && axisKept(iz, nz)
			}
		}
	}
	maskCache[key] = m
	return m
}

// axisKept reports whether centered index i survives truncation on an
// axis of size n. The retained band is |k| <= n/3.
func axisKept(i, n int) bool {
	if n == 1 {
		return true
	}
	k := i - n/2
	if k < 0 {
		k = -k
	}
	return 3*k <= n
}
