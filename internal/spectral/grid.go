// Package spectral provides the Fourier-space machinery for the solver:
// centered wavenumber grids, the 2/3-rule dealiasing mask, and shifted
// 3D transforms between spectral and real space.
//
// Arrays over the spatial grid are stored flat in (Ny, Nx, Nz) order
// with z fastest. The zero wavenumber sits at the center index
// floor(N/2) of each axis, matching the shifted transform convention.
package spectral

import "math"

// Grid holds the immutable wavenumber arrays for one simulation.
type Grid struct {
	Nx, Ny, Nz int
	Lx, Ly, Lz float64

	// Per-axis wavenumbers, integer multiples of 2*pi, zero centered.
	Kx, Ky, Kz []float64

	// Nabla is the physical gradient operator per grid point:
	// component d holds k_d / L_d.
	Nabla [3][]float64

	// K2 is |nabla|^2 per grid point.
	K2 []float64
}

// NewGrid builds the wavenumber grid for a periodic box of side lengths
// (Lx, Ly, Lz) resolved with (Nx, Ny, Nz) Fourier modes.
func NewGrid(lx, ly, lz float64, nx, ny, nz int) *Grid {
	g := &Grid{
		Nx: nx, Ny: ny, Nz: nz,
		Lx: lx, Ly: ly, Lz: lz,
		Kx: waveNumbers(nx),
		Ky: waveNumbers(ny),
		Kz: waveNumbers(nz),
	}

	n := ny * nx * nz
	for d := 0; d < 3; d++ {
		g.Nabla[d] = make([]float64, n)
	}
	g.K2 = make([]float64, n)

	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			for iz := 0; iz < nz; iz++ {
				i := Index(iy, ix, iz, nx, nz)
				g.Nabla[0][i] = g.Kx[ix] / lx
				g.Nabla[1][i] = g.Ky[iy] / ly
				g.Nabla[2][i] = g.Kz[iz] / lz
				g.K2[i] = g.Nabla[0][i]*g.Nabla[0][i] +
					g.Nabla[1][i]*g.Nabla[1][i] +
					g.Nabla[2][i]*g.Nabla[2][i]
			}
		}
	}
	return g
}

// Index maps (iy, ix, iz) to the flat offset in a (Ny, Nx, Nz) array.
func Index(iy, ix, iz, nx, nz int) int {
	return (iy*nx+ix)*nz + iz
}

// Center returns the index of the zero mode on an axis of size n.
func Center(n int) int { return n / 2 }

func waveNumbers(n int) []float64 {
	k := make([]float64, n)
	for i := 0; i < n; i++ {
		k[i] = 2 * math.Pi * float64(i-n/2)
	}
	return k
}
