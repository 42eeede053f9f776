package spectral

import "github.com/mjibson/go-dsp/fft"

// Transforms use the "forward" normalization: the forward FFT carries
// the 1/N factor and the inverse carries none, so spectral coefficients
// are mode amplitudes and the inverse is a plain Fourier sum. Spectral
// arrays are stored shifted (zero mode centered), so the forward
// transform ends with an fftshift and the inverse starts with its
// inverse shift.

// ForwardShifted transforms a real-space (Ny, Nx, Nz) array to shifted
// spectral coefficients.
func ForwardShifted(data []complex128, ny, nx, nz int) []complex128 {
	out := transformAxes(data, ny, nx, nz, fft.FFT)
	scale := complex(1/float64(ny*nx*nz), 0)
	for i := range out {
		out[i] *= scale
	}
	return roll(out, ny, nx, nz, ny/2, nx/2, nz/2)
}

// InverseShifted transforms shifted spectral coefficients back to real
// space. Round-tripping through ForwardShifted recovers the input.
func InverseShifted(data []complex128, ny, nx, nz int) []complex128 {
	out := roll(data, ny, nx, nz, ny-ny/2, nx-nx/2, nz-nz/2)
	out = transformAxes(out, ny, nx, nz, fft.IFFT)
	// fft.IFFT scales by 1/N per axis; undo it for the unscaled inverse.
	scale := complex(float64(ny*nx*nz), 0)
	for i := range out {
		out[i] *= scale
	}
	return out
}

// transformAxes applies a 1D transform along each axis of a flat
// (Ny, Nx, Nz) array in turn. Size-1 axes are skipped.
func transformAxes(data []complex128, ny, nx, nz int, tr func([]complex128) []complex128) []complex128 {
	out := make([]complex128, len(data))
	copy(out, data)

	line := make([]complex128, 0, max3(ny, nx, nz))

	// axis 2 (z), stride 1
	if nz > 1 {
		for iy := 0; iy < ny; iy++ {
			for ix := 0; ix < nx; ix++ {
				base := Index(iy, ix, 0, nx, nz)
				copy(line[:nz], out[base:base+nz])
				res := tr(line[:nz])
				copy(out[base:base+nz], res)
			}
		}
	}

	// axis 1 (x), stride nz
	if nx > 1 {
		line = line[:nx]
		for iy := 0; iy < ny; iy++ {
			for iz := 0; iz < nz; iz++ {
				for ix := 0; ix < nx; ix++ {
					line[ix] = out[Index(iy, ix, iz, nx, nz)]
				}
				res := tr(line)
				for ix := 0; ix < nx; ix++ {
					out[Index(iy, ix, iz, nx, nz)] = res[ix]
				}
			}
		}
	}

	// axis 0 (y), stride nx*nz
	if ny > 1 {
		line = line[:ny]
		for ix := 0; ix < nx; ix++ {
			for iz := 0; iz < nz; iz++ {
				for iy := 0; iy < ny; iy++ {
					line[iy] = out[Index(iy, ix, iz, nx, nz)]
				}
				res := tr(line)
				for iy := 0; iy < ny; iy++ {
					out[Index(iy, ix, iz, nx, nz)] = res[iy]
				}
			}
		}
	}

	return out
}

// roll cyclically shifts a flat (Ny, Nx, Nz) array by (sy, sx, sz):
// out[(i+s) mod n] = in[i] per axis. A shift of n/2 per axis is an
// fftshift; n - n/2 undoes it.
func roll(data []complex128, ny, nx, nz, sy, sx, sz int) []complex128 {
	out := make([]complex128, len(data))
	for iy := 0; iy < ny; iy++ {
		jy := (iy + sy) % ny
		for ix := 0; ix < nx; ix++ {
			jx := (ix + sx) % nx
			for iz := 0; iz < nz; iz++ {
				jz := (iz + sz) % nz
				out[Index(jy, jx, jz, nx, nz)] = data[Index(iy, ix, iz, nx, nz)]
			}
		}
	}
	return out
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
