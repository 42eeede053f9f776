package plasma

// Cross computes the pointwise 3-vector cross product of two vector
// fields: (a x b)_x = a_y b_z - a_z b_y, cyclic.
func Cross(a, b [3][]complex128) [3][]complex128 {
	n := len(a[0])
	var out [3][]complex128
	for d := 0; d < 3; d++ {
		out[d] = make([]complex128, n)
	}
	for i := 0; i < n; i++ {
		out[0][i] = a[1][i]*b[2][i] - a[2][i]*b[1][i]
		out[1][i] = a[2][i]*b[0][i] - a[0][i]*b[2][i]
		out[2][i] = a[0][i]*b[1][i] - a[1][i]*b[0][i]
	}
	return out
}

// maxwellRHS evaluates the spectral curl equations
//
//	dB/dt = -i (nabla x E)
//	dE/dt = +i (nabla x B) - J / Omega_ce
//
// writing the six field derivatives into dfk (E components first).
func maxwellRHS(nabla [3][]complex128, fk []complex128, j [3][]complex128, omegaCe float64, dfk []complex128) {
	g := len(nabla[0])

	var ek, bk [3][]complex128
	for d := 0; d < 3; d++ {
		ek[d] = fk[d*g : (d+1)*g]
		bk[d] = fk[(3+d)*g : (4+d)*g]
	}

	curlE := Cross(nabla, ek)
	curlB := Cross(nabla, bk)

	invOmega := complex(1/omegaCe, 0)
	for d := 0; d < 3; d++ {
		dE := dfk[d*g : (d+1)*g]
		dB := dfk[(3+d)*g : (4+d)*g]
		for i := 0; i < g; i++ {
			dE[i] = 1i*curlB[d][i] - j[d][i]*invOmega
			dB[i] = -1i * curlE[d][i]
		}
	}
}
