package plasma

// Current reduces the distribution coefficients to the charge-weighted
// bulk current density in Fourier space. Per species and axis d, the
// contribution is q_s * (alpha_x*alpha_y*alpha_z) * (alpha_d * first
// Hermite moment along d + u_d * zeroth moment); axes with a single
// retained moment have no first moment and contribute drift only. The
// reduction is strictly linear in ck.
func Current(p *Parameters, ck []complex128) [3][]complex128 {
	sh := p.Shape
	g := sh.GridSize()

	var j [3][]complex128
	for d := 0; d < 3; d++ {
		j[d] = make([]complex128, g)
	}

	first := [3]int{-1, -1, -1}
	if sh.Nn > 1 {
		first[0] = sh.MomentIndex(1, 0, 0)
	}
	if sh.Nm > 1 {
		first[1] = sh.MomentIndex(0, 1, 0)
	}
	if sh.Np > 1 {
		first[2] = sh.MomentIndex(0, 0, 1)
	}

	for s := 0; s < sh.Ns; s++ {
		aProd := p.AlphaS[3*s] * p.AlphaS[3*s+1] * p.AlphaS[3*s+2]
		q := complex(p.Qs[s]*aProd, 0)

		zeroth := ck[sh.Block(s, 0) : sh.Block(s, 0)+g]
		for d := 0; d < 3; d++ {
			drift := complex(p.US[3*s+d], 0)
			if first[d] >= 0 {
				alpha := complex(p.AlphaS[3*s+d], 0)
				mom := ck[sh.Block(s, first[d]) : sh.Block(s, first[d])+g]
				for i := 0; i < g; i++ {
					j[d][i] += q * (alpha*mom[i] + drift*zeroth[i])
				}
			} else if drift != 0 {
				for i := 0; i < g; i++ {
					j[d][i] += q * drift * zeroth[i]
				}
			}
		}
	}
	return j
}
