package plasma

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/mwinther/hfvm/internal/solver"
	"github.com/mwinther/hfvm/internal/spectral"
)

// momentTable caches the triplet decode for one truncation so repeated
// System construction with the same shape reuses it.
type momentTable struct {
	n, m, p []int
}

var (
	tableMu    sync.Mutex
	tableCache = map[[3]int]*momentTable{}
)

func momentsFor(sh Shape) *momentTable {
	key := [3]int{sh.Nn, sh.Nm, sh.Np}

	tableMu.Lock()
	defer tableMu.Unlock()
	if t, ok := tableCache[key]; ok {
		return t
	}

	t := &momentTable{
		n: make([]int, sh.Moments()),
		m: make([]int, sh.Moments()),
		p: make([]int, sh.Moments()),
	}
	for j := 0; j < sh.Moments(); j++ {
		t.n[j], t.m[j], t.p[j] = sh.Moment(j)
	}
	tableCache[key] = t
	return t
}

// System is the packed Vlasov-Maxwell right-hand side. Derive is a pure
// function of the state: it holds only read-only arrays built at
// construction, so the adaptive controller may repeat or reorder
// evaluations freely.
type System struct {
	par  *Parameters
	sh   Shape
	mask []bool
	tab  *momentTable

	// nabla as complex arrays, ready for spectral multiplication.
	nabla [3][]complex128

	workers int
}

// NewSystem builds the evaluator for finalized parameters.
func NewSystem(par *Parameters) (*System, error) {
	if !par.finalized {
		return nil, fmt.Errorf("%w: parameters not finalized", ErrBadParameters)
	}

	sh := par.Shape
	s := &System{
		par:     par,
		sh:      sh,
		mask:    spectral.DealiasMask(sh.Ny, sh.Nx, sh.Nz),
		tab:     momentsFor(sh),
		workers: runtime.NumCPU(),
	}
	for d := 0; d < 3; d++ {
		s.nabla[d] = make([]complex128, sh.GridSize())
		for i, v := range par.Grid.Nabla[d] {
			s.nabla[d][i] = complex(v, 0)
		}
	}
	return s, nil
}

func (s *System) Dim() int { return s.sh.StateSize() }

// Derive evaluates d(Ck,Fk)/dt for the packed state y. The time
// argument is unused (the system is autonomous) but kept for the
// integrator contract.
func (s *System) Derive(_ float64, y solver.State) solver.State {
	sh := s.sh
	g := sh.GridSize()
	blocks := sh.Ns * sh.Moments()

	ck := y[:sh.CkSize()]
	fk := y[sh.CkSize():]

	dy := make(solver.State, sh.StateSize())
	dck := dy[:sh.CkSize()]
	dfk := dy[sh.CkSize():]

	// Real-space fields: E in f[0..2], B in f[3..5].
	var f [6][]complex128
	for c := 0; c < 6; c++ {
		f[c] = spectral.InverseShifted(fk[c*g:(c+1)*g], sh.Ny, sh.Nx, sh.Nz)
	}

	// Real-space distribution, one grid block per (species, moment).
	c := make([][]complex128, blocks)
	s.parallelBlocks(blocks, func(b int) {
		c[b] = spectral.InverseShifted(ck[b*g:(b+1)*g], sh.Ny, sh.Nx, sh.Nz)
	})

	// Per species, the drift-augmented force field (E + u x B)_d.
	geff := make([][3][]complex128, sh.Ns)
	for sp := 0; sp < sh.Ns; sp++ {
		ux := complex(s.par.US[3*sp], 0)
		uy := complex(s.par.US[3*sp+1], 0)
		uz := complex(s.par.US[3*sp+2], 0)
		for d := 0; d < 3; d++ {
			geff[sp][d] = make([]complex128, g)
		}
		for i := 0; i < g; i++ {
			geff[sp][0][i] = f[0][i] + uy*f[5][i] - uz*f[4][i]
			geff[sp][1][i] = f[1][i] + uz*f[3][i] - ux*f[5][i]
			geff[sp][2][i] = f[2][i] + ux*f[4][i] - uy*f[3][i]
		}
	}

	s.parallelBlocks(blocks, func(b int) {
		s.momentRHS(b, ck, c, f, geff, dck[b*g:(b+1)*g])
	})

	j := Current(s.par, ck)
	maxwellRHS(s.nabla, fk, j, s.par.OmegaCs[0], dfk)

	return dy
}

// momentRHS fills d(Ck)/dt for one (species, moment) block.
func (s *System) momentRHS(b int, ck []complex128, c [][]complex128, f [6][]complex128, geff [][3][]complex128, out []complex128) {
	sh := s.sh
	g := sh.GridSize()
	sp := b / sh.Moments()
	j := b % sh.Moments()
	n, m, p := s.tab.n[j], s.tab.m[j], s.tab.p[j]

	l := s.par.Ladder
	ax := s.par.AlphaS[3*sp]
	ay := s.par.AlphaS[3*sp+1]
	az := s.par.AlphaS[3*sp+2]
	ux := complex(s.par.US[3*sp], 0)
	uy := complex(s.par.US[3*sp+1], 0)
	uz := complex(s.par.US[3*sp+2], 0)

	// Normalized charge-to-mass ratio, electron scale.
	rs := s.par.Qs[sp] * s.par.OmegaCs[sp] / s.par.OmegaCs[0]

	spec := func(n, m, p int) []complex128 {
		if n < 0 || n >= sh.Nn || m < 0 || m >= sh.Nm || p < 0 || p >= sh.Np {
			return nil
		}
		off := sh.Block(sp, sh.MomentIndex(n, m, p))
		return ck[off : off+g]
	}
	phys := func(n, m, p int) []complex128 {
		if n < 0 || n >= sh.Nn || m < 0 || m >= sh.Nm || p < 0 || p >= sh.Np {
			return nil
		}
		return c[sp*sh.Moments()+sh.MomentIndex(n, m, p)]
	}

	self := spec(n, m, p)

	// Free streaming: -i k_d (u_d C + alpha_d (sqrt(j+1) C_{j+1} +
	// sqrt(j) C_{j-1})), plus diagonal collision and diffusion damping.
	nUp, nDn := spec(n+1, m, p), spec(n-1, m, p)
	mUp, mDn := spec(n, m+1, p), spec(n, m-1, p)
	pUp, pDn := spec(n, m, p+1), spec(n, m, p-1)

	cnp := complex(ax*l.SqrtNPlus[n], 0)
	cnm := complex(ax*l.SqrtNMinus[n], 0)
	cmp := complex(ay*l.SqrtMPlus[m], 0)
	cmm := complex(ay*l.SqrtMMinus[m], 0)
	cpp := complex(az*l.SqrtPPlus[p], 0)
	cpm := complex(az*l.SqrtPMinus[p], 0)

	nuCol := s.par.Nu * s.par.CollisionMatrix[j]

	for i := 0; i < g; i++ {
		sx := ux * self[i]
		if nUp != nil {
			sx += cnp * nUp[i]
		}
		if nDn != nil {
			sx += cnm * nDn[i]
		}
		sy := uy * self[i]
		if mUp != nil {
			sy += cmp * mUp[i]
		}
		if mDn != nil {
			sy += cmm * mDn[i]
		}
		sz := uz * self[i]
		if pUp != nil {
			sz += cpp * pUp[i]
		}
		if pDn != nil {
			sz += cpm * pDn[i]
		}

		out[i] = -1i*(s.nabla[0][i]*sx+s.nabla[1][i]*sy+s.nabla[2][i]*sz) -
			complex(nuCol+s.par.D*s.par.Grid.K2[i], 0)*self[i]
	}

	// Acceleration: the lowering (one-sided) Hermite coupling of
	// (E + v x B) . grad_v. The xi-dependent part of v x B adds the
	// two-sided ladder on the transverse axes. Products are taken
	// pointwise in real space, transformed forward, and dealiased.
	if rs == 0 || (n == 0 && m == 0 && p == 0) {
		return
	}

	acc := make([]complex128, g)
	ex, ey, ez := geff[sp][0], geff[sp][1], geff[sp][2]
	bx, by, bz := f[3], f[4], f[5]

	if n > 0 {
		cx := complex(rs*l.SqrtNMinus[n]/ax, 0)
		base := phys(n-1, m, p)
		tmm, tmp := phys(n-1, m-1, p), phys(n-1, m+1, p)
		tpm, tpp := phys(n-1, m, p-1), phys(n-1, m, p+1)
		wmm, wmp := complex(ay*l.SqrtMMinus[m], 0), complex(ay*l.SqrtMPlus[m], 0)
		wpm, wpp := complex(az*l.SqrtPMinus[p], 0), complex(az*l.SqrtPPlus[p], 0)
		for i := 0; i < g; i++ {
			v := ex[i] * base[i]
			if tmm != nil {
				v += bz[i] * wmm * tmm[i]
			}
			if tmp != nil {
				v += bz[i] * wmp * tmp[i]
			}
			if tpm != nil {
				v -= by[i] * wpm * tpm[i]
			}
			if tpp != nil {
				v -= by[i] * wpp * tpp[i]
			}
			acc[i] += cx * v
		}
	}

	if m > 0 {
		cy := complex(rs*l.SqrtMMinus[m]/ay, 0)
		base := phys(n, m-1, p)
		tpm, tpp := phys(n, m-1, p-1), phys(n, m-1, p+1)
		tnm, tnp := phys(n-1, m-1, p), phys(n+1, m-1, p)
		wpm, wpp := complex(az*l.SqrtPMinus[p], 0), complex(az*l.SqrtPPlus[p], 0)
		wnm, wnp := complex(ax*l.SqrtNMinus[n], 0), complex(ax*l.SqrtNPlus[n], 0)
		for i := 0; i < g; i++ {
			v := ey[i] * base[i]
			if tpm != nil {
				v += bx[i] * wpm * tpm[i]
			}
			if tpp != nil {
				v += bx[i] * wpp * tpp[i]
			}
			if tnm != nil {
				v -= bz[i] * wnm * tnm[i]
			}
			if tnp != nil {
				v -= bz[i] * wnp * tnp[i]
			}
			acc[i] += cy * v
		}
	}

	if p > 0 {
		cz := complex(rs*l.SqrtPMinus[p]/az, 0)
		base := phys(n, m, p-1)
		tnm, tnp := phys(n-1, m, p-1), phys(n+1, m, p-1)
		tmm, tmp := phys(n, m-1, p-1), phys(n, m+1, p-1)
		wnm, wnp := complex(ax*l.SqrtNMinus[n], 0), complex(ax*l.SqrtNPlus[n], 0)
		wmm, wmp := complex(ay*l.SqrtMMinus[m], 0), complex(ay*l.SqrtMPlus[m], 0)
		for i := 0; i < g; i++ {
			v := ez[i] * base[i]
			if tnm != nil {
				v += by[i] * wnm * tnm[i]
			}
			if tnp != nil {
				v += by[i] * wnp * tnp[i]
			}
			if tmm != nil {
				v -= bx[i] * wmm * tmm[i]
			}
			if tmp != nil {
				v -= bx[i] * wmp * tmp[i]
			}
			acc[i] += cz * v
		}
	}

	nl := spectral.ForwardShifted(acc, sh.Ny, sh.Nx, sh.Nz)
	for i := 0; i < g; i++ {
		if s.mask[i] {
			out[i] += nl[i]
		}
	}
}

// parallelBlocks fans fn out over block indices with a bounded number
// of goroutines. Serial below a small block count.
func (s *System) parallelBlocks(blocks int, fn func(b int)) {
	if blocks < 4 || s.workers < 2 {
		for b := 0; b < blocks; b++ {
			fn(b)
		}
		return
	}

	workers := s.workers
	if workers > blocks {
		workers = blocks
	}
	chunk := (blocks + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > blocks {
			end = blocks
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for b := lo; b < hi; b++ {
				fn(b)
			}
		}(start, end)
	}
	wg.Wait()
}
