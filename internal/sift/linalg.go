package sift

import "gonum.org/v1/gonum/mat"

// taylorExpansion holds the gradient and Hessian of a DoG octave at one
// (scale, row, col) index, in axis order (s, y, x), per SPEC_FULL.md §4.2.
type taylorExpansion struct {
	value    float64
	gradient [3]float64
	hessian  [3][3]float64
}

// expandAt computes the second-order Taylor expansion of the DoG response
// at (s,y,x) using central differences with unit spacing. The caller must
// guarantee (s,y,x) is strictly interior (s±1, y±1, x±1 all in range).
func expandAt(dog *DogOctave, s, y, x int) taylorExpansion {
	d := func(ds, dy, dx int) float64 {
		return dog.Layers[s+ds].At(y+dy, x+dx)
	}
	d0 := d(0, 0, 0)

	js := (d(1, 0, 0) - d(-1, 0, 0)) / 2
	jy := (d(0, 1, 0) - d(0, -1, 0)) / 2
	jx := (d(0, 0, 1) - d(0, 0, -1)) / 2

	hss := d(1, 0, 0) + d(-1, 0, 0) - 2*d0
	hyy := d(0, 1, 0) + d(0, -1, 0) - 2*d0
	hxx := d(0, 0, 1) + d(0, 0, -1) - 2*d0
	hsy := 0.25 * (d(1, 1, 0) - d(-1, 1, 0) - d(1, -1, 0) + d(-1, -1, 0))
	hsx := 0.25 * (d(1, 0, 1) - d(-1, 0, 1) - d(1, 0, -1) + d(-1, 0, -1))
	hyx := 0.25 * (d(0, 1, 1) - d(0, -1, 1) - d(0, 1, -1) + d(0, -1, -1))

	return taylorExpansion{
		value:    d0,
		gradient: [3]float64{js, jy, jx},
		hessian: [3][3]float64{
			{hss, hsy, hsx},
			{hsy, hyy, hyx},
			{hsx, hyx, hxx},
		},
	}
}

// solveOffset solves H*off = -J for the 3-D sub-pixel offset, using gonum's
// LU-backed Dense.Solve. A singular or ill-conditioned Hessian (degenerate
// extremum, per SPEC_FULL.md §7) is reported via ok=false, causing the
// caller to drop the candidate.
func solveOffset(t taylorExpansion) (off [3]float64, ok bool) {
	h := t.hessian
	a := mat.NewDense(3, 3, []float64{
		h[0][0], h[0][1], h[0][2],
		h[1][0], h[1][1], h[1][2],
		h[2][0], h[2][1], h[2][2],
	})
	b := mat.NewDense(3, 1, []float64{
		-t.gradient[0], -t.gradient[1], -t.gradient[2],
	})

	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		return off, false
	}
	return [3]float64{x.At(0, 0), x.At(1, 0), x.At(2, 0)}, true
}

// spatialHessian2x2 extracts the 2x2 spatial (y,x) sub-Hessian used by the
// edge-response filter.
func spatialHessian2x2(h [3][3]float64) (hyy, hyx, hxx float64) {
	return h[1][1], h[1][2], h[2][2]
}
