package sift

import "math"

const maxLocalizeIterations = 5

// localizeCandidate iteratively refines a candidate to sub-pixel precision
// and applies the contrast, edge, and border filters, per SPEC_FULL.md
// §4.2. origH, origW are the original (pre-upsampling) image dimensions
// used by the border filter.
func localizeCandidate(c candidate, octIdx int, oct *Octave, dog *DogOctave, cfg Config, der derived, origH, origW int) (keypoint, bool) {
	nLayers := len(dog.Layers)
	h, w := dog.Layers[0].H, dog.Layers[0].W

	s, y, x := c.Scale, c.Row, c.Col
	var off [3]float64
	var t taylorExpansion
	converged := false

	for iter := 0; iter < maxLocalizeIterations; iter++ {
		t = expandAt(dog, s, y, x)
		var ok bool
		off, ok = solveOffset(t)
		if !ok {
			return keypoint{}, false
		}
		if withinHalf(off) {
			converged = true
			break
		}
		if iter == maxLocalizeIterations-1 {
			break
		}

		moved := false
		if ns, shift := tryShift(off[0], s, 1, nLayers-2); shift {
			s, moved = ns, true
		}
		if ny, shift := tryShift(off[1], y, 1, h-2); shift {
			y, moved = ny, true
		}
		if nx, shift := tryShift(off[2], x, 1, w-2); shift {
			x, moved = nx, true
		}
		if !moved {
			break
		}
	}

	if !converged {
		return keypoint{}, false
	}

	resp := t.value + 0.5*(t.gradient[0]*off[0]+t.gradient[1]*off[1]+t.gradient[2]*off[2])
	if math.Abs(resp) <= der.cDogAdjusted/float64(cfg.NScales) {
		return keypoint{}, false
	}

	hyy, hyx, hxx := spatialHessian2x2(t.hessian)
	tr := hyy + hxx
	det := hyy*hxx - hyx*hyx
	if det <= 0 {
		return keypoint{}, false
	}
	edgeThreshold := (cfg.CEdge + 1) * (cfg.CEdge + 1) / cfg.CEdge
	if tr*tr/det > edgeThreshold {
		return keypoint{}, false
	}

	finalY := (float64(y) + off[1]) * oct.Delta
	finalX := (float64(x) + off[2]) * oct.Delta
	sigma := oct.Sigmas[s] * math.Pow(der.k, off[0])

	if finalY-sigma < 0 || finalX-sigma < 0 {
		return keypoint{}, false
	}
	if finalY+sigma > float64(origH) || finalX+sigma > float64(origW) {
		return keypoint{}, false
	}

	return keypoint{
		Y:      finalY,
		X:      finalX,
		Scale:  s,
		Sigma:  sigma,
		Octave: octIdx,
	}, true
}

func withinHalf(off [3]float64) bool {
	return math.Abs(off[0]) <= 0.5 && math.Abs(off[1]) <= 0.5 && math.Abs(off[2]) <= 0.5
}

// tryShift returns the shifted index and true if off exceeds 0.5 in
// magnitude and shifting idx by sign(off) stays within [lo, hi].
func tryShift(off float64, idx, lo, hi int) (int, bool) {
	if math.Abs(off) <= 0.5 {
		return idx, false
	}
	next := idx + sign(off)
	if next < lo || next > hi {
		return idx, false
	}
	return next, true
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
