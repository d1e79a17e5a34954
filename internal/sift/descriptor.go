package sift

import "math"

// buildDescriptor samples a rotated patch around kp and accumulates a
// nHist x nHist x nOri trilinear gradient histogram, then saturates,
// renormalizes, and quantizes it to bytes, per SPEC_FULL.md §4.4. Under
// the default configuration (NHist=4, NOri=8) the result has 128 bytes.
// A degenerate (empty) patch drops the keypoint, returning nil.
func buildDescriptor(oct *Octave, grad *GradOctave, kp keypoint, cfg Config) []byte {
	yxOY := kp.Y / oct.Delta
	yxOX := kp.X / oct.Delta
	sigmaO := kp.Sigma / oct.Delta

	gy := grad.GY[kp.Scale]
	gx := grad.GX[kp.Scale]
	h, w := gy.H, gy.W

	nHist := cfg.NHist
	nOri := cfg.NOri
	step := 2 * cfg.LambdaDescr * sigmaO / float64(nHist)
	radius := step * float64(nHist+1) / 2 * math.Sqrt2

	yMin, yMax := clipRange(yxOY-radius, yxOY+radius, h)
	xMin, xMax := clipRange(yxOX-radius, yxOX+radius, w)
	if yMin > yMax || xMin > xMax {
		return nil
	}

	hist := make([][][]float64, nHist)
	for i := range hist {
		hist[i] = make([][]float64, nHist)
		for j := range hist[i] {
			hist[i][j] = make([]float64, nOri)
		}
	}

	cosT, sinT := math.Cos(kp.Theta), math.Sin(kp.Theta)
	gaussSigma := 0.5 * float64(nHist)

	for n := yMin; n <= yMax; n++ {
		dy := float64(n) - yxOY
		for m := xMin; m <= xMax; m++ {
			dx := float64(m) - yxOX

			xRot := (dx*cosT - dy*sinT) / step
			yRot := (dx*sinT + dy*cosT) / step

			rBin := yRot + float64(nHist)/2 - 0.5
			cBin := xRot + float64(nHist)/2 - 0.5
			if rBin <= -1 || rBin >= float64(nHist) || cBin <= -1 || cBin >= float64(nHist) {
				continue
			}

			gdy := gy.At(n, m)
			gdx := gx.At(n, m)
			mag := math.Hypot(gdy, gdx)

			thetaGrad := math.Atan2(gdx, gdy)
			rel := math.Mod(thetaGrad-kp.Theta, 2*math.Pi)
			if rel < 0 {
				rel += 2 * math.Pi
			}
			oBin := rel / (2 * math.Pi) * float64(nOri)

			weight := math.Exp(-(xRot*xRot + yRot*yRot) / (2 * gaussSigma * gaussSigma))
			contribution := weight * mag

			accumulateTrilinear(hist, rBin, cBin, oBin, contribution, nHist, nOri)
		}
	}

	flat := make([]float64, nHist*nHist*nOri)
	idx := 0
	for i := 0; i < nHist; i++ {
		for j := 0; j < nHist; j++ {
			for k := 0; k < nOri; k++ {
				flat[idx] = hist[i][j][k]
				idx++
			}
		}
	}

	return quantizeDescriptor(flat, descriptorClampFraction)
}

// descriptorClampFraction is the saturation threshold (as a fraction of
// the L2 norm) applied before renormalization, per SPEC_FULL.md §4.4.
const descriptorClampFraction = 0.2

// accumulateTrilinear distributes contribution across the (up to) eight
// histogram cells surrounding the continuous (rBin, cBin, oBin) position.
// Orientation wraps circularly; spatial bins outside [0, nHist-1] simply
// drop their share.
func accumulateTrilinear(hist [][][]float64, rBin, cBin, oBin float64, contribution float64, nHist, nOri int) {
	r0 := int(math.Floor(rBin))
	c0 := int(math.Floor(cBin))
	o0 := int(math.Floor(oBin))

	fr := rBin - float64(r0)
	fc := cBin - float64(c0)
	fo := oBin - float64(o0)

	for dr := 0; dr <= 1; dr++ {
		r := r0 + dr
		if r < 0 || r >= nHist {
			continue
		}
		wr := fr
		if dr == 0 {
			wr = 1 - fr
		}
		for dc := 0; dc <= 1; dc++ {
			c := c0 + dc
			if c < 0 || c >= nHist {
				continue
			}
			wc := fc
			if dc == 0 {
				wc = 1 - fc
			}
			for do := 0; do <= 1; do++ {
				o := ((o0+do)%nOri + nOri) % nOri
				wo := fo
				if do == 0 {
					wo = 1 - fo
				}
				hist[r][c][o] += contribution * wr * wc * wo
			}
		}
	}
}

// quantizeDescriptor applies the saturate-then-renormalize-then-quantize
// procedure: clamp each component to clampFrac of the L2 norm, recompute
// the norm, then scale into [0, 255].
func quantizeDescriptor(flat []float64, clampFrac float64) []byte {
	norm := l2Norm(flat)
	if norm == 0 {
		out := make([]byte, len(flat))
		return out
	}
	clampVal := clampFrac * norm
	for i, v := range flat {
		if v > clampVal {
			flat[i] = clampVal
		}
	}
	norm2 := l2Norm(flat)
	if norm2 == 0 {
		norm2 = 1
	}
	out := make([]byte, len(flat))
	for i, v := range flat {
		q := math.Floor(512 * v / norm2)
		if q > 255 {
			q = 255
		}
		if q < 0 {
			q = 0
		}
		out[i] = byte(q)
	}
	return out
}

func l2Norm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
