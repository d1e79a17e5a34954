package sift

import "math"

const orientationSmoothingPasses = 6

// assignOrientations builds the weighted gradient-orientation histogram
// for kp, smooths it, and emits one oriented keypoint per accepted peak,
// per SPEC_FULL.md §4.3. A degenerate (empty) patch drops the keypoint,
// returning nil.
func assignOrientations(oct *Octave, grad *GradOctave, kp keypoint, cfg Config) []keypoint {
	yxOY := kp.Y / oct.Delta
	yxOX := kp.X / oct.Delta
	sigmaO := kp.Sigma / oct.Delta

	gy := grad.GY[kp.Scale]
	gx := grad.GX[kp.Scale]
	h, w := gy.H, gy.W

	radius := 3 * cfg.LambdaOri * sigmaO
	yMin, yMax := clipRange(yxOY-radius, yxOY+radius, h)
	xMin, xMax := clipRange(yxOX-radius, yxOX+radius, w)
	if yMin > yMax || xMin > xMax {
		return nil
	}

	hist := make([]float64, cfg.NBins)
	twoSigma2 := 2 * (cfg.LambdaOri * sigmaO) * (cfg.LambdaOri * sigmaO)

	for n := yMin; n <= yMax; n++ {
		dn := float64(n) - yxOY
		for m := xMin; m <= xMax; m++ {
			dm := float64(m) - yxOX
			dy := gy.At(n, m)
			dx := gx.At(n, m)
			mag := math.Hypot(dy, dx)

			theta := math.Atan2(dx, dy)
			if theta < 0 {
				theta += 2 * math.Pi
			}
			weight := math.Exp(-(dn*dn + dm*dm) / twoSigma2)

			bin := orientationBin(theta, cfg.NBins)
			hist[bin] += weight * mag
		}
	}

	smoothHistogramCircular(hist, orientationSmoothingPasses)

	maxVal := 0.0
	for _, v := range hist {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		return nil
	}

	n := len(hist)
	var out []keypoint
	for b := 0; b < n; b++ {
		prev := hist[(b-1+n)%n]
		next := hist[(b+1)%n]
		if hist[b] < prev || hist[b] < next {
			continue
		}
		if hist[b] < cfg.CMax*maxVal {
			continue
		}
		angle := refinePeak(hist[(b-1+n)%n], hist[b], next, b, n)
		clone := kp
		clone.Theta = angle
		out = append(out, clone)
	}
	return out
}

// orientationBin rounds (not floors) theta into [0, nBins), per
// SPEC_FULL.md §9.
func orientationBin(theta float64, nBins int) int {
	b := int(math.Floor(theta/(2*math.Pi)*float64(nBins) + 0.5))
	b %= nBins
	if b < 0 {
		b += nBins
	}
	return b
}

func clipRange(lo, hi float64, n int) (int, int) {
	a := int(math.Ceil(lo))
	b := int(math.Floor(hi))
	if a < 0 {
		a = 0
	}
	if b > n-1 {
		b = n - 1
	}
	return a, b
}

func smoothHistogramCircular(hist []float64, passes int) {
	n := len(hist)
	tmp := make([]float64, n)
	for p := 0; p < passes; p++ {
		for i := 0; i < n; i++ {
			tmp[i] = (hist[(i-1+n)%n] + hist[i] + hist[(i+1)%n]) / 3
		}
		copy(hist, tmp)
	}
}

func refinePeak(hMinus, h0, hPlus float64, b, nBins int) float64 {
	offset := 0.0
	if denom := 2 * (hMinus + hPlus - 2*h0); denom != 0 {
		offset = (hMinus - hPlus) / denom
	}
	angle := (float64(b) + offset + 0.5) * 2 * math.Pi / float64(nBins)
	return wrapToPi(angle)
}

// wrapToPi maps an angle into (-pi, pi].
func wrapToPi(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
