package sift

import "math"

// gaussianKernel1D returns normalized 1-D Gaussian weights for the given
// sigma, truncated at radius = ceil(4*sigma). The truncation radius is
// fixed across octaves and implementations so that descriptors stay
// reproducible, per the numerical-tolerance requirements in SPEC_FULL.md
// §4.1/§9.
func gaussianKernel1D(sigma float64) []float64 {
	radius := int(math.Ceil(4 * sigma))
	if radius < 1 {
		radius = 1
	}
	weights := make([]float64, 2*radius+1)
	sum := 0.0
	denom := 2 * sigma * sigma
	for i := -radius; i <= radius; i++ {
		w := math.Exp(-float64(i*i) / denom)
		weights[i+radius] = w
		sum += w
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// gaussianBlur applies a separable Gaussian blur with reflect boundary
// handling. The scalar implementation always runs; see dsp_backend.go.
func gaussianBlur(im *Image, sigma float64) *Image {
	kernel := gaussianKernel1D(sigma)
	radius := (len(kernel) - 1) / 2

	// Horizontal pass.
	tmp := NewImage(im.H, im.W)
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			var acc float64
			for i, w := range kernel {
				acc += w * im.At(y, x+i-radius)
			}
			tmp.Set(y, x, acc)
		}
	}

	// Vertical pass.
	out := NewImage(im.H, im.W)
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			var acc float64
			for i, w := range kernel {
				acc += w * tmp.At(y+i-radius, x)
			}
			out.Set(y, x, acc)
		}
	}
	return out
}

// incrementalSigma returns the blur sigma needed to go from a layer already
// blurred to sigmaCur, scaled by delta, to one blurred to sigmaCur*k.
func incrementalSigma(sigmaCur, k, delta float64) float64 {
	next := sigmaCur * k
	return (1 / delta) * math.Sqrt(next*next-sigmaCur*sigmaCur)
}
