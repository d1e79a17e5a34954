package sift

import "math"

const octaveSizeFloor = 12 // s_min in SPEC_FULL.md §4.1

// Octave is a Gaussian scale-space octave: n_scales+3 layers sharing one
// spatial resolution, plus the absolute sigma recorded for each layer.
type Octave struct {
	Layers []*Image
	Sigmas []float64
	Delta  float64 // delta_o, the octave's pixel spacing in original-image units
}

// DogOctave is the Difference-of-Gaussians stack derived from an Octave:
// n_scales+2 layers, one per adjacent-layer subtraction.
type DogOctave struct {
	Layers []*Image
}

// buildDoG differences adjacent layers of a Gaussian octave along the
// scale axis.
func buildDoG(oct *Octave) *DogOctave {
	layers := make([]*Image, len(oct.Layers)-1)
	for i := 1; i < len(oct.Layers); i++ {
		layers[i-1] = sub(oct.Layers[i], oct.Layers[i-1])
	}
	return &DogOctave{Layers: layers}
}

// numOctaves computes the effective octave count from the original image
// shape, per SPEC_FULL.md §4.1.
func numOctaves(h, w, nOctavesMax, upsampling int) int {
	bound := int(math.Floor(math.Log2(float64(min(h, w))/octaveSizeFloor))) + upsampling
	n := min(nOctavesMax, bound)
	if n < 1 {
		n = 1
	}
	return n
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// buildScaleSpace constructs the Gaussian and DoG pyramids for im, per
// SPEC_FULL.md §4.1.
func buildScaleSpace(im *Image, cfg Config, der derived) ([]*Octave, []*DogOctave) {
	seed := upsampleBicubic(im, cfg.Upsampling)

	sigmaStart := cfg.SigmaMin / float64(cfg.Upsampling)
	preSigma := (1 / der.deltaMin) * math.Sqrt(math.Max(0, sigmaStart*sigmaStart-cfg.SigmaIn*cfg.SigmaIn))
	seed = gaussianBlur(seed, preSigma)

	nOct := numOctaves(im.H, im.W, cfg.NOctaves, cfg.Upsampling)

	octaves := make([]*Octave, 0, nOct)
	dogs := make([]*DogOctave, 0, nOct)

	sigmaCur := sigmaStart
	current := seed

	for o := 0; o < nOct; o++ {
		if current.H < 4 || current.W < 4 {
			break
		}
		deltaO := der.deltaMin * math.Exp2(float64(o))

		nLayers := cfg.NScales + 3
		oct := &Octave{
			Layers: make([]*Image, nLayers),
			Sigmas: make([]float64, nLayers),
			Delta:  deltaO,
		}
		oct.Layers[0] = current
		oct.Sigmas[0] = sigmaCur

		for s := 1; s < nLayers; s++ {
			sigmaInc := incrementalSigma(sigmaCur, der.k, deltaO)
			oct.Layers[s] = gaussianBlur(oct.Layers[s-1], sigmaInc)
			sigmaCur *= der.k
			oct.Sigmas[s] = sigmaCur
		}

		octaves = append(octaves, oct)
		dogs = append(dogs, buildDoG(oct))

		current = oct.Layers[cfg.NScales].subsample()
	}

	return octaves, dogs
}
