package sift

// GradOctave holds the per-layer gradient images (∂y, ∂x) for one Gaussian
// octave, mirroring that octave's scale-layer layout, per SPEC_FULL.md §3.
type GradOctave struct {
	GY, GX []*Image
}

// buildGradientOctave computes central-difference gradients for every
// layer of oct, with reflect boundary handling.
func buildGradientOctave(oct *Octave) *GradOctave {
	n := len(oct.Layers)
	g := &GradOctave{
		GY: make([]*Image, n),
		GX: make([]*Image, n),
	}
	for s, layer := range oct.Layers {
		g.GY[s] = centralDiffY(layer)
		g.GX[s] = centralDiffX(layer)
	}
	return g
}

func centralDiffY(im *Image) *Image {
	out := NewImage(im.H, im.W)
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			out.Set(y, x, (im.At(y+1, x)-im.At(y-1, x))/2)
		}
	}
	return out
}

func centralDiffX(im *Image) *Image {
	out := NewImage(im.H, im.W)
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			out.Set(y, x, (im.At(y, x+1)-im.At(y, x-1))/2)
		}
	}
	return out
}
