package sift

import (
	"math"
	"math/rand"
)

// syntheticTextureImage builds a deterministic grayscale image covered in a
// jittered grid of small bright squares of varying size and intensity. The
// square corners give DoG extrema a rich, repeatable set of blob- and
// corner-like structures to lock onto, which a single flat square (as used
// by the simpler detector tests) does not provide in enough quantity for
// descriptor-matching scenarios.
func syntheticTextureImage(size int) *Image {
	im := NewImage(size, size)
	rng := rand.New(rand.NewSource(20060102))

	const cells = 8
	cell := float64(size) / cells
	for r := 0; r < cells; r++ {
		for c := 0; c < cells; c++ {
			cy := (float64(r)+0.5)*cell + rng.Float64()*cell*0.2 - cell*0.1
			cx := (float64(c)+0.5)*cell + rng.Float64()*cell*0.2 - cell*0.1
			half := cell * (0.2 + 0.15*rng.Float64())
			amp := 0.4 + 0.6*rng.Float64()

			yLo, yHi := int(cy-half), int(cy+half)
			xLo, xHi := int(cx-half), int(cx+half)
			for y := yLo; y <= yHi; y++ {
				if y < 0 || y >= size {
					continue
				}
				for x := xLo; x <= xHi; x++ {
					if x < 0 || x >= size {
						continue
					}
					im.Set(y, x, amp)
				}
			}
		}
	}
	return im
}

// rotate180 returns a copy of im rotated by 180 degrees about its center.
// Unlike an arbitrary-angle rotation this requires no interpolation: every
// output pixel maps exactly onto a single source pixel.
func rotate180(im *Image) *Image {
	out := NewImage(im.H, im.W)
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			out.Set(y, x, im.At(im.H-1-y, im.W-1-x))
		}
	}
	return out
}

// similarityTransform resamples src under a similarity transform (uniform
// scale, rotation in radians, and a (dy,dx) translation) defined about the
// image center, via bilinear interpolation.
func similarityTransform(src *Image, scale, theta, dy, dx float64) *Image {
	out := NewImage(src.H, src.W)
	cy, cx := float64(src.H)/2, float64(src.W)/2
	cosT, sinT := math.Cos(theta), math.Sin(theta)

	for y := 0; y < out.H; y++ {
		py := float64(y) - cy - dy
		for x := 0; x < out.W; x++ {
			px := float64(x) - cx - dx
			sy := (cosT*py+sinT*px)/scale + cy
			sx := (-sinT*py+cosT*px)/scale + cx
			out.Set(y, x, bilinearAt(src, sy, sx))
		}
	}
	return out
}

// bilinearAt samples im at fractional coordinates (y,x), reflecting
// out-of-range taps the same way Image.At does.
func bilinearAt(im *Image, y, x float64) float64 {
	y0 := int(math.Floor(y))
	x0 := int(math.Floor(x))
	fy := y - float64(y0)
	fx := x - float64(x0)

	v00 := im.At(y0, x0)
	v01 := im.At(y0, x0+1)
	v10 := im.At(y0+1, x0)
	v11 := im.At(y0+1, x0+1)

	top := v00*(1-fx) + v01*fx
	bot := v10*(1-fx) + v11*fx
	return top*(1-fy) + bot*fy
}

// firstRows returns the first n rows of matrix, or all of them if fewer
// than n exist.
func firstRows(matrix [][]byte, n int) [][]byte {
	if len(matrix) < n {
		return matrix
	}
	return matrix[:n]
}
