package sift

import (
	"fmt"
	"image"
)

// Image is a row-major 2-D array of 64-bit floats, the data model shared by
// every stage of the pipeline. Its field layout mirrors the standard
// library's image.Gray: a flat backing slice plus a stride, rather than a
// slice of slices.
type Image struct {
	Pix    []float64
	Stride int
	H, W   int
}

// NewImage allocates a zero-valued Image of the given shape.
func NewImage(h, w int) *Image {
	return &Image{
		Pix:    make([]float64, h*w),
		Stride: w,
		H:      h,
		W:      w,
	}
}

// NewImageFromGray converts a standard library grayscale image into a
// sift.Image with intensities scaled to [0,1].
func NewImageFromGray(img *image.Gray) *Image {
	b := img.Bounds()
	h, w := b.Dy(), b.Dx()
	out := NewImage(h, w)
	for y := 0; y < h; y++ {
		srcOff := img.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			out.Pix[y*out.Stride+x] = float64(img.Pix[srcOff+x]) / 255
		}
	}
	return out
}

func (im *Image) validate() error {
	if im.H <= 0 || im.W <= 0 {
		return fmt.Errorf("shape (%d,%d): %w", im.H, im.W, ErrInvalidImage)
	}
	if len(im.Pix) < im.H*im.Stride {
		return fmt.Errorf("pixel buffer too short for shape (%d,%d): %w", im.H, im.W, ErrInvalidImage)
	}
	return nil
}

// At returns the pixel at (y,x), reflecting out-of-bounds coordinates back
// into the image. Reflection follows the "reflect101" convention (edge pixel
// is not duplicated): index -1 maps to 1, H maps to H-2, matching the truncation
// convention used by the Gaussian blur's boundary handling.
func (im *Image) At(y, x int) float64 {
	y = reflectIndex(y, im.H)
	x = reflectIndex(x, im.W)
	return im.Pix[y*im.Stride+x]
}

// Set writes the pixel at (y,x) without bounds checking.
func (im *Image) Set(y, x int, v float64) {
	im.Pix[y*im.Stride+x] = v
}

// reflectIndex folds an out-of-range index back into [0, n) by reflection
// about the boundary, repeating as needed for indices far outside range.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}

// subsample returns a new Image containing every other row and column of
// im, starting at (0,0).
func (im *Image) subsample() *Image {
	h, w := (im.H+1)/2, (im.W+1)/2
	out := NewImage(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(y, x, im.At(2*y, 2*x))
		}
	}
	return out
}

// sub returns a new Image holding a - b, elementwise. a and b must share
// shape.
func sub(a, b *Image) *Image {
	out := NewImage(a.H, a.W)
	for y := 0; y < a.H; y++ {
		aRow := a.Pix[y*a.Stride : y*a.Stride+a.W]
		bRow := b.Pix[y*b.Stride : y*b.Stride+b.W]
		oRow := out.Pix[y*out.Stride : y*out.Stride+out.W]
		for x := range aRow {
			oRow[x] = aRow[x] - bRow[x]
		}
	}
	return out
}
