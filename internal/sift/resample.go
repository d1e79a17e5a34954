package sift

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// grayF64Image adapts a sift.Image to the standard library's image.Image /
// draw.Image interfaces, backed by 16-bit grayscale so golang.org/x/image's
// generic interpolation kernels can operate on it directly. 16 bits of
// precision (1/65535 per level) is ample for inputs nominally in [0,1], per
// SPEC_FULL.md §6.
type grayF64Image struct {
	img *Image
}

func (g *grayF64Image) ColorModel() color.Model {
	return color.Gray16Model
}

func (g *grayF64Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.img.W, g.img.H)
}

func (g *grayF64Image) At(x, y int) color.Color {
	v := g.img.Pix[y*g.img.Stride+x]
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return color.Gray16{Y: uint16(v*65535 + 0.5)}
}

func (g *grayF64Image) Set(x, y int, c color.Color) {
	gr := color.Gray16Model.Convert(c).(color.Gray16)
	g.img.Pix[y*g.img.Stride+x] = float64(gr.Y) / 65535
}

// upsampleBicubic scales im up by an integer factor using Catmull-Rom
// (bicubic) interpolation, per SPEC_FULL.md §4.1 step 1.
func upsampleBicubic(im *Image, factor int) *Image {
	if factor == 1 {
		return im
	}
	dst := NewImage(im.H*factor, im.W*factor)
	src := &grayF64Image{img: im}
	dstAdapter := &grayF64Image{img: dst}
	draw.CatmullRom.Scale(dstAdapter, dstAdapter.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
