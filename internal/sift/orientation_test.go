package sift

import (
	"math"
	"testing"
)

func TestOrientationBinRounding(t *testing.T) {
	nBins := 36
	tests := []struct {
		theta float64
		want  int
	}{
		{0, 0},
		{2 * math.Pi, 0},
		{2 * math.Pi * (1.0 / 36.0), 1},
		{2*math.Pi - 1e-9, 0}, // rounds up to bin 36 mod 36 = 0
	}
	for _, tt := range tests {
		if got := orientationBin(tt.theta, nBins); got != tt.want {
			t.Errorf("orientationBin(%v) = %d, want %d", tt.theta, got, tt.want)
		}
	}
}

func TestSmoothHistogramCircularPreservesUniform(t *testing.T) {
	hist := make([]float64, 8)
	for i := range hist {
		hist[i] = 2.0
	}
	smoothHistogramCircular(hist, 6)
	for i, v := range hist {
		if math.Abs(v-2.0) > 1e-9 {
			t.Errorf("hist[%d] = %v, want 2.0 (uniform input unchanged)", i, v)
		}
	}
}

func TestSmoothHistogramCircularConservesMass(t *testing.T) {
	hist := []float64{0, 0, 9, 0, 0, 0}
	total := 0.0
	for _, v := range hist {
		total += v
	}
	smoothHistogramCircular(hist, 1)
	after := 0.0
	for _, v := range hist {
		after += v
	}
	if math.Abs(total-after) > 1e-9 {
		t.Errorf("mass not conserved: before=%v after=%v", total, after)
	}
}

func TestWrapToPiRange(t *testing.T) {
	tests := []float64{0, math.Pi, -math.Pi, 3 * math.Pi, -3 * math.Pi, 0.1, -0.1}
	for _, a := range tests {
		w := wrapToPi(a)
		if w <= -math.Pi || w > math.Pi {
			t.Errorf("wrapToPi(%v) = %v, out of (-pi, pi]", a, w)
		}
	}
}

func TestAssignOrientationsEmptyPatchDropsKeypoint(t *testing.T) {
	oct := &Octave{Delta: 1}
	grad := &GradOctave{
		GY: []*Image{NewImage(4, 4)},
		GX: []*Image{NewImage(4, 4)},
	}
	// keypoint so far from the image that its whole patch lies outside it.
	kp := keypoint{Y: 1000, X: 1000, Sigma: 1, Scale: 0}
	cfg := DefaultConfig()

	if got := assignOrientations(oct, grad, kp, cfg); got != nil {
		t.Errorf("assignOrientations() = %v, want nil", got)
	}
}

func TestAssignOrientationsSingleDominantDirection(t *testing.T) {
	// A uniform gradient pointing in +x (gx=1, gy=0) everywhere yields a
	// single dominant histogram peak at theta=atan2(1,0)=pi/2.
	size := 41
	gy := NewImage(size, size)
	gx := NewImage(size, size)
	for i := range gx.Pix {
		gx.Pix[i] = 1
	}
	oct := &Octave{Delta: 1}
	grad := &GradOctave{GY: []*Image{gy}, GX: []*Image{gx}}
	kp := keypoint{Y: float64(size / 2), X: float64(size / 2), Sigma: 3, Scale: 0}
	cfg := DefaultConfig()

	out := assignOrientations(oct, grad, kp, cfg)
	if len(out) == 0 {
		t.Fatal("assignOrientations() returned no peaks")
	}
	want := math.Pi / 2
	for _, o := range out {
		if math.Abs(wrapToPi(o.Theta-want)) > 0.2 {
			t.Errorf("peak theta = %v, want near %v", o.Theta, want)
		}
	}
}
