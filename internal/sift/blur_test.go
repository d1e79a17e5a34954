package sift

import (
	"math"
	"testing"
)

func TestGaussianKernel1DNormalizes(t *testing.T) {
	for _, sigma := range []float64{0.1, 0.8, 1.6, 3.0} {
		k := gaussianKernel1D(sigma)
		sum := 0.0
		for _, w := range k {
			sum += w
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("sigma=%v: kernel sums to %v, want 1", sigma, sum)
		}
		if len(k)%2 != 1 {
			t.Errorf("sigma=%v: kernel length %d is not odd", sigma, len(k))
		}
	}
}

func TestGaussianKernel1DSymmetric(t *testing.T) {
	k := gaussianKernel1D(1.6)
	n := len(k)
	for i := 0; i < n/2; i++ {
		if math.Abs(k[i]-k[n-1-i]) > 1e-12 {
			t.Errorf("kernel not symmetric at %d: %v vs %v", i, k[i], k[n-1-i])
		}
	}
}

func TestGaussianBlurPreservesConstantImage(t *testing.T) {
	im := NewImage(16, 16)
	for i := range im.Pix {
		im.Pix[i] = 0.5
	}
	out := gaussianBlur(im, 1.6)
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			if math.Abs(out.At(y, x)-0.5) > 1e-9 {
				t.Fatalf("blurred constant image at (%d,%d) = %v, want 0.5", y, x, out.At(y, x))
			}
		}
	}
}

func TestIncrementalSigma(t *testing.T) {
	sigmaCur, k, delta := 1.6, math.Pow(2, 1.0/3.0), 1.0
	inc := incrementalSigma(sigmaCur, k, delta)
	// Applying inc on top of sigmaCur should reach sigmaCur*k in quadrature.
	reached := math.Sqrt(sigmaCur*sigmaCur + (inc*delta)*(inc*delta))
	if math.Abs(reached-sigmaCur*k) > 1e-9 {
		t.Errorf("incrementalSigma gives %v, reached sigma %v, want %v", inc, reached, sigmaCur*k)
	}
}
