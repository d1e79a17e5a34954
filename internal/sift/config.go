package sift

import (
	"fmt"
	"math"
)

// Config holds the immutable tuning parameters for a Detector. Values are
// validated once by New and never mutated afterward.
type Config struct {
	// Upsampling is the pre-scale factor applied to the input image before
	// the pyramid is built. Must be 1, 2, or 4.
	Upsampling int

	// NOctaves is the maximum number of octaves. The actual octave count
	// used is the minimum of this and an image-size-derived bound.
	NOctaves int

	// NScales is the number of intra-octave scale steps.
	NScales int

	// SigmaMin is the seed blur at octave 0, scale 0.
	SigmaMin float64

	// SigmaIn is the assumed prior blur already present in the input.
	SigmaIn float64

	// CDog is the base contrast threshold.
	CDog float64

	// CEdge is the edge-response threshold.
	CEdge float64

	// NBins is the number of orientation histogram bins.
	NBins int

	// LambdaOri scales the orientation assignment patch radius.
	LambdaOri float64

	// CMax is the secondary-peak acceptance ratio for orientation.
	CMax float64

	// LambdaDescr scales the descriptor patch radius.
	LambdaDescr float64

	// NHist is the descriptor's spatial grid size per side.
	NHist int

	// NOri is the number of descriptor orientation bins.
	NOri int
}

// DefaultConfig returns the reference parameter set.
func DefaultConfig() Config {
	return Config{
		Upsampling:  2,
		NOctaves:    8,
		NScales:     3,
		SigmaMin:    1.6,
		SigmaIn:     0.5,
		CDog:        0.04 / 3,
		CEdge:       10,
		NBins:       36,
		LambdaOri:   1.5,
		CMax:        0.8,
		LambdaDescr: 6,
		NHist:       4,
		NOri:        8,
	}
}

// derived holds quantities computed once from a validated Config, shared by
// every pipeline stage.
type derived struct {
	deltaMin     float64 // 1/u
	k            float64 // 2^(1/n_scales)
	cDogAdjusted float64 // contrast threshold adjusted for n_scales
}

func (c Config) validate() error {
	switch c.Upsampling {
	case 1, 2, 4:
	default:
		return fmt.Errorf("upsampling %d: %w", c.Upsampling, ErrBadUpsampling)
	}
	if c.NOctaves <= 0 {
		return fmt.Errorf("n_octaves %d: %w", c.NOctaves, ErrBadConfig)
	}
	if c.NScales <= 0 {
		return fmt.Errorf("n_scales %d: %w", c.NScales, ErrBadConfig)
	}
	if c.NHist <= 0 || c.NOri <= 0 {
		return fmt.Errorf("n_hist=%d n_ori=%d: %w", c.NHist, c.NOri, ErrBadConfig)
	}
	return nil
}

func (c Config) derive() derived {
	n := float64(c.NScales)
	k := math.Pow(2, 1/n)
	adjusted := (k - 1) / (math.Pow(2, 1.0/3.0) - 1) * c.CDog
	return derived{
		deltaMin:     1 / float64(c.Upsampling),
		k:            k,
		cDogAdjusted: adjusted,
	}
}
