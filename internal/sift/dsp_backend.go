package sift

import (
	"log/slog"

	"golang.org/x/sys/cpu"
)

// Backend identifies which CPU feature set the separable-convolution inner
// loops (Gaussian blur, central-difference gradients) could exploit. Only
// the scalar path is implemented today; AVX2/NEON are detected and
// reported for future work but fall back to the same scalar code, the way
// the teacher's own NEON SAD kernel is a documented placeholder.
type Backend int

const (
	BackendScalar Backend = iota
	BackendAVX2
	BackendNEON
)

func (b Backend) String() string {
	switch b {
	case BackendAVX2:
		return "AVX2"
	case BackendNEON:
		return "NEON"
	default:
		return "scalar"
	}
}

// ActiveBackend reports which backend was detected at process start. The
// convolution routines in blur.go and gradient.go always execute the
// scalar path regardless of this value; it exists for diagnostics and as
// a documented hook for a future SIMD implementation.
var ActiveBackend Backend

func init() {
	switch {
	case cpu.X86.HasAVX2:
		ActiveBackend = BackendAVX2
		slog.Debug("sift DSP backend detected", "backend", "AVX2", "implemented", false)
	case cpu.ARM64.HasASIMD:
		ActiveBackend = BackendNEON
		slog.Debug("sift DSP backend detected", "backend", "NEON", "implemented", false)
	default:
		ActiveBackend = BackendScalar
		slog.Debug("sift DSP backend detected", "backend", "scalar", "implemented", true)
	}
}
