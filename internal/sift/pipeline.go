package sift

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Detector runs the scale-space, localization, orientation, and descriptor
// stages against a validated Config. It holds no per-image state, so a
// single Detector may be reused concurrently across images.
type Detector struct {
	cfg Config
	der derived
}

// New validates cfg and returns a Detector, or a wrapped ErrBadUpsampling /
// ErrBadConfig if any field is out of range.
func New(cfg Config) (*Detector, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Detector{cfg: cfg, der: cfg.derive()}, nil
}

// resultEntry pairs an oriented keypoint with the octave and gradient data
// it was detected in, so a later Extract call can build its descriptor
// without rebuilding the pyramid.
type resultEntry struct {
	kp   keypoint
	oct  *Octave
	grad *GradOctave
}

// Result holds the keypoints produced by Detect, and, after Extract, their
// descriptors. All slices stay index-aligned with one another.
type Result struct {
	Positions    [][2]float64
	Sigmas       []float64
	Scales       []int
	Octaves      []int
	Orientations []float64
	Descriptors  [][]byte

	entries []resultEntry
}

// DescriptorMatrix returns the keypoint descriptors, one []byte row per
// keypoint, nil until Extract has run.
func (r *Result) DescriptorMatrix() [][]byte {
	return r.Descriptors
}

func (r *Result) refreshFields(withDescriptors bool) {
	n := len(r.entries)
	r.Positions = make([][2]float64, n)
	r.Sigmas = make([]float64, n)
	r.Scales = make([]int, n)
	r.Octaves = make([]int, n)
	r.Orientations = make([]float64, n)
	for i, e := range r.entries {
		r.Positions[i] = [2]float64{e.kp.Y, e.kp.X}
		r.Sigmas[i] = e.kp.Sigma
		r.Scales[i] = e.kp.Scale
		r.Octaves[i] = e.kp.Octave
		r.Orientations[i] = e.kp.Theta
	}
	if !withDescriptors {
		r.Descriptors = nil
	}
}

// candidateAcceptFraction scales the adjusted contrast threshold down for
// the coarse extremum scan, leaving the stricter check to localizeCandidate
// once the sub-pixel offset is known.
const candidateAcceptFraction = 0.8

// Detect builds the scale-space pyramid for im and returns every localized,
// oriented keypoint it finds. Octaves are processed concurrently via
// errgroup; per-octave work never touches another octave's data, so no
// locking is needed beyond the final merge.
func (d *Detector) Detect(ctx context.Context, im *Image) (*Result, error) {
	if err := im.validate(); err != nil {
		return nil, err
	}

	octaves, dogs := buildScaleSpace(im, d.cfg, d.der)
	threshold := candidateAcceptFraction * d.der.cDogAdjusted

	perOctave := make([][]resultEntry, len(octaves))
	g, gctx := errgroup.WithContext(ctx)
	for i := range octaves {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			oct := octaves[i]
			dog := dogs[i]
			grad := buildGradientOctave(oct)

			var entries []resultEntry
			for _, c := range findCandidates(dog, threshold) {
				kp, ok := localizeCandidate(c, i, oct, dog, d.cfg, d.der, im.H, im.W)
				if !ok {
					continue
				}
				for _, oriented := range assignOrientations(oct, grad, kp, d.cfg) {
					entries = append(entries, resultEntry{kp: oriented, oct: oct, grad: grad})
				}
			}
			perOctave[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []resultEntry
	for _, e := range perOctave {
		all = append(all, e...)
	}

	res := &Result{entries: all}
	res.refreshFields(false)
	return res, nil
}

// Extract builds a descriptor for every keypoint in res. Keypoints whose
// patch falls entirely outside the image are dropped from res, keeping all
// of its slices index-aligned.
func (d *Detector) Extract(ctx context.Context, res *Result) error {
	if res == nil || len(res.entries) == 0 {
		return ErrNoKeypoints
	}

	kept := make([]resultEntry, 0, len(res.entries))
	descs := make([][]byte, 0, len(res.entries))
	for _, e := range res.entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		desc := buildDescriptor(e.oct, e.grad, e.kp, d.cfg)
		if desc == nil {
			continue
		}
		kept = append(kept, e)
		descs = append(descs, desc)
	}

	res.entries = kept
	res.Descriptors = descs
	res.refreshFields(true)
	return nil
}

// DetectAndExtract runs Detect followed by Extract in one call.
func (d *Detector) DetectAndExtract(ctx context.Context, im *Image) (*Result, error) {
	res, err := d.Detect(ctx, im)
	if err != nil {
		return nil, err
	}
	if err := d.Extract(ctx, res); err != nil && err != ErrNoKeypoints {
		return nil, err
	}
	return res, nil
}
