package sift

import "math"

// candidate is an integer-coordinate 3x3x3 DoG extremum awaiting sub-pixel
// localization.
type candidate struct {
	Row, Col, Scale int
}

// findCandidates scans the interior of a DoG octave for strict 3x3x3 local
// maxima or minima whose magnitude exceeds threshold, per SPEC_FULL.md
// §4.2. Interior excludes the first and last index on every axis.
func findCandidates(dog *DogOctave, threshold float64) []candidate {
	var out []candidate
	nScaleLayers := len(dog.Layers)
	if nScaleLayers < 3 {
		return out
	}
	h, w := dog.Layers[0].H, dog.Layers[0].W
	for s := 1; s < nScaleLayers-1; s++ {
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				v := dog.Layers[s].At(y, x)
				if math.Abs(v) <= threshold {
					continue
				}
				if isLocalExtremum(dog, s, y, x, v) {
					out = append(out, candidate{Row: y, Col: x, Scale: s})
				}
			}
		}
	}
	return out
}

func isLocalExtremum(dog *DogOctave, s, y, x int, v float64) bool {
	isMax, isMin := true, true
	for ds := -1; ds <= 1; ds++ {
		layer := dog.Layers[s+ds]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if ds == 0 && dy == 0 && dx == 0 {
					continue
				}
				nv := layer.At(y+dy, x+dx)
				if nv >= v {
					isMax = false
				}
				if nv <= v {
					isMin = false
				}
				if !isMax && !isMin {
					return false
				}
			}
		}
	}
	return isMax || isMin
}
