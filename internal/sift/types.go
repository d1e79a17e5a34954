package sift

// keypoint is the internal representation shared by the localizer,
// orientation assigner, and descriptor builder. Position and sigma are
// always expressed in original-image coordinates; octave-local conversion
// happens at the point of use (orientation.go, descriptor.go).
type keypoint struct {
	Y, X   float64
	Scale  int
	Sigma  float64
	Octave int
	Theta  float64
}
