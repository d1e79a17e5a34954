package sift

import "errors"

var (
	// ErrBadUpsampling is returned by New when Config.Upsampling is not
	// 1, 2, or 4.
	ErrBadUpsampling = errors.New("sift: upsampling must be 1, 2, or 4")

	// ErrBadConfig is returned by New for any other out-of-range
	// configuration field.
	ErrBadConfig = errors.New("sift: invalid configuration")

	// ErrInvalidImage is returned by Detect and DetectAndExtract when the
	// input image has a malformed shape.
	ErrInvalidImage = errors.New("sift: invalid image shape")

	// ErrNoKeypoints is returned by Extract when called before any
	// keypoints have been produced by Detect.
	ErrNoKeypoints = errors.New("sift: no keypoints to extract descriptors for")
)
