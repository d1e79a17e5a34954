// Package sift implements scale-invariant feature detection and
// description: a Gaussian/Difference-of-Gaussians scale-space pyramid,
// sub-pixel extremum localization, orientation assignment, and a rotated
// gradient-histogram descriptor.
//
// Basic usage:
//
//	det, err := sift.New(sift.DefaultConfig())
//	res, err := det.DetectAndExtract(ctx, sift.NewImageFromGray(gray))
//	matches := sift.MatchDescriptors(res.DescriptorMatrix(), other.DescriptorMatrix(), sift.DefaultMatchOptions())
package sift
