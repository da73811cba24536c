// Package placement computes where a floating element goes relative to its
// reference.
//
// Compute places the floating element flush against the requested side of
// the reference, then threads the result through an ordered list of
// middleware. Each middleware can move the coordinates, record data for the
// consumer, or reset the pipeline with a new placement (flip). The pipeline is
// pure: the same rects and config always produce the same Computed value.
//
// Geometry never fails. When nothing fits, Compute returns the least bad
// position and sets Data.Hide.NoFit.
package placement
