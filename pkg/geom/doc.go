// Package geom defines the fixed-rank vectors and rectangles exchanged between the
// layout engine and its policies.
//
// # Rank
//
// A tree is laid out in a single rank for its whole lifetime. Two concrete
// ranks are provided:
//
//   - [Offset2] / [Size2] for planar layout
//   - [Offset3] / [Size3] for layouts with a depth axis
//
// Offsets are signed absolute positions, sizes are unsigned extents. Generic
// code is written against the [Offset] and [Size] constraints so that the
// engine never needs to know the rank.
//
// # Equality
//
// All vector types are plain arrays, so [Rect] values compare with ==. The
// engine relies on this to suppress unchanged rectangles.
package geom
