// Package dice defines the supported die kinds and their shape data.
//
// A [Kind] is one of the five polyhedral dice (d4, d6, d8, d12, d20).
// [For] returns the immutable [Shape] for a kind: the cube carries six
// fixed axis-aligned face normals with printed values, the other kinds
// carry a convex hull from [geom] plus a face-index to value table.
//
// Value tables: d4, d8 and d12 are numbered sequentially by face index;
// the d20 table is fixed so that opposite faces sum to 21, matching the
// standard twenty-sided layout. Cube faces follow the opposite-sum-7
// convention.
package dice
