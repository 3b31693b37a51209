// Package geom provides convex polyhedron geometry for die shapes.
//
// A [Polyhedron] is a list of vertices and faces, each face an ordered
// ring of vertex indices. Face winding is counter-clockwise seen from
// outside, so [Polyhedron.FaceNormal] points away from the centroid;
// [Polyhedron.NormalizeWinding] repairs any face that violates this.
//
// Constructors build the regular solids used by the dice library:
//
//   - [Tetrahedron]: 4 triangular faces
//   - [Octahedron]: 8 triangular faces
//   - [Icosahedron]: 20 triangular faces
//   - [Dodecahedron]: 12 pentagonal faces, built as the icosahedron dual
//
// All shapes are centered on the origin and scaled so the circumscribed
// sphere has the requested radius.
package geom
