package dice

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeokHunPark/dicebox/internal/geom"
)

// Die sizing in world units. The cube spans one unit across; hull dice use
// a circumradius that gives them roughly the same footprint.
const (
	CubeHalfExtent = 0.5
	HullRadius     = 0.62
)

// CubeFace pairs one of the six axis-aligned local face normals of the
// cube with its printed value.
type CubeFace struct {
	Normal mgl64.Vec3
	Value  int
}

// Shape is the immutable geometric description of one die kind. Cube dice
// carry only CubeFaces; the other kinds carry a hull plus a face-index to
// value table. Shapes are shared, never mutated.
type Shape struct {
	Kind      Kind
	Hull      *geom.Polyhedron
	Values    []int
	CubeFaces []CubeFace
}

// Valid reports whether the shape has usable face data for resolution.
func (s *Shape) Valid() bool {
	if s == nil {
		return false
	}
	if s.Kind == D6 {
		return len(s.CubeFaces) == 6
	}
	return s.Hull.Valid() && len(s.Values) == len(s.Hull.Faces)
}

// HalfExtents returns the local-space collision box half extents.
func (s *Shape) HalfExtents() mgl64.Vec3 {
	if s.Kind == D6 {
		return mgl64.Vec3{CubeHalfExtent, CubeHalfExtent, CubeHalfExtent}
	}
	return s.Hull.HalfExtents()
}

var shapes map[Kind]*Shape

func init() {
	shapes = map[Kind]*Shape{
		D4: {
			Kind:   D4,
			Hull:   geom.Tetrahedron(HullRadius),
			Values: sequentialValues(4),
		},
		D6: {
			Kind: D6,
			// Opposite faces sum to 7.
			CubeFaces: []CubeFace{
				{mgl64.Vec3{0, 0, 1}, 1},
				{mgl64.Vec3{0, 1, 0}, 2},
				{mgl64.Vec3{1, 0, 0}, 3},
				{mgl64.Vec3{-1, 0, 0}, 4},
				{mgl64.Vec3{0, -1, 0}, 5},
				{mgl64.Vec3{0, 0, -1}, 6},
			},
		},
		D8: {
			Kind:   D8,
			Hull:   geom.Octahedron(HullRadius),
			Values: sequentialValues(8),
		},
		D12: {
			Kind:   D12,
			Hull:   geom.Dodecahedron(HullRadius),
			Values: sequentialValues(12),
		},
		D20: {
			Kind:   D20,
			Hull:   geom.Icosahedron(HullRadius),
			Values: oppositeSumValues(geom.Icosahedron(HullRadius), 21),
		},
	}
}

// For returns the shared shape for a kind. Unknown kinds map to the
// default die.
func For(k Kind) *Shape {
	if s, ok := shapes[k]; ok {
		return s
	}
	return shapes[DefaultKind]
}

func sequentialValues(n int) []int {
	vals := make([]int, n)
	for i := range vals {
		vals[i] = i + 1
	}
	return vals
}

// oppositeSumValues numbers faces in opposite pairs so that a face and its
// geometric opposite sum to the given constant. Assignment walks faces in
// index order, so the table is fixed for a fixed hull.
func oppositeSumValues(p *geom.Polyhedron, sum int) []int {
	vals := make([]int, len(p.Faces))
	next := 1
	for i := range p.Faces {
		if vals[i] != 0 {
			continue
		}
		opp := p.OppositeFace(i)
		vals[i] = next
		vals[opp] = sum - next
		next++
	}
	return vals
}
