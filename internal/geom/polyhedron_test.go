package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestConstructors_Counts(t *testing.T) {
	tests := []struct {
		name            string
		p               *Polyhedron
		vertices, faces int
	}{
		{"tetrahedron", Tetrahedron(1), 4, 4},
		{"octahedron", Octahedron(1), 6, 8},
		{"dodecahedron", Dodecahedron(1), 20, 12},
		{"icosahedron", Icosahedron(1), 12, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.p.Vertices) != tt.vertices {
				t.Errorf("vertices = %d, want %d", len(tt.p.Vertices), tt.vertices)
			}
			if len(tt.p.Faces) != tt.faces {
				t.Errorf("faces = %d, want %d", len(tt.p.Faces), tt.faces)
			}
			if !tt.p.Valid() {
				t.Error("polyhedron should be valid")
			}
		})
	}
}

func TestConstructors_EulerFormula(t *testing.T) {
	// V - E + F = 2 for every convex polyhedron.
	shapes := map[string]*Polyhedron{
		"tetrahedron":  Tetrahedron(1),
		"octahedron":   Octahedron(1),
		"dodecahedron": Dodecahedron(1),
		"icosahedron":  Icosahedron(1),
	}
	for name, p := range shapes {
		v, e, f := len(p.Vertices), len(p.Edges()), len(p.Faces)
		if v-e+f != 2 {
			t.Errorf("%s: V-E+F = %d-%d+%d = %d, want 2", name, v, e, f, v-e+f)
		}
	}
}

func TestFaceNormals_PointOutward(t *testing.T) {
	shapes := map[string]*Polyhedron{
		"tetrahedron":  Tetrahedron(1),
		"octahedron":   Octahedron(1),
		"dodecahedron": Dodecahedron(1),
		"icosahedron":  Icosahedron(1),
	}
	for name, p := range shapes {
		center := p.Centroid()
		for i := range p.Faces {
			n := p.FaceNormal(i)
			out := p.FaceCentroid(i).Sub(center)
			if n.Dot(out) <= 0 {
				t.Errorf("%s face %d: normal points inward", name, i)
			}
			if !almostEqual(n.Len(), 1.0, 1e-9) {
				t.Errorf("%s face %d: normal length = %f, want 1", name, i, n.Len())
			}
		}
	}
}

func TestFaces_Planar(t *testing.T) {
	// Dodecahedron pentagons come from the dual construction; every vertex
	// of a face must lie on the face plane.
	p := Dodecahedron(1)
	for i, f := range p.Faces {
		n := p.FaceNormal(i)
		d := n.Dot(p.Vertices[f[0]])
		for _, idx := range f[1:] {
			if !almostEqual(n.Dot(p.Vertices[idx]), d, 1e-9) {
				t.Errorf("face %d: vertex %d off plane by %g", i, idx, n.Dot(p.Vertices[idx])-d)
			}
		}
	}
}

func TestOppositeFace_Involution(t *testing.T) {
	shapes := map[string]*Polyhedron{
		"octahedron":   Octahedron(1),
		"dodecahedron": Dodecahedron(1),
		"icosahedron":  Icosahedron(1),
	}
	for name, p := range shapes {
		for i := range p.Faces {
			opp := p.OppositeFace(i)
			if opp == i {
				t.Errorf("%s face %d: opposite is itself", name, i)
			}
			if back := p.OppositeFace(opp); back != i {
				t.Errorf("%s face %d: opposite(opposite) = %d", name, i, back)
			}
			// Regular solids with parallel face pairs have exactly
			// anti-parallel opposite normals.
			d := p.FaceNormal(i).Dot(p.FaceNormal(opp))
			if !almostEqual(d, -1.0, 1e-9) {
				t.Errorf("%s face %d: opposite normal dot = %f, want -1", name, i, d)
			}
		}
	}
}

func TestCircumradius(t *testing.T) {
	for _, radius := range []float64{0.5, 1.0, 2.5} {
		p := Icosahedron(radius)
		max := 0.0
		for _, v := range p.Vertices {
			if l := v.Len(); l > max {
				max = l
			}
		}
		if !almostEqual(max, radius, 1e-9) {
			t.Errorf("circumradius = %f, want %f", max, radius)
		}
	}
}

func TestValid_Malformed(t *testing.T) {
	tests := []struct {
		name string
		p    *Polyhedron
	}{
		{"nil", nil},
		{"empty", &Polyhedron{}},
		{"degenerate face", &Polyhedron{
			Vertices: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			Faces:    [][]int{{0, 1}, {0, 1, 2}, {0, 2, 3}, {1, 2, 3}},
		}},
		{"index out of range", &Polyhedron{
			Vertices: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			Faces:    [][]int{{0, 1, 9}, {0, 1, 2}, {0, 2, 3}, {1, 2, 3}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.p.Valid() {
				t.Error("expected invalid polyhedron")
			}
		})
	}
}

func TestHalfExtents(t *testing.T) {
	p := Octahedron(2)
	h := p.HalfExtents()
	want := mgl64.Vec3{2, 2, 2}
	for k := 0; k < 3; k++ {
		if !almostEqual(h[k], want[k], 1e-9) {
			t.Errorf("half extents[%d] = %f, want %f", k, h[k], want[k])
		}
	}
}
