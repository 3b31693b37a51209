package geom

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Polyhedron is a convex solid described by vertices and faces. Each face
// is an ordered ring of at least three vertex indices; the winding order
// determines the outward normal.
type Polyhedron struct {
	Vertices []mgl64.Vec3
	Faces    [][]int
}

// Valid reports whether the polyhedron has enough data to compute face
// normals: at least four vertices, at least four faces, every face a ring
// of three or more in-range indices.
func (p *Polyhedron) Valid() bool {
	if p == nil || len(p.Vertices) < 4 || len(p.Faces) < 4 {
		return false
	}
	for _, f := range p.Faces {
		if len(f) < 3 {
			return false
		}
		for _, idx := range f {
			if idx < 0 || idx >= len(p.Vertices) {
				return false
			}
		}
	}
	return true
}

// Centroid returns the mean of all vertices.
func (p *Polyhedron) Centroid() mgl64.Vec3 {
	var c mgl64.Vec3
	for _, v := range p.Vertices {
		c = c.Add(v)
	}
	return c.Mul(1.0 / float64(len(p.Vertices)))
}

// FaceNormal returns the unit outward normal of face i, computed from the
// cross product of the first two edge vectors. Winding must already be
// normalized for the result to point outward.
func (p *Polyhedron) FaceNormal(i int) mgl64.Vec3 {
	f := p.Faces[i]
	a := p.Vertices[f[0]]
	b := p.Vertices[f[1]]
	c := p.Vertices[f[2]]
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() < 1e-12 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}

// FaceCentroid returns the mean of the vertices of face i.
func (p *Polyhedron) FaceCentroid(i int) mgl64.Vec3 {
	var c mgl64.Vec3
	for _, idx := range p.Faces[i] {
		c = c.Add(p.Vertices[idx])
	}
	return c.Mul(1.0 / float64(len(p.Faces[i])))
}

// NormalizeWinding reverses any face whose computed normal points toward
// the centroid, establishing the outward-winding precondition that
// FaceNormal and the outcome resolver rely on.
func (p *Polyhedron) NormalizeWinding() {
	center := p.Centroid()
	for i, f := range p.Faces {
		n := p.FaceNormal(i)
		out := p.FaceCentroid(i).Sub(center)
		if n.Dot(out) < 0 {
			for l, r := 0, len(f)-1; l < r; l, r = l+1, r-1 {
				f[l], f[r] = f[r], f[l]
			}
		}
	}
}

// OppositeFace returns the index of the face whose normal is most
// anti-parallel to face i's normal.
func (p *Polyhedron) OppositeFace(i int) int {
	n := p.FaceNormal(i)
	best, bestDot := i, math.Inf(1)
	for j := range p.Faces {
		if d := n.Dot(p.FaceNormal(j)); d < bestDot {
			bestDot = d
			best = j
		}
	}
	return best
}

// Edges returns each undirected edge exactly once.
func (p *Polyhedron) Edges() [][2]int {
	seen := make(map[[2]int]bool)
	edges := make([][2]int, 0, len(p.Faces)*3)
	for _, f := range p.Faces {
		for k := range f {
			a, b := f[k], f[(k+1)%len(f)]
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if !seen[key] {
				seen[key] = true
				edges = append(edges, key)
			}
		}
	}
	return edges
}

// HalfExtents returns the axis-aligned half extents of the vertex cloud,
// used as the collision bounding box in body-local space.
func (p *Polyhedron) HalfExtents() mgl64.Vec3 {
	var h mgl64.Vec3
	for _, v := range p.Vertices {
		for k := 0; k < 3; k++ {
			if a := math.Abs(v[k]); a > h[k] {
				h[k] = a
			}
		}
	}
	return h
}

// Scale multiplies every vertex by s in place and returns the receiver.
func (p *Polyhedron) Scale(s float64) *Polyhedron {
	for i := range p.Vertices {
		p.Vertices[i] = p.Vertices[i].Mul(s)
	}
	return p
}

// circumscribe rescales so the farthest vertex sits at the given radius.
func (p *Polyhedron) circumscribe(radius float64) *Polyhedron {
	max := 0.0
	for _, v := range p.Vertices {
		if l := v.Len(); l > max {
			max = l
		}
	}
	if max > 0 {
		p.Scale(radius / max)
	}
	return p
}

// Tetrahedron returns a regular tetrahedron with circumradius radius.
func Tetrahedron(radius float64) *Polyhedron {
	p := &Polyhedron{
		Vertices: []mgl64.Vec3{
			{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1},
		},
		Faces: [][]int{
			{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2},
		},
	}
	p.NormalizeWinding()
	return p.circumscribe(radius)
}

// Octahedron returns a regular octahedron with circumradius radius.
func Octahedron(radius float64) *Polyhedron {
	p := &Polyhedron{
		Vertices: []mgl64.Vec3{
			{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
		},
		Faces: [][]int{
			{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
			{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
		},
	}
	p.NormalizeWinding()
	return p.circumscribe(radius)
}

// Icosahedron returns a regular icosahedron with circumradius radius.
func Icosahedron(radius float64) *Polyhedron {
	phi := (1 + math.Sqrt(5)) / 2
	p := &Polyhedron{
		Vertices: []mgl64.Vec3{
			{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
			{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
			{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
		},
		Faces: [][]int{
			{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
			{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
			{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
			{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
		},
	}
	p.NormalizeWinding()
	return p.circumscribe(radius)
}

// Dodecahedron returns a regular dodecahedron with circumradius radius,
// constructed as the dual of the icosahedron: one vertex per icosahedron
// face, one pentagonal face per icosahedron vertex, with the ring around
// each vertex ordered by angle about its outward axis.
func Dodecahedron(radius float64) *Polyhedron {
	ico := Icosahedron(1)

	verts := make([]mgl64.Vec3, len(ico.Faces))
	for i := range ico.Faces {
		verts[i] = ico.FaceCentroid(i)
	}

	faces := make([][]int, len(ico.Vertices))
	for vi := range ico.Vertices {
		var ring []int
		for fi, f := range ico.Faces {
			for _, idx := range f {
				if idx == vi {
					ring = append(ring, fi)
					break
				}
			}
		}

		// Order the surrounding centroids by angle in the plane
		// perpendicular to the vertex direction.
		axis := ico.Vertices[vi].Normalize()
		ref := mgl64.Vec3{1, 0, 0}
		if math.Abs(axis.Dot(ref)) > 0.9 {
			ref = mgl64.Vec3{0, 1, 0}
		}
		u := ref.Sub(axis.Mul(ref.Dot(axis))).Normalize()
		w := axis.Cross(u)
		sort.Slice(ring, func(a, b int) bool {
			return ringAngle(verts[ring[a]], axis, u, w) < ringAngle(verts[ring[b]], axis, u, w)
		})
		faces[vi] = ring
	}

	p := &Polyhedron{Vertices: verts, Faces: faces}
	p.NormalizeWinding()
	return p.circumscribe(radius)
}

func ringAngle(v, axis, u, w mgl64.Vec3) float64 {
	d := v.Sub(axis.Mul(v.Dot(axis)))
	return math.Atan2(d.Dot(w), d.Dot(u))
}
