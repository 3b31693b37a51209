package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeokHunPark/dicebox/internal/dice"
)

// Camera orbits a target point and projects world space onto the canvas
// with a simple perspective divide.
type Camera struct {
	Target    mgl64.Vec3
	Yaw       float64 // around the vertical axis
	Pitch     float64 // tilt toward top-down
	Dist      float64
	Zoom      float64
	FitRadius float64 // world radius mapped to the smaller screen dimension
}

// NewTrayCamera frames a tray of the given half extent from a raised
// three-quarter angle.
func NewTrayCamera(halfExtent, wallHeight float64) *Camera {
	return &Camera{
		Target:    mgl64.Vec3{0, wallHeight / 2, 0},
		Yaw:       math.Pi / 4,
		Pitch:     0.6,
		Dist:      halfExtent * 6,
		Zoom:      1.0,
		FitRadius: halfExtent * 1.8,
	}
}

func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	if c.Pitch > math.Pi/2-0.05 {
		c.Pitch = math.Pi/2 - 0.05
	}
	if c.Pitch < -0.2 {
		c.Pitch = -0.2
	}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(8, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.2, c.Zoom/1.2) }

// view transforms a world point into camera space: orbit rotation about
// the target, with +Z pointing at the viewer.
func (c *Camera) view(p mgl64.Vec3) mgl64.Vec3 {
	p = p.Sub(c.Target)

	cy, sy := math.Cos(c.Yaw), math.Sin(c.Yaw)
	p = mgl64.Vec3{p.X()*cy - p.Z()*sy, p.Y(), p.X()*sy + p.Z()*cy}

	cp, sp := math.Cos(c.Pitch), math.Sin(c.Pitch)
	p = mgl64.Vec3{p.X(), p.Y()*cp - p.Z()*sp, p.Y()*sp + p.Z()*cp}

	return p
}

// Project maps a world point to dot coordinates on a sw x sh canvas.
// Returns screen x, y, depth, and whether the point is in front of the
// camera and on screen.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	v := c.view(p).Mul(c.Zoom)

	depth := c.Dist - v.Z()
	if depth < 0.5 {
		return 0, 0, 0, false
	}
	persp := c.Dist / depth

	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	scale := minDim / (2 * c.FitRadius)

	sx := sw/2 + int(v.X()*persp*scale)
	sy := sh/2 - int(v.Y()*persp*scale)
	return sx, sy, depth, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type edge struct {
	a, b mgl64.Vec3
}

// Wireframe is a reusable edge list in world space.
type Wireframe struct {
	edges []edge
}

func NewWireframe() *Wireframe { return &Wireframe{} }

func (w *Wireframe) AddEdge(a, b mgl64.Vec3) { w.edges = append(w.edges, edge{a, b}) }

func (w *Wireframe) Clear() { w.edges = w.edges[:0] }

// Render projects every edge and draws the visible ones.
func Render(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.Width*2, c.Height*4
	for _, e := range w.edges {
		x1, y1, _, v1 := cam.Project(e.a, sw, sh)
		x2, y2, _, v2 := cam.Project(e.b, sw, sh)
		if v1 || v2 {
			c.DrawLine(x1, y1, x2, y2)
		}
	}
}

// AddTray appends the tray outline: the floor rectangle, the wall top
// rim, and the corner posts.
func (w *Wireframe) AddTray(halfExtent, wallHeight float64) {
	h := halfExtent
	floor := [4]mgl64.Vec3{
		{-h, 0, -h}, {h, 0, -h}, {h, 0, h}, {-h, 0, h},
	}
	for i := range floor {
		j := (i + 1) % 4
		top := mgl64.Vec3{floor[i].X(), wallHeight, floor[i].Z()}
		topNext := mgl64.Vec3{floor[j].X(), wallHeight, floor[j].Z()}
		w.AddEdge(floor[i], floor[j])
		w.AddEdge(top, topNext)
		w.AddEdge(floor[i], top)
	}
}

// AddDie appends a die's hull edges at the given pose.
func (w *Wireframe) AddDie(kind dice.Kind, pos mgl64.Vec3, rot mgl64.Quat) {
	shape := dice.For(kind)

	if shape.Hull != nil {
		verts := shape.Hull.Vertices
		for _, e := range shape.Hull.Edges() {
			a := pos.Add(rot.Rotate(verts[e[0]]))
			b := pos.Add(rot.Rotate(verts[e[1]]))
			w.AddEdge(a, b)
		}
		return
	}

	s := dice.CubeHalfExtent
	corners := [8]mgl64.Vec3{
		{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s},
		{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s},
	}
	cubeEdges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	for _, e := range cubeEdges {
		a := pos.Add(rot.Rotate(corners[e[0]]))
		b := pos.Add(rot.Rotate(corners[e[1]]))
		w.AddEdge(a, b)
	}
}
