package viz

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeokHunPark/dicebox/internal/dice"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	if c.cells[0] == 0x2800 {
		t.Error("dot (0,0) did not mark cell 0")
	}

	// Out-of-range sets are dropped, not wrapped.
	c.Set(-1, 0)
	c.Set(0, -5)
	c.Set(100, 0)
	c.Set(0, 100)

	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for _, line := range lines {
		if n := len([]rune(line)); n != 4 {
			t.Errorf("expected 4 cells per row, got %d", n)
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.DrawLine(0, 0, 5, 11)
	c.Clear()
	for i, cell := range c.cells {
		if cell != 0x2800 {
			t.Fatalf("cell %d not cleared", i)
		}
	}
}

func TestCanvasDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(2, 3, 17, 30)

	if c.cells[(3/4)*10+2/2] == 0x2800 {
		t.Error("line start not drawn")
	}
	if c.cells[(30/4)*10+17/2] == 0x2800 {
		t.Error("line end not drawn")
	}
}

func TestCameraProject_CenterHits(t *testing.T) {
	cam := NewTrayCamera(6, 3)
	sw, sh := 160, 96

	x, y, depth, ok := cam.Project(cam.Target, sw, sh)
	if !ok {
		t.Fatal("camera target projected off screen")
	}
	if x != sw/2 || y != sh/2 {
		t.Errorf("target projected to (%d, %d), want screen center (%d, %d)", x, y, sw/2, sh/2)
	}
	if depth <= 0 {
		t.Errorf("depth = %f, want positive", depth)
	}
}

func TestCameraProject_BehindCameraCulled(t *testing.T) {
	cam := NewTrayCamera(6, 3)
	cam.Yaw, cam.Pitch = 0, 0

	behind := cam.Target.Add(mgl64.Vec3{0, 0, cam.Dist + 10})
	if _, _, _, ok := cam.Project(behind, 160, 96); ok {
		t.Error("point behind the camera was not culled")
	}
}

func TestCameraOrbit_PitchClamped(t *testing.T) {
	cam := NewTrayCamera(6, 3)
	for i := 0; i < 100; i++ {
		cam.Orbit(0, 0.5)
	}
	if cam.Pitch >= 1.5708 {
		t.Errorf("pitch %f reached the pole", cam.Pitch)
	}
}

func TestWireframeBuilders(t *testing.T) {
	wf := NewWireframe()

	wf.AddTray(6, 3)
	trayEdges := len(wf.edges)
	if trayEdges != 12 {
		t.Errorf("tray has %d edges, want 12", trayEdges)
	}

	wf.AddDie(dice.D6, mgl64.Vec3{0, 1, 0}, mgl64.QuatIdent())
	if len(wf.edges)-trayEdges != 12 {
		t.Errorf("cube added %d edges, want 12", len(wf.edges)-trayEdges)
	}

	before := len(wf.edges)
	wf.AddDie(dice.D20, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent())
	if len(wf.edges)-before != 30 {
		t.Errorf("icosahedron added %d edges, want 30", len(wf.edges)-before)
	}

	wf.Clear()
	if len(wf.edges) != 0 {
		t.Error("clear left edges behind")
	}
}

func TestRenderDrawsSomething(t *testing.T) {
	c := NewCanvas(40, 12)
	wf := NewWireframe()
	wf.AddTray(6, 3)
	cam := NewTrayCamera(6, 3)

	Render(c, wf, cam)

	marked := 0
	for _, cell := range c.cells {
		if cell != 0x2800 {
			marked++
		}
	}
	if marked == 0 {
		t.Error("rendering the tray left the canvas empty")
	}
}
