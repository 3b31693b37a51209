package roll

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeokHunPark/dicebox/internal/phys"
)

// Out-of-bounds thresholds, scaled by the tray half extent.
const (
	oobDepthFactor   = 4 // below y = -4*H: fell through
	oobLateralFactor = 3 // beyond |x| or |z| = 3*H: flew out
)

// Monitor decides once per step whether the roll has concluded, and
// recovers dice that escaped the tray.
type Monitor struct {
	world *phys.World
}

func NewMonitor(w *phys.World) *Monitor {
	return &Monitor{world: w}
}

// Check scans for escaped dice first, then evaluates settlement. It
// returns true only when every die is settled and none needed recovery in
// this same check: a recovered body is airborne again by definition.
func (m *Monitor) Check() bool {
	recovered := false
	for _, b := range m.world.Dice() {
		if m.outOfBounds(b) {
			m.recover(b)
			recovered = true
		}
	}
	if recovered {
		return false
	}

	p := m.world.Params
	for _, b := range m.world.Dice() {
		if b.Sleeping {
			continue
		}
		if b.Speed() < p.LinearSleepThreshold && b.AngSpeed() < p.AngularSleepThreshold {
			// Hull dice can hover just above the engine's own sleep
			// trigger; force them down so the roll terminates.
			b.ForceSleep()
			continue
		}
		return false
	}
	return true
}

func (m *Monitor) outOfBounds(b *phys.Body) bool {
	h := m.world.Params.TrayHalfExtent
	if b.Pos.Y() < -oobDepthFactor*h {
		return true
	}
	return abs(b.Pos.X()) > oobLateralFactor*h || abs(b.Pos.Z()) > oobLateralFactor*h
}

// recover drops an escaped die back above the tray center: small random
// lateral offset, no lateral velocity, a gentle downward push and a fresh
// small spin, awake so it integrates again.
func (m *Monitor) recover(b *phys.Body) {
	rng := m.world.RNG()
	b.Pos = mgl64.Vec3{
		(rng.Float64()*2 - 1) * 0.5,
		4 + rng.Float64(),
		(rng.Float64()*2 - 1) * 0.5,
	}
	b.Vel = mgl64.Vec3{0, -1, 0}
	b.AngVel = mgl64.Vec3{
		(rng.Float64()*2 - 1),
		(rng.Float64()*2 - 1),
		(rng.Float64()*2 - 1),
	}
	b.Wake()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
