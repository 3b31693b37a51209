package phys

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeokHunPark/dicebox/internal/dice"
)

// Params holds the solver constants. Zero values are replaced by
// DefaultParams at world construction.
type Params struct {
	Gravity        float64 // magnitude, straight down
	Friction       float64
	Restitution    float64
	LinearDamping  float64 // per-substep velocity multiplier
	AngularDamping float64

	LinearSleepThreshold  float64 // units/s
	AngularSleepThreshold float64 // rad/s
	SleepTime             float64 // seconds below threshold before sleeping

	FixedDt        float64 // internal substep
	TrayHalfExtent float64
	WallHeight     float64
}

// DefaultParams returns the tuned defaults: gravity 20 down, friction and
// restitution 0.3, sleep after 0.45 s below 0.12 units/s and 0.25 rad/s.
func DefaultParams() Params {
	return Params{
		Gravity:               20.0,
		Friction:              0.3,
		Restitution:           0.3,
		LinearDamping:         0.995,
		AngularDamping:        0.99,
		LinearSleepThreshold:  0.12,
		AngularSleepThreshold: 0.25,
		SleepTime:             0.45,
		FixedDt:               1.0 / 120.0,
		TrayHalfExtent:        6.0,
		WallHeight:            3.0,
	}
}

// World owns the tray and all die bodies and advances them by fixed steps.
type World struct {
	Params Params

	dice   []*Body
	floor  *Body
	walls  [4]*Body // +x, -x, +z, -z
	grid   *grid
	rng    *rand.Rand
	nextID int
	accum  float64
}

// NewWorld builds a world with its tray. The seed drives spawn poses and
// any randomness downstream components take from RNG.
func NewWorld(p Params, seed int64) *World {
	if p.FixedDt <= 0 {
		p = DefaultParams()
	}
	w := &World{
		Params: p,
		rng:    rand.New(rand.NewSource(seed)),
	}

	h := p.TrayHalfExtent
	wallHalf := mgl64.Vec3{0.5, p.WallHeight / 2, h + 1}
	w.floor = newStaticBody(w.takeID(), RoleFloor, mgl64.Vec3{0, -0.5, 0}, mgl64.Vec3{h + 1, 0.5, h + 1}, p.Friction, p.Restitution)
	w.walls[0] = newStaticBody(w.takeID(), RoleWall, mgl64.Vec3{h + 0.5, p.WallHeight / 2, 0}, wallHalf, p.Friction, p.Restitution)
	w.walls[1] = newStaticBody(w.takeID(), RoleWall, mgl64.Vec3{-h - 0.5, p.WallHeight / 2, 0}, wallHalf, p.Friction, p.Restitution)
	w.walls[2] = newStaticBody(w.takeID(), RoleWall, mgl64.Vec3{0, p.WallHeight / 2, h + 0.5}, mgl64.Vec3{h + 1, p.WallHeight / 2, 0.5}, p.Friction, p.Restitution)
	w.walls[3] = newStaticBody(w.takeID(), RoleWall, mgl64.Vec3{0, p.WallHeight / 2, -h - 0.5}, mgl64.Vec3{h + 1, p.WallHeight / 2, 0.5}, p.Friction, p.Restitution)
	w.grid = newGrid(2 * dice.HullRadius * 2)
	return w
}

func (w *World) takeID() int {
	id := w.nextID
	w.nextID++
	return id
}

// RNG exposes the world's seeded source so spawn, throw and recovery
// randomness all derive from one seed.
func (w *World) RNG() *rand.Rand { return w.rng }

// Dice returns the live die roster. Callers must not retain it across a
// RemoveDice.
func (w *World) Dice() []*Body { return w.dice }

// Floor returns the static floor body.
func (w *World) Floor() *Body { return w.floor }

// Walls returns the four static wall bodies.
func (w *World) Walls() []*Body { return w.walls[:] }

// AddDie constructs a die body with a randomized airborne spawn pose and
// adds it to both the world and the die roster.
func (w *World) AddDie(kind dice.Kind) *Body {
	b := newDieBody(w.takeID(), kind, w.Params.Friction, w.Params.Restitution)

	spread := w.Params.TrayHalfExtent / 3
	b.Pos = mgl64.Vec3{
		(w.rng.Float64()*2 - 1) * spread,
		4 + w.rng.Float64()*3,
		(w.rng.Float64()*2 - 1) * spread,
	}
	b.Rot = randomOrientation(w.rng)

	w.dice = append(w.dice, b)
	return b
}

// RemoveDice clears the die roster and detaches every die from the world
// in the same operation, so no removed body keeps integrating.
func (w *World) RemoveDice() {
	w.dice = w.dice[:0]
}

// MaxStepDt caps the simulated time one Step call may consume. Larger
// frame deltas are truncated, not accumulated, so callers tracking
// elapsed simulated time must clamp the same way.
const MaxStepDt = 0.25

// Step advances the simulation by dt, splitting it into fixed substeps,
// and returns the raw contacts produced by exactly this call.
func (w *World) Step(dt float64) []Contact {
	if dt < 0 {
		return nil
	}
	if dt > MaxStepDt {
		dt = MaxStepDt
	}
	w.accum += dt

	var contacts []Contact
	for w.accum >= w.Params.FixedDt {
		w.accum -= w.Params.FixedDt
		contacts = append(contacts, w.substep(w.Params.FixedDt)...)
	}
	return contacts
}

func (w *World) substep(dt float64) []Contact {
	gravity := mgl64.Vec3{0, -w.Params.Gravity, 0}

	for _, b := range w.dice {
		if b.Sleeping {
			continue
		}
		b.Vel = b.Vel.Add(gravity.Mul(dt))
		b.Vel = b.Vel.Mul(w.Params.LinearDamping)
		b.AngVel = b.AngVel.Mul(w.Params.AngularDamping)

		b.Pos = b.Pos.Add(b.Vel.Mul(dt))
		if b.AngVel.Len() > 0 {
			spin := mgl64.Quat{W: 0, V: b.AngVel.Mul(0.5 * dt)}
			b.Rot = b.Rot.Add(spin.Mul(b.Rot)).Normalize()
		}
	}

	var contacts []Contact
	for _, b := range w.dice {
		if b.Sleeping {
			continue
		}
		contacts = append(contacts, w.collideTray(b)...)
	}
	for _, pair := range w.grid.pairs(w.dice) {
		a, b := pair[0], pair[1]
		if a.Sleeping && b.Sleeping {
			continue
		}
		if c, ok := collideDice(a, b); ok {
			contacts = append(contacts, c)
		}
	}

	for _, b := range w.dice {
		if b.Sleeping {
			continue
		}
		if b.Speed() < w.Params.LinearSleepThreshold && b.AngSpeed() < w.Params.AngularSleepThreshold {
			b.idleTime += dt
			if b.idleTime > w.Params.SleepTime {
				b.ForceSleep()
			}
		} else {
			b.idleTime = 0
		}
	}

	return contacts
}

func randomOrientation(rng *rand.Rand) mgl64.Quat {
	axis := mgl64.Vec3{
		rng.NormFloat64(),
		rng.NormFloat64(),
		rng.NormFloat64(),
	}
	if axis.Len() < 1e-9 {
		axis = mgl64.Vec3{0, 1, 0}
	}
	return mgl64.QuatRotate(rng.Float64()*2*math.Pi, axis.Normalize())
}
