package phys

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeokHunPark/dicebox/internal/dice"
)

// Role tags what a body is, assigned at creation and never changed.
// Classification downstream is a constant-time tag check.
type Role int

const (
	RoleDie Role = iota
	RoleFloor
	RoleWall
)

func (r Role) String() string {
	switch r {
	case RoleDie:
		return "die"
	case RoleFloor:
		return "floor"
	default:
		return "wall"
	}
}

// Body is one rigid body. Die bodies are dynamic; tray bodies are static
// with zero inverse mass and never integrate.
type Body struct {
	ID   int
	Role Role
	Kind dice.Kind

	Pos    mgl64.Vec3
	Rot    mgl64.Quat
	Vel    mgl64.Vec3
	AngVel mgl64.Vec3

	Mass        float64
	InvMass     float64
	Inertia     float64 // scalar box approximation: m*size^2/6
	InvInertia  float64
	HalfExtents mgl64.Vec3
	Friction    float64
	Restitution float64

	// Local-space contact points: cube corners or hull vertices.
	points []mgl64.Vec3

	Sleeping bool
	idleTime float64
}

// Wake clears the sleep state and idle timer.
func (b *Body) Wake() {
	b.Sleeping = false
	b.idleTime = 0
}

// ForceSleep puts the body to sleep immediately, zeroing its velocities.
// The settlement monitor uses this for hull dice that hover just above
// the engine's own sleep threshold.
func (b *Body) ForceSleep() {
	b.Sleeping = true
	b.Vel = mgl64.Vec3{}
	b.AngVel = mgl64.Vec3{}
}

// ApplyImpulse changes linear velocity by impulse/mass and wakes the body.
func (b *Body) ApplyImpulse(impulse mgl64.Vec3) {
	if b.InvMass == 0 {
		return
	}
	b.Wake()
	b.Vel = b.Vel.Add(impulse.Mul(b.InvMass))
}

// ApplySpin changes angular velocity by torque/inertia and wakes the body.
func (b *Body) ApplySpin(torque mgl64.Vec3) {
	if b.InvInertia == 0 {
		return
	}
	b.Wake()
	b.AngVel = b.AngVel.Add(torque.Mul(b.InvInertia))
}

// Speed returns the linear speed.
func (b *Body) Speed() float64 { return b.Vel.Len() }

// KineticEnergy returns translational plus rotational kinetic energy.
func (b *Body) KineticEnergy() float64 {
	return 0.5*b.Mass*b.Vel.LenSqr() + 0.5*b.Inertia*b.AngVel.LenSqr()
}

// AngSpeed returns the angular speed in rad/s.
func (b *Body) AngSpeed() float64 { return b.AngVel.Len() }

// WorldPoints returns the body's contact points in world space.
func (b *Body) WorldPoints() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(b.points))
	for i, p := range b.points {
		out[i] = b.Pos.Add(b.Rot.Rotate(p))
	}
	return out
}

// axes returns the body's local axes in world space.
func (b *Body) axes() [3]mgl64.Vec3 {
	m := b.Rot.Mat4()
	return [3]mgl64.Vec3{
		m.Col(0).Vec3(),
		m.Col(1).Vec3(),
		m.Col(2).Vec3(),
	}
}

func newDieBody(id int, kind dice.Kind, friction, restitution float64) *Body {
	shape := dice.For(kind)
	half := shape.HalfExtents()

	var points []mgl64.Vec3
	if shape.Hull != nil {
		points = append(points, shape.Hull.Vertices...)
	} else {
		for i := 0; i < 8; i++ {
			p := mgl64.Vec3{half.X(), half.Y(), half.Z()}
			if i&1 != 0 {
				p[0] = -p[0]
			}
			if i&2 != 0 {
				p[1] = -p[1]
			}
			if i&4 != 0 {
				p[2] = -p[2]
			}
			points = append(points, p)
		}
	}

	mass := 1.0
	size := (half.X() + half.Y() + half.Z()) / 3.0 * 2.0
	inertia := mass * size * size / 6.0

	return &Body{
		ID:          id,
		Role:        RoleDie,
		Kind:        kind,
		Rot:         mgl64.QuatIdent(),
		Mass:        mass,
		InvMass:     1.0 / mass,
		Inertia:     inertia,
		InvInertia:  1.0 / inertia,
		HalfExtents: half,
		Friction:    friction,
		Restitution: restitution,
		points:      points,
	}
}

func newStaticBody(id int, role Role, pos, half mgl64.Vec3, friction, restitution float64) *Body {
	return &Body{
		ID:          id,
		Role:        role,
		Pos:         pos,
		Rot:         mgl64.QuatIdent(),
		HalfExtents: half,
		Friction:    friction,
		Restitution: restitution,
	}
}
