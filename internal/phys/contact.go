package phys

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Contact is one raw contact produced by a substep. A is always a die;
// B is the other body (die, floor or wall). Normal points from B toward
// A. Speed is the approach speed along the normal at the moment of
// impact, never negative.
type Contact struct {
	A, B   *Body
	Normal mgl64.Vec3
	Point  mgl64.Vec3
	Speed  float64
}

// Contacts slower than this are resting noise and are not reported.
const contactSpeedFloor = 0.01

// restitutionFloor kills bounce below this approach speed so bodies can
// settle instead of jittering on the floor.
const restitutionFloor = 0.5

// Positional correction resolves this share of the penetration beyond
// the slop each substep. Partial correction keeps resting contacts in
// contact instead of teleporting bodies apart.
const (
	correctionBeta  = 0.8
	penetrationSlop = 0.01
)

// rollingDamping bleeds angular velocity while a die touches the floor.
// Without it a die can rock on an edge indefinitely, trading rotation
// for corner impacts that never dip below the sleep threshold.
const rollingDamping = 0.96

type trayPlane struct {
	normal mgl64.Vec3
	offset float64 // plane equation: normal . p >= -offset inside
}

// manifoldPoint is one penetrating contact point against a tray plane.
type manifoldPoint struct {
	point mgl64.Vec3
	depth float64
}

// collideTray tests a die against the floor and wall planes and resolves
// any penetration with a per-point manifold per plane.
func (w *World) collideTray(b *Body) []Contact {
	h := w.Params.TrayHalfExtent
	planes := []struct {
		plane trayPlane
		other *Body
	}{
		{trayPlane{mgl64.Vec3{0, 1, 0}, 0}, w.floor},
		{trayPlane{mgl64.Vec3{-1, 0, 0}, h}, w.walls[0]},
		{trayPlane{mgl64.Vec3{1, 0, 0}, h}, w.walls[1]},
		{trayPlane{mgl64.Vec3{0, 0, -1}, h}, w.walls[2]},
		{trayPlane{mgl64.Vec3{0, 0, 1}, h}, w.walls[3]},
	}

	var contacts []Contact
	points := b.WorldPoints()
	for _, p := range planes {
		if p.other.Role == RoleWall && b.Pos.Y() > w.Params.WallHeight+b.HalfExtents.Y() {
			continue
		}

		var manifold []manifoldPoint
		maxDepth := 0.0
		for _, pt := range points {
			depth := -(p.plane.normal.Dot(pt) + p.plane.offset)
			if depth > 0 {
				manifold = append(manifold, manifoldPoint{pt, depth})
				if depth > maxDepth {
					maxDepth = depth
				}
			}
		}
		if len(manifold) == 0 {
			continue
		}

		if over := maxDepth - penetrationSlop; over > 0 {
			b.Pos = b.Pos.Add(p.plane.normal.Mul(correctionBeta * over))
		}

		if c, ok := resolveManifold(b, p.other, p.plane.normal, manifold); ok {
			contacts = append(contacts, c)
		}

		if p.other.Role == RoleFloor {
			b.AngVel = b.AngVel.Mul(rollingDamping)
		}
	}
	return contacts
}

// resolveManifold applies sequential impulses at every penetrating point
// of one die/plane pair. Solving per point keeps face and edge contacts
// from re-exciting rotation: each corner resists the motion it actually
// sees. At most one contact event per pair comes out, carrying the
// fastest approach speed.
func resolveManifold(b, other *Body, n mgl64.Vec3, manifold []manifoldPoint) (Contact, bool) {
	e := (b.Restitution + other.Restitution) / 2
	mu := (b.Friction + other.Friction) / 2

	maxSpeed := 0.0
	var at mgl64.Vec3
	for _, mp := range manifold {
		r := mp.point.Sub(b.Pos)
		vRel := b.Vel.Add(b.AngVel.Cross(r))
		vn := vRel.Dot(n)
		if vn >= 0 {
			continue
		}
		if -vn > maxSpeed {
			maxSpeed = -vn
			at = mp.point
		}

		rest := e
		if -vn < restitutionFloor {
			rest = 0
		}
		rn := r.Cross(n)
		denom := b.InvMass + rn.Dot(rn)*b.InvInertia
		jn := -(1 + rest) * vn / denom
		impulse := n.Mul(jn)
		b.Vel = b.Vel.Add(impulse.Mul(b.InvMass))
		b.AngVel = b.AngVel.Add(r.Cross(impulse).Mul(b.InvInertia))

		applyFriction(b, nil, n, r, mgl64.Vec3{}, mu, jn)
	}

	if maxSpeed < contactSpeedFloor {
		return Contact{}, false
	}
	return Contact{A: b, B: other, Normal: n, Point: at, Speed: maxSpeed}, true
}

// collideDice runs a SAT test between two die collision boxes and, on
// overlap, resolves the pair with a single averaged contact.
func collideDice(a, b *Body) (Contact, bool) {
	axesA := a.axes()
	axesB := b.axes()
	l := b.Pos.Sub(a.Pos)

	axes := make([]mgl64.Vec3, 0, 15)
	axes = append(axes, axesA[0], axesA[1], axesA[2], axesB[0], axesB[1], axesB[2])
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cross := axesA[i].Cross(axesB[j])
			if cross.LenSqr() > 1e-8 {
				axes = append(axes, cross.Normalize())
			}
		}
	}

	minOverlap := math.MaxFloat64
	var normal mgl64.Vec3
	for _, axis := range axes {
		projA := projectExtent(axesA, a.HalfExtents, axis)
		projB := projectExtent(axesB, b.HalfExtents, axis)
		overlap := projA + projB - math.Abs(l.Dot(axis))
		if overlap <= 0 {
			return Contact{}, false
		}
		if overlap < minOverlap {
			minOverlap = overlap
			normal = axis
		}
	}
	// Normal points from b toward a.
	if l.Dot(normal) > 0 {
		normal = normal.Mul(-1)
	}

	point := diceContactPoint(a, b)
	rA := point.Sub(a.Pos)
	rB := point.Sub(b.Pos)
	vRel := a.Vel.Add(a.AngVel.Cross(rA)).Sub(b.Vel.Add(b.AngVel.Cross(rB)))
	vn := vRel.Dot(normal)

	// Split the positional correction between the pair.
	if over := minOverlap - penetrationSlop; over > 0 {
		shift := normal.Mul(correctionBeta * over / 2)
		a.Pos = a.Pos.Add(shift)
		b.Pos = b.Pos.Sub(shift)
	}

	if vn >= 0 {
		return Contact{}, false
	}

	e := (a.Restitution + b.Restitution) / 2
	if -vn < restitutionFloor {
		e = 0
	}

	rAn := rA.Cross(normal)
	rBn := rB.Cross(normal)
	denom := a.InvMass + b.InvMass + rAn.Dot(rAn)*a.InvInertia + rBn.Dot(rBn)*b.InvInertia
	j := -(1 + e) * vn / denom
	impulse := normal.Mul(j)

	a.Vel = a.Vel.Add(impulse.Mul(a.InvMass))
	a.AngVel = a.AngVel.Add(rA.Cross(impulse).Mul(a.InvInertia))
	b.Vel = b.Vel.Sub(impulse.Mul(b.InvMass))
	b.AngVel = b.AngVel.Sub(rB.Cross(impulse).Mul(b.InvInertia))

	applyFriction(a, b, normal, rA, rB, (a.Friction+b.Friction)/2, j)

	speed := -vn
	if speed > contactSpeedFloor {
		if a.Sleeping {
			a.Wake()
		}
		if b.Sleeping {
			b.Wake()
		}
		return Contact{A: a, B: b, Normal: normal, Point: point, Speed: speed}, true
	}
	return Contact{}, false
}

// applyFriction applies a Coulomb-clamped tangential impulse at one
// contact point, recomputing the relative velocity after the normal
// impulse. The effective mass uses the tangent arm, and |jt| never
// exceeds mu times the normal impulse. b may be nil for static contacts.
func applyFriction(a, b *Body, n, rA, rB mgl64.Vec3, mu, jn float64) {
	vRel := a.Vel.Add(a.AngVel.Cross(rA))
	if b != nil {
		vRel = vRel.Sub(b.Vel.Add(b.AngVel.Cross(rB)))
	}
	tangent := vRel.Sub(n.Mul(vRel.Dot(n)))
	if tangent.Len() < 1e-4 {
		return
	}
	tangent = tangent.Normalize()

	rAt := rA.Cross(tangent)
	denom := a.InvMass + rAt.Dot(rAt)*a.InvInertia
	if b != nil {
		rBt := rB.Cross(tangent)
		denom += b.InvMass + rBt.Dot(rBt)*b.InvInertia
	}

	jt := -vRel.Dot(tangent) / denom
	limit := mu * jn
	if jt > limit {
		jt = limit
	} else if jt < -limit {
		jt = -limit
	}
	impulse := tangent.Mul(jt)

	a.Vel = a.Vel.Add(impulse.Mul(a.InvMass))
	a.AngVel = a.AngVel.Add(rA.Cross(impulse).Mul(a.InvInertia))
	if b != nil {
		b.Vel = b.Vel.Sub(impulse.Mul(b.InvMass))
		b.AngVel = b.AngVel.Sub(rB.Cross(impulse).Mul(b.InvInertia))
	}
}

func projectExtent(axes [3]mgl64.Vec3, half mgl64.Vec3, axis mgl64.Vec3) float64 {
	sum := 0.0
	for i := 0; i < 3; i++ {
		sum += math.Abs(axes[i].Dot(axis)) * half[i]
	}
	return sum
}

// diceContactPoint averages the contact points of each body inside the
// other's collision box, falling back to the midpoint.
func diceContactPoint(a, b *Body) mgl64.Vec3 {
	var sum mgl64.Vec3
	count := 0
	axesA := a.axes()
	axesB := b.axes()
	for _, p := range a.WorldPoints() {
		if pointInBox(p, b.Pos, axesB, b.HalfExtents) {
			sum = sum.Add(p)
			count++
		}
	}
	for _, p := range b.WorldPoints() {
		if pointInBox(p, a.Pos, axesA, a.HalfExtents) {
			sum = sum.Add(p)
			count++
		}
	}
	if count == 0 {
		return a.Pos.Add(b.Pos).Mul(0.5)
	}
	return sum.Mul(1.0 / float64(count))
}

func pointInBox(p, pos mgl64.Vec3, axes [3]mgl64.Vec3, half mgl64.Vec3) bool {
	d := p.Sub(pos)
	for i := 0; i < 3; i++ {
		if math.Abs(d.Dot(axes[i])) > half[i]+0.01 {
			return false
		}
	}
	return true
}
