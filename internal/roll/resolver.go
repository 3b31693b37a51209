package roll

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeokHunPark/dicebox/internal/dice"
	"github.com/SeokHunPark/dicebox/internal/phys"
)

var worldUp = mgl64.Vec3{0, 1, 0}

// Resolve computes the rolled value of a settled die from its orientation.
func Resolve(b *phys.Body, rng *rand.Rand) int {
	return ResolveShape(dice.For(b.Kind), b.Kind, b.Rot, rng)
}

// ResolveShape picks the face whose world-space outward normal is most
// aligned with up and maps it through the shape's value table. The d4 is
// read from its resting face instead: a tetrahedron has no upward face at
// rest. Malformed shape data degrades to a uniform random value in range;
// a settled die always resolves.
func ResolveShape(shape *dice.Shape, kind dice.Kind, rot mgl64.Quat, rng *rand.Rand) int {
	if !shape.Valid() {
		return 1 + rng.Intn(kind.Sides())
	}

	if shape.Kind == dice.D6 {
		best, bestDot := 0, math.Inf(-1)
		for i, f := range shape.CubeFaces {
			if d := rot.Rotate(f.Normal).Dot(worldUp); d > bestDot {
				bestDot = d
				best = i
			}
		}
		return shape.CubeFaces[best].Value
	}

	reference := worldUp
	if shape.Kind == dice.D4 {
		reference = worldUp.Mul(-1)
	}

	best, bestDot := 0, math.Inf(-1)
	for i := range shape.Hull.Faces {
		n := rot.Rotate(shape.Hull.FaceNormal(i))
		if d := n.Dot(reference); d > bestDot {
			bestDot = d
			best = i
		}
	}
	return shape.Values[best]
}
