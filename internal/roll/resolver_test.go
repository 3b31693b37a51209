package roll

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeokHunPark/dicebox/internal/dice"
)

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

func TestResolveShape_InRangeForAllKinds(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for _, k := range dice.Kinds() {
		shape := dice.For(k)
		for i := 0; i < 200; i++ {
			v := ResolveShape(shape, k, randomOrientation(rng), rng)
			if v < 1 || v > k.Sides() {
				t.Fatalf("%v resolved to %d, want 1..%d", k, v, k.Sides())
			}
		}
	}
}

func TestResolveShape_CubeFacesExact(t *testing.T) {
	shape := dice.For(dice.D6)
	rng := rand.New(rand.NewSource(1))

	for _, f := range shape.CubeFaces {
		t.Run(fmt.Sprintf("value %d up", f.Value), func(t *testing.T) {
			rot := mgl64.QuatBetweenVectors(f.Normal, mgl64.Vec3{0, 1, 0})
			if v := ResolveShape(shape, dice.D6, rot, rng); v != f.Value {
				t.Errorf("resolved %d, want %d", v, f.Value)
			}
		})
	}
}

func TestResolveShape_CubeIdentityReadsTop(t *testing.T) {
	// The reference cube carries its 2 on +Y.
	shape := dice.For(dice.D6)
	rng := rand.New(rand.NewSource(1))
	if v := ResolveShape(shape, dice.D6, mgl64.QuatIdent(), rng); v != 2 {
		t.Errorf("identity orientation resolved %d, want 2", v)
	}
}

func TestResolveShape_HullFacesExact(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	up := mgl64.Vec3{0, 1, 0}

	for _, k := range []dice.Kind{dice.D8, dice.D12, dice.D20} {
		shape := dice.For(k)
		for i := range shape.Hull.Faces {
			rot := mgl64.QuatBetweenVectors(shape.Hull.FaceNormal(i), up)
			if v := ResolveShape(shape, k, rot, rng); v != shape.Values[i] {
				t.Errorf("%v face %d: resolved %d, want %d", k, i, v, shape.Values[i])
			}
		}
	}
}

func TestResolveShape_TetrahedronReadsRestingFace(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	shape := dice.For(dice.D4)
	down := mgl64.Vec3{0, -1, 0}

	for i := range shape.Hull.Faces {
		rot := mgl64.QuatBetweenVectors(shape.Hull.FaceNormal(i), down)
		if v := ResolveShape(shape, dice.D4, rot, rng); v != shape.Values[i] {
			t.Errorf("face %d down: resolved %d, want %d", i, v, shape.Values[i])
		}
	}
}

func TestResolveShape_MalformedShapeStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	broken := &dice.Shape{Kind: dice.D20}

	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := ResolveShape(broken, dice.D20, mgl64.QuatIdent(), rng)
		if v < 1 || v > 20 {
			t.Fatalf("fallback resolved to %d, want 1..20", v)
		}
		seen[v] = true
	}
	if len(seen) < 10 {
		t.Errorf("fallback hit only %d distinct values in 500 draws", len(seen))
	}
}
