package roll

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeokHunPark/dicebox/internal/dice"
	"github.com/SeokHunPark/dicebox/internal/phys"
)

func TestClassify_Kinds(t *testing.T) {
	w := phys.NewWorld(phys.DefaultParams(), 1)
	dieA := w.AddDie(dice.D6)
	dieB := w.AddDie(dice.D6)

	tests := []struct {
		name string
		a, b *phys.Body
		kind ContactKind
	}{
		{"die vs die", dieA, dieB, ContactDice},
		{"die vs floor", dieA, w.Floor(), ContactFloor},
		{"die vs wall", dieA, w.Walls()[0], ContactWall},
		{"wall vs die, order flipped", w.Walls()[2], dieB, ContactWall},
		{"floor vs die, order flipped", w.Floor(), dieA, ContactFloor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := Classify(phys.Contact{
				A: tt.a, B: tt.b,
				Point: mgl64.Vec3{1.5, 0, 0},
				Speed: 2.0,
			})
			if !ok {
				t.Fatal("expected a classified event")
			}
			if ev.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", ev.Kind, tt.kind)
			}
			if ev.Speed != 2.0 {
				t.Errorf("speed = %f, want 2.0", ev.Speed)
			}
			if ev.X != 1.5 {
				t.Errorf("x = %f, want 1.5", ev.X)
			}
		})
	}
}

func TestClassify_Ignored(t *testing.T) {
	w := phys.NewWorld(phys.DefaultParams(), 1)
	die := w.AddDie(dice.D6)

	tests := []struct {
		name string
		a, b *phys.Body
	}{
		{"no die involved", w.Floor(), w.Walls()[0]},
		{"self contact", die, die},
		{"nil body", die, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Classify(phys.Contact{A: tt.a, B: tt.b}); ok {
				t.Error("expected contact to be ignored")
			}
		})
	}
}

func TestClassify_NegativeSpeedClamped(t *testing.T) {
	w := phys.NewWorld(phys.DefaultParams(), 1)
	die := w.AddDie(dice.D6)

	ev, ok := Classify(phys.Contact{A: die, B: w.Floor(), Speed: -0.5})
	if !ok {
		t.Fatal("expected a classified event")
	}
	if ev.Speed != 0 {
		t.Errorf("speed = %f, want clamped to 0", ev.Speed)
	}
}

func TestClassify_FallingDieReportsOnlyFloor(t *testing.T) {
	w := phys.NewWorld(phys.DefaultParams(), 17)
	b := w.AddDie(dice.D6)
	b.Pos = mgl64.Vec3{0, 3, 0}
	b.Vel = mgl64.Vec3{}

	for i := 0; i < 6*120; i++ {
		for _, c := range w.Step(w.Params.FixedDt) {
			ev, ok := Classify(c)
			if !ok {
				t.Fatal("unclassifiable contact from a die drop")
			}
			if ev.Kind != ContactFloor {
				t.Fatalf("event kind = %v, want floor only", ev.Kind)
			}
			if ev.Speed < 0 {
				t.Fatalf("impact speed = %f, want >= 0", ev.Speed)
			}
		}
	}
}
