package stats

import (
	"context"
	"testing"

	"github.com/SeokHunPark/dicebox/internal/dice"
	"github.com/SeokHunPark/dicebox/internal/phys"
	"github.com/SeokHunPark/dicebox/internal/roll"
)

func TestEnsembleRun(t *testing.T) {
	e := NewEnsemble(phys.DefaultParams(), dice.D6, 2, 4, 100)

	outcomes, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(outcomes) != 4 {
		t.Fatalf("expected 4 outcomes, got %d", len(outcomes))
	}

	for i, o := range outcomes {
		if o.Seed != 100+int64(i) {
			t.Errorf("outcome %d seed = %d, want %d", i, o.Seed, 100+int64(i))
		}
		if len(o.Results) != 2 {
			t.Errorf("outcome %d has %d results, want 2", i, len(o.Results))
		}
		for _, v := range o.Results {
			if v < 1 || v > 6 {
				t.Errorf("outcome %d rolled %d, want 1..6", i, v)
			}
		}
		if o.SettleTime <= 0 || o.SettleTime > roll.Timeout+phys.DefaultParams().FixedDt {
			t.Errorf("outcome %d settle time %f out of range", i, o.SettleTime)
		}
	}
}

func TestEnsembleRun_Reproducible(t *testing.T) {
	e := NewEnsemble(phys.DefaultParams(), dice.D20, 1, 3, 7)

	first, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	second, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i := range first {
		if len(first[i].Results) != len(second[i].Results) {
			t.Fatalf("run %d result lengths differ", i)
		}
		for j := range first[i].Results {
			if first[i].Results[j] != second[i].Results[j] {
				t.Errorf("run %d result %d differs: %d vs %d",
					i, j, first[i].Results[j], second[i].Results[j])
			}
		}
	}
}

func TestEnsembleRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEnsemble(phys.DefaultParams(), dice.D6, 1, 2, 1)
	if _, err := e.Run(ctx); err == nil {
		t.Error("expected error from a cancelled context")
	}
}

func TestFacesAndSettleTimes(t *testing.T) {
	outcomes := []Outcome{
		{Results: []int{1, 2}, SettleTime: 1.5},
		{Results: []int{3}, SettleTime: 2.5},
	}

	faces := Faces(outcomes)
	if len(faces) != 3 || faces[0] != 1 || faces[2] != 3 {
		t.Errorf("faces = %v", faces)
	}

	times := SettleTimes(outcomes)
	if len(times) != 2 || times[0] != 1.5 || times[1] != 2.5 {
		t.Errorf("times = %v", times)
	}
}
