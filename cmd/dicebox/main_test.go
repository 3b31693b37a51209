package main

import (
	"testing"

	"github.com/SeokHunPark/dicebox/internal/dice"
)

func TestKindOrDefault(t *testing.T) {
	if k := kindOrDefault("d12"); k != dice.D12 {
		t.Errorf("kindOrDefault(d12) = %v, want d12", k)
	}
	if k := kindOrDefault("d7"); k != dice.DefaultKind {
		t.Errorf("kindOrDefault(d7) = %v, want the default die", k)
	}
	if k := kindOrDefault(""); k != dice.DefaultKind {
		t.Errorf("kindOrDefault(empty) = %v, want the default die", k)
	}
}
