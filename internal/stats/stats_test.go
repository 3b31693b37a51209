package stats

import (
	"math"
	"testing"
)

func TestDistribution(t *testing.T) {
	counts := Distribution([]int{1, 3, 3, 6, 6, 6, 0, 7}, 6)

	want := []int{1, 0, 2, 0, 0, 3}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("face %d: count %d, want %d", i+1, counts[i], want[i])
		}
	}
}

func TestChiSquare_UniformIsZero(t *testing.T) {
	if x := ChiSquare([]int{10, 10, 10, 10, 10, 10}); x != 0 {
		t.Errorf("perfectly uniform counts gave chi-square %f", x)
	}
}

func TestChiSquare_SkewGrows(t *testing.T) {
	mild := ChiSquare([]int{9, 11, 10, 10, 9, 11})
	heavy := ChiSquare([]int{0, 0, 0, 0, 0, 60})
	if mild >= heavy {
		t.Errorf("mild skew %f should score below heavy skew %f", mild, heavy)
	}
}

func TestChiSquare_Empty(t *testing.T) {
	if x := ChiSquare(nil); x != 0 {
		t.Errorf("empty counts gave %f", x)
	}
	if x := ChiSquare([]int{0, 0, 0}); x != 0 {
		t.Errorf("all-zero counts gave %f", x)
	}
}

func TestFair(t *testing.T) {
	if !Fair([]int{98, 103, 99, 101, 97, 102}) {
		t.Error("near-uniform d6 counts judged unfair")
	}
	if Fair([]int{600, 0, 0, 0, 0, 0}) {
		t.Error("single-face counts judged fair")
	}
}

func TestFair_UncommonFaceCount(t *testing.T) {
	// df = 9 is not in the critical table; the approximation must still
	// accept a uniform sample.
	counts := make([]int, 10)
	for i := range counts {
		counts[i] = 100
	}
	if !Fair(counts) {
		t.Error("uniform d10-style counts judged unfair")
	}
}

func TestSummarizeTimes(t *testing.T) {
	s := SummarizeTimes([]float64{1, 2, 3, 4})

	if s.Mean != 2.5 {
		t.Errorf("mean = %f, want 2.5", s.Mean)
	}
	if s.Min != 1 || s.Max != 4 {
		t.Errorf("range = %f..%f, want 1..4", s.Min, s.Max)
	}
	if math.Abs(s.StdDev-math.Sqrt(1.25)) > 1e-12 {
		t.Errorf("stddev = %f", s.StdDev)
	}
}

func TestSummarizeTimes_Empty(t *testing.T) {
	if s := SummarizeTimes(nil); s != (TimeSummary{}) {
		t.Errorf("empty input gave %+v", s)
	}
}
