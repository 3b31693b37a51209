package stats

import "math"

// Distribution counts face frequencies. counts[i] is the number of times
// face i+1 came up; out-of-range values are dropped.
func Distribution(results []int, sides int) []int {
	counts := make([]int, sides)
	for _, v := range results {
		if v >= 1 && v <= sides {
			counts[v-1]++
		}
	}
	return counts
}

// ChiSquare computes the chi-square statistic of observed face counts
// against the uniform expectation.
func ChiSquare(counts []int) float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 || len(counts) == 0 {
		return 0
	}

	expected := float64(total) / float64(len(counts))
	sum := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		sum += d * d / expected
	}
	return sum
}

// Critical chi-square values at significance 0.05, by degrees of freedom.
var chiSquareCritical = map[int]float64{
	3:  7.815,
	5:  11.070,
	7:  14.067,
	11: 19.675,
	19: 30.144,
}

// Fair reports whether the observed counts are consistent with a fair die
// at the 5% significance level. Unknown face counts are judged against an
// interpolation-free conservative bound.
func Fair(counts []int) bool {
	df := len(counts) - 1
	crit, ok := chiSquareCritical[df]
	if !ok {
		// Wilson-Hilferty approximation of the 95th percentile.
		z := 1.645
		d := float64(df)
		crit = d * math.Pow(1-2/(9*d)+z*math.Sqrt(2/(9*d)), 3)
	}
	return ChiSquare(counts) <= crit
}

// TimeSummary aggregates settle times.
type TimeSummary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func SummarizeTimes(times []float64) TimeSummary {
	if len(times) == 0 {
		return TimeSummary{}
	}

	s := TimeSummary{Min: times[0], Max: times[0]}
	sum := 0.0
	for _, t := range times {
		sum += t
		if t < s.Min {
			s.Min = t
		}
		if t > s.Max {
			s.Max = t
		}
	}
	s.Mean = sum / float64(len(times))

	varSum := 0.0
	for _, t := range times {
		d := t - s.Mean
		varSum += d * d
	}
	s.StdDev = math.Sqrt(varSum / float64(len(times)))
	return s
}
