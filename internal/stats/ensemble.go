package stats

import (
	"context"
	"sync"

	"github.com/SeokHunPark/dicebox/internal/dice"
	"github.com/SeokHunPark/dicebox/internal/phys"
	"github.com/SeokHunPark/dicebox/internal/roll"
)

// Outcome is the result of one ensemble member.
type Outcome struct {
	Seed       int64
	Results    []int
	SettleTime float64
	TimedOut   bool
}

// Ensemble runs many independent rolls of the same configuration. Each
// member gets its own world and a sequential seed, so a run is
// reproducible from (params, kind, count, seedStart).
type Ensemble struct {
	params    phys.Params
	kind      dice.Kind
	count     int
	numRuns   int
	seedStart int64
}

func NewEnsemble(params phys.Params, kind dice.Kind, count, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		params:    params,
		kind:      kind,
		count:     count,
		numRuns:   numRuns,
		seedStart: seedStart,
	}
}

func (e *Ensemble) Run(ctx context.Context) ([]Outcome, error) {
	outcomes := make([]Outcome, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			seed := e.seedStart + int64(idx)
			s := roll.NewSession(phys.NewWorld(e.params, seed), nil)
			s.Roll(e.kind, e.count)
			results := s.Run()

			outcomes[idx] = Outcome{
				Seed:       seed,
				Results:    results,
				SettleTime: s.Elapsed(),
				TimedOut:   s.Elapsed() >= roll.Timeout,
			}
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return outcomes, nil
}

// Faces flattens ensemble outcomes into a single slice of rolled values.
func Faces(outcomes []Outcome) []int {
	var faces []int
	for _, o := range outcomes {
		faces = append(faces, o.Results...)
	}
	return faces
}

// SettleTimes collects the per-roll settle times in run order.
func SettleTimes(outcomes []Outcome) []float64 {
	times := make([]float64, len(outcomes))
	for i, o := range outcomes {
		times[i] = o.SettleTime
	}
	return times
}
