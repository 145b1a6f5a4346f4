package qudit

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// probTolerance is how far the total probability may drift from 1
// before measurement refuses to run.
const probTolerance = 1e-9

/*
Sampler draws measurement outcomes from a StateVector. The two modes
are deliberately distinct:

  - Sample draws any number of independent outcomes from the current
    distribution and never touches the state, which is what statistics
    gathering over a prepared state needs.
  - Collapse draws exactly one outcome and destructively projects the
    state onto that basis state.

Outcomes are flat basis indices; StateVector.Digits converts one to its
per-qudit digit tuple (least-significant digit = qudit 0).
*/
type Sampler struct {
	state *StateVector
	rng   *rand.Rand
}

// NewSampler creates a sampler over the given state with a
// non-deterministic seed.
func NewSampler(state *StateVector) *Sampler {
	return NewSeededSampler(state, rand.Uint64())
}

// NewSeededSampler creates a sampler with a fixed seed, for
// reproducible draws.
func NewSeededSampler(state *StateVector, seed uint64) *Sampler {
	return &Sampler{
		state: state,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Sample draws shots independent outcomes from the current probability
// distribution. The state is read, never mutated: every draw sees the
// same distribution.
func (sm *Sampler) Sample(shots int) ([]int, error) {
	if shots < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShotCount, shots)
	}

	probs, err := sm.checkedProbabilities()
	if err != nil {
		return nil, err
	}

	outcomes := make([]int, shots)
	for i := range outcomes {
		outcomes[i] = sm.draw(probs)
	}
	return outcomes, nil
}

// Histogram draws shots independent outcomes and returns them bucketed
// by basis index.
func (sm *Sampler) Histogram(shots int) (map[int]int, error) {
	outcomes, err := sm.Sample(shots)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int)
	for _, outcome := range outcomes {
		counts[outcome]++
	}
	return counts, nil
}

// Collapse draws one outcome and projects the state onto the matching
// basis state. Destructive: the superposition is gone afterwards.
func (sm *Sampler) Collapse() (int, error) {
	probs, err := sm.checkedProbabilities()
	if err != nil {
		return 0, err
	}

	outcome := sm.draw(probs)

	for i := range sm.state.amps {
		sm.state.amps[i] = 0
	}
	sm.state.amps[outcome] = 1

	return outcome, nil
}

// checkedProbabilities surfaces ErrUnnormalizedState instead of
// silently renormalizing; a drifted norm means an upstream gate bug
// that renormalization would only hide.
func (sm *Sampler) checkedProbabilities() ([]float64, error) {
	probs := sm.state.Probabilities()

	total := 0.0
	for _, p := range probs {
		total += p
	}
	if math.Abs(total-1) > probTolerance {
		return nil, fmt.Errorf("%w: total probability %.12f", ErrUnnormalizedState, total)
	}
	return probs, nil
}

// draw picks one basis index by inverting the cumulative distribution
// at a uniform random point.
func (sm *Sampler) draw(probs []float64) int {
	r := sm.rng.Float64()

	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if r <= cumulative {
			return i
		}
	}
	// Rounding can leave the cumulative sum a hair under r.
	return len(probs) - 1
}
