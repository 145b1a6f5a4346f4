package qudit

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

/*
StateVector holds the complex amplitudes of an n-qudit system in the
computational basis. Basis index i encodes one base-`levels` digit per
qudit, with the least-significant digit belonging to qudit 0. That
ordering is fixed: every method that converts between flat indices and
digit tuples uses it, and so do Sampler outcomes.

A StateVector is exclusively owned by one Circuit and is mutated only by
gate application or an explicit Collapse.
*/
type StateVector struct {
	amps   []complex128
	qudits int
	levels int
	dim    int
}

// New creates an n-qudit state with all amplitude mass on the all-zero
// basis state |00...0⟩.
func New(qudits, levels int) (*StateVector, error) {
	if qudits < 1 || levels < 2 {
		return nil, fmt.Errorf("%w: qudits=%d levels=%d", ErrInvalidDimension, qudits, levels)
	}

	dim := intPow(levels, qudits)
	amps := make([]complex128, dim)
	amps[0] = 1

	return &StateVector{
		amps:   amps,
		qudits: qudits,
		levels: levels,
		dim:    dim,
	}, nil
}

// Qudits returns the number of qudits in the system.
func (s *StateVector) Qudits() int { return s.qudits }

// Levels returns the number of levels per qudit.
func (s *StateVector) Levels() int { return s.levels }

// Dim returns the dimension of the state space, levels^qudits.
func (s *StateVector) Dim() int { return s.dim }

// Amplitudes returns a copy of the amplitude vector.
func (s *StateVector) Amplitudes() []complex128 {
	amps := make([]complex128, s.dim)
	copy(amps, s.amps)
	return amps
}

// Probabilities returns the squared magnitude of each amplitude.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, s.dim)
	for i, a := range s.amps {
		m := cmplx.Abs(a)
		probs[i] = m * m
	}
	return probs
}

// TotalProbability returns the sum of all outcome probabilities. Unitary
// gates keep this at 1; a drift beyond tolerance indicates a bug.
func (s *StateVector) TotalProbability() float64 {
	return floats.Sum(s.Probabilities())
}

// Normalize rescales the amplitudes to unit norm. Idempotent, and a
// no-op on the zero vector.
func (s *StateVector) Normalize() *StateVector {
	norm := math.Sqrt(s.TotalProbability())
	if norm == 0 {
		return s
	}

	factor := complex(1/norm, 0)
	for i := range s.amps {
		s.amps[i] *= factor
	}
	return s
}

// Clone returns an independent copy of the state.
func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, s.dim)
	copy(amps, s.amps)
	return &StateVector{amps: amps, qudits: s.qudits, levels: s.levels, dim: s.dim}
}

// Digits decomposes a flat basis index into its per-qudit digit tuple.
// digits[q] is the base-levels digit of qudit q.
func (s *StateVector) Digits(index int) []int {
	return digitsOf(index, s.qudits, s.levels)
}

// Index recomposes a per-qudit digit tuple into its flat basis index.
func (s *StateVector) Index(digits []int) int {
	index := 0
	for q := s.qudits - 1; q >= 0; q-- {
		index = index*s.levels + digits[q]
	}
	return index
}

func (s *StateVector) String() string {
	return fmt.Sprintf("StateVector(qudits=%d, levels=%d, dim=%d)", s.qudits, s.levels, s.dim)
}

func digitsOf(index, qudits, levels int) []int {
	digits := make([]int, qudits)
	for q := 0; q < qudits; q++ {
		digits[q] = index % levels
		index /= levels
	}
	return digits
}

func intPow(base, exp int) int {
	result := 1
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
