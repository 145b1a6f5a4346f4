package qudit

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Entropy returns the Shannon entropy of the outcome distribution in
// bits, with the 0·log0 := 0 convention. A basis state scores 0; a
// uniform superposition over n qubits scores n.
func (s *StateVector) Entropy() float64 {
	entropy := 0.0
	for _, p := range s.Probabilities() {
		if p > 0 {
			entropy -= p * math.Log2(p)
		}
	}
	return entropy
}

// Fidelity returns |⟨a|b⟩|² for two states of equal dimension.
// Symmetric, in [0,1], and 1 exactly when the amplitude vectors are
// proportional.
func Fidelity(a, b *StateVector) (float64, error) {
	if a.dim != b.dim {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, a.dim, b.dim)
	}

	var inner complex128
	for i := range a.amps {
		inner += cmplx.Conj(a.amps[i]) * b.amps[i]
	}

	f := cmplx.Abs(inner)
	return f * f, nil
}
