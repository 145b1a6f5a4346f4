package qudit

import (
	"fmt"
	"math"
)

/*
Canonical algorithms, composed purely from Circuit gate calls. Nothing
here reads or writes amplitudes directly; the circuit's gate set is the
only interface to the state.
*/

// Bell prepares the two-qudit maximally entangled state: Hadamard on
// qudit 0, controlled-shift onto qudit 1. For levels=2 this is the
// standard (|00⟩+|11⟩)/√2 Bell pair; for d>2 the controlled shift
// advances the target by one step regardless of how far the control
// digit sits above zero, so the d equally likely branches are |0,0⟩
// and |c,1⟩ for c=1..d-1.
func Bell(levels int) (*Circuit, error) {
	return GHZ(2, levels)
}

// GHZ prepares the n-qudit generalization of the Bell pair: Hadamard
// on qudit 0, then a controlled shift from qudit 0 onto every other
// qudit in turn. For levels=2 exactly two basis states survive, all-0
// and all-1, each with probability 1/2.
func GHZ(qudits, levels int) (*Circuit, error) {
	if qudits < 2 {
		return nil, fmt.Errorf("%w: GHZ needs at least 2 qudits, got %d", ErrInvalidDimension, qudits)
	}
	c, err := NewCircuit(qudits, levels)
	if err != nil {
		return nil, err
	}

	c.Hadamard(0)
	for q := 1; q < qudits; q++ {
		c.ControlledShift(0, q)
	}
	return c, c.Err()
}

// GroverIterations returns the closed-form optimal iteration count
// ⌊π/4·√(2^n)⌋ for an n-qubit search.
func GroverIterations(qubits int) int {
	return int(math.Floor(math.Pi / 4 * math.Sqrt(float64(intPow(2, qubits)))))
}

// Grover runs the n-qubit search for the optimal iteration count.
// Sampling the returned circuit yields the target index with
// probability approaching 1 as n grows.
func Grover(qubits, target int) (*Circuit, error) {
	return GroverSteps(qubits, target, GroverIterations(qubits))
}

// GroverSteps runs the n-qubit search for an explicit iteration count.
// Iterating past the optimum is allowed, and makes the success
// probability oscillate back down; that behavior is part of the
// algorithm, not a bug.
//
// Each iteration applies the sign-flip oracle on the target index and
// then the diffusion operator, the reflection of every amplitude about
// their mean. Defined for qubits (levels=2) only.
func GroverSteps(qubits, target, iterations int) (*Circuit, error) {
	c, err := NewCircuit(qubits, 2)
	if err != nil {
		return nil, err
	}

	for q := 0; q < qubits; q++ {
		c.Hadamard(q)
	}
	for i := 0; i < iterations; i++ {
		c.Oracle(target).Diffusion()
	}
	return c, c.Err()
}

// FourierTransform appends the elementary Fourier-like transform to an
// existing circuit: working from the most-significant qudit down, a
// Hadamard followed by controlled-phase rotations from each
// less-significant qudit, the angle shrinking by a factor of `levels`
// per step.
//
// Known gap: the canonical QFT ends with a qudit-order reversal swap
// network to match the closed-form ω^(jk)/√N matrix exactly. This
// construction omits it, so the output amplitudes come out in reversed
// qudit order relative to the textbook transform.
func FourierTransform(c *Circuit) *Circuit {
	n := c.state.qudits
	d := float64(c.state.levels)

	for i := n - 1; i >= 0; i-- {
		c.Hadamard(i)
		for j := i - 1; j >= 0; j-- {
			angle := 2 * math.Pi / math.Pow(d, float64(i-j+1))
			c.ControlledPhase(j, i, angle)
		}
	}
	return c
}

// Fourier builds the elementary transform over a fresh |00...0⟩ state,
// which it maps to the uniform superposition.
func Fourier(qudits, levels int) (*Circuit, error) {
	c, err := NewCircuit(qudits, levels)
	if err != nil {
		return nil, err
	}
	FourierTransform(c)
	return c, c.Err()
}
