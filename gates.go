package qudit

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

/*
Gate matrices are built as explicit d×d (single-qudit) or d²×d²
(two-qudit) unitaries over the qudit's own level space, never over the
full system. Application to an n-qudit state is an index-decomposition
pass over the amplitude vector: each global basis index is split into
its per-qudit digits, the operator acts on the digits of the targeted
qudit(s), and everything else passes through untouched. The full
d^n×d^n operator is never materialized, so memory stays O(d^n) no
matter how many qudits are involved.

Every generalization follows the d-level qudit convention: for d=2 each
matrix reduces to its textbook qubit counterpart.
*/

// Hadamard returns the generalized Hadamard for d levels. For d=2 this
// is the standard [[1,1],[1,-1]]/√2; for d>2 it is the normalized
// discrete Fourier matrix H[j,k] = exp(2πi·j·k/d)/√d, the unitary that
// maps any basis state to a uniform superposition.
func Hadamard(levels int) *mat.CDense {
	h := mat.NewCDense(levels, levels, nil)
	if levels == 2 {
		f := complex(1/math.Sqrt2, 0)
		h.Set(0, 0, f)
		h.Set(0, 1, f)
		h.Set(1, 0, f)
		h.Set(1, 1, -f)
		return h
	}

	norm := 1 / math.Sqrt(float64(levels))
	for j := 0; j < levels; j++ {
		for k := 0; k < levels; k++ {
			angle := 2 * math.Pi * float64(j) * float64(k) / float64(levels)
			h.Set(j, k, cmplx.Rect(norm, angle))
		}
	}
	return h
}

// Shift returns the generalized X: a cyclic permutation of the basis
// digit by +1 mod d. For d=2 this is the Pauli X bit flip.
func Shift(levels int) *mat.CDense {
	x := mat.NewCDense(levels, levels, nil)
	for k := 0; k < levels; k++ {
		x.Set((k+1)%levels, k, 1)
	}
	return x
}

// Clock returns the generalized Z: a diagonal phase matrix with entries
// exp(2πi·k/d). For d=2 this is the Pauli Z phase flip.
func Clock(levels int) *mat.CDense {
	z := mat.NewCDense(levels, levels, nil)
	for k := 0; k < levels; k++ {
		z.Set(k, k, cmplx.Rect(1, 2*math.Pi*float64(k)/float64(levels)))
	}
	return z
}

// Phase returns the parameterized rotation: diagonal entries
// exp(i·θ·k/d).
func Phase(levels int, theta float64) *mat.CDense {
	p := mat.NewCDense(levels, levels, nil)
	for k := 0; k < levels; k++ {
		p.Set(k, k, cmplx.Rect(1, theta*float64(k)/float64(levels)))
	}
	return p
}

// ControlledShift returns the generalized CX over the joint d² control
// ⊗ target space: whenever the control digit is non-zero the target
// digit advances by +1 mod d. Joint index convention is
// control·d + target. The matrix is a permutation, hence unitary.
func ControlledShift(levels int) *mat.CDense {
	d := levels
	cx := mat.NewCDense(d*d, d*d, nil)
	for c := 0; c < d; c++ {
		for t := 0; t < d; t++ {
			in := c*d + t
			out := in
			if c > 0 {
				out = c*d + (t+1)%d
			}
			cx.Set(out, in, 1)
		}
	}
	return cx
}

// ControlledPhase returns the two-qudit diagonal rotation with entries
// exp(i·θ·c·t) over the joint control ⊗ target space. For d=2 and
// θ=2π/2^k this is the textbook R_k rotation of the Fourier circuit;
// the c·t product generalizes the control to qudits.
func ControlledPhase(levels int, theta float64) *mat.CDense {
	d := levels
	cp := mat.NewCDense(d*d, d*d, nil)
	for c := 0; c < d; c++ {
		for t := 0; t < d; t++ {
			in := c*d + t
			cp.Set(in, in, cmplx.Rect(1, theta*float64(c)*float64(t)))
		}
	}
	return cp
}

// ApplySingle applies a d×d operator to qudit q of the state.
func ApplySingle(s *StateVector, u *mat.CDense, q int) error {
	if q < 0 || q >= s.qudits {
		return fmt.Errorf("%w: qudit %d of %d", ErrQuditIndexOutOfRange, q, s.qudits)
	}
	s.applySingle(u, q)
	return nil
}

// ApplyControlled applies a d²×d² operator to the (control, target)
// qudit pair of the state.
func ApplyControlled(s *StateVector, u *mat.CDense, control, target int) error {
	if control < 0 || control >= s.qudits {
		return fmt.Errorf("%w: control %d of %d", ErrQuditIndexOutOfRange, control, s.qudits)
	}
	if target < 0 || target >= s.qudits {
		return fmt.Errorf("%w: target %d of %d", ErrQuditIndexOutOfRange, target, s.qudits)
	}
	if control == target {
		return fmt.Errorf("%w: qudit %d", ErrSameQudit, control)
	}
	s.applyTwo(u, control, target)
	return nil
}

// ApplyOracle flips the sign of the amplitude at the target basis
// index, marking it for amplitude amplification.
func ApplyOracle(s *StateVector, target int) error {
	if target < 0 || target >= s.dim {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidTargetIndex, target, s.dim)
	}
	s.amps[target] = -s.amps[target]
	return nil
}

// ApplyDiffusion reflects every amplitude about the mean amplitude:
// aᵢ → 2·mean(a) − aᵢ. This is the Grover diffusion operator
// 2|ψ⟩⟨ψ| − I over the uniform state.
func ApplyDiffusion(s *StateVector) error {
	var mean complex128
	for _, a := range s.amps {
		mean += a
	}
	mean /= complex(float64(s.dim), 0)

	for i := range s.amps {
		s.amps[i] = 2*mean - s.amps[i]
	}
	return nil
}

// applySingle rewrites the amplitude vector under a d×d operator on
// qudit q. For each global index the digit at q is decomposed out and
// the operator row for that digit gathers the d sibling amplitudes.
func (s *StateVector) applySingle(u *mat.CDense, q int) {
	d := s.levels
	stride := intPow(d, q)
	next := make([]complex128, s.dim)

	for i := 0; i < s.dim; i++ {
		k := (i / stride) % d
		base := i - k*stride

		var acc complex128
		for j := 0; j < d; j++ {
			acc += u.At(k, j) * s.amps[base+j*stride]
		}
		next[i] = acc
	}

	s.amps = next
}

// applyTwo rewrites the amplitude vector under a d²×d² operator on the
// (control, target) digit pair, joint row index control·d + target.
func (s *StateVector) applyTwo(u *mat.CDense, control, target int) {
	d := s.levels
	cs := intPow(d, control)
	ts := intPow(d, target)
	next := make([]complex128, s.dim)

	for i := 0; i < s.dim; i++ {
		c := (i / cs) % d
		t := (i / ts) % d
		row := c*d + t
		base := i - c*cs - t*ts

		var acc complex128
		for cj := 0; cj < d; cj++ {
			for tj := 0; tj < d; tj++ {
				acc += u.At(row, cj*d+tj) * s.amps[base+cj*cs+tj*ts]
			}
		}
		next[i] = acc
	}

	s.amps = next
}
