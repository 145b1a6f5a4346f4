package qudit

import (
	"fmt"
	"math"
	"strings"

	"github.com/theapemachine/errnie"
)

// OpKind tags one entry in a circuit's operation log.
type OpKind string

const (
	OpHadamard        OpKind = "H"
	OpShift           OpKind = "X"
	OpClock           OpKind = "Z"
	OpControlledShift OpKind = "CX"
	OpPhase           OpKind = "P"
	OpControlledPhase OpKind = "CP"
	OpOracle          OpKind = "ORACLE"
	OpDiffusion       OpKind = "DIFFUSE"
)

/*
Operation is one immutable entry of a circuit's append-only log: which
gate ran, the qudit indices it touched, and the angle for parameterized
gates. For OpControlledShift, Qudits is [control, target]. For OpOracle,
Qudits holds the single marked basis index. Structured entries make the
log replayable and inspectable without parsing strings back apart.
*/
type Operation struct {
	Kind   OpKind
	Qudits []int
	Angle  float64
}

/*
Circuit sequences gate applications against the one StateVector it
owns. Gate calls chain fluently; the first failing call records its
error, every later call becomes a no-op, and Err surfaces the failure.
The operation log is append-only: prior entries are never edited, so
the log is a faithful record of what actually ran.
*/
type Circuit struct {
	state *StateVector
	log   []Operation
	err   error
}

// NewCircuit creates a circuit owning a fresh |00...0⟩ state.
func NewCircuit(qudits, levels int) (*Circuit, error) {
	state, err := New(qudits, levels)
	if err != nil {
		return nil, err
	}

	errnie.Info("NewCircuit - qudits %d, levels %d, dim %d", qudits, levels, state.dim)
	return &Circuit{state: state}, nil
}

// State returns the circuit's owned state vector. Callers must not
// mutate it outside the circuit; use Clone for snapshots.
func (c *Circuit) State() *StateVector { return c.state }

// Err returns the first gate-application error, if any.
func (c *Circuit) Err() error { return c.err }

// Log returns a copy of the operation log.
func (c *Circuit) Log() []Operation {
	log := make([]Operation, len(c.log))
	copy(log, c.log)
	return log
}

// Hadamard applies the generalized Hadamard to qudit q.
func (c *Circuit) Hadamard(q int) *Circuit {
	return c.apply(Operation{Kind: OpHadamard, Qudits: []int{q}}, func() error {
		return ApplySingle(c.state, Hadamard(c.state.levels), q)
	})
}

// Shift applies the generalized X (cyclic +1) to qudit q.
func (c *Circuit) Shift(q int) *Circuit {
	return c.apply(Operation{Kind: OpShift, Qudits: []int{q}}, func() error {
		return ApplySingle(c.state, Shift(c.state.levels), q)
	})
}

// Clock applies the generalized Z (per-level phase) to qudit q.
func (c *Circuit) Clock(q int) *Circuit {
	return c.apply(Operation{Kind: OpClock, Qudits: []int{q}}, func() error {
		return ApplySingle(c.state, Clock(c.state.levels), q)
	})
}

// Phase applies the parameterized phase rotation to qudit q.
func (c *Circuit) Phase(q int, theta float64) *Circuit {
	return c.apply(Operation{Kind: OpPhase, Qudits: []int{q}, Angle: theta}, func() error {
		if math.IsNaN(theta) || math.IsInf(theta, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidAngle, theta)
		}
		return ApplySingle(c.state, Phase(c.state.levels, theta), q)
	})
}

// ControlledShift applies the generalized CX: the target digit advances
// by +1 mod d whenever the control digit is non-zero.
func (c *Circuit) ControlledShift(control, target int) *Circuit {
	op := Operation{Kind: OpControlledShift, Qudits: []int{control, target}}
	return c.apply(op, func() error {
		return ApplyControlled(c.state, ControlledShift(c.state.levels), control, target)
	})
}

// ControlledPhase applies the two-qudit rotation exp(i·θ·c·t) between
// the control and target digits.
func (c *Circuit) ControlledPhase(control, target int, theta float64) *Circuit {
	op := Operation{Kind: OpControlledPhase, Qudits: []int{control, target}, Angle: theta}
	return c.apply(op, func() error {
		if math.IsNaN(theta) || math.IsInf(theta, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidAngle, theta)
		}
		return ApplyControlled(c.state, ControlledPhase(c.state.levels, theta), control, target)
	})
}

// Oracle flips the sign of the amplitude at the target basis index.
func (c *Circuit) Oracle(target int) *Circuit {
	return c.apply(Operation{Kind: OpOracle, Qudits: []int{target}}, func() error {
		return ApplyOracle(c.state, target)
	})
}

// Diffusion reflects every amplitude about the mean amplitude.
func (c *Circuit) Diffusion() *Circuit {
	return c.apply(Operation{Kind: OpDiffusion}, func() error {
		return ApplyDiffusion(c.state)
	})
}

func (c *Circuit) apply(op Operation, fn func() error) *Circuit {
	if c.err != nil {
		return c
	}
	if err := fn(); err != nil {
		c.err = err
		return c
	}
	c.log = append(c.log, op)
	return c
}

// Replay re-executes the operation log on a fresh |00...0⟩ state and
// returns the resulting circuit. The log is what makes this possible:
// intent is recorded structurally, not re-derived from mutated state.
func (c *Circuit) Replay() (*Circuit, error) {
	replayed, err := NewCircuit(c.state.qudits, c.state.levels)
	if err != nil {
		return nil, err
	}

	for _, op := range c.log {
		switch op.Kind {
		case OpHadamard:
			replayed.Hadamard(op.Qudits[0])
		case OpShift:
			replayed.Shift(op.Qudits[0])
		case OpClock:
			replayed.Clock(op.Qudits[0])
		case OpPhase:
			replayed.Phase(op.Qudits[0], op.Angle)
		case OpControlledShift:
			replayed.ControlledShift(op.Qudits[0], op.Qudits[1])
		case OpControlledPhase:
			replayed.ControlledPhase(op.Qudits[0], op.Qudits[1], op.Angle)
		case OpOracle:
			replayed.Oracle(op.Qudits[0])
		case OpDiffusion:
			replayed.Diffusion()
		}
		if replayed.err != nil {
			return nil, replayed.err
		}
	}
	return replayed, nil
}

// Render draws the circuit as an ASCII wire diagram, one line per
// qudit, gates in log order.
func (c *Circuit) Render() string {
	lines := make([]string, c.state.qudits)
	for q := range lines {
		lines[q] = fmt.Sprintf("q%d: ", q)
	}

	for _, op := range c.log {
		switch op.Kind {
		case OpControlledShift, OpControlledPhase:
			cell := "──⊕──"
			if op.Kind == OpControlledPhase {
				cell = "─[P]─"
			}
			for q := range lines {
				switch q {
				case op.Qudits[0]:
					lines[q] += "──●──"
				case op.Qudits[1]:
					lines[q] += cell
				default:
					lines[q] += "──┼──"
				}
			}
		case OpOracle, OpDiffusion:
			cell := "─[O]─"
			if op.Kind == OpDiffusion {
				cell = "─[D]─"
			}
			for q := range lines {
				lines[q] += cell
			}
		default:
			for q := range lines {
				if len(op.Qudits) > 0 && q == op.Qudits[0] {
					lines[q] += fmt.Sprintf("─[%s]─", op.Kind)
				} else {
					lines[q] += strings.Repeat("─", len(op.Kind)+4)
				}
			}
		}
	}

	return strings.Join(lines, "\n")
}
