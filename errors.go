package qudit

import "errors"

// Sentinel errors returned by the simulation engine.
var (
	// ErrInvalidDimension is returned when a state is constructed with
	// fewer than one qudit or fewer than two levels per qudit.
	ErrInvalidDimension = errors.New("qudit: invalid dimension")

	// ErrQuditIndexOutOfRange is returned when a gate targets a qudit
	// index outside [0, qudits).
	ErrQuditIndexOutOfRange = errors.New("qudit: qudit index out of range")

	// ErrSameQudit is returned when a two-qudit gate is given identical
	// control and target indices.
	ErrSameQudit = errors.New("qudit: control and target must differ")

	// ErrInvalidAngle is returned when a phase angle is NaN or infinite.
	ErrInvalidAngle = errors.New("qudit: invalid angle")

	// ErrUnnormalizedState is returned by measurement operations when the
	// total probability deviates from 1 beyond tolerance. The sampler
	// never renormalizes silently; an unnormalized state means an
	// upstream gate bug.
	ErrUnnormalizedState = errors.New("qudit: state is not normalized")

	// ErrInvalidShotCount is returned when sampling with fewer than one shot.
	ErrInvalidShotCount = errors.New("qudit: shot count must be positive")

	// ErrInvalidTargetIndex is returned when an oracle marks a basis
	// index outside the state dimension.
	ErrInvalidTargetIndex = errors.New("qudit: target index out of range")

	// ErrDimensionMismatch is returned when two states of different
	// dimensions are compared.
	ErrDimensionMismatch = errors.New("qudit: dimension mismatch")
)
