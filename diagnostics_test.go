package qudit

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEntropy(t *testing.T) {
	Convey("Given states of known entropy", t, func() {
		Convey("A fresh basis state scores zero bits", func() {
			s, err := New(4, 2)
			So(err, ShouldBeNil)
			So(s.Entropy(), ShouldAlmostEqual, 0, 1e-12)
		})

		Convey("A uniform superposition over n qubits scores n bits", func() {
			for _, n := range []int{1, 3, 6} {
				c, err := NewCircuit(n, 2)
				So(err, ShouldBeNil)
				for q := 0; q < n; q++ {
					c.Hadamard(q)
				}
				So(c.Err(), ShouldBeNil)

				So(c.State().Entropy(), ShouldAlmostEqual, float64(n), 1e-9)
			}
		})

		Convey("A Bell pair scores one bit", func() {
			c, err := Bell(2)
			So(err, ShouldBeNil)
			So(c.State().Entropy(), ShouldAlmostEqual, 1, 1e-9)
		})

		Convey("A uniform qutrit scores log2(3) bits", func() {
			s, err := New(1, 3)
			So(err, ShouldBeNil)
			So(ApplySingle(s, Hadamard(3), 0), ShouldBeNil)

			So(s.Entropy(), ShouldAlmostEqual, 1.584962500721156, 1e-9)
		})
	})
}

func TestFidelity(t *testing.T) {
	Convey("Given normalized states", t, func() {
		a := randomState(3, 2, 5)
		b := randomState(3, 2, 6)

		Convey("Fidelity with itself is one", func() {
			f, err := Fidelity(a, a)
			So(err, ShouldBeNil)
			So(f, ShouldAlmostEqual, 1, 1e-12)
		})

		Convey("Fidelity is symmetric and within [0,1]", func() {
			fab, err := Fidelity(a, b)
			So(err, ShouldBeNil)
			fba, err := Fidelity(b, a)
			So(err, ShouldBeNil)

			So(fab, ShouldAlmostEqual, fba, 1e-12)
			So(fab, ShouldBeBetweenOrEqual, 0, 1)
		})

		Convey("Orthogonal basis states score zero", func() {
			x, err := New(2, 2)
			So(err, ShouldBeNil)
			y, err := New(2, 2)
			So(err, ShouldBeNil)
			So(ApplySingle(y, Shift(2), 0), ShouldBeNil)

			f, err := Fidelity(x, y)
			So(err, ShouldBeNil)
			So(f, ShouldAlmostEqual, 0, 1e-12)
		})

		Convey("Proportional states score one even with a global phase", func() {
			phased := a.Clone()
			for i := range phased.amps {
				phased.amps[i] *= complex(0, 1)
			}

			f, err := Fidelity(a, phased)
			So(err, ShouldBeNil)
			So(f, ShouldAlmostEqual, 1, 1e-12)
		})

		Convey("Mismatched dimensions are rejected", func() {
			small, err := New(1, 2)
			So(err, ShouldBeNil)

			_, err = Fidelity(a, small)
			So(err, ShouldWrap, ErrDimensionMismatch)
		})
	})
}
