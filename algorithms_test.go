package qudit

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBell(t *testing.T) {
	Convey("Given a Bell pair over qubits", t, func() {
		c, err := Bell(2)

		So(err, ShouldBeNil)

		Convey("Then only indices 0 and 3 carry probability, each one half", func() {
			probs := c.State().Probabilities()

			So(probs[0], ShouldAlmostEqual, 0.5, 1e-12)
			So(probs[3], ShouldAlmostEqual, 0.5, 1e-12)
			So(probs[1], ShouldAlmostEqual, 0, 1e-12)
			So(probs[2], ShouldAlmostEqual, 0, 1e-12)
		})

		Convey("Then sampling splits between the two branches", func() {
			counts, err := NewSeededSampler(c.State(), 11).Histogram(1000)

			So(err, ShouldBeNil)
			So(counts[0], ShouldBeBetween, 400, 600)
			So(counts[3], ShouldBeBetween, 400, 600)
			So(counts[0]+counts[3], ShouldEqual, 1000)
		})
	})
}

func TestGHZ(t *testing.T) {
	Convey("Given GHZ preparations over qubits", t, func() {
		for n := 2; n <= 10; n++ {
			Convey(fmt.Sprintf("Then %d qubits leave exactly the all-0 and all-1 branches", n), func() {
				c, err := GHZ(n, 2)
				So(err, ShouldBeNil)

				probs := c.State().Probabilities()
				last := len(probs) - 1

				So(probs[0], ShouldAlmostEqual, 0.5, 1e-9)
				So(probs[last], ShouldAlmostEqual, 0.5, 1e-9)
				for i := 1; i < last; i++ {
					So(probs[i], ShouldAlmostEqual, 0, 1e-12)
				}
			})
		}
	})

	Convey("Given a GHZ preparation over qutrits", t, func() {
		c, err := GHZ(3, 3)
		So(err, ShouldBeNil)
		s := c.State()

		Convey("Then the d branches are equally likely", func() {
			probs := s.Probabilities()

			// Control digit c=0 leaves everything down; c>0 shifts each
			// target once.
			branches := []int{
				s.Index([]int{0, 0, 0}),
				s.Index([]int{1, 1, 1}),
				s.Index([]int{2, 1, 1}),
			}

			total := 0.0
			for _, b := range branches {
				So(probs[b], ShouldAlmostEqual, 1.0/3.0, 1e-9)
				total += probs[b]
			}
			So(total, ShouldAlmostEqual, 1, 1e-9)
		})
	})

	Convey("Given a single qudit", t, func() {
		_, err := GHZ(1, 2)
		So(err, ShouldWrap, ErrInvalidDimension)
	})
}

func TestGroverOptimal(t *testing.T) {
	Convey("Given Grover searches at the closed-form iteration count", t, func() {
		for n := 3; n <= 10; n++ {
			Convey(fmt.Sprintf("Then the %d-qubit search concentrates on the target", n), func() {
				target := intPow(2, n) - 2
				c, err := Grover(n, target)

				So(err, ShouldBeNil)
				So(c.State().Probabilities()[target], ShouldBeGreaterThan, 0.8)
			})
		}

		Convey("Then 1000 shots find the target more than 80% of the time", func() {
			c, err := Grover(3, 5)
			So(err, ShouldBeNil)

			counts, err := NewSeededSampler(c.State(), 23).Histogram(1000)
			So(err, ShouldBeNil)
			So(counts[5], ShouldBeGreaterThan, 800)
		})
	})
}

func TestGroverOscillation(t *testing.T) {
	Convey("Given a 4-qubit search run past the optimum", t, func() {
		target := 9
		optimal := GroverIterations(4)

		atOptimal, err := GroverSteps(4, target, optimal)
		So(err, ShouldBeNil)
		overshot, err := GroverSteps(4, target, 2*optimal)
		So(err, ShouldBeNil)

		Convey("Then success probability oscillates back down", func() {
			pOptimal := atOptimal.State().Probabilities()[target]
			pOvershot := overshot.State().Probabilities()[target]

			So(pOptimal, ShouldBeGreaterThan, 0.9)
			So(pOvershot, ShouldBeLessThan, 0.5)
			So(pOvershot, ShouldBeLessThan, pOptimal)
		})
	})
}

func TestGroverValidation(t *testing.T) {
	Convey("Given a target outside the state space", t, func() {
		c, err := Grover(3, 8)

		So(err, ShouldWrap, ErrInvalidTargetIndex)
		So(c.Err(), ShouldWrap, ErrInvalidTargetIndex)
	})
}

func TestGroverIterationCount(t *testing.T) {
	Convey("Given the closed-form iteration count", t, func() {
		So(GroverIterations(3), ShouldEqual, 2)  // ⌊π/4·√8⌋
		So(GroverIterations(4), ShouldEqual, 3)  // ⌊π/4·√16⌋
		So(GroverIterations(10), ShouldEqual, 25)
	})
}

func TestFourier(t *testing.T) {
	Convey("Given the elementary transform", t, func() {
		Convey("On one qubit it is exactly the Hadamard", func() {
			c, err := Fourier(1, 2)
			So(err, ShouldBeNil)

			amps := c.State().Amplitudes()
			f := complex(1/math.Sqrt2, 0)
			So(cmplx.Abs(amps[0]-f), ShouldBeLessThan, 1e-12)
			So(cmplx.Abs(amps[1]-f), ShouldBeLessThan, 1e-12)
		})

		Convey("On |00...0⟩ it yields the uniform superposition", func() {
			c, err := Fourier(3, 2)
			So(err, ShouldBeNil)

			want := 1 / math.Sqrt(8)
			for _, a := range c.State().Amplitudes() {
				So(cmplx.Abs(a-complex(want, 0)), ShouldBeLessThan, 1e-12)
			}
		})

		Convey("On a qutrit register it still spreads mass uniformly", func() {
			c, err := Fourier(2, 3)
			So(err, ShouldBeNil)

			for _, p := range c.State().Probabilities() {
				So(p, ShouldAlmostEqual, 1.0/9.0, 1e-9)
			}
		})

		Convey("On |x=1⟩ over 2 qubits it matches the bit-reversed DFT column", func() {
			c, err := NewCircuit(2, 2)
			So(err, ShouldBeNil)
			c.Shift(0)
			FourierTransform(c)
			So(c.Err(), ShouldBeNil)

			// The omitted final swap leaves the DFT-of-e₁ column
			// (1, i, -1, -i)/2 with its qubits in reversed order:
			// (1, -1, i, -i)/2.
			want := []complex128{0.5, -0.5, 0.5i, -0.5i}
			amps := c.State().Amplitudes()
			for i := range want {
				So(cmplx.Abs(amps[i]-want[i]), ShouldBeLessThan, 1e-12)
			}
		})
	})
}
