package qudit

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNewStateVector(t *testing.T) {
	Convey("Given dimensions for a new state vector", t, func() {
		Convey("When the dimensions are valid", func() {
			s, err := New(3, 2)

			So(err, ShouldBeNil)
			So(s.Qudits(), ShouldEqual, 3)
			So(s.Levels(), ShouldEqual, 2)
			So(s.Dim(), ShouldEqual, 8)

			Convey("Then all amplitude mass sits on |000⟩", func() {
				amps := s.Amplitudes()
				So(amps[0], ShouldEqual, complex(1, 0))
				for i := 1; i < len(amps); i++ {
					So(amps[i], ShouldEqual, complex(0, 0))
				}
				So(s.TotalProbability(), ShouldAlmostEqual, 1, 1e-12)
			})
		})

		Convey("When qutrits are requested", func() {
			s, err := New(2, 3)

			So(err, ShouldBeNil)
			So(s.Dim(), ShouldEqual, 9)
		})

		Convey("When the qudit count is below one", func() {
			s, err := New(0, 2)

			So(s, ShouldBeNil)
			So(err, ShouldWrap, ErrInvalidDimension)
		})

		Convey("When the level count is below two", func() {
			s, err := New(2, 1)

			So(s, ShouldBeNil)
			So(err, ShouldWrap, ErrInvalidDimension)
		})
	})
}

func TestDigitsAndIndex(t *testing.T) {
	Convey("Given a 3-qutrit state", t, func() {
		s, err := New(3, 3)
		So(err, ShouldBeNil)

		Convey("Digits uses least-significant digit = qudit 0", func() {
			// 14 = 2 + 1*3 + 1*9
			So(s.Digits(14), ShouldResemble, []int{2, 1, 1})
			So(s.Digits(0), ShouldResemble, []int{0, 0, 0})
			So(s.Digits(26), ShouldResemble, []int{2, 2, 2})
		})

		Convey("Index inverts Digits for every basis state", func() {
			for i := 0; i < s.Dim(); i++ {
				So(s.Index(s.Digits(i)), ShouldEqual, i)
			}
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given a state with drifted amplitudes", t, func() {
		s, err := New(1, 2)
		So(err, ShouldBeNil)
		s.amps[0] = 3
		s.amps[1] = 4i

		Convey("When normalized", func() {
			s.Normalize()

			So(s.TotalProbability(), ShouldAlmostEqual, 1, 1e-12)
			probs := s.Probabilities()
			So(probs[0], ShouldAlmostEqual, 9.0/25.0, 1e-12)
			So(probs[1], ShouldAlmostEqual, 16.0/25.0, 1e-12)

			Convey("Then normalizing again changes nothing", func() {
				before := s.Amplitudes()
				s.Normalize()
				after := s.Amplitudes()
				for i := range before {
					So(after[i], ShouldEqual, before[i])
				}
			})
		})
	})

	Convey("Given the zero vector", t, func() {
		s, err := New(1, 2)
		So(err, ShouldBeNil)
		s.amps[0] = 0

		Convey("Normalize leaves it alone", func() {
			s.Normalize()
			So(s.TotalProbability(), ShouldEqual, 0)
		})
	})
}

func TestClone(t *testing.T) {
	Convey("Given a prepared state", t, func() {
		s, err := New(2, 2)
		So(err, ShouldBeNil)
		So(ApplySingle(s, Hadamard(2), 0), ShouldBeNil)

		Convey("When cloned and the clone is mutated", func() {
			clone := s.Clone()
			clone.amps[0] = 0

			Convey("Then the original is untouched", func() {
				So(s.Amplitudes()[0], ShouldNotEqual, complex(0, 0))
				So(clone.Qudits(), ShouldEqual, s.Qudits())
				So(clone.Levels(), ShouldEqual, s.Levels())
			})
		})
	})
}
