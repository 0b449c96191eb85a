package qsim

import (
	"math"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStateVector(t *testing.T) {
	Convey("Given a fresh 2-qubit state vector", t, func() {
		s := NewStateVector(2)

		Convey("It starts in |00⟩ and is normalized", func() {
			So(real(s.Amplitude(0)), ShouldAlmostEqual, 1)
			So(s.CheckNorm(NormTolerance), ShouldBeNil)
		})

		Convey("Hadamard creates an equal superposition", func() {
			So(s.Apply(H(0)), ShouldBeNil)
			So(real(s.Amplitude(0)), ShouldAlmostEqual, 1/math.Sqrt2, 1e-9)
			So(real(s.Amplitude(1)), ShouldAlmostEqual, 1/math.Sqrt2, 1e-9)
			So(s.CheckNorm(NormTolerance), ShouldBeNil)
		})

		Convey("X flips the target bit", func() {
			So(s.Apply(X(1)), ShouldBeNil)
			So(real(s.Amplitude(2)), ShouldAlmostEqual, 1)
			So(s.BasisLabel(2), ShouldEqual, "01")
		})

		Convey("Z flips the sign of the bit-set half", func() {
			So(s.Apply(X(0)), ShouldBeNil)
			So(s.Apply(Z(0)), ShouldBeNil)
			So(real(s.Amplitude(1)), ShouldAlmostEqual, -1)
		})

		Convey("H then CNOT yields a Bell state", func() {
			So(s.Apply(H(0)), ShouldBeNil)
			So(s.Apply(CNOT(0, 1)), ShouldBeNil)
			So(real(s.Amplitude(0)), ShouldAlmostEqual, 1/math.Sqrt2, 1e-9)
			So(real(s.Amplitude(3)), ShouldAlmostEqual, 1/math.Sqrt2, 1e-9)
			So(s.CheckNorm(NormTolerance), ShouldBeNil)

			Convey("Each qubit's Bloch vector shrinks to the origin", func() {
				x, y, z, err := s.Bloch(0)
				So(err, ShouldBeNil)
				So(x, ShouldAlmostEqual, 0, 1e-9)
				So(y, ShouldAlmostEqual, 0, 1e-9)
				So(z, ShouldAlmostEqual, 0, 1e-9)
			})

			Convey("Measuring one qubit pins the other", func() {
				rng := rand.New(rand.NewSource(7))
				outcome, err := s.Measure(0, rng)
				So(err, ShouldBeNil)
				So(s.CheckNorm(NormTolerance), ShouldBeNil)
				p1, err := s.Probability(1)
				So(err, ShouldBeNil)
				So(p1, ShouldAlmostEqual, float64(outcome), 1e-9)
			})
		})

		Convey("CZ flips only the |11⟩ amplitude sign", func() {
			So(s.Apply(X(0)), ShouldBeNil)
			So(s.Apply(X(1)), ShouldBeNil)
			So(s.Apply(CZ(0, 1)), ShouldBeNil)
			So(real(s.Amplitude(3)), ShouldAlmostEqual, -1)
		})

		Convey("Reset deterministically returns a qubit to |0⟩", func() {
			So(s.Apply(X(0)), ShouldBeNil)
			So(s.Reset(0), ShouldBeNil)
			So(real(s.Amplitude(0)), ShouldAlmostEqual, 1)
			So(s.CheckNorm(NormTolerance), ShouldBeNil)
		})

		Convey("Reset after measurement does not leak into the partner qubit", func() {
			So(s.Apply(H(0)), ShouldBeNil)
			So(s.Apply(CNOT(0, 1)), ShouldBeNil)
			outcome, err := s.Measure(1, rand.New(rand.NewSource(3)))
			So(err, ShouldBeNil)
			So(s.Reset(1), ShouldBeNil)
			p1, err := s.Probability(0)
			So(err, ShouldBeNil)
			So(p1, ShouldAlmostEqual, float64(outcome), 1e-9)
			pAnc, err := s.Probability(1)
			So(err, ShouldBeNil)
			So(pAnc, ShouldAlmostEqual, 0, 1e-9)
		})

		Convey("Forcing an impossible outcome fails", func() {
			err := s.ForceMeasure(0, 1)
			So(err, ShouldHaveSameTypeAs, &ConfigurationError{})
		})

		Convey("Forcing a possible outcome collapses onto it", func() {
			So(s.Apply(H(0)), ShouldBeNil)
			So(s.ForceMeasure(0, 1), ShouldBeNil)
			p1, err := s.Probability(0)
			So(err, ShouldBeNil)
			So(p1, ShouldAlmostEqual, 1, 1e-9)
		})

		Convey("Out-of-range qubits yield DimensionError", func() {
			So(s.Apply(X(2)), ShouldHaveSameTypeAs, &DimensionError{})
			So(s.Apply(X(-1)), ShouldHaveSameTypeAs, &DimensionError{})
			_, err := s.Probability(5)
			So(err, ShouldHaveSameTypeAs, &DimensionError{})
		})

		Convey("A CNOT needs two distinct in-range qubits", func() {
			So(s.Apply(CNOT(0, 0)), ShouldHaveSameTypeAs, &DimensionError{})
			So(s.Apply(CNOT(0, 9)), ShouldHaveSameTypeAs, &DimensionError{})
		})
	})

	Convey("Given single-qubit states", t, func() {
		Convey("|+⟩ sits on the Bloch x axis", func() {
			s := NewStateVector(1)
			So(s.Apply(H(0)), ShouldBeNil)
			x, y, z, err := s.Bloch(0)
			So(err, ShouldBeNil)
			So(x, ShouldAlmostEqual, 1, 1e-9)
			So(y, ShouldAlmostEqual, 0, 1e-9)
			So(z, ShouldAlmostEqual, 0, 1e-9)
		})

		Convey("H·Z·H acts as X", func() {
			s := NewStateVector(1)
			So(s.Apply(H(0)), ShouldBeNil)
			So(s.Apply(Z(0)), ShouldBeNil)
			So(s.Apply(H(0)), ShouldBeNil)
			_, _, z, err := s.Bloch(0)
			So(err, ShouldBeNil)
			So(z, ShouldAlmostEqual, -1, 1e-9)
		})

		Convey("Fidelity is 1 for identical and 0 for orthogonal states", func() {
			a := NewStateVector(1)
			b := NewStateVector(1)
			f, err := a.Fidelity(b)
			So(err, ShouldBeNil)
			So(f, ShouldAlmostEqual, 1, 1e-9)

			So(b.Apply(X(0)), ShouldBeNil)
			f, err = a.Fidelity(b)
			So(err, ShouldBeNil)
			So(f, ShouldAlmostEqual, 0, 1e-9)
		})

		Convey("Fidelity rejects a dimension mismatch", func() {
			a := NewStateVector(1)
			b := NewStateVector(2)
			_, err := a.Fidelity(b)
			So(err, ShouldHaveSameTypeAs, &ConfigurationError{})
		})

		Convey("Global phase does not affect fidelity", func() {
			a := NewStateVector(1)
			b := NewStateVector(1)
			So(b.Apply(X(0)), ShouldBeNil)
			So(b.Apply(Y(0)), ShouldBeNil)
			// Y|1⟩ = -i|0⟩, same ray as |0⟩
			f, err := a.Fidelity(b)
			So(err, ShouldBeNil)
			So(f, ShouldAlmostEqual, 1, 1e-9)
		})
	})

	Convey("Normalization holds after long random-ish gate sequences", t, func() {
		s := NewStateVector(3)
		gates := []Gate{H(0), CNOT(0, 1), Y(2), CZ(1, 2), H(2), X(1), Z(0), CNOT(2, 0)}
		for _, g := range gates {
			So(s.Apply(g), ShouldBeNil)
			So(s.CheckNorm(NormTolerance), ShouldBeNil)
		}
	})
}
