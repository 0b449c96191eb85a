package qsim

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNoiseEngine(t *testing.T) {
	Convey("Given a noise engine over a 3-qubit system", t, func() {
		rng := rand.New(rand.NewSource(11))
		sys := NewQuantumSystem(3, 0, rng)
		engine := NewNoiseEngine(rng)

		Convey("No noise type yields no events", func() {
			events, err := engine.ApplyNoise(sys, NoiseConfig{Type: ErrorNone})
			So(err, ShouldBeNil)
			So(events, ShouldBeEmpty)
		})

		Convey("Probability 0 reports every candidate as not applied", func() {
			events, err := engine.ApplyNoise(sys, NoiseConfig{
				Type:        ErrorBitFlip,
				Mode:        ModeProbability,
				Probability: 0,
			})
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 3)
			for _, e := range events {
				So(e.Applied, ShouldBeFalse)
			}
		})

		Convey("Probability 1 hits every candidate", func() {
			events, err := engine.ApplyNoise(sys, NoiseConfig{
				Type:        ErrorBitFlip,
				Mode:        ModeProbability,
				Probability: 1,
			})
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 3)
			for _, e := range events {
				So(e.Applied, ShouldBeTrue)
			}
			// all three data qubits flipped
			for q := 0; q < 3; q++ {
				p, err := sys.State().Probability(q)
				So(err, ShouldBeNil)
				So(p, ShouldAlmostEqual, 1, 1e-9)
			}
		})

		Convey("Exact count applies exactly k errors regardless of probability", func() {
			events, err := engine.ApplyNoise(sys, NoiseConfig{
				Type:        ErrorBitFlip,
				Mode:        ModeExactCount,
				Probability: 0,
				ExactCount:  2,
			})
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 3)
			applied := 0
			for _, e := range events {
				if e.Applied {
					applied++
				}
			}
			So(applied, ShouldEqual, 2)
		})

		Convey("Exact count beyond the candidate set fails", func() {
			_, err := engine.ApplyNoise(sys, NoiseConfig{
				Type:       ErrorBitFlip,
				Mode:       ModeExactCount,
				ExactCount: 4,
			})
			So(err, ShouldHaveSameTypeAs, &ConfigurationError{})
		})

		Convey("Target qubits restrict the candidate set", func() {
			events, err := engine.ApplyNoise(sys, NoiseConfig{
				Type:         ErrorBitFlip,
				Mode:         ModeProbability,
				Probability:  1,
				TargetQubits: []int{1},
			})
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 1)
			So(events[0].Qubit, ShouldEqual, 1)
			So(events[0].Applied, ShouldBeTrue)

			p0, err := sys.State().Probability(0)
			So(err, ShouldBeNil)
			So(p0, ShouldAlmostEqual, 0, 1e-9)
			p1, err := sys.State().Probability(1)
			So(err, ShouldBeNil)
			So(p1, ShouldAlmostEqual, 1, 1e-9)
		})

		Convey("A target outside the data qubits is a dimension error", func() {
			_, err := engine.ApplyNoise(sys, NoiseConfig{
				Type:         ErrorBitFlip,
				Mode:         ModeProbability,
				Probability:  1,
				TargetQubits: []int{3},
			})
			So(err, ShouldHaveSameTypeAs, &DimensionError{})
		})

		Convey("Depolarizing events record the resolved Pauli", func() {
			events, err := engine.ApplyNoise(sys, NoiseConfig{
				Type:       ErrorDepolarizing,
				Mode:       ModeExactCount,
				ExactCount: 3,
			})
			So(err, ShouldBeNil)
			for _, e := range events {
				So(e.Applied, ShouldBeTrue)
				So(e.Type, ShouldBeIn, ErrorBitFlip, ErrorPhaseFlip, ErrorBitPhaseFlip)
			}
		})

		Convey("Applied noise lands in the operation history", func() {
			_, err := engine.ApplyNoise(sys, NoiseConfig{
				Type:         ErrorPhaseFlip,
				Mode:         ModeProbability,
				Probability:  1,
				TargetQubits: []int{2},
			})
			So(err, ShouldBeNil)
			last := sys.History()[len(sys.History())-1]
			So(last.Kind, ShouldEqual, StepNoise)
			So(last.Qubit, ShouldEqual, 2)
			So(last.ErrorType, ShouldEqual, ErrorPhaseFlip)
		})
	})

	Convey("Given manual error injection", t, func() {
		rng := rand.New(rand.NewSource(5))
		sys := NewQuantumSystem(1, 0, rng)
		engine := NewNoiseEngine(rng)

		Convey("InjectError applies unconditionally", func() {
			event, err := engine.InjectError(sys, 0, ErrorBitFlip)
			So(err, ShouldBeNil)
			So(event.Applied, ShouldBeTrue)
			So(event.Type, ShouldEqual, ErrorBitFlip)
			p, err := sys.State().Probability(0)
			So(err, ShouldBeNil)
			So(p, ShouldAlmostEqual, 1, 1e-9)
		})

		Convey("Depolarizing injection reports the resolved Pauli", func() {
			event, err := engine.InjectError(sys, 0, ErrorDepolarizing)
			So(err, ShouldBeNil)
			So(event.Applied, ShouldBeTrue)
			So(event.Type, ShouldBeIn, ErrorBitFlip, ErrorPhaseFlip, ErrorBitPhaseFlip)
		})

		Convey("Injecting none is a no-op", func() {
			event, err := engine.InjectError(sys, 0, ErrorNone)
			So(err, ShouldBeNil)
			So(event.Applied, ShouldBeFalse)
			So(sys.History(), ShouldBeEmpty)
		})

		Convey("Injecting out of range fails", func() {
			_, err := engine.InjectError(sys, 7, ErrorBitFlip)
			So(err, ShouldHaveSameTypeAs, &DimensionError{})
		})

		Convey("The shared ancilla is off limits", func() {
			withAncilla := NewQuantumSystem(3, 2, rng)
			_, err := engine.InjectError(withAncilla, 3, ErrorBitFlip)
			So(err, ShouldHaveSameTypeAs, &DimensionError{})
		})
	})
}
