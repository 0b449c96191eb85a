package qsim

import (
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/smartystreets/goconvey/convey"
)

func TestShorCode(t *testing.T) {
	Convey("Given the 9-qubit Shor code", t, func() {
		Convey("Ancilla virtualization bounds the physical register", func() {
			c := newTestController(CodeShor, StateZero, NoiseConfig{Type: ErrorNone}, 1)
			So(c.System().NumQubits(), ShouldEqual, 10)
			So(len(c.System().State().Amplitudes), ShouldEqual, 1024)
		})

		Convey("It does not support plus or minus logical states", func() {
			cfg := NewSimulatorConfig()
			cfg.CodeType = CodeShor
			cfg.InitialState = StatePlus
			_, err := NewSimulationController(cfg)
			So(err, ShouldHaveSameTypeAs, &ConfigurationError{})
		})

		Convey("Encode→decode round trips zero and one", func() {
			for _, state := range []LogicalState{StateZero, StateOne} {
				c := newTestController(CodeShor, state, NoiseConfig{Type: ErrorNone}, 2)
				for c.Phase() != PhaseComplete {
					So(c.StepForward(), ShouldBeNil)
				}
				f, err := c.Fidelity(state)
				So(err, ShouldBeNil)
				So(f, ShouldAlmostEqual, 1, 1e-6)
			}
		})

		Convey("A single X error raises only its block's bit-flip bits", func() {
			c := newTestController(CodeShor, StateZero, NoiseConfig{
				Type:         ErrorBitFlip,
				Mode:         ModeExactCount,
				ExactCount:   1,
				TargetQubits: []int{0},
			}, 3)
			report, err := c.RunFullCycle()
			So(err, ShouldBeNil)
			So(report.Syndrome[:6], ShouldResemble, Syndrome{1, 0, 0, 0, 0, 0})
			So(report.Syndrome[6:], ShouldResemble, Syndrome{0, 0})
			So(report.FinalFidelity, ShouldBeGreaterThanOrEqualTo, 0.95)
		})

		Convey("A single Z error raises only the phase bits", func() {
			c := newTestController(CodeShor, StateZero, NoiseConfig{
				Type:         ErrorPhaseFlip,
				Mode:         ModeExactCount,
				ExactCount:   1,
				TargetQubits: []int{0},
			}, 4)
			report, err := c.RunFullCycle()
			So(err, ShouldBeNil)
			So(report.Syndrome[:6], ShouldResemble, Syndrome{0, 0, 0, 0, 0, 0})
			So(report.Syndrome[6:], ShouldResemble, Syndrome{1, 0})
			So(report.FinalFidelity, ShouldBeGreaterThanOrEqualTo, 0.95)
		})

		Convey("A Y error raises bit-flip and phase bits at once", func() {
			c := newTestController(CodeShor, StateZero, NoiseConfig{
				Type:         ErrorBitPhaseFlip,
				Mode:         ModeExactCount,
				ExactCount:   1,
				TargetQubits: []int{4},
			}, 5)
			report, err := c.RunFullCycle()
			if err != nil {
				spew.Dump(report)
			}
			So(err, ShouldBeNil)
			So(report.Syndrome[2], ShouldEqual, 1)
			So(report.Syndrome[3], ShouldEqual, 1)
			So(report.Syndrome[6:], ShouldResemble, Syndrome{1, 1})
			So(report.FinalFidelity, ShouldBeGreaterThanOrEqualTo, 0.95)
		})

		Convey("Every single-qubit Pauli error on every qubit is corrected", func() {
			for _, errType := range []ErrorType{ErrorBitFlip, ErrorPhaseFlip, ErrorBitPhaseFlip} {
				for q := 0; q < 9; q++ {
					c := newTestController(CodeShor, StateOne, NoiseConfig{
						Type:         errType,
						Mode:         ModeExactCount,
						ExactCount:   1,
						TargetQubits: []int{q},
					}, int64(10+q))
					report, err := c.RunFullCycle()
					So(err, ShouldBeNil)
					So(report.FinalFidelity, ShouldBeGreaterThanOrEqualTo, 0.95)
				}
			}
		})

		Convey("Syndrome extraction does not disturb an intact codeword", func() {
			code := &ShorCode{}
			sys := NewQuantumSystem(code.DataQubits(), code.AncillaRoles(), rand.New(rand.NewSource(6)))
			So(code.Encode(sys), ShouldBeNil)
			reference := sys.State().Clone()

			for round := 0; round < 2; round++ {
				syndrome, err := code.MeasureSyndrome(sys)
				So(err, ShouldBeNil)
				So(syndrome.IsZero(), ShouldBeTrue)
			}
			f, err := sys.State().Fidelity(reference)
			So(err, ShouldBeNil)
			So(f, ShouldAlmostEqual, 1, 1e-6)
		})

		Convey("A malformed syndrome is rejected", func() {
			code := &ShorCode{}
			sys := NewQuantumSystem(9, 8, nil)
			_, err := code.Correct(sys, Syndrome{1})
			So(err, ShouldHaveSameTypeAs, &ConfigurationError{})
		})
	})
}
