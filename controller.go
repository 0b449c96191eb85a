package qsim

import (
	"log"

	"github.com/theapemachine/errnie"
)

/*
SimulationController drives a code through the encode → noise → syndrome
→ correction → decode cycle as a strict phase state machine. Every phase
transition checkpoints a deep-copied SimulatorState so stepping backward
restores rather than un-computes. The whole thing is single-threaded;
callers serialize access.
*/
type SimulationController struct {
	config SimulatorConfig
	code   Code
	system *QuantumSystem
	noise  *NoiseEngine

	phase       Phase
	noiseEvents []NoiseEvent
	syndrome    Syndrome
	corrected   []int

	snapshots       []*SimulatorState
	stepIndex       int
	intermediateSeq int
}

// CycleReport summarizes one full encode-through-correction run.
type CycleReport struct {
	FinalFidelity     float64
	ErrorDetected     bool
	CorrectionApplied bool
	Syndrome          Syndrome
	History           []Step
}

// NewSimulationController validates the config, builds the system,
// prepares the initial logical state and checkpoints the init phase.
func NewSimulationController(cfg *SimulatorConfig) (*SimulationController, error) {
	if cfg == nil {
		cfg = NewSimulatorConfig()
	}
	code, err := NewCode(cfg.CodeType)
	if err != nil {
		return nil, err
	}
	if !code.SupportsState(cfg.InitialState) {
		return nil, &ConfigurationError{
			Field:  "initialState",
			Detail: cfg.InitialState.String() + " not supported by " + code.Type().String() + " code",
		}
	}
	rng := cfg.Rand
	if rng == nil {
		rng = defaultRandomSource()
	}
	sys := NewQuantumSystem(code.DataQubits(), code.AncillaRoles(), rng)
	if prep := cfg.InitialState.preparation(); len(prep) > 0 {
		if err := sys.ApplyGates(prep, "prepare logical "+cfg.InitialState.String(), StepGate); err != nil {
			return nil, err
		}
	}
	sys.SetGateErrors(cfg.GateErrors)

	c := &SimulationController{
		config: *cfg,
		code:   code,
		system: sys,
		noise:  NewNoiseEngine(rng),
		phase:  PhaseInit,
	}
	c.snapshot(true)
	errnie.Info("SimulationController - %s code, initial state %s", code.Type(), cfg.InitialState)
	return c, nil
}

func (c *SimulationController) Phase() Phase { return c.phase }
func (c *SimulationController) Code() Code { return c.code }
func (c *SimulationController) System() *QuantumSystem { return c.system }
func (c *SimulationController) Syndrome() Syndrome { return c.syndrome.Clone() }
func (c *SimulationController) History() []Step { return c.system.History() }
func (c *SimulationController) StepIndex() int { return c.stepIndex }
func (c *SimulationController) SnapshotCount() int { return len(c.snapshots) }

func (c *SimulationController) CorrectedQubits() []int {
	out := make([]int, len(c.corrected))
	copy(out, c.corrected)
	return out
}

func (c *SimulationController) NoiseEvents() []NoiseEvent {
	out := make([]NoiseEvent, len(c.noiseEvents))
	copy(out, c.noiseEvents)
	return out
}

// SyndromeTable exposes the code's authoritative syndrome table for
// presentation layers. The correction routine runs from the same table.
func (c *SimulationController) SyndromeTable() []SyndromeEntry {
	return c.code.SyndromeTable()
}

// Bloch returns the reduced Bloch coordinates of one physical qubit.
func (c *SimulationController) Bloch(q int) (x, y, z float64, err error) {
	return c.system.State().Bloch(q)
}

// Fidelity compares the current state against the ideal target for the
// given logical state: the encoded codeword while the cycle is inside
// the code, the bare prepared state before encoding and after decode.
func (c *SimulationController) Fidelity(state LogicalState) (float64, error) {
	var (
		target *StateVector
		err    error
	)
	if c.phase < PhaseEncode || c.phase >= PhaseDecode {
		target, err = preparedTarget(c.code, state)
	} else {
		target, err = logicalTarget(c.code, state)
	}
	if err != nil {
		return 0, err
	}
	return c.system.State().Fidelity(target)
}

// reject enforces the uniform out-of-order policy: warn and fail, leave
// the system untouched.
func (c *SimulationController) reject(op string) error {
	err := &SequenceError{Op: op, Phase: c.phase}
	log.Printf("rejected: %v", err)
	return err
}

// StepForward advances exactly one phase; no skipping. Calling it on a
// completed cycle is a sequence error.
func (c *SimulationController) StepForward() error {
	var err error
	switch c.phase {
	case PhaseInit:
		err = c.runEncode()
	case PhaseEncode:
		err = c.runNoise()
	case PhaseNoise:
		err = c.runSyndrome()
	case PhaseSyndrome:
		err = c.runCorrection()
	case PhaseCorrection:
		err = c.runDecode()
	case PhaseDecode:
		c.phase = PhaseComplete
	default:
		return c.reject("stepForward")
	}
	if err != nil {
		return err
	}
	c.snapshot(true)
	return nil
}

func (c *SimulationController) runEncode() error {
	if err := c.code.Encode(c.system); err != nil {
		return err
	}
	c.phase = PhaseEncode
	return nil
}

func (c *SimulationController) runNoise() error {
	events, err := c.noise.ApplyNoise(c.system, c.config.Noise)
	if err != nil {
		return err
	}
	c.noiseEvents = events
	c.phase = PhaseNoise
	return nil
}

func (c *SimulationController) runSyndrome() error {
	syndrome, err := c.code.MeasureSyndrome(c.system)
	if err != nil {
		return err
	}
	c.syndrome = syndrome
	c.phase = PhaseSyndrome
	return nil
}

func (c *SimulationController) runCorrection() error {
	corrected, err := c.code.Correct(c.system, c.syndrome)
	if err != nil {
		return err
	}
	c.corrected = corrected
	c.phase = PhaseCorrection
	return nil
}

func (c *SimulationController) runDecode() error {
	if err := c.code.Decode(c.system); err != nil {
		return err
	}
	c.phase = PhaseDecode
	return nil
}

// RunFullCycle executes init through correction in one call and reports
// the outcome. Only valid on a freshly initialized controller.
func (c *SimulationController) RunFullCycle() (*CycleReport, error) {
	if c.phase != PhaseInit {
		return nil, c.reject("runFullCycle")
	}
	for c.phase != PhaseCorrection {
		if err := c.StepForward(); err != nil {
			return nil, err
		}
	}
	fidelity, err := c.Fidelity(c.config.InitialState)
	if err != nil {
		return nil, err
	}
	return &CycleReport{
		FinalFidelity:     fidelity,
		ErrorDetected:     !c.syndrome.IsZero(),
		CorrectionApplied: len(c.corrected) > 0,
		Syndrome:          c.syndrome.Clone(),
		History:           c.system.History(),
	}, nil
}

// snapshot checkpoints the current state, subject to the retention
// policy. Dropped snapshots are counted, not silently lost.
func (c *SimulationController) snapshot(boundary bool) {
	seq := 0
	if !boundary {
		seq = c.intermediateSeq
		c.intermediateSeq++
	}
	keep := c.config.Retention.keep(c.system.NumQubits(), boundary, seq)
	c.system.Metrics().recordSnapshot(keep)
	if !keep {
		return
	}
	c.snapshots = append(c.snapshots, c.captureState(boundary))
	c.stepIndex = len(c.snapshots) - 1
}

// GoToStep restores a retained snapshot by index. Out-of-range indices
// fail by returning false; interactive stepping must stay resilient.
func (c *SimulationController) GoToStep(i int) bool {
	if i < 0 || i >= len(c.snapshots) {
		log.Printf("goToStep %d out of range [0,%d)", i, len(c.snapshots))
		return false
	}
	snap := c.snapshots[i]
	c.system = snap.System.Clone()
	c.phase = snap.Phase
	c.noiseEvents = make([]NoiseEvent, len(snap.NoiseEvents))
	copy(c.noiseEvents, snap.NoiseEvents)
	c.syndrome = snap.Syndrome.Clone()
	c.corrected = make([]int, len(snap.CorrectedQubits))
	copy(c.corrected, snap.CorrectedQubits)
	c.stepIndex = i
	return true
}

// StepBackward restores the previous retained snapshot.
func (c *SimulationController) StepBackward() bool {
	return c.GoToStep(c.stepIndex - 1)
}

// PlannedGate is one caller-supplied gate, optionally carrying its own
// gate-error configuration for just that gate.
type PlannedGate struct {
	Gate       Gate
	GateErrors *GateErrorConfig
}

// CircuitPlan is an ordered custom gate sequence with optional
// interleaved noise applied after the gates.
type CircuitPlan struct {
	Gates []PlannedGate
	Noise *NoiseConfig
}

// CircuitReport carries the expected/measured/error syndrome
// decomposition of a custom circuit run.
type CircuitReport struct {
	ExpectedSyndrome Syndrome
	MeasuredSyndrome Syndrome
	ErrorSyndrome    Syndrome
	CorrectedQubits  []int
	NoiseEvents      []NoiseEvent
}

/*
ApplyCustomCircuit runs caller gates against the encoded state, then
decouples intent from accident: the syndrome implied by the intentional
gates alone (computed on a clean clone with gate errors disabled) is
XORed against the actually measured syndrome, and only the error-caused
component feeds the correction routine. The same correction procedure
therefore works unmodified no matter how many deliberate gates preceded
it. Only valid right after encoding.
*/
func (c *SimulationController) ApplyCustomCircuit(plan CircuitPlan) (*CircuitReport, error) {
	if c.phase != PhaseEncode {
		return nil, c.reject("applyCustomCircuit")
	}

	// Expected syndrome: intentional gates only, no injected errors.
	clean := c.system.Clone()
	clean.SetGateErrors(GateErrorConfig{})
	for _, pg := range plan.Gates {
		if err := clean.ApplyGate(pg.Gate); err != nil {
			return nil, err
		}
	}
	expected, err := c.code.MeasureSyndrome(clean)
	if err != nil {
		return nil, err
	}

	// The real run, with per-gate error overrides honored.
	for _, pg := range plan.Gates {
		if pg.GateErrors != nil {
			saved := c.system.GateErrors()
			c.system.SetGateErrors(*pg.GateErrors)
			err = c.system.ApplyGate(pg.Gate)
			c.system.SetGateErrors(saved)
		} else {
			err = c.system.ApplyGate(pg.Gate)
		}
		if err != nil {
			return nil, err
		}
		c.snapshot(false)
	}
	if plan.Noise != nil {
		events, err := c.noise.ApplyNoise(c.system, *plan.Noise)
		if err != nil {
			return nil, err
		}
		c.noiseEvents = append(c.noiseEvents, events...)
	}

	measured, err := c.code.MeasureSyndrome(c.system)
	if err != nil {
		return nil, err
	}
	errorSyndrome, err := ReconcileSyndromes(expected, measured)
	if err != nil {
		return nil, err
	}
	corrected, err := c.code.Correct(c.system, errorSyndrome)
	if err != nil {
		return nil, err
	}
	c.syndrome = errorSyndrome
	c.corrected = corrected
	c.phase = PhaseCorrection
	c.snapshot(true)

	return &CircuitReport{
		ExpectedSyndrome: expected,
		MeasuredSyndrome: measured,
		ErrorSyndrome:    errorSyndrome,
		CorrectedQubits:  corrected,
		NoiseEvents:      c.NoiseEvents(),
	}, nil
}

// InjectError manually applies one unconditional Pauli error to a data
// qubit, bypassing the noise configuration. Valid between encoding and
// syndrome measurement.
func (c *SimulationController) InjectError(qubit int, t ErrorType) error {
	if c.phase != PhaseEncode && c.phase != PhaseNoise {
		return c.reject("injectError")
	}
	event, err := c.noise.InjectError(c.system, qubit, t)
	if err != nil {
		return err
	}
	c.noiseEvents = append(c.noiseEvents, event)
	return nil
}
