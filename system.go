package qsim

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

// GateErrorScope restricts gate-error injection to a class of gates.
type GateErrorScope uint8

const (
	ApplyToAll GateErrorScope = iota
	ApplyToSingleQubit
	ApplyToTwoQubit
)

func (s GateErrorScope) String() string {
	switch s {
	case ApplyToSingleQubit:
		return "single-qubit"
	case ApplyToTwoQubit:
		return "two-qubit"
	}
	return "all"
}

func (s GateErrorScope) matches(k GateKind) bool {
	switch s {
	case ApplyToSingleQubit:
		return !k.TwoQubit()
	case ApplyToTwoQubit:
		return k.TwoQubit()
	}
	return true
}

// GateErrorConfig makes intentional gates faulty: after each matching
// gate one draw against Probability decides whether an extra Pauli error
// lands on the gate's own qubit(s).
type GateErrorConfig struct {
	Enabled     bool
	Type        ErrorType
	Probability float64
	ApplyTo     GateErrorScope
}

/*
QuantumSystem owns one StateVector plus everything needed to drive it
through a code cycle: the physical qubit count, the virtual-ancilla map,
the gate-error configuration, an injectable random source, and an
append-only operation history. It is mutated in place by every operation
and deep-copied whenever a snapshot is taken.

Ancilla virtualization is what keeps the state dimension bounded: codes
that logically need many single-use syndrome ancillas (eight for the Shor
code) share one reusable physical ancilla qubit through a virtual-index
table. Each logical use runs CNOT-into-ancilla, measure, then a
deterministic reset to |0⟩, so sequential reuse never leaks residual
amplitude or phase into the next logical role. The Shor system therefore
stays at 10 physical qubits (dimension 2^10) instead of 17 (2^17).
*/
type QuantumSystem struct {
	ID uuid.UUID

	state      *StateVector
	dataQubits int
	ancillaMap map[int]int
	gateErrors GateErrorConfig
	history    []Step
	rng        RandomSource
	metrics    *Metrics
	tolerance  float64
}

// NewQuantumSystem builds a system of dataQubits data qubits plus, when
// ancillaRoles > 0, a single shared physical ancilla serving that many
// virtual ancilla roles.
func NewQuantumSystem(dataQubits, ancillaRoles int, rng RandomSource) *QuantumSystem {
	if rng == nil {
		rng = defaultRandomSource()
	}
	physical := dataQubits
	ancillaMap := make(map[int]int, ancillaRoles)
	if ancillaRoles > 0 {
		physical++
		for role := 0; role < ancillaRoles; role++ {
			ancillaMap[role] = dataQubits
		}
	}
	sys := &QuantumSystem{
		ID:         uuid.New(),
		state:      NewStateVector(physical),
		dataQubits: dataQubits,
		ancillaMap: ancillaMap,
		rng:        rng,
		metrics:    NewMetrics(),
		tolerance:  NormTolerance,
	}
	errnie.Info("QuantumSystem %s - %d data qubits, %d ancilla roles, dim %d",
		sys.ID, dataQubits, ancillaRoles, len(sys.state.Amplitudes))
	return sys
}

func (qs *QuantumSystem) State() *StateVector { return qs.state }
func (qs *QuantumSystem) NumQubits() int { return qs.state.NumQubits }
func (qs *QuantumSystem) DataQubits() int { return qs.dataQubits }
func (qs *QuantumSystem) Metrics() *Metrics { return qs.metrics }

// History returns the operation log. Callers must treat it as read-only.
func (qs *QuantumSystem) History() []Step { return qs.history }

// AncillaQubit resolves a virtual ancilla role to its physical index.
func (qs *QuantumSystem) AncillaQubit(role int) (int, error) {
	q, ok := qs.ancillaMap[role]
	if !ok {
		return 0, &ConfigurationError{
			Field:  "ancillaRole",
			Detail: fmt.Sprintf("no virtual ancilla role %d", role),
		}
	}
	return q, nil
}

func (qs *QuantumSystem) SetGateErrors(cfg GateErrorConfig) {
	qs.gateErrors = cfg
}

func (qs *QuantumSystem) GateErrors() GateErrorConfig {
	return qs.gateErrors
}

// SetRandomSource swaps the random source, primarily so cloned systems
// used for expected-syndrome computation can run off their own stream.
func (qs *QuantumSystem) SetRandomSource(rng RandomSource) {
	qs.rng = rng
}

// ApplyGate applies one intentional gate, verifies normalization, logs
// it, then rolls for an injected gate error.
func (qs *QuantumSystem) ApplyGate(g Gate) error {
	return qs.applyLogged(g, g.String(), StepGate)
}

// ApplyGates applies a batch of gates under a single logged description.
// Each gate rolls its own gate error immediately after it lands, so an
// injected Pauli propagates through the remainder of the batch.
func (qs *QuantumSystem) ApplyGates(gates []Gate, description string, kind StepKind) error {
	qs.history = append(qs.history, Step{Kind: kind, Description: description})
	for _, g := range gates {
		if err := qs.apply(g); err != nil {
			return err
		}
		if err := qs.maybeGateError(g); err != nil {
			return err
		}
	}
	return nil
}

func (qs *QuantumSystem) applyLogged(g Gate, description string, kind StepKind) error {
	if err := qs.apply(g); err != nil {
		return err
	}
	qs.history = append(qs.history, Step{Kind: kind, Description: description})
	return qs.maybeGateError(g)
}

// apply runs the unitary and the defensive norm check, without logging
// and without gate-error rolls.
func (qs *QuantumSystem) apply(g Gate) error {
	if err := qs.state.Apply(g); err != nil {
		return err
	}
	qs.metrics.recordGate()
	return qs.state.CheckNorm(qs.tolerance)
}

// applyError applies an unintentional Pauli (noise or correction paths
// call this); it never triggers a gate-error roll of its own.
func (qs *QuantumSystem) applyError(g Gate, t ErrorType, kind StepKind) error {
	if err := qs.apply(g); err != nil {
		return err
	}
	qs.history = append(qs.history, Step{
		Kind:        kind,
		Description: fmt.Sprintf("%s error on q%d", t, g.Target),
		Qubit:       g.Target,
		ErrorType:   t,
	})
	if kind == StepNoise {
		qs.metrics.recordNoise()
	}
	return nil
}

// maybeGateError rolls once per intentional gate; on success the
// configured Pauli lands on every qubit the gate touched, each logged as
// its own gate-error step.
func (qs *QuantumSystem) maybeGateError(g Gate) error {
	cfg := qs.gateErrors
	if !cfg.Enabled || cfg.Type == ErrorNone || !cfg.ApplyTo.matches(g.Kind) {
		return nil
	}
	if qs.rng.Float64() >= cfg.Probability {
		return nil
	}
	for _, q := range g.Qubits() {
		resolved := cfg.Type.resolve(qs.rng)
		pauli, ok := resolved.pauli(q)
		if !ok {
			continue
		}
		if err := qs.apply(pauli); err != nil {
			return err
		}
		qs.metrics.recordGateError()
		qs.history = append(qs.history, Step{
			Kind:        StepGateError,
			Description: fmt.Sprintf("gate error after %s: %s on q%d", g, resolved, q),
			GateName:    g.Kind.String(),
			Qubit:       q,
			ErrorType:   resolved,
		})
	}
	return nil
}

// ApplyCorrection applies a recovery gate. Corrections are exempt from
// gate-error rolls.
func (qs *QuantumSystem) ApplyCorrection(g Gate) error {
	if err := qs.apply(g); err != nil {
		return err
	}
	qs.metrics.recordCorrection()
	qs.history = append(qs.history, Step{
		Kind:        StepCorrection,
		Description: fmt.Sprintf("correction %s", g),
		Qubit:       g.Target,
	})
	return nil
}

// MeasureQubit projectively measures qubit q and logs the outcome.
func (qs *QuantumSystem) MeasureQubit(q int) (int, error) {
	outcome, err := qs.state.Measure(q, qs.rng)
	if err != nil {
		return 0, err
	}
	qs.metrics.recordMeasurement()
	qs.history = append(qs.history, Step{
		Kind:        StepMeasurement,
		Description: fmt.Sprintf("measure q%d -> %d", q, outcome),
		Qubit:       q,
		Outcome:     outcome,
	})
	return outcome, nil
}

// ForceMeasureQubit collapses q onto a chosen outcome (manual injection).
func (qs *QuantumSystem) ForceMeasureQubit(q, outcome int) error {
	if err := qs.state.ForceMeasure(q, outcome); err != nil {
		return err
	}
	qs.metrics.recordMeasurement()
	qs.history = append(qs.history, Step{
		Kind:        StepMeasurement,
		Description: fmt.Sprintf("forced measure q%d -> %d", q, outcome),
		Qubit:       q,
		Outcome:     outcome,
	})
	return nil
}

// ResetQubit deterministically returns q to |0⟩ and logs it.
func (qs *QuantumSystem) ResetQubit(q int) error {
	if err := qs.state.Reset(q); err != nil {
		return err
	}
	qs.history = append(qs.history, Step{
		Kind:        StepMeasurement,
		Description: fmt.Sprintf("reset q%d", q),
		Qubit:       q,
	})
	return nil
}

// MeasureParity measures the Z-parity of the given data qubits through
// the virtual ancilla role: CNOT each qubit into the ancilla, measure,
// then reset the ancilla for the next logical use.
func (qs *QuantumSystem) MeasureParity(role int, qubits ...int) (int, error) {
	anc, err := qs.AncillaQubit(role)
	if err != nil {
		return 0, err
	}
	for _, q := range qubits {
		if err := qs.apply(CNOT(q, anc)); err != nil {
			return 0, err
		}
	}
	outcome, err := qs.state.Measure(anc, qs.rng)
	if err != nil {
		return 0, err
	}
	qs.metrics.recordMeasurement()
	qs.history = append(qs.history, Step{
		Kind:        StepMeasurement,
		Description: fmt.Sprintf("Z-parity %v via ancilla role %d -> %d", qubits, role, outcome),
		Qubit:       anc,
		Outcome:     outcome,
	})
	if err := qs.state.Reset(anc); err != nil {
		return 0, err
	}
	qs.metrics.recordAncillaReuse()
	return outcome, nil
}

// MeasureXParity measures the X-block parity of the given qubits through
// the virtual ancilla role: H on the ancilla, CNOT from ancilla onto
// each qubit, H again, measure, reset. A genuine stabilizer projection,
// not an expectation-value readout.
func (qs *QuantumSystem) MeasureXParity(role int, qubits ...int) (int, error) {
	anc, err := qs.AncillaQubit(role)
	if err != nil {
		return 0, err
	}
	if err := qs.apply(H(anc)); err != nil {
		return 0, err
	}
	for _, q := range qubits {
		if err := qs.apply(CNOT(anc, q)); err != nil {
			return 0, err
		}
	}
	if err := qs.apply(H(anc)); err != nil {
		return 0, err
	}
	outcome, err := qs.state.Measure(anc, qs.rng)
	if err != nil {
		return 0, err
	}
	qs.metrics.recordMeasurement()
	qs.history = append(qs.history, Step{
		Kind:        StepMeasurement,
		Description: fmt.Sprintf("X-parity %v via ancilla role %d -> %d", qubits, role, outcome),
		Qubit:       anc,
		Outcome:     outcome,
	})
	if err := qs.state.Reset(anc); err != nil {
		return 0, err
	}
	qs.metrics.recordAncillaReuse()
	return outcome, nil
}

// Clone deep-copies the state vector, history, ancilla map and metric
// counters. Only the random source is shared: snapshots replay history,
// not randomness.
func (qs *QuantumSystem) Clone() *QuantumSystem {
	history := make([]Step, len(qs.history))
	copy(history, qs.history)
	ancillaMap := make(map[int]int, len(qs.ancillaMap))
	for k, v := range qs.ancillaMap {
		ancillaMap[k] = v
	}
	return &QuantumSystem{
		ID:         qs.ID,
		state:      qs.state.Clone(),
		dataQubits: qs.dataQubits,
		ancillaMap: ancillaMap,
		gateErrors: qs.gateErrors,
		history:    history,
		rng:        qs.rng,
		metrics:    qs.metrics.clone(),
		tolerance:  qs.tolerance,
	}
}
