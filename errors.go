package qsim

import "fmt"

// ConfigurationError reports a SimulatorConfig the engine cannot honor,
// such as an unknown code type or an initial state the chosen code does
// not support.
type ConfigurationError struct {
	Field  string
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Detail)
}

// DimensionError reports a qubit index outside [0, numQubits).
type DimensionError struct {
	Qubit     int
	NumQubits int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("qubit %d out of range [0,%d)", e.Qubit, e.NumQubits)
}

// NormalizationError means the squared-magnitude sum drifted beyond
// tolerance after an operation. The state vector only ever changes
// through unitaries and renormalized projections, so this indicates an
// engine bug, not a caller mistake.
type NormalizationError struct {
	Norm      float64
	Tolerance float64
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("state norm %.9f deviates from 1 beyond tolerance %g", e.Norm, e.Tolerance)
}

// SequenceError reports a phase-specific operation invoked out of order.
// The rejection policy is uniform: the call fails, the system is left
// untouched, and a warning is logged.
type SequenceError struct {
	Op    string
	Phase Phase
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("%s not valid in phase %s", e.Op, e.Phase)
}
