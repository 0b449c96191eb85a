package qsim

// StepKind classifies entries in a system's operation history.
type StepKind uint8

const (
	StepGate StepKind = iota
	StepGateError
	StepMeasurement
	StepNoise
	StepCorrection
	StepEncode
	StepDecode
)

func (k StepKind) String() string {
	switch k {
	case StepGate:
		return "gate"
	case StepGateError:
		return "gate-error"
	case StepMeasurement:
		return "measurement"
	case StepNoise:
		return "noise"
	case StepCorrection:
		return "correction"
	case StepEncode:
		return "encode"
	case StepDecode:
		return "decode"
	}
	return "?"
}

// Step is one record in the append-only operation history. Gate-error
// steps additionally carry the triggering gate's name, the affected
// qubit and the injected error type; measurement steps carry the qubit
// and its outcome.
type Step struct {
	Kind        StepKind
	Description string

	GateName  string
	Qubit     int
	ErrorType ErrorType
	Outcome   int
}
