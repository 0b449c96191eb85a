package qsim

// Phase is the simulation cycle position. Transitions run strictly
// forward: init → encode → noise → syndrome → correction → decode →
// complete.
type Phase uint8

const (
	PhaseInit Phase = iota
	PhaseEncode
	PhaseNoise
	PhaseSyndrome
	PhaseCorrection
	PhaseDecode
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseEncode:
		return "encode"
	case PhaseNoise:
		return "noise"
	case PhaseSyndrome:
		return "syndrome"
	case PhaseCorrection:
		return "correction"
	case PhaseDecode:
		return "decode"
	case PhaseComplete:
		return "complete"
	}
	return "?"
}

// LogicalState selects the logical qubit value prepared before encoding.
// Plus and Minus are meaningful only for the repetition code.
type LogicalState uint8

const (
	StateZero LogicalState = iota
	StateOne
	StatePlus
	StateMinus
)

func (s LogicalState) String() string {
	switch s {
	case StateZero:
		return "zero"
	case StateOne:
		return "one"
	case StatePlus:
		return "plus"
	case StateMinus:
		return "minus"
	}
	return "?"
}

// preparation returns the gates that put qubit 0 into the logical state.
func (s LogicalState) preparation() []Gate {
	switch s {
	case StateOne:
		return []Gate{X(0)}
	case StatePlus:
		return []Gate{H(0)}
	case StateMinus:
		return []Gate{X(0), H(0)}
	}
	return nil
}
