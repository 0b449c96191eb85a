package qsim

import "fmt"

// CodeType names a supported error-correcting code.
type CodeType uint8

const (
	CodeRepetition CodeType = iota
	CodeShor
)

func (t CodeType) String() string {
	switch t {
	case CodeRepetition:
		return "repetition"
	case CodeShor:
		return "shor"
	}
	return "?"
}

// Code is the contract every code module implements on top of
// QuantumSystem primitives. Encode and Decode are exact inverses;
// MeasureSyndrome is honest (ancilla-mediated projective measurement,
// never amplitude inspection); Correct consumes a syndrome and returns
// the qubits it corrected.
type Code interface {
	Type() CodeType
	DataQubits() int
	AncillaRoles() int
	SupportsState(s LogicalState) bool
	Encode(sys *QuantumSystem) error
	Decode(sys *QuantumSystem) error
	MeasureSyndrome(sys *QuantumSystem) (Syndrome, error)
	Correct(sys *QuantumSystem, s Syndrome) ([]int, error)
	SyndromeTable() []SyndromeEntry
}

// NewCode constructs the code module for a code type.
func NewCode(t CodeType) (Code, error) {
	switch t {
	case CodeRepetition:
		return &RepetitionCode{}, nil
	case CodeShor:
		return &ShorCode{}, nil
	}
	return nil, &ConfigurationError{
		Field:  "codeType",
		Detail: fmt.Sprintf("unknown code type %d", t),
	}
}

// SyndromeEntry is one row of a code's authoritative syndrome table:
// the bits, what they mean, and the correction gates they trigger.
// Presentation layers render these rows; the correction routines execute
// from the same underlying table, so the two can never diverge.
type SyndromeEntry struct {
	Bits        Syndrome
	Meaning     string
	Corrections []Gate
}

/*
pairParityEntry is one row of the shared adjacent-pair parity table for a
3-qubit group: syndrome bits (s1 = parity of the first pair, s2 = parity
of the second), the offset of the implicated qubit within the group (-1
for none), and a human meaning. This single table drives the repetition
code's correction, each Shor block's bit-flip correction, and the Shor
phase correction (where the "group" is the three blocks and the offset
picks a block leader).
*/
type pairParityEntry struct {
	S1, S2  int
	Offset  int
	Meaning string
}

var pairParityTable = []pairParityEntry{
	{S1: 0, S2: 0, Offset: -1, Meaning: "no error"},
	{S1: 1, S2: 0, Offset: 0, Meaning: "error on first qubit"},
	{S1: 1, S2: 1, Offset: 1, Meaning: "error on middle qubit"},
	{S1: 0, S2: 1, Offset: 2, Meaning: "error on last qubit"},
}

func lookupPairParity(s1, s2 int) pairParityEntry {
	for _, e := range pairParityTable {
		if e.S1 == s1 && e.S2 == s2 {
			return e
		}
	}
	// Bits are 0/1 so the table is total; unreachable.
	return pairParityTable[0]
}

// logicalTarget builds the ideal encoded state for a code and logical
// state on a pristine system, for use as a fidelity reference.
func logicalTarget(code Code, state LogicalState) (*StateVector, error) {
	sys, err := preparedSystem(code, state)
	if err != nil {
		return nil, err
	}
	if err := code.Encode(sys); err != nil {
		return nil, err
	}
	return sys.State(), nil
}

// preparedTarget is the pre-encoding reference: the logical state on
// qubit 0 with everything else in |0⟩. Decoded states compare against
// this one.
func preparedTarget(code Code, state LogicalState) (*StateVector, error) {
	sys, err := preparedSystem(code, state)
	if err != nil {
		return nil, err
	}
	return sys.State(), nil
}

func preparedSystem(code Code, state LogicalState) (*QuantumSystem, error) {
	if !code.SupportsState(state) {
		return nil, &ConfigurationError{
			Field:  "initialState",
			Detail: fmt.Sprintf("%s not supported by %s code", state, code.Type()),
		}
	}
	sys := NewQuantumSystem(code.DataQubits(), code.AncillaRoles(), nil)
	if prep := state.preparation(); len(prep) > 0 {
		if err := sys.ApplyGates(prep, "prepare "+state.String(), StepGate); err != nil {
			return nil, err
		}
	}
	return sys, nil
}
