package qsim

import "fmt"

/*
RepetitionCode is the 3-qubit bit-flip code. Encoding spreads the logical
qubit from q0 onto q1 and q2 (|0⟩_L→|000⟩, |1⟩_L→|111⟩), syndrome
extraction measures the Z₀Z₁ and Z₁Z₂ parities through the shared
ancilla, and correction follows the pair-parity table.

Its failure modes are part of the contract, not bugs: a second
simultaneous bit flip makes the syndrome implicate the wrong qubit so
correction adds a third error, three bit flips look like a valid codeword
(syndrome 00), and phase flips are structurally invisible, the syndrome
stays 00 no matter how many Z errors land.
*/
type RepetitionCode struct{}

func (c *RepetitionCode) Type() CodeType { return CodeRepetition }
func (c *RepetitionCode) DataQubits() int { return 3 }
func (c *RepetitionCode) AncillaRoles() int { return 2 }
func (c *RepetitionCode) SupportsState(s LogicalState) bool { return s <= StateMinus }

func (c *RepetitionCode) encodeGates() []Gate {
	return []Gate{CNOT(0, 1), CNOT(0, 2)}
}

func (c *RepetitionCode) Encode(sys *QuantumSystem) error {
	return sys.ApplyGates(c.encodeGates(), "encode q0 across q0,q1,q2", StepEncode)
}

func (c *RepetitionCode) Decode(sys *QuantumSystem) error {
	gates := c.encodeGates()
	reversed := make([]Gate, len(gates))
	for i, g := range gates {
		reversed[len(gates)-1-i] = g
	}
	return sys.ApplyGates(reversed, "decode q0 from q0,q1,q2", StepDecode)
}

// MeasureSyndrome extracts the 2-bit syndrome (Z₀Z₁, Z₁Z₂) through the
// virtualized ancilla.
func (c *RepetitionCode) MeasureSyndrome(sys *QuantumSystem) (Syndrome, error) {
	s1, err := sys.MeasureParity(0, 0, 1)
	if err != nil {
		return nil, err
	}
	s2, err := sys.MeasureParity(1, 1, 2)
	if err != nil {
		return nil, err
	}
	return Syndrome{s1, s2}, nil
}

func (c *RepetitionCode) Correct(sys *QuantumSystem, s Syndrome) ([]int, error) {
	if len(s) != 2 {
		return nil, &ConfigurationError{
			Field:  "syndrome",
			Detail: fmt.Sprintf("repetition code expects 2 syndrome bits, got %d", len(s)),
		}
	}
	entry := lookupPairParity(s[0], s[1])
	if entry.Offset < 0 {
		return nil, nil
	}
	if err := sys.ApplyCorrection(X(entry.Offset)); err != nil {
		return nil, err
	}
	return []int{entry.Offset}, nil
}

func (c *RepetitionCode) SyndromeTable() []SyndromeEntry {
	entries := make([]SyndromeEntry, 0, len(pairParityTable))
	for _, e := range pairParityTable {
		entry := SyndromeEntry{
			Bits:    Syndrome{e.S1, e.S2},
			Meaning: e.Meaning,
		}
		if e.Offset >= 0 {
			entry.Meaning = fmt.Sprintf("bit flip on q%d", e.Offset)
			entry.Corrections = []Gate{X(e.Offset)}
		}
		entries = append(entries, entry)
	}
	return entries
}
