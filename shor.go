package qsim

import "fmt"

/*
ShorCode is the 9-qubit code: three blocks of three data qubits with
leaders q0, q3, q6, protecting against any single-qubit Pauli error.
Encoding spreads the logical amplitude across the block leaders, puts
each leader into the phase-protecting superposition with a Hadamard, then
spreads bit-flip protection within each block; logical zero ends up as an
equal superposition of the 8 per-block 000/111 choices.

The syndrome has 8 bits: six ancilla-measured ZZ pair parities (two per
block, repetition-style) and two ancilla-measured X-block-parity
comparisons between adjacent block pairs. All of it runs through the one
virtualized physical ancilla, so the system stays at 10 qubits. A Y error
on a qubit raises both its block's bit-flip bits and the phase bits at
once.
*/
type ShorCode struct{}

const shorBlocks = 3

func (c *ShorCode) Type() CodeType { return CodeShor }
func (c *ShorCode) DataQubits() int { return 9 }
func (c *ShorCode) AncillaRoles() int { return 8 }

// Plus and minus logical states are only meaningful for the repetition
// code; the Shor module supports zero and one.
func (c *ShorCode) SupportsState(s LogicalState) bool {
	return s == StateZero || s == StateOne
}

func (c *ShorCode) encodeGates() []Gate {
	gates := []Gate{CNOT(0, 3), CNOT(0, 6), H(0), H(3), H(6)}
	for b := 0; b < shorBlocks; b++ {
		leader := 3 * b
		gates = append(gates, CNOT(leader, leader+1), CNOT(leader, leader+2))
	}
	return gates
}

func (c *ShorCode) Encode(sys *QuantumSystem) error {
	return sys.ApplyGates(c.encodeGates(), "encode q0 across 3 blocks of 3", StepEncode)
}

func (c *ShorCode) Decode(sys *QuantumSystem) error {
	gates := c.encodeGates()
	reversed := make([]Gate, len(gates))
	for i, g := range gates {
		reversed[len(gates)-1-i] = g
	}
	return sys.ApplyGates(reversed, "decode q0 from 3 blocks of 3", StepDecode)
}

/*
MeasureSyndrome extracts all 8 bits through the virtualized ancilla:
bits 0..5 are the per-block adjacent ZZ parities, bits 6..7 compare
X-block parities between blocks 0/1 and 1/2 via genuine ancilla-mediated
stabilizer projection.
*/
func (c *ShorCode) MeasureSyndrome(sys *QuantumSystem) (Syndrome, error) {
	syndrome := make(Syndrome, 0, 8)
	for b := 0; b < shorBlocks; b++ {
		leader := 3 * b
		s1, err := sys.MeasureParity(2*b, leader, leader+1)
		if err != nil {
			return nil, err
		}
		s2, err := sys.MeasureParity(2*b+1, leader+1, leader+2)
		if err != nil {
			return nil, err
		}
		syndrome = append(syndrome, s1, s2)
	}
	p1, err := sys.MeasureXParity(6, 0, 1, 2, 3, 4, 5)
	if err != nil {
		return nil, err
	}
	p2, err := sys.MeasureXParity(7, 3, 4, 5, 6, 7, 8)
	if err != nil {
		return nil, err
	}
	return append(syndrome, p1, p2), nil
}

// Correct applies per-block bit-flip corrections first, then the phase
// correction on the implicated block leader. Returns the corrected
// qubits in application order.
func (c *ShorCode) Correct(sys *QuantumSystem, s Syndrome) ([]int, error) {
	if len(s) != 8 {
		return nil, &ConfigurationError{
			Field:  "syndrome",
			Detail: fmt.Sprintf("shor code expects 8 syndrome bits, got %d", len(s)),
		}
	}
	var corrected []int
	for b := 0; b < shorBlocks; b++ {
		entry := lookupPairParity(s[2*b], s[2*b+1])
		if entry.Offset < 0 {
			continue
		}
		q := 3*b + entry.Offset
		if err := sys.ApplyCorrection(X(q)); err != nil {
			return corrected, err
		}
		corrected = append(corrected, q)
	}
	// For the phase syndrome the "group" is the three blocks and the
	// offset picks a block; Z on the leader fixes a phase flip anywhere
	// in that block.
	entry := lookupPairParity(s[6], s[7])
	if entry.Offset >= 0 {
		leader := 3 * entry.Offset
		if err := sys.ApplyCorrection(Z(leader)); err != nil {
			return corrected, err
		}
		corrected = append(corrected, leader)
	}
	return corrected, nil
}

func (c *ShorCode) SyndromeTable() []SyndromeEntry {
	var entries []SyndromeEntry
	for b := 0; b < shorBlocks; b++ {
		for _, e := range pairParityTable {
			entry := SyndromeEntry{
				Bits:    Syndrome{e.S1, e.S2},
				Meaning: fmt.Sprintf("block %d: %s", b, e.Meaning),
			}
			if e.Offset >= 0 {
				q := 3*b + e.Offset
				entry.Meaning = fmt.Sprintf("block %d: bit flip on q%d", b, q)
				entry.Corrections = []Gate{X(q)}
			}
			entries = append(entries, entry)
		}
	}
	for _, e := range pairParityTable {
		entry := SyndromeEntry{
			Bits:    Syndrome{e.S1, e.S2},
			Meaning: "phase: " + e.Meaning,
		}
		if e.Offset >= 0 {
			leader := 3 * e.Offset
			entry.Meaning = fmt.Sprintf("phase flip in block %d", e.Offset)
			entry.Corrections = []Gate{Z(leader)}
		}
		entries = append(entries, entry)
	}
	return entries
}
