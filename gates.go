package qsim

import "fmt"

// GateKind enumerates every gate the engine can apply. Keeping this a
// closed set means each dispatch site can switch exhaustively instead of
// matching on strings.
type GateKind uint8

const (
	GateH GateKind = iota
	GateX
	GateY
	GateZ
	GateCNOT
	GateCZ
)

func (k GateKind) String() string {
	switch k {
	case GateH:
		return "H"
	case GateX:
		return "X"
	case GateY:
		return "Y"
	case GateZ:
		return "Z"
	case GateCNOT:
		return "CNOT"
	case GateCZ:
		return "CZ"
	}
	return "?"
}

// TwoQubit reports whether the gate kind involves a control qubit.
func (k GateKind) TwoQubit() bool {
	return k == GateCNOT || k == GateCZ
}

// Gate is one placed gate: a kind, a target qubit, and for two-qubit
// kinds a control qubit (Control is -1 otherwise).
type Gate struct {
	Kind    GateKind
	Target  int
	Control int
}

func H(target int) Gate { return Gate{Kind: GateH, Target: target, Control: -1} }
func X(target int) Gate { return Gate{Kind: GateX, Target: target, Control: -1} }
func Y(target int) Gate { return Gate{Kind: GateY, Target: target, Control: -1} }
func Z(target int) Gate { return Gate{Kind: GateZ, Target: target, Control: -1} }

func CNOT(control, target int) Gate {
	return Gate{Kind: GateCNOT, Target: target, Control: control}
}

func CZ(control, target int) Gate {
	return Gate{Kind: GateCZ, Target: target, Control: control}
}

// Qubits returns the qubit indices the gate touches, control first.
func (g Gate) Qubits() []int {
	if g.Kind.TwoQubit() {
		return []int{g.Control, g.Target}
	}
	return []int{g.Target}
}

func (g Gate) String() string {
	if g.Kind.TwoQubit() {
		return fmt.Sprintf("%s(q%d,q%d)", g.Kind, g.Control, g.Target)
	}
	return fmt.Sprintf("%s(q%d)", g.Kind, g.Target)
}
