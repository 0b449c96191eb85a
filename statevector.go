package qsim

import (
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// NormTolerance is the allowed drift of the squared-magnitude sum from 1.
const NormTolerance = 1e-6

// probability floor below which a measurement outcome is treated as
// impossible and its complement as certain, so parity measurements on
// eigenstates never flake on a random draw against 0.9999999.
const probEpsilon = 1e-12

/*
StateVector is an exact amplitude vector over the 2^n computational basis
states of n qubits. Index i encodes a basis state through its bits: bit k
of i is the value of qubit k. All gate application happens in place via
index bit-manipulation; the only non-unitary operations are projective
measurement and ancilla reset, both of which renormalize.
*/
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// NewStateVector returns |00...0⟩ on numQubits qubits.
func NewStateVector(numQubits int) *StateVector {
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Amplitude returns the amplitude of basis state i.
func (s *StateVector) Amplitude(i int) complex128 {
	return s.Amplitudes[i]
}

// SetAmplitude overwrites the amplitude of basis state i. The caller is
// responsible for keeping the vector normalized.
func (s *StateVector) SetAmplitude(i int, a complex128) {
	s.Amplitudes[i] = a
}

// BasisLabel formats basis state i as a bitstring, qubit 0 leftmost.
func (s *StateVector) BasisLabel(i int) string {
	var b strings.Builder
	for q := 0; q < s.NumQubits; q++ {
		if i&(1<<q) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func (s *StateVector) checkQubit(q int) error {
	if q < 0 || q >= s.NumQubits {
		return &DimensionError{Qubit: q, NumQubits: s.NumQubits}
	}
	return nil
}

// Apply dispatches a gate onto the vector.
func (s *StateVector) Apply(g Gate) error {
	if err := s.checkQubit(g.Target); err != nil {
		return err
	}
	if g.Kind.TwoQubit() {
		if err := s.checkQubit(g.Control); err != nil {
			return err
		}
		if g.Control == g.Target {
			return &DimensionError{Qubit: g.Control, NumQubits: s.NumQubits}
		}
	}
	switch g.Kind {
	case GateH:
		s.applyH(g.Target)
	case GateX:
		s.applyX(g.Target)
	case GateY:
		s.applyY(g.Target)
	case GateZ:
		s.applyZ(g.Target)
	case GateCNOT:
		s.applyCNOT(g.Control, g.Target)
	case GateCZ:
		s.applyCZ(g.Control, g.Target)
	}
	return nil
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = hFactor * (a0 + a1)
			s.Amplitudes[j] = hFactor * (a0 - a1)
		}
	}
}

func (s *StateVector) applyX(q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyY(q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = 1i*s.Amplitudes[j], -1i*s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyZ(q int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] = -s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCNOT(control, target int) {
	cbit, tbit := 1<<control, 1<<target
	for i := range s.Amplitudes {
		if i&cbit != 0 && i&tbit == 0 {
			j := i | tbit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCZ(control, target int) {
	cbit, tbit := 1<<control, 1<<target
	for i := range s.Amplitudes {
		if i&cbit != 0 && i&tbit != 0 {
			s.Amplitudes[i] = -s.Amplitudes[i]
		}
	}
}

// Probability returns P(qubit q measures 1).
func (s *StateVector) Probability(q int) (float64, error) {
	if err := s.checkQubit(q); err != nil {
		return 0, err
	}
	bit := 1 << q
	probs := make([]float64, 0, len(s.Amplitudes)/2)
	for i, a := range s.Amplitudes {
		if i&bit != 0 {
			probs = append(probs, real(a)*real(a)+imag(a)*imag(a))
		}
	}
	return floats.Sum(probs), nil
}

// Measure projectively measures qubit q. The outcome is drawn from the
// injected random source, the vector collapses onto the outcome subspace
// and is renormalized. This is the only point where probability branches.
func (s *StateVector) Measure(q int, rng RandomSource) (int, error) {
	p1, err := s.Probability(q)
	if err != nil {
		return 0, err
	}
	outcome := 0
	switch {
	case p1 >= 1-probEpsilon:
		outcome = 1
	case p1 <= probEpsilon:
		outcome = 0
	case rng.Float64() < p1:
		outcome = 1
	}
	s.project(q, outcome)
	return outcome, nil
}

// ForceMeasure collapses qubit q onto a caller-chosen outcome, used for
// manual injection. Forcing an outcome of near-zero probability is an
// error rather than a silent division by ~0.
func (s *StateVector) ForceMeasure(q, outcome int) error {
	p1, err := s.Probability(q)
	if err != nil {
		return err
	}
	p := p1
	if outcome == 0 {
		p = 1 - p1
	}
	if p <= probEpsilon {
		return &ConfigurationError{
			Field:  "outcome",
			Detail: "forced measurement outcome has zero probability",
		}
	}
	s.project(q, outcome)
	return nil
}

func (s *StateVector) project(q, outcome int) {
	bit := 1 << q
	for i := range s.Amplitudes {
		set := i&bit != 0
		if set != (outcome == 1) {
			s.Amplitudes[i] = 0
		}
	}
	s.renormalize()
}

// Reset deterministically forces qubit q to 0 by folding the bit=1 half
// of the vector onto its bit=0 partners. Equivalent to measure-then-
// conditionally-flip; after a measurement of q exactly one partner per
// pair is nonzero, so no amplitude or phase leaks into later reuse.
func (s *StateVector) Reset(q int) error {
	if err := s.checkQubit(q); err != nil {
		return err
	}
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i] += s.Amplitudes[j]
			s.Amplitudes[j] = 0
		}
	}
	s.renormalize()
	return nil
}

func (s *StateVector) renormalize() {
	norm := math.Sqrt(s.normSquared())
	if norm == 0 {
		return
	}
	inv := complex(1/norm, 0)
	for i := range s.Amplitudes {
		s.Amplitudes[i] *= inv
	}
}

func (s *StateVector) normSquared() float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		probs[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return floats.Sum(probs)
}

// CheckNorm verifies the normalization invariant.
func (s *StateVector) CheckNorm(tolerance float64) error {
	norm := s.normSquared()
	if math.Abs(norm-1) > tolerance {
		return &NormalizationError{Norm: norm, Tolerance: tolerance}
	}
	return nil
}

/*
Bloch returns the reduced single-qubit observables ⟨X⟩, ⟨Y⟩, ⟨Z⟩ of qubit
q as amplitude-weighted sums over basis pairs differing only in bit q.
This is a partial trace in disguise: it stays correct when q is entangled
with the rest of the register, in which case the returned vector has
length below 1.
*/
func (s *StateVector) Bloch(q int) (x, y, z float64, err error) {
	if err = s.checkQubit(q); err != nil {
		return 0, 0, 0, err
	}
	bit := 1 << q
	for i, a := range s.Amplitudes {
		p := real(a)*real(a) + imag(a)*imag(a)
		if i&bit == 0 {
			z += p
			c := cmplx.Conj(a) * s.Amplitudes[i|bit]
			x += 2 * real(c)
			y += 2 * imag(c)
		} else {
			z -= p
		}
	}
	return x, y, z, nil
}

// Fidelity returns |⟨target|state⟩|², 1 for identical states and 0 for
// orthogonal ones.
func (s *StateVector) Fidelity(target *StateVector) (float64, error) {
	if target == nil || len(target.Amplitudes) != len(s.Amplitudes) {
		return 0, &ConfigurationError{
			Field:  "target",
			Detail: "fidelity target has a different dimension",
		}
	}
	var inner complex128
	for i, a := range s.Amplitudes {
		inner += cmplx.Conj(target.Amplitudes[i]) * a
	}
	return real(inner)*real(inner) + imag(inner)*imag(inner), nil
}
