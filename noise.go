package qsim

import (
	"fmt"

	"github.com/theapemachine/errnie"
)

// ErrorType enumerates the single-qubit Pauli error channels.
type ErrorType uint8

const (
	ErrorNone ErrorType = iota
	ErrorBitFlip
	ErrorPhaseFlip
	ErrorBitPhaseFlip
	ErrorDepolarizing
)

func (t ErrorType) String() string {
	switch t {
	case ErrorNone:
		return "none"
	case ErrorBitFlip:
		return "bit-flip"
	case ErrorPhaseFlip:
		return "phase-flip"
	case ErrorBitPhaseFlip:
		return "bit-phase-flip"
	case ErrorDepolarizing:
		return "depolarizing"
	}
	return "?"
}

// resolve turns the channel into a concrete Pauli. Depolarizing picks
// uniformly among X, Y and Z with a single draw.
func (t ErrorType) resolve(rng RandomSource) ErrorType {
	if t != ErrorDepolarizing {
		return t
	}
	switch rng.Intn(3) {
	case 0:
		return ErrorBitFlip
	case 1:
		return ErrorBitPhaseFlip
	}
	return ErrorPhaseFlip
}

// pauli returns the gate realizing a resolved error type on qubit q.
func (t ErrorType) pauli(q int) (Gate, bool) {
	switch t {
	case ErrorBitFlip:
		return X(q), true
	case ErrorPhaseFlip:
		return Z(q), true
	case ErrorBitPhaseFlip:
		return Y(q), true
	}
	return Gate{}, false
}

// NoiseMode selects how ApplyNoise decides which qubits get hit.
type NoiseMode uint8

const (
	// ModeProbability draws independently per candidate qubit.
	ModeProbability NoiseMode = iota
	// ModeExactCount hits exactly ExactCount distinct candidates,
	// chosen uniformly, regardless of probability.
	ModeExactCount
)

func (m NoiseMode) String() string {
	if m == ModeExactCount {
		return "exact-count"
	}
	return "probability"
}

// NoiseConfig describes one noise application.
type NoiseConfig struct {
	Type        ErrorType
	Mode        NoiseMode
	Probability float64
	ExactCount  int
	// TargetQubits restricts the candidate set; empty means all data
	// qubits. Probability still gates each target under ModeProbability.
	TargetQubits []int
}

// NoiseEvent records one candidate qubit of a noise application.
// Applied=false means the qubit was eligible but the draw spared it.
type NoiseEvent struct {
	Qubit   int
	Type    ErrorType
	Applied bool
}

/*
NoiseEngine injects Pauli errors into a QuantumSystem, either
stochastically or with an exact count, and reports every candidate as a
NoiseEvent for the audit trail.
*/
type NoiseEngine struct {
	rng RandomSource
}

func NewNoiseEngine(rng RandomSource) *NoiseEngine {
	if rng == nil {
		rng = defaultRandomSource()
	}
	return &NoiseEngine{rng: rng}
}

// ApplyNoise hits the system's data qubits per the config and returns
// the full candidate list, including non-applied events.
func (ne *NoiseEngine) ApplyNoise(sys *QuantumSystem, cfg NoiseConfig) ([]NoiseEvent, error) {
	if cfg.Type == ErrorNone {
		return nil, nil
	}

	candidates := cfg.TargetQubits
	if len(candidates) == 0 {
		candidates = make([]int, sys.DataQubits())
		for i := range candidates {
			candidates[i] = i
		}
	}
	for _, q := range candidates {
		if q < 0 || q >= sys.DataQubits() {
			return nil, &DimensionError{Qubit: q, NumQubits: sys.DataQubits()}
		}
	}

	chosen := make(map[int]bool, len(candidates))
	switch cfg.Mode {
	case ModeExactCount:
		k := cfg.ExactCount
		if k > len(candidates) {
			return nil, &ConfigurationError{
				Field:  "exactCount",
				Detail: fmt.Sprintf("%d exceeds %d candidate qubits", k, len(candidates)),
			}
		}
		// Partial Fisher-Yates over a scratch copy.
		pool := append([]int(nil), candidates...)
		for i := 0; i < k; i++ {
			j := i + ne.rng.Intn(len(pool)-i)
			pool[i], pool[j] = pool[j], pool[i]
			chosen[pool[i]] = true
		}
	case ModeProbability:
		for _, q := range candidates {
			if ne.rng.Float64() < cfg.Probability {
				chosen[q] = true
			}
		}
	}

	events := make([]NoiseEvent, 0, len(candidates))
	for _, q := range candidates {
		if !chosen[q] {
			events = append(events, NoiseEvent{Qubit: q, Type: cfg.Type, Applied: false})
			continue
		}
		resolved := cfg.Type.resolve(ne.rng)
		if err := ne.applyPauli(sys, q, resolved); err != nil {
			return events, err
		}
		events = append(events, NoiseEvent{Qubit: q, Type: resolved, Applied: true})
	}
	return events, nil
}

// InjectError applies one unconditional Pauli error to a data qubit,
// bypassing all probability machinery. The returned event carries the
// resolved Pauli, so depolarizing injections audit as the concrete
// error that actually landed.
func (ne *NoiseEngine) InjectError(sys *QuantumSystem, qubit int, t ErrorType) (NoiseEvent, error) {
	if qubit < 0 || qubit >= sys.DataQubits() {
		return NoiseEvent{}, &DimensionError{Qubit: qubit, NumQubits: sys.DataQubits()}
	}
	if t == ErrorNone {
		return NoiseEvent{Qubit: qubit, Type: ErrorNone, Applied: false}, nil
	}
	resolved := t.resolve(ne.rng)
	if err := ne.applyPauli(sys, qubit, resolved); err != nil {
		return NoiseEvent{}, err
	}
	return NoiseEvent{Qubit: qubit, Type: resolved, Applied: true}, nil
}

func (ne *NoiseEngine) applyPauli(sys *QuantumSystem, qubit int, t ErrorType) error {
	g, ok := t.pauli(qubit)
	if !ok {
		return &ConfigurationError{Field: "errorType", Detail: "no Pauli for error type " + t.String()}
	}
	errnie.Info("NoiseEngine - injecting %s on q%d", t, qubit)
	return sys.applyError(g, t, StepNoise)
}
