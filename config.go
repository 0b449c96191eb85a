package qsim

// SimulatorConfig is the single construction-time configuration for a
// simulation: which code, which logical state to protect, what noise and
// gate errors to inject, and how aggressively to retain snapshots.
type SimulatorConfig struct {
	CodeType     CodeType
	InitialState LogicalState
	Noise        NoiseConfig
	GateErrors   GateErrorConfig
	Retention    RetentionPolicy
	// Rand is the injectable random source; nil selects a time-seeded
	// default. Tests pass a seeded source for deterministic runs.
	Rand RandomSource
}

func NewSimulatorConfig() *SimulatorConfig {
	return &SimulatorConfig{
		CodeType:     CodeRepetition,
		InitialState: StateZero,
		Noise:        NoiseConfig{Type: ErrorNone},
		Retention:    DefaultRetentionPolicy(),
	}
}
