package qsim

/*
RetentionPolicy bounds snapshot memory explicitly. Every snapshot is a
full deep copy of the system, so for systems above QubitThreshold qubits
(the Shor code crosses it) only phase-boundary snapshots plus every
Interval-th intermediate snapshot are retained, trading undo granularity
for bounded memory. Below the threshold everything is kept.
*/
type RetentionPolicy struct {
	QubitThreshold      int
	Interval            int
	KeepPhaseBoundaries bool
}

func DefaultRetentionPolicy() RetentionPolicy {
	return RetentionPolicy{
		QubitThreshold:      8,
		Interval:            4,
		KeepPhaseBoundaries: true,
	}
}

// keep decides whether a snapshot survives the policy. seq counts
// intermediate snapshots since the cycle began.
func (p RetentionPolicy) keep(numQubits int, boundary bool, seq int) bool {
	if boundary {
		return p.KeepPhaseBoundaries
	}
	if numQubits <= p.QubitThreshold {
		return true
	}
	if p.Interval <= 0 {
		return false
	}
	return seq%p.Interval == 0
}

// SimulatorState is the unit of snapshotting: a deep copy of everything
// needed to restore the controller to an earlier point. Restoring never
// inverts gates algebraically; measurement and noise are not invertible
// once collapsed.
type SimulatorState struct {
	System          *QuantumSystem
	Phase           Phase
	Config          SimulatorConfig
	NoiseEvents     []NoiseEvent
	Syndrome        Syndrome
	CorrectedQubits []int
	StepIndex       int
	PhaseBoundary   bool
}

func (c *SimulationController) captureState(boundary bool) *SimulatorState {
	events := make([]NoiseEvent, len(c.noiseEvents))
	copy(events, c.noiseEvents)
	corrected := make([]int, len(c.corrected))
	copy(corrected, c.corrected)
	return &SimulatorState{
		System:          c.system.Clone(),
		Phase:           c.phase,
		Config:          c.config,
		NoiseEvents:     events,
		Syndrome:        c.syndrome.Clone(),
		CorrectedQubits: corrected,
		StepIndex:       len(c.snapshots),
		PhaseBoundary:   boundary,
	}
}
