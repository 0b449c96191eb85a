package qsim

import "sync"

// Metrics tracks engine activity counters. The engine itself is
// single-threaded, but presentation layers poll these from their own
// goroutines, hence the lock.
type Metrics struct {
	mu sync.RWMutex

	GatesApplied       int64
	GateErrorsInjected int64
	Measurements       int64
	NoiseEventsApplied int64
	CorrectionsApplied int64
	AncillaReuses      int64
	SnapshotsTaken     int64
	SnapshotsDropped   int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// clone copies the counters into a fresh Metrics so a cloned system
// accumulates independently of its origin.
func (m *Metrics) clone() *Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return &Metrics{
		GatesApplied:       m.GatesApplied,
		GateErrorsInjected: m.GateErrorsInjected,
		Measurements:       m.Measurements,
		NoiseEventsApplied: m.NoiseEventsApplied,
		CorrectionsApplied: m.CorrectionsApplied,
		AncillaReuses:      m.AncillaReuses,
		SnapshotsTaken:     m.SnapshotsTaken,
		SnapshotsDropped:   m.SnapshotsDropped,
	}
}

func (m *Metrics) recordGate() {
	m.mu.Lock()
	m.GatesApplied++
	m.mu.Unlock()
}

func (m *Metrics) recordGateError() {
	m.mu.Lock()
	m.GateErrorsInjected++
	m.mu.Unlock()
}

func (m *Metrics) recordMeasurement() {
	m.mu.Lock()
	m.Measurements++
	m.mu.Unlock()
}

func (m *Metrics) recordNoise() {
	m.mu.Lock()
	m.NoiseEventsApplied++
	m.mu.Unlock()
}

func (m *Metrics) recordCorrection() {
	m.mu.Lock()
	m.CorrectionsApplied++
	m.mu.Unlock()
}

func (m *Metrics) recordAncillaReuse() {
	m.mu.Lock()
	m.AncillaReuses++
	m.mu.Unlock()
}

func (m *Metrics) recordSnapshot(kept bool) {
	m.mu.Lock()
	if kept {
		m.SnapshotsTaken++
	} else {
		m.SnapshotsDropped++
	}
	m.mu.Unlock()
}

// ExportMetrics returns a point-in-time view suitable for dashboards.
func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"gates_applied":        m.GatesApplied,
		"gate_errors_injected": m.GateErrorsInjected,
		"measurements":         m.Measurements,
		"noise_events_applied": m.NoiseEventsApplied,
		"corrections_applied":  m.CorrectionsApplied,
		"ancilla_reuses":       m.AncillaReuses,
		"snapshots_taken":      m.SnapshotsTaken,
		"snapshots_dropped":    m.SnapshotsDropped,
	}
}
