package qudit

import (
	"sync"
	"time"
)

// Metrics tracks runner and indicator activity.
type Metrics struct {
	mu sync.RWMutex

	TrialCount       int
	TrialFailures    int
	ShotCount        int
	TotalTrialTime   time.Duration
	IndicatorSent    int
	IndicatorFailed  int
	IndicatorDropped int
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordTrial(start time.Time, shots int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TrialCount++
	m.TotalTrialTime += time.Since(start)
	if ok {
		m.ShotCount += shots
	} else {
		m.TrialFailures++
	}
}

func (m *Metrics) recordIndicatorSent() {
	m.mu.Lock()
	m.IndicatorSent++
	m.mu.Unlock()
}

func (m *Metrics) recordIndicatorFailure() {
	m.mu.Lock()
	m.IndicatorFailed++
	m.mu.Unlock()
}

func (m *Metrics) recordIndicatorDrop() {
	m.mu.Lock()
	m.IndicatorDropped++
	m.mu.Unlock()
}

// Snapshot returns a copy of the counters safe to read concurrently
// with a running pool.
func (m *Metrics) Snapshot() Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Metrics{
		TrialCount:       m.TrialCount,
		TrialFailures:    m.TrialFailures,
		ShotCount:        m.ShotCount,
		TotalTrialTime:   m.TotalTrialTime,
		IndicatorSent:    m.IndicatorSent,
		IndicatorFailed:  m.IndicatorFailed,
		IndicatorDropped: m.IndicatorDropped,
	}
}
