package qudit

import (
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

/*
IndicatorSink pushes a digit value to a physical indicator on a remote
device. Implementations live outside the engine; the simulation core
performs no network I/O of its own.
*/
type IndicatorSink interface {
	SetIndicator(deviceID string, value int) error
}

/*
IndicatorDispatcher wraps a sink in a best-effort, bounded-timeout,
fire-and-forget channel. A slow or dead device degrades to "indicator
not updated": failures are logged and counted, the breaker drops calls
to a sink that keeps failing, and nothing here ever blocks or fails
the computation that asked for the update.
*/
type IndicatorDispatcher struct {
	sink    IndicatorSink
	timeout time.Duration
	breaker *Breaker
	metrics *Metrics
	wg      sync.WaitGroup
}

// NewIndicatorDispatcher wraps sink with the config's timeout and
// breaker settings. A nil sink yields a dispatcher that drops
// everything, which keeps call sites free of nil checks.
func NewIndicatorDispatcher(sink IndicatorSink, cfg *Config, metrics *Metrics) *IndicatorDispatcher {
	if cfg == nil {
		cfg = NewConfig()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &IndicatorDispatcher{
		sink:    sink,
		timeout: cfg.IndicatorTimeout,
		breaker: NewBreaker(cfg.IndicatorMaxFailures, cfg.IndicatorResetTimeout),
		metrics: metrics,
	}
}

// Publish pushes one digit value to one device and returns
// immediately. The outcome of the push is visible only through the
// metrics and the log.
func (d *IndicatorDispatcher) Publish(deviceID string, value int) {
	if d == nil || d.sink == nil {
		return
	}
	if !d.breaker.Allow() {
		d.metrics.recordIndicatorDrop()
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		done := make(chan error, 1)
		go func() {
			done <- d.sink.SetIndicator(deviceID, value)
		}()

		select {
		case err := <-done:
			if err != nil {
				d.breaker.RecordFailure()
				d.metrics.recordIndicatorFailure()
				errnie.Warn("indicator update failed for %s: %v", deviceID, err)
				return
			}
			d.breaker.RecordSuccess()
			d.metrics.recordIndicatorSent()
		case <-time.After(d.timeout):
			d.breaker.RecordFailure()
			d.metrics.recordIndicatorFailure()
			errnie.Warn("indicator update timed out for %s after %v", deviceID, d.timeout)
		}
	}()
}

// PublishOutcome maps a measurement outcome onto a device per qudit
// and publishes each digit. Devices beyond the qudit count are
// ignored, as are qudits beyond the device list.
func (d *IndicatorDispatcher) PublishOutcome(s *StateVector, outcome int, devices []string) {
	if d == nil || d.sink == nil {
		return
	}
	d.PublishDigits(s.Digits(outcome), devices)
}

// PublishDigits publishes one digit per device, best-effort.
func (d *IndicatorDispatcher) PublishDigits(digits []int, devices []string) {
	if d == nil || d.sink == nil || len(devices) == 0 {
		return
	}

	for q, digit := range digits {
		if q >= len(devices) {
			break
		}
		d.Publish(devices[q], digit)
	}
}

// Flush waits for in-flight publishes to settle. Tests and orderly
// shutdown want this; normal operation never calls it.
func (d *IndicatorDispatcher) Flush() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
