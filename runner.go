package qudit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

// TrialFunc builds and runs one independent circuit. The runner calls
// it once per trial, possibly from many goroutines at once, so it must
// not share mutable state across calls.
type TrialFunc func() (*Circuit, error)

/*
RunReport is the structured result of a shot run: the aggregated
outcome histogram plus enough metadata to interpret it. The engine
hands it to a ReportSink as a value; how the sink serializes it is the
sink's business.
*/
type RunReport struct {
	ID       string
	Qudits   int
	Levels   int
	Trials   int
	Shots    int
	Counts   map[int]int
	Elapsed  time.Duration
	Metadata map[string]string
}

// ReportSink receives a finished run's report. Implementations decide
// the serialized form; sink errors are logged, never propagated.
type ReportSink interface {
	Publish(report *RunReport) error
}

/*
Runner fans independent circuit trials across a fixed pool of workers.
The engine itself is single-threaded by design: one circuit, one
goroutine. What IS embarrassingly parallel is running many independent
trials of the same preparation, and that is the only parallelism this
package offers.
*/
type Runner struct {
	cfg        *Config
	metrics    *Metrics
	reports    ReportSink
	indicators *IndicatorDispatcher
	devices    []string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithReportSink publishes each finished run's report to sink.
func WithReportSink(sink ReportSink) RunnerOption {
	return func(r *Runner) { r.reports = sink }
}

// WithIndicators publishes the modal outcome's digits to the given
// devices after each run, one device per qudit, best-effort.
func WithIndicators(dispatcher *IndicatorDispatcher, devices []string) RunnerOption {
	return func(r *Runner) {
		r.indicators = dispatcher
		r.devices = devices
	}
}

// NewRunner creates a runner with the given config, or defaults when
// cfg is nil.
func NewRunner(cfg *Config, opts ...RunnerOption) *Runner {
	if cfg == nil {
		cfg = NewConfig()
	}

	r := &Runner{
		cfg:     cfg,
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(r)
	}

	errnie.Info("NewRunner - workers %d", cfg.Workers)
	return r
}

// Metrics exposes the runner's counters.
func (r *Runner) Metrics() *Metrics { return r.metrics }

// Run executes `trials` independent circuits, samples `shots` outcomes
// from each, and aggregates everything into one report. Trials that
// fail are counted and skipped; Run only errors when every trial
// failed or the context was cancelled.
func (r *Runner) Run(ctx context.Context, trials, shots int, build TrialFunc) (*RunReport, error) {
	if trials < 1 {
		return nil, fmt.Errorf("%w: %d trials", ErrInvalidShotCount, trials)
	}
	if shots < 1 {
		return nil, fmt.Errorf("%w: %d shots", ErrInvalidShotCount, shots)
	}

	start := time.Now()
	report := &RunReport{
		ID:       uuid.New().String(),
		Trials:   trials,
		Shots:    shots,
		Counts:   make(map[int]int),
		Metadata: make(map[string]string),
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
		failures int
	)
	jobs := make(chan int)

	workers := r.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				r.runTrial(shots, build, report, &mu, &firstErr, &failures)
			}
		}()
	}

	for i := 0; i < trials; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	if failures == trials {
		return nil, fmt.Errorf("all %d trials failed: %w", trials, firstErr)
	}

	report.Elapsed = time.Since(start)
	r.finish(report)
	return report, nil
}

func (r *Runner) runTrial(shots int, build TrialFunc, report *RunReport, mu *sync.Mutex, firstErr *error, failures *int) {
	trialStart := time.Now()

	circuit, err := build()
	if err == nil {
		err = circuit.Err()
	}

	var outcomes []int
	if err == nil {
		outcomes, err = NewSampler(circuit.State()).Sample(shots)
	}

	r.metrics.recordTrial(trialStart, shots, err == nil)

	mu.Lock()
	defer mu.Unlock()
	if err != nil {
		*failures++
		if *firstErr == nil {
			*firstErr = err
		}
		errnie.Warn("trial failed: %v", err)
		return
	}

	if report.Qudits == 0 {
		report.Qudits = circuit.State().Qudits()
		report.Levels = circuit.State().Levels()
	}
	for _, outcome := range outcomes {
		report.Counts[outcome]++
	}
}

// finish publishes the report and pushes the modal outcome's digits to
// the indicator devices, both best-effort.
func (r *Runner) finish(report *RunReport) {
	if r.reports != nil {
		if err := r.reports.Publish(report); err != nil {
			errnie.Error(fmt.Errorf("report sink failed: %v", err))
		}
	}

	if r.indicators == nil || len(r.devices) == 0 || len(report.Counts) == 0 {
		return
	}

	modal, best := 0, -1
	for outcome, count := range report.Counts {
		if count > best || (count == best && outcome < modal) {
			modal, best = outcome, count
		}
	}

	r.indicators.PublishDigits(digitsOf(modal, report.Qudits, report.Levels), r.devices)
}
