package qudit

import "time"

// Config carries the tunables for the shot runner and the indicator
// dispatcher.
type Config struct {
	// Workers is the number of goroutines the runner fans trials
	// across. Trials are independent, so there is nothing to tune
	// beyond CPU occupancy.
	Workers int

	// IndicatorTimeout bounds how long one indicator update may take
	// before it is abandoned as a failure.
	IndicatorTimeout time.Duration

	// IndicatorMaxFailures opens the indicator breaker after this many
	// consecutive failures.
	IndicatorMaxFailures int

	// IndicatorResetTimeout is how long the breaker stays open before
	// letting a probe through.
	IndicatorResetTimeout time.Duration
}

func NewConfig() *Config {
	return &Config{
		Workers:               4,
		IndicatorTimeout:      2 * time.Second,
		IndicatorMaxFailures:  5,
		IndicatorResetTimeout: 30 * time.Second,
	}
}
