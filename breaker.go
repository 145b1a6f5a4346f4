package qudit

import (
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

// BreakerState represents the state of an indicator breaker.
type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

/*
Breaker implements the circuit-breaker pattern for the indicator sink.
A flaky or unreachable device must never slow the simulation down, so
after maxFailures consecutive failures the breaker opens and indicator
updates are dropped outright until the reset timeout lets a half-open
probe through.
*/
type Breaker struct {
	mu               sync.RWMutex
	maxFailures      int
	resetTimeout     time.Duration
	halfOpenMax      int
	failureCount     int
	state            BreakerState
	openTime         time.Time
	halfOpenAttempts int
}

// NewBreaker creates a closed breaker.
func NewBreaker(maxFailures int, resetTimeout time.Duration) *Breaker {
	return &Breaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		halfOpenMax:  1,
		state:        BreakerClosed,
	}
}

// RecordFailure records a failure and updates the breaker state.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount++
	if b.failureCount >= b.maxFailures {
		if b.state == BreakerHalfOpen {
			// A failed probe sends us straight back to open.
			b.state = BreakerOpen
			b.openTime = time.Now()
			errnie.Warn("indicator breaker reopened from half-open state")
		} else if b.state == BreakerClosed {
			b.state = BreakerOpen
			b.openTime = time.Now()
			errnie.Warn("indicator breaker opened after %d failures", b.failureCount)
		}
	}
}

// RecordSuccess records a successful attempt and updates the breaker state.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerHalfOpen {
		b.halfOpenAttempts++
		if b.halfOpenAttempts >= b.halfOpenMax {
			b.state = BreakerClosed
			b.failureCount = 0
			b.halfOpenAttempts = 0
		}
		return
	}
	b.failureCount = 0
}

// Allow reports whether a call may proceed right now.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		return true
	case BreakerOpen:
		if time.Since(b.openTime) >= b.resetTimeout {
			// Failure count carries over so a failed probe reopens
			// immediately.
			b.state = BreakerHalfOpen
			b.halfOpenAttempts = 0
			return true
		}
		return false
	case BreakerHalfOpen:
		return b.halfOpenAttempts < b.halfOpenMax
	}
	return false
}

// State returns the current breaker state.
func (b *Breaker) State() BreakerState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}
