// Package circuitbreaker guards the RPC endpoint against hammering a node that
// is already failing. Repeated read failures within a window trip the circuit;
// while open, callers fail fast instead of waiting out another timeout.
package circuitbreaker

import (
	"sync"
	"time"
)

// CircuitBreaker implements the circuit breaker pattern
type CircuitBreaker struct {
	enabled       bool
	failureCount  int
	failureWindow time.Duration
	failThreshold int
	resetTimeout  time.Duration
	lastFailure   time.Time
	tripped       bool
	tripTime      time.Time
	mu            sync.Mutex
}

// NewCircuitBreaker creates a new circuit breaker
func NewCircuitBreaker(enabled bool, threshold int, window time.Duration, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		enabled:       enabled,
		failThreshold: threshold,
		failureWindow: window,
		resetTimeout:  resetTimeout,
	}
}

// RecordFailure records a failure and trips the circuit if the threshold is
// exceeded. It returns true if the circuit is open after this failure.
func (cb *CircuitBreaker) RecordFailure() bool {
	if !cb.enabled {
		return false
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()

	// If already tripped, allow a half-open retry once the reset timeout passed
	if cb.tripped {
		if time.Since(cb.tripTime) > cb.resetTimeout {
			cb.tripped = false
			cb.failureCount = 0
		} else {
			return true
		}
	}

	// Failures outside the window don't accumulate
	if time.Since(cb.lastFailure) > cb.failureWindow {
		cb.failureCount = 0
	}

	cb.failureCount++
	cb.lastFailure = now

	if cb.failureCount >= cb.failThreshold {
		cb.tripped = true
		cb.tripTime = now
		return true
	}

	return false
}

// RecordSuccess clears accumulated failures after a healthy round-trip
func (cb *CircuitBreaker) RecordSuccess() {
	if !cb.enabled {
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if !cb.tripped {
		cb.failureCount = 0
	}
}

// IsOpen returns true if the circuit is open (tripped)
func (cb *CircuitBreaker) IsOpen() bool {
	if !cb.enabled {
		return false
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	// Half-open: let traffic through again after the reset timeout
	if cb.tripped && time.Since(cb.tripTime) > cb.resetTimeout {
		cb.tripped = false
		cb.failureCount = 0
		return false
	}

	return cb.tripped
}

// Reset manually resets the circuit breaker
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.tripped = false
	cb.failureCount = 0
}

// GetState returns the current state of the circuit breaker
func (cb *CircuitBreaker) GetState() (failureCount int, lastFailure time.Time, failureWindow time.Duration, failThreshold int) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failureCount, cb.lastFailure, cb.failureWindow, cb.failThreshold
}

// IsEnabled returns true if the circuit breaker is enabled
func (cb *CircuitBreaker) IsEnabled() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.enabled
}
