// SPDX-License-Identifier: MIT

package espn

import (
	"errors"
	"sync"
	"time"

	"github.com/courtside/scoreticker/internal/metrics"
)

// State represents the circuit breaker state.
type State int

const (
	StateClosed   State = iota // Normal operation, requests allowed
	StateOpen                  // Circuit open, requests blocked
	StateHalfOpen              // Testing if service recovered
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker implements a state machine to prevent hammering a failing
// upstream.
type CircuitBreaker struct {
	mu               sync.RWMutex
	state            State
	failures         int
	failureThreshold int
	resetTimeout     time.Duration
	lastFailure      time.Time
}

// NewCircuitBreaker creates a new circuit breaker.
func NewCircuitBreaker(threshold int, resetTimeout time.Duration) *CircuitBreaker {
	cb := &CircuitBreaker{
		state:            StateClosed,
		failureThreshold: threshold,
		resetTimeout:     resetTimeout,
	}
	metrics.SetCircuitBreakerState("espn", stateLabel(cb.state))
	return cb
}

// Execute runs the given function if the circuit is closed or half-open.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allowRequest() {
		return ErrCircuitOpen
	}

	err := fn()

	if err != nil {
		cb.recordFailure()
		return err
	}

	cb.recordSuccess()
	return nil
}

// allowRequest checks if a request should be allowed based on current state.
func (cb *CircuitBreaker) allowRequest() bool {
	cb.mu.Lock()
	prevState := cb.state

	if cb.state == StateClosed {
		cb.mu.Unlock()
		return true
	}

	if cb.state == StateOpen {
		if time.Since(cb.lastFailure) > cb.resetTimeout {
			cb.state = StateHalfOpen
			state := cb.state
			cb.mu.Unlock()
			if state != prevState {
				metrics.SetCircuitBreakerState("espn", stateLabel(state))
			}
			return true
		}
		cb.mu.Unlock()
		return false
	}

	// StateHalfOpen: allow a probe request through.
	cb.mu.Unlock()
	return true
}

// recordFailure records a failure and potentially opens the circuit.
func (cb *CircuitBreaker) recordFailure() {
	cb.mu.Lock()
	prevState := cb.state

	cb.failures++
	cb.lastFailure = time.Now()

	if cb.state == StateHalfOpen || cb.failures >= cb.failureThreshold {
		cb.state = StateOpen
	}
	state := cb.state
	cb.mu.Unlock()
	if state != prevState {
		metrics.SetCircuitBreakerState("espn", stateLabel(state))
	}
}

// recordSuccess records a success and closes the circuit.
func (cb *CircuitBreaker) recordSuccess() {
	cb.mu.Lock()
	prevState := cb.state

	cb.failures = 0
	cb.state = StateClosed
	state := cb.state
	cb.mu.Unlock()
	if state != prevState {
		metrics.SetCircuitBreakerState("espn", stateLabel(state))
	}
}

// State returns the current state (thread-safe).
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// StateString returns the current state as its metric label.
func (cb *CircuitBreaker) StateString() string {
	return stateLabel(cb.State())
}

func stateLabel(state State) string {
	switch state {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}
