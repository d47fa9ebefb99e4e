package clients

import (
	"sync"
	"time"

	"github.com/jsamuelsen/famous-quotes/internal/platform/config"
)

// State represents the current state of the circuit breaker.
type State int

const (
	// StateClosed lets requests through.
	StateClosed State = iota

	// StateOpen blocks requests until the open timeout passes.
	StateOpen

	// StateHalfOpen lets a limited number of trial requests through.
	StateHalfOpen
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// transition is a state change waiting to be reported once the lock is released.
type transition struct {
	from, to State
}

// CircuitBreaker stops calling the quotes API after repeated failures.
//
// State transitions:
//   - Closed → Open: after MaxFailures consecutive failures
//   - Open → HalfOpen: once Timeout has passed since the last failure
//   - HalfOpen → Closed: after HalfOpenLimit consecutive successes
//   - HalfOpen → Open: on any failure
type CircuitBreaker struct {
	mu          sync.Mutex
	state       State
	failures    int
	successes   int
	inFlight    int
	lastFailure time.Time
	cfg         config.CircuitBreakerConfig

	onStateChange func(from, to State)
	now           func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(cfg config.CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		state: StateClosed,
		cfg:   cfg,
		now:   time.Now,
	}
}

// OnStateChange registers a callback for state changes.
// The callback runs on the goroutine that caused the change, after the breaker is unlocked.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onStateChange = fn
}

// Allow reports whether a request may proceed.
// It moves an open breaker to half-open once the timeout has passed.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()

	var (
		allowed bool
		changed *transition
	)

	switch cb.state {
	case StateClosed:
		allowed = true

	case StateOpen:
		if cb.now().Sub(cb.lastFailure) >= cb.cfg.Timeout {
			changed = cb.transitionTo(StateHalfOpen)
			cb.inFlight = 1
			allowed = true
		}

	case StateHalfOpen:
		if cb.inFlight < cb.cfg.HalfOpenLimit {
			cb.inFlight++
			allowed = true
		}
	}

	cb.unlockAndNotify(changed)

	return allowed
}

// RecordSuccess records a successful request.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()

	var changed *transition

	switch cb.state {
	case StateClosed:
		cb.failures = 0

	case StateHalfOpen:
		cb.inFlight--
		cb.successes++
		if cb.successes >= cb.cfg.HalfOpenLimit {
			changed = cb.transitionTo(StateClosed)
		}
	}

	cb.unlockAndNotify(changed)
}

// RecordFailure records a failed request.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()

	var changed *transition

	cb.lastFailure = cb.now()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.MaxFailures {
			changed = cb.transitionTo(StateOpen)
		}

	case StateHalfOpen:
		cb.inFlight--
		changed = cb.transitionTo(StateOpen)
	}

	cb.unlockAndNotify(changed)
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// transitionTo changes state and resets the counters. Must be called with the lock held.
func (cb *CircuitBreaker) transitionTo(next State) *transition {
	if cb.state == next {
		return nil
	}

	t := &transition{from: cb.state, to: next}
	cb.state = next
	cb.failures = 0
	cb.successes = 0

	return t
}

func (cb *CircuitBreaker) unlockAndNotify(t *transition) {
	fn := cb.onStateChange
	cb.mu.Unlock()

	if t != nil && fn != nil {
		fn(t.from, t.to)
	}
}
