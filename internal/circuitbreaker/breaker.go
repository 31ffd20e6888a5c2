// Package circuitbreaker wraps the notification publishers: a Redis or
// NATS outage should degrade recompute notifications, never the schedule
// computation itself, so the breaker only ever sits in front of Publish
// calls.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrCircuitOpen is returned when the circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrTooManyRequests is returned when too many requests are made in half-open state.
	ErrTooManyRequests = errors.New("too many requests")
)

// State represents the current state of the circuit breaker.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

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

// Config holds circuit breaker tuning.
type Config struct {
	MaxFailures         int
	Timeout             time.Duration
	HalfOpenMaxRequests int
	OnStateChange       func(from, to State)
}

// NotifyDefaults returns a config tuned for wrapping a notification
// publisher: five consecutive publish failures opens the circuit for a
// minute before probing again.
func NotifyDefaults() *Config {
	return &Config{
		MaxFailures:         5,
		Timeout:             60 * time.Second,
		HalfOpenMaxRequests: 1,
	}
}

// CircuitBreaker implements the circuit breaker pattern over a fallible
// operation returning only an error (Publisher.Publish's signature).
type CircuitBreaker struct {
	config *Config
	state  State
	mu     sync.RWMutex

	consecutiveFailures int
	halfOpenRequests    int

	lastFailureTime time.Time
	lastStateChange time.Time
}

// New creates a circuit breaker. A nil config uses NotifyDefaults.
func New(config *Config) *CircuitBreaker {
	if config == nil {
		config = NotifyDefaults()
	}
	return &CircuitBreaker{
		config:          config,
		state:           StateClosed,
		lastStateChange: time.Now(),
	}
}

// Execute runs fn with circuit breaker protection.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if err := cb.beforeRequest(); err != nil {
		return err
	}
	err := fn()
	cb.afterRequest(err)
	return err
}

func (cb *CircuitBreaker) beforeRequest() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return nil
	case StateOpen:
		if time.Since(cb.lastFailureTime) >= cb.config.Timeout {
			cb.setState(StateHalfOpen)
			cb.halfOpenRequests = 0
			return nil
		}
		return ErrCircuitOpen
	case StateHalfOpen:
		if cb.halfOpenRequests >= cb.config.HalfOpenMaxRequests {
			return ErrTooManyRequests
		}
		cb.halfOpenRequests++
		return nil
	default:
		return ErrCircuitOpen
	}
}

func (cb *CircuitBreaker) afterRequest(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	success := err == nil

	switch cb.state {
	case StateClosed:
		if success {
			cb.consecutiveFailures = 0
		} else {
			cb.consecutiveFailures++
			cb.lastFailureTime = time.Now()
			if cb.consecutiveFailures >= cb.config.MaxFailures {
				cb.setState(StateOpen)
			}
		}
	case StateHalfOpen:
		if success {
			cb.setState(StateClosed)
			cb.consecutiveFailures = 0
		} else {
			cb.setState(StateOpen)
			cb.lastFailureTime = time.Now()
		}
	}
}

func (cb *CircuitBreaker) setState(newState State) {
	if cb.state == newState {
		return
	}
	oldState := cb.state
	cb.state = newState
	cb.lastStateChange = time.Now()
	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(oldState, newState)
	}
}

// GetState returns the current state.
func (cb *CircuitBreaker) GetState() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// Reset forces the circuit back to closed.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.setState(StateClosed)
	cb.consecutiveFailures = 0
	cb.halfOpenRequests = 0
}
