package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreakerInitialState(t *testing.T) {
	cb := New(NotifyDefaults())
	if cb.GetState() != StateClosed {
		t.Errorf("initial state should be Closed, got %v", cb.GetState())
	}
}

func TestCircuitBreakerOpensAfterMaxFailures(t *testing.T) {
	config := &Config{MaxFailures: 3, Timeout: time.Second, HalfOpenMaxRequests: 1}
	cb := New(config)

	for i := 0; i < 3; i++ {
		cb.Execute(func() error { return errors.New("publish failed") })
	}

	if cb.GetState() != StateOpen {
		t.Fatalf("expected Open after %d failures, got %v", config.MaxFailures, cb.GetState())
	}

	err := cb.Execute(func() error { return nil })
	if err != ErrCircuitOpen {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreakerHalfOpenAfterTimeout(t *testing.T) {
	config := &Config{MaxFailures: 2, Timeout: 100 * time.Millisecond, HalfOpenMaxRequests: 1}
	cb := New(config)

	for i := 0; i < 2; i++ {
		cb.Execute(func() error { return errors.New("publish failed") })
	}
	if cb.GetState() != StateOpen {
		t.Fatalf("expected Open")
	}

	time.Sleep(150 * time.Millisecond)

	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("expected half-open probe to succeed, got %v", err)
	}
	if cb.GetState() != StateClosed {
		t.Errorf("expected Closed after a successful half-open probe, got %v", cb.GetState())
	}
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	config := &Config{MaxFailures: 1, Timeout: 50 * time.Millisecond, HalfOpenMaxRequests: 1}
	cb := New(config)

	cb.Execute(func() error { return errors.New("publish failed") })
	time.Sleep(80 * time.Millisecond)

	cb.Execute(func() error { return errors.New("still failing") })
	if cb.GetState() != StateOpen {
		t.Errorf("expected Open after a failed half-open probe, got %v", cb.GetState())
	}
}

func TestCircuitBreakerReset(t *testing.T) {
	config := &Config{MaxFailures: 1, Timeout: time.Minute, HalfOpenMaxRequests: 1}
	cb := New(config)

	cb.Execute(func() error { return errors.New("publish failed") })
	if cb.GetState() != StateOpen {
		t.Fatalf("expected Open")
	}

	cb.Reset()
	if cb.GetState() != StateClosed {
		t.Errorf("expected Closed after Reset, got %v", cb.GetState())
	}
}
