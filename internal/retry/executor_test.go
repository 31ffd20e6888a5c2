package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExecutor_Execute_PublishSucceedsFirstTry(t *testing.T) {
	config := DefaultConfig()
	executor := NewExecutor(config)

	publishCount := 0
	publish := func() error {
		publishCount++
		return nil
	}

	err := executor.Execute(context.Background(), publish)
	if err != nil {
		t.Errorf("Execute() error = %v, want nil", err)
	}

	if publishCount != 1 {
		t.Errorf("publish called %d times, want 1", publishCount)
	}
}

func TestExecutor_Execute_PublishSucceedsAfterRetries(t *testing.T) {
	config := NewConfig(5, DefaultExponentialBackoff())
	executor := NewExecutor(config)

	publishCount := 0
	publish := func() error {
		publishCount++
		if publishCount < 3 {
			return errors.New("redis: connection refused")
		}
		return nil
	}

	err := executor.Execute(context.Background(), publish)
	if err != nil {
		t.Errorf("Execute() error = %v, want nil", err)
	}

	if publishCount != 3 {
		t.Errorf("publish called %d times, want 3", publishCount)
	}
}

func TestExecutor_Execute_PublishExhaustsAttempts(t *testing.T) {
	config := NewConfig(3, NewExponentialBackoff(10*time.Millisecond, 10*time.Millisecond, false))
	executor := NewExecutor(config)

	publishCount := 0
	publish := func() error {
		publishCount++
		return errors.New("nats: no servers available")
	}

	err := executor.Execute(context.Background(), publish)
	if err == nil {
		t.Error("Execute() error = nil, want error")
	}

	if publishCount != 3 {
		t.Errorf("publish called %d times, want 3", publishCount)
	}
}

func TestExecutor_Execute_ContextCancellation(t *testing.T) {
	config := NewConfig(5, NewExponentialBackoff(100*time.Millisecond, 100*time.Millisecond, false))
	executor := NewExecutor(config)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	publishCount := 0
	publish := func() error {
		publishCount++
		return errors.New("timeout")
	}

	err := executor.Execute(ctx, publish)
	if err == nil {
		t.Error("Execute() error = nil, want context error")
	}

	if publishCount > 3 {
		t.Errorf("publish called %d times, want <= 3", publishCount)
	}
}

func TestExecutor_Execute_OnRetryCallback(t *testing.T) {
	retryCallbackCalled := false
	config := NewConfig(3, NewExponentialBackoff(10*time.Millisecond, 10*time.Millisecond, false))
	config.WithOnRetry(func(attempt int, err error) {
		retryCallbackCalled = true
	})

	executor := NewExecutor(config)

	publishCount := 0
	publish := func() error {
		publishCount++
		if publishCount < 2 {
			return errors.New("temporary error")
		}
		return nil
	}

	err := executor.Execute(context.Background(), publish)
	if err != nil {
		t.Errorf("Execute() error = %v, want nil", err)
	}

	if !retryCallbackCalled {
		t.Error("OnRetry was not called")
	}
}

func TestExecutor_Execute_OnGiveUpCallback(t *testing.T) {
	giveUpCallbackCalled := false
	config := NewConfig(2, NewExponentialBackoff(10*time.Millisecond, 10*time.Millisecond, false))
	config.WithOnGiveUp(func(err error) {
		giveUpCallbackCalled = true
	})

	executor := NewExecutor(config)

	publish := func() error {
		return errors.New("persistent error")
	}

	err := executor.Execute(context.Background(), publish)
	if err == nil {
		t.Error("Execute() error = nil, want error")
	}

	if !giveUpCallbackCalled {
		t.Error("OnGiveUp was not called")
	}
}

func BenchmarkExecutor_Execute_WithRetries(b *testing.B) {
	config := NewConfig(3, NewExponentialBackoff(1*time.Millisecond, 1*time.Millisecond, false))
	executor := NewExecutor(config)

	publishCount := 0
	publish := func() error {
		publishCount++
		if publishCount%2 == 0 {
			return nil
		}
		return errors.New("error")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		executor.Execute(context.Background(), publish)
	}
}
