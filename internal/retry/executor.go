package retry

import (
	"context"
	"fmt"
	"time"
)

// Executor runs a fallible I/O operation (such as a project file load)
// under a retry policy. The schedule engine itself is never wrapped here: it is pure, so
// a second attempt on the same input can't change the outcome.
type Executor struct {
	config *Config
}

// NewExecutor creates a new retry executor. A nil config uses DefaultConfig.
func NewExecutor(config *Config) *Executor {
	if config == nil {
		config = DefaultConfig()
	}
	return &Executor{
		config: config,
	}
}

// Execute runs fn, retrying on error according to the executor's config.
func (e *Executor) Execute(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= e.config.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt >= e.config.MaxAttempts {
			if e.config.OnGiveUp != nil {
				e.config.OnGiveUp(err)
			}
			return fmt.Errorf("all retry attempts exhausted after %d tries: %w", attempt, err)
		}

		if e.config.OnRetry != nil {
			e.config.OnRetry(attempt, err)
		}

		delay := e.config.CalculateNextDelay(attempt)
		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("all retry attempts exhausted: %w", lastErr)
}
