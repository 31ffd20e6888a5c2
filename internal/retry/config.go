package retry

import (
	"time"
)

// Config controls how many times an operation is attempted and the
// backoff strategy used between attempts.
type Config struct {
	// MaxAttempts is the maximum number of attempts (including the first).
	MaxAttempts int

	// Strategy is the backoff strategy to use between attempts.
	Strategy Strategy

	// OnRetry, if set, is called before sleeping ahead of a retry.
	OnRetry func(attempt int, err error)

	// OnGiveUp, if set, is called once the final attempt has failed.
	OnGiveUp func(err error)
}

// DefaultConfig returns the retry config the recompute daemon uses for
// project file loads: three attempts with exponential backoff.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 3,
		Strategy:    DefaultExponentialBackoff(),
	}
}

// NewConfig creates a retry config with an explicit attempt budget and
// backoff strategy.
func NewConfig(maxAttempts int, strategy Strategy) *Config {
	return &Config{
		MaxAttempts: maxAttempts,
		Strategy:    strategy,
	}
}

// WithOnRetry sets the retry callback.
func (c *Config) WithOnRetry(callback func(attempt int, err error)) *Config {
	c.OnRetry = callback
	return c
}

// WithOnGiveUp sets the give-up callback.
func (c *Config) WithOnGiveUp(callback func(err error)) *Config {
	c.OnGiveUp = callback
	return c
}

// CalculateNextDelay calculates the delay before the next attempt.
func (c *Config) CalculateNextDelay(attempt int) time.Duration {
	if c.Strategy == nil {
		return 0
	}
	return c.Strategy.NextDelay(attempt)
}

// ShouldRetry reports whether another attempt should be made.
func (c *Config) ShouldRetry(attempt int) bool {
	if c.Strategy == nil {
		return false
	}
	return c.Strategy.ShouldRetry(attempt, c.MaxAttempts)
}
