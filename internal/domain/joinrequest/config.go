package joinrequest

import (
	"errors"
	"time"
)

// Config holds join request workflow configuration.
type Config struct {
	// RateLimitCount is how many requests a user may create per window.
	RateLimitCount int

	// RateLimitWindow is the trailing window the rate limit counts over.
	RateLimitWindow time.Duration

	// StaleAfter is how long a request may stay pending before the sweep declines it.
	StaleAfter time.Duration

	// SweepInterval is how often the staleness sweep runs.
	SweepInterval time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		RateLimitCount:  5,
		RateLimitWindow: 24 * time.Hour,
		StaleAfter:      30 * 24 * time.Hour, // 30 days
		SweepInterval:   time.Hour,
	}
}

// Validate fills unset fields with defaults and rejects negative settings.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.RateLimitCount == 0 {
		c.RateLimitCount = def.RateLimitCount
	}
	if c.RateLimitWindow == 0 {
		c.RateLimitWindow = def.RateLimitWindow
	}
	if c.StaleAfter == 0 {
		c.StaleAfter = def.StaleAfter
	}
	if c.SweepInterval == 0 {
		c.SweepInterval = def.SweepInterval
	}

	if c.RateLimitCount < 0 || c.RateLimitWindow < 0 || c.StaleAfter < 0 || c.SweepInterval < 0 {
		return errors.New("join request limits must be positive")
	}
	return nil
}
