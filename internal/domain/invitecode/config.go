package invitecode

import (
	"errors"
	"fmt"
)

// Generated codes must satisfy the invitecode request tag.
const (
	minCodeLength = 6
	maxCodeLength = 32
)

// Config holds invitation code engine configuration.
type Config struct {
	// CodeLength is the number of characters in a generated code.
	CodeLength int

	// MaxGenerateAttempts bounds regeneration after a code collision.
	MaxGenerateAttempts int

	// MaxRedeemAttempts bounds retries after losing a usage race.
	MaxRedeemAttempts int

	// DefaultUsageLimit applies when a request does not set one.
	DefaultUsageLimit int

	// MaxUsageLimit caps the usage limit of a single code.
	MaxUsageLimit int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		CodeLength:          12,
		MaxGenerateAttempts: 5,
		MaxRedeemAttempts:   3,
		DefaultUsageLimit:   1,
		MaxUsageLimit:       1000,
	}
}

// Validate fills unset fields with defaults and rejects settings that
// contradict each other.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.CodeLength == 0 {
		c.CodeLength = def.CodeLength
	}
	if c.MaxGenerateAttempts == 0 {
		c.MaxGenerateAttempts = def.MaxGenerateAttempts
	}
	if c.MaxRedeemAttempts == 0 {
		c.MaxRedeemAttempts = def.MaxRedeemAttempts
	}
	if c.DefaultUsageLimit == 0 {
		c.DefaultUsageLimit = def.DefaultUsageLimit
	}
	if c.MaxUsageLimit == 0 {
		c.MaxUsageLimit = def.MaxUsageLimit
	}

	switch {
	case c.CodeLength < minCodeLength || c.CodeLength > maxCodeLength:
		return fmt.Errorf("code length %d outside %d..%d", c.CodeLength, minCodeLength, maxCodeLength)
	case c.MaxGenerateAttempts < 0 || c.MaxRedeemAttempts < 0:
		return errors.New("attempt limits must be positive")
	case c.DefaultUsageLimit < 0:
		return errors.New("default usage limit must be positive")
	case c.MaxUsageLimit < c.DefaultUsageLimit:
		return fmt.Errorf("max usage limit %d below default %d", c.MaxUsageLimit, c.DefaultUsageLimit)
	}
	return nil
}
