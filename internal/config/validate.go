package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid marks an empty or malformed configuration. It is structural:
// callers terminate instead of entering the per-step recovery loop.
var ErrInvalid = errors.New("invalid configuration")

// Validate checks the configuration and returns a detailed error on failure.
func (c *Config) Validate() error {
	if len(c.Steps) == 0 {
		return fmt.Errorf("%w: at least one step is required", ErrInvalid)
	}

	for i, step := range c.Steps {
		if step.Name == "" {
			return fmt.Errorf("%w: step %d: name is required", ErrInvalid, i+1)
		}
		if strings.ContainsAny(step.Name, "\n\r") {
			return fmt.Errorf("%w: step %d: name must not contain line breaks", ErrInvalid, i+1)
		}
		switch step.Tier {
		case TierUser, TierElevated:
		default:
			return fmt.Errorf("%w: step %d (%s): unknown tier %q (want %q or %q)",
				ErrInvalid, i+1, step.Name, step.Tier, TierUser, TierElevated)
		}
	}

	// Duplicate names are tolerated: completion tracking is keyed by name, so
	// a repeated name reads as already done once the first occurrence
	// succeeds. Sequences relying on that are on their own.

	return nil
}
