package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfiguration is wrapped by every settings or snapshot validation failure
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Bounds on the arrangement settings
const (
	MinGroupCount = 2
	MaxGroupCount = 8
	MinGroupSize  = 2
	MaxGroupSize  = 8
)

// Settings are the arrangement parameters
type Settings struct {
	GroupCount  int          `validate:"min=2,max=8"`
	MinPerGroup int          `validate:"min=2,max=8"`
	MaxPerGroup int          `validate:"min=2,max=8,gtefield=MinPerGroup"`
	Policy      GenderPolicy `validate:"required"`
}

// DefaultSettings matches the defaults of a fresh class
func DefaultSettings() Settings {
	return Settings{
		GroupCount:  4,
		MinPerGroup: 3,
		MaxPerGroup: 4,
		Policy:      PolicyBalanced,
	}
}

// Capacity is the total number of seats across all groups
func (s Settings) Capacity() int {
	return s.GroupCount * s.MaxPerGroup
}

var validate = validator.New()

// Validate checks the settings bounds. The returned error wraps ErrInvalidConfiguration.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if !s.Policy.IsValid() {
		return fmt.Errorf("%w: unknown gender policy %q", ErrInvalidConfiguration, s.Policy)
	}
	return nil
}
