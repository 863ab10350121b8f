package allocator

import (
	"errors"
	"fmt"
)

// ErrInsufficientPopulation is wrapped when the population cannot fill every group to its floor
var ErrInsufficientPopulation = errors.New("insufficient population")

// InsufficientPopulationError reports how many individuals were needed versus available
type InsufficientPopulationError struct {
	Required  int
	Available int
}

func (e *InsufficientPopulationError) Error() string {
	return fmt.Sprintf("insufficient population: groups need at least %d individuals but only %d are available", e.Required, e.Available)
}

func (e *InsufficientPopulationError) Unwrap() error {
	return ErrInsufficientPopulation
}
