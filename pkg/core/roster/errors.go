package roster

import (
	"errors"
	"fmt"

	"github.com/jakechorley/seat-arranger/pkg/core/allocator"
)

var (
	// ErrRejected is wrapped by every *RejectedError
	ErrRejected = errors.New("rejected")

	// ErrUnknownIndividual is returned when an id is not on the roster
	ErrUnknownIndividual = errors.New("unknown individual")

	// ErrInvalidPair is returned for self-pairs and pairs that contradict an existing constraint
	ErrInvalidPair = errors.New("invalid pair")

	// ErrPairNotFound is returned when removing a pair that is not declared
	ErrPairNotFound = errors.New("pair not found")
)

// Reasons a manual assignment can be rejected. The rule reasons are shared with the allocator.
const (
	ReasonCapacity          = allocator.ReasonCapacity
	ReasonGender            = allocator.ReasonGender
	ReasonApart             = allocator.ReasonApart
	ReasonUnknownIndividual allocator.Reason = "unknown_individual"
	ReasonUnknownGroup      allocator.Reason = "unknown_group"
)

// RejectedError reports which rule blocked a manual assignment
type RejectedError struct {
	Reason       allocator.Reason
	IndividualID string
	GroupIndex   int
}

func (e *RejectedError) Error() string {
	switch e.Reason {
	case ReasonUnknownIndividual:
		return fmt.Sprintf("rejected: individual %s does not exist", e.IndividualID)
	case ReasonUnknownGroup:
		return fmt.Sprintf("rejected: group %d does not exist", e.GroupIndex+1)
	case ReasonCapacity:
		return fmt.Sprintf("rejected: group %d is full", e.GroupIndex+1)
	case ReasonGender:
		return fmt.Sprintf("rejected: %s conflicts with the gender policy of group %d", e.IndividualID, e.GroupIndex+1)
	case ReasonApart:
		return fmt.Sprintf("rejected: %s must be kept apart from a member of group %d", e.IndividualID, e.GroupIndex+1)
	}
	return fmt.Sprintf("rejected: cannot assign %s to group %d (%s)", e.IndividualID, e.GroupIndex+1, e.Reason)
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}
