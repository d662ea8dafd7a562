package order

import (
	"fmt"

	"foodtruck/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions:
//
//	Processing ──> Completed
//
// An order is created in Processing by the scheduling engine and moves to
// Completed exactly once, through the mark-ready operation. Completed is a
// final state. Status is a value object that validates transitions and
// provides the wire-format string representation.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Processing is the initial status assigned when the scheduling engine
	// commits the order with its pickup time. The truck is (or will be)
	// preparing it.
	Processing

	// Completed indicates the order has been marked ready for pickup.
	// This is a final state with no further transitions allowed.
	Completed
)

// getStatusStrings returns a map of Status values to their wire names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Processing: "PROCESSING",
		Completed:  "COMPLETED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Processing: "PROCESSING",
		Completed:  "COMPLETED",
	}
}

// StatusFromString parses a wire-format status name ("PROCESSING",
// "COMPLETED"). Unknown names are rejected.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are Processing and Completed; Unknown and out-of-range
// values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status, "UNKNOWN" for invalid
// values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Complete transitions the status to Completed.
//
// Valid transition:
//   - Processing -> Completed (order marked ready)
//
// A Completed order cannot be completed again; that returns a conflict so
// callers can distinguish a double mark-ready from other invalid states.
func (s Status) Complete() (Status, error) {
	switch s {
	case Processing:
		return Completed, nil
	case Completed:
		return 0, errs.NewConflictErrorWithCause(
			"status", s.String(),
			fmt.Errorf("order is already completed"),
		)
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}
}
