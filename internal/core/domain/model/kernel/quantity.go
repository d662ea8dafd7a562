package kernel

import (
	"foodtruck/internal/pkg/errs"
)

const (
	// MinQuantity is the smallest number of items allowed on an order line.
	MinQuantity = 1

	// MaxQuantity is the largest number of items allowed on an order line.
	MaxQuantity = 10
)

// Quantity is a value object representing the number of items of one kind
// (curry portions or naan) on an order. A quantity is always within
// [MinQuantity, MaxQuantity]; the zero value is invalid.
//
// Quantity is immutable and safe for concurrent use.
type Quantity struct {
	value int
}

// NewQuantity creates a Quantity, validating the bounds. The paramName is
// used in the validation error so callers can report which order line was
// rejected.
func NewQuantity(paramName string, value int) (Quantity, error) {
	if value < MinQuantity || value > MaxQuantity {
		return Quantity{}, errs.NewValueIsOutOfRangeError(paramName, value, MinQuantity, MaxQuantity)
	}
	return Quantity{value: value}, nil
}

// Value returns the number of items.
func (q Quantity) Value() int {
	return q.value
}

// IsEqual reports whether two quantities hold the same count.
func (q Quantity) IsEqual(other Quantity) bool {
	return q.value == other.value
}

// Validate checks the bounds. The zero value fails because 0 < MinQuantity.
func (q Quantity) Validate() error {
	if q.value < MinQuantity || q.value > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", q.value, MinQuantity, MaxQuantity)
	}
	return nil
}
