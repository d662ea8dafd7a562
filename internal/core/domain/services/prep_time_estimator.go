package services

import (
	"fmt"
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/pkg/errs"
)

const (
	// DefaultNaanUnitTime is the per-naan preparation time. Baking a naan is
	// by far the most expensive step.
	DefaultNaanUnitTime = 3 * time.Minute

	// DefaultCurryUnitTime is the per-portion curry pouring time.
	DefaultCurryUnitTime = 20 * time.Second
)

// PrepTimeEstimator computes how long one order occupies the truck. The
// per-unit service times are fixed configuration, not derived values; they
// reflect the real preparation cost of each item kind.
type PrepTimeEstimator struct {
	naanUnitTime  time.Duration
	curryUnitTime time.Duration
}

// NewPrepTimeEstimator creates an estimator with the given per-unit service
// times. Both must be positive.
func NewPrepTimeEstimator(naanUnitTime, curryUnitTime time.Duration) (PrepTimeEstimator, error) {
	if naanUnitTime <= 0 {
		return PrepTimeEstimator{}, errs.NewValueIsInvalidErrorWithCause("naanUnitTime",
			fmt.Errorf("%s is not a positive duration", naanUnitTime))
	}
	if curryUnitTime <= 0 {
		return PrepTimeEstimator{}, errs.NewValueIsInvalidErrorWithCause("curryUnitTime",
			fmt.Errorf("%s is not a positive duration", curryUnitTime))
	}
	return PrepTimeEstimator{
		naanUnitTime:  naanUnitTime,
		curryUnitTime: curryUnitTime,
	}, nil
}

// Estimate returns the exact additive preparation time:
//
//	naanQty*naanUnitTime + curryQty*curryUnitTime
func (e PrepTimeEstimator) Estimate(curryQty, naanQty kernel.Quantity) time.Duration {
	return time.Duration(naanQty.Value())*e.naanUnitTime +
		time.Duration(curryQty.Value())*e.curryUnitTime
}
