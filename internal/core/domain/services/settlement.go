package services

import (
	"fmt"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"
)

// Settlement credits the assigned rider when an order reaches a terminal outcome.
// It runs in the same unit of work as the status write that triggered it.
type Settlement struct{}

func NewSettlement() Settlement {
	return Settlement{}
}

// Settle applies the outcome of o to the rider profile:
//   - DELIVERED: returns a new earning of RiderShare(fee) and credits the profile,
//     unless alreadySettled reports an existing earning for the order
//   - FAILED: counts a failed delivery, no earning
//   - anything else: no-op
//
// The returned earning is nil whenever nothing has to be inserted.
func (s Settlement) Settle(o *order.Order, profile *rider.Profile, alreadySettled bool, now time.Time) (*rider.Earning, error) {
	switch o.Status() { //nolint:exhaustive // only terminal outcomes settle
	case order.Delivered, order.Failed:
	default:
		return nil, nil
	}
	if o.Rider() == nil || profile == nil {
		return nil, nil
	}
	if !o.IsAssignedTo(profile.UserID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"rider", fmt.Errorf("order %s is not assigned to rider %s", o.Number(), profile.UserID()))
	}

	if o.Status() == order.Failed {
		profile.RecordFailedDelivery()
		return nil, nil
	}
	if alreadySettled {
		return nil, nil
	}
	amount := RiderShare(o.DeliveryFee())
	earning, err := rider.NewEarning(profile.UserID(), o.ID(), amount, o.DeliveryFee(), now)
	if err != nil {
		return nil, err
	}
	if err := profile.RecordSuccessfulDelivery(amount); err != nil {
		return nil, err
	}
	return earning, nil
}
