package services

import (
	"fmt"
	"time"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"
)

const unassigned = "Unassigned"

// Candidate is a rider resolved for assignment. Profile is nil when the user
// has no rider profile.
type Candidate struct {
	User    *identity.User
	Profile *rider.Profile
}

func (c Candidate) name() string {
	if c.Profile != nil && c.Profile.FullName() != "" {
		return c.Profile.FullName()
	}
	return c.User.FullName()
}

// OrderDispatcher attaches riders to orders.
//
// Business rules:
//   - Only CREATED orders can be assigned; any non-terminal order can be reassigned
//   - The candidate must be a RIDER user with an ACTIVE, available profile
//   - The order state is checked before the rider, so a lost race reports the order state
//   - Rider availability is not changed by assignment
type OrderDispatcher struct{}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Assign moves a CREATED order to ASSIGNED with the log note "Assigned to <name>".
func (d OrderDispatcher) Assign(o *order.Order, c Candidate, by *kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.CheckAssignable(); err != nil {
		return err
	}
	if err := d.CheckEligible(c); err != nil {
		return err
	}
	return o.Assign(c.User.ID(), by, "Assigned to "+c.name(), now)
}

// Reassign replaces the rider of a non-terminal order. previous is the currently
// assigned rider, nil when there is none.
func (d OrderDispatcher) Reassign(o *order.Order, previous *Candidate, c Candidate, by *kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.CheckOpen(); err != nil {
		return err
	}
	if err := d.CheckEligible(c); err != nil {
		return err
	}
	from := unassigned
	if previous != nil && previous.User != nil {
		from = previous.name()
	}
	note := fmt.Sprintf("Reassigned from %s to %s", from, c.name())
	return o.Reassign(c.User.ID(), by, note, now)
}

// CheckEligible fails with a validation error unless the candidate can take an order.
func (d OrderDispatcher) CheckEligible(c Candidate) error {
	if c.User == nil {
		return errs.NewValueIsRequiredError("rider")
	}
	if c.User.Role() != identity.Rider {
		return errs.NewValueIsInvalidErrorWithCause(
			"rider", fmt.Errorf("user %s has role %s, not RIDER", c.User.ID(), c.User.Role()))
	}
	if c.Profile == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"rider", fmt.Errorf("user %s has no rider profile", c.User.ID()))
	}
	return c.Profile.CheckEligible()
}
