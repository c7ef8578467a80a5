package order

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
type Status int

const (
	// Unknown helps catch uninitialized Status values.
	Unknown Status = iota
	Created
	Assigned
	Accepted
	Picked
	InTransit
	Delivered
	Failed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Created:   "CREATED",
		Assigned:  "ASSIGNED",
		Accepted:  "ACCEPTED",
		Picked:    "PICKED",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Failed:    "FAILED",
		Cancelled: "CANCELLED",
	}
}

// getTransitions is the forward state machine. Terminal states have no entry.
//
//nolint:exhaustive // terminal and unknown states allow nothing
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Created:   {Assigned, Cancelled},
		Assigned:  {Accepted, Cancelled},
		Accepted:  {Picked, Failed},
		Picked:    {InTransit, Failed},
		InTransit: {Delivered, Failed},
	}
}

func ParseStatus(s string) (Status, error) {
	for st, name := range getStatusStrings() {
		if st != Unknown && strings.EqualFold(name, s) {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if s < Created || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed || s == Cancelled
}

// IsActive reports whether a rider is currently working the order.
func (s Status) IsActive() bool {
	return s == Assigned || s == Accepted || s == Picked || s == InTransit
}

// AllowedNext lists the statuses reachable from s under the forward state machine.
func (s Status) AllowedNext() []Status {
	next := getTransitions()[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// ValidateTransition fails with a validation error naming the rejected transition.
func (s Status) ValidateTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if s.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status transition",
			fmt.Errorf("%s -> %s is not allowed: %s is terminal", s, next, s),
		)
	}
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"status transition",
		fmt.Errorf("%s -> %s is not allowed", s, next),
	)
}
