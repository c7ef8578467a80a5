package commands

import (
	"context"
	"errors"
	"strings"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrAssignOrderCommandIsNotConstructed = errors.New(
		"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
	)
	ErrReassignOrderCommandIsNotConstructed = errors.New(
		"ReassignOrderCommand must be created via NewReassignOrderCommand constructor",
	)
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
)

// riderTarget is shared by the assign and reassign commands.
type riderTarget struct {
	actor   identity.Actor
	orderID kernel.UUID
	riderID kernel.UUID
	guard   guard.ConstructorGuard
}

func newRiderTarget(actor identity.Actor, orderID, riderID kernel.UUID) (riderTarget, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate(), riderID.Validate()); err != nil {
		return riderTarget{}, err
	}
	return riderTarget{actor: actor, orderID: orderID, riderID: riderID, guard: guard.NewConstructorGuard()}, nil
}

func (t riderTarget) Actor() identity.Actor { return t.actor }
func (t riderTarget) OrderID() kernel.UUID { return t.orderID }
func (t riderTarget) RiderID() kernel.UUID { return t.riderID }

// AssignOrderCommand attaches a rider to a CREATED order.
type AssignOrderCommand struct{ riderTarget }

func NewAssignOrderCommand(actor identity.Actor, orderID, riderID kernel.UUID) (AssignOrderCommand, error) {
	t, err := newRiderTarget(actor, orderID, riderID)
	return AssignOrderCommand{t}, err
}

func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// ReassignOrderCommand replaces the rider of any non-terminal order.
type ReassignOrderCommand struct{ riderTarget }

func NewReassignOrderCommand(actor identity.Actor, orderID, riderID kernel.UUID) (ReassignOrderCommand, error) {
	t, err := newRiderTarget(actor, orderID, riderID)
	return ReassignOrderCommand{t}, err
}

func (c ReassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrReassignOrderCommandIsNotConstructed)
}

type CancelOrderCommand struct {
	actor   identity.Actor
	orderID kernel.UUID
	reason  string
	guard   guard.ConstructorGuard
}

func NewCancelOrderCommand(actor identity.Actor, orderID kernel.UUID, reason string) (CancelOrderCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{
		actor:   actor,
		orderID: orderID,
		reason:  strings.TrimSpace(reason),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) Actor() identity.Actor { return c.actor }
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CancelOrderCommand) Reason() string { return c.reason }

// loadCandidate resolves a rider for assignment. A missing user is NotFound; a
// user without a profile yields a candidate the dispatcher rejects.
func loadCandidate(ctx context.Context, uow UoW, riderID kernel.UUID) (services.Candidate, error) {
	user, err := uow.UserRepository().Get(ctx, riderID)
	if err != nil {
		return services.Candidate{}, err
	}
	profile, err := uow.RiderRepository().Get(ctx, riderID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return services.Candidate{}, err
	}
	return services.Candidate{User: user, Profile: profile}, nil
}
