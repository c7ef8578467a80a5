package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

// AssignOrderCommandHandler serializes on the order row: the order is read
// FOR UPDATE, so of two concurrent assignments the second sees ASSIGNED and fails.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSink
	dispatcher services.OrderDispatcher
}

func NewAssignOrderCommandHandler(uowFactory UoWFactory, notifier ports.NotificationSink) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		dispatcher: services.NewOrderDispatcher(),
	}
}

func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireDispatcher("assign order"); err != nil {
		return err
	}

	var (
		assigned  *order.Order
		candidate services.Candidate
	)
	err := withUnitOfWork(ctx, h.uowFactory, func(uow UoW) error {
		o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		if err = o.CheckAssignable(); err != nil {
			return err
		}
		if candidate, err = loadCandidate(ctx, uow, cmd.RiderID()); err != nil {
			return err
		}
		if err = h.dispatcher.Assign(o, candidate, cmd.Actor().UserID(), time.Now()); err != nil {
			return err
		}
		assigned = o
		return uow.OrderRepository().Update(ctx, o)
	})
	if err != nil {
		return err
	}

	h.notifier.NotifyRiderAssigned(ctx, assigned, candidate.Profile)
	return nil
}
