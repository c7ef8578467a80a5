package commands

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// ReassignOrderCommandHandler forces the order back to ASSIGNED with a new rider,
// even from PICKED or IN_TRANSIT.
type ReassignOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSink
	dispatcher services.OrderDispatcher
}

func NewReassignOrderCommandHandler(uowFactory UoWFactory, notifier ports.NotificationSink) ReassignOrderCommandHandler {
	return ReassignOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		dispatcher: services.NewOrderDispatcher(),
	}
}

func (h ReassignOrderCommandHandler) Handle(ctx context.Context, cmd ReassignOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireDispatcher("reassign order"); err != nil {
		return err
	}

	var (
		reassigned *order.Order
		candidate  services.Candidate
	)
	err := withUnitOfWork(ctx, h.uowFactory, func(uow UoW) error {
		o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		if err = o.CheckOpen(); err != nil {
			return err
		}

		var previous *services.Candidate
		if current := o.Rider(); current != nil {
			prev, prevErr := loadCandidate(ctx, uow, *current)
			if prevErr != nil && !errors.Is(prevErr, errs.ErrObjectNotFound) {
				return prevErr
			}
			if prevErr == nil {
				previous = &prev
			}
		}

		if candidate, err = loadCandidate(ctx, uow, cmd.RiderID()); err != nil {
			return err
		}
		if err = h.dispatcher.Reassign(o, previous, candidate, cmd.Actor().UserID(), time.Now()); err != nil {
			return err
		}
		reassigned = o
		return uow.OrderRepository().Update(ctx, o)
	})
	if err != nil {
		return err
	}

	h.notifier.NotifyRiderAssigned(ctx, reassigned, candidate.Profile)
	return nil
}
