package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
)

// UpdateOrderStatusCommandHandler applies one transition and, for DELIVERED and
// FAILED, settles the rider in the same transaction:
//  1. lock the order row and apply the transition
//  2. write the order and its log row
//  3. lock the rider profile, check for an existing earning, credit or count
//
// A concurrent second "mark delivered" waits on the order lock, then fails the
// transition check because the order is already terminal.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	settlement services.Settlement
}

func NewUpdateOrderStatusCommandHandler(uowFactory UoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		settlement: services.NewSettlement(),
	}
}

func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().Validate(); err != nil {
		return err
	}

	return withUnitOfWork(ctx, h.uowFactory, func(uow UoW) error {
		orders := uow.OrderRepository()
		o, err := orders.GetForUpdate(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		if err = requireAssignedOrDispatcher(cmd.Actor(), o, "update status of order"); err != nil {
			return err
		}

		now := time.Now()
		if err = o.UpdateStatus(cmd.Status(), cmd.Actor().UserID(), cmd.Notes(), now); err != nil {
			return err
		}
		if err = orders.Update(ctx, o); err != nil {
			return err
		}

		if !o.Status().IsTerminal() || o.Status() == order.Cancelled || o.Rider() == nil {
			return nil
		}
		return h.settle(ctx, uow, o, now)
	})
}

func (h UpdateOrderStatusCommandHandler) settle(ctx context.Context, uow UoW, o *order.Order, now time.Time) error {
	profile, err := uow.RiderRepository().GetForUpdate(ctx, *o.Rider())
	if err != nil {
		return err
	}
	settled, err := uow.EarningRepository().ExistsForOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	earning, err := h.settlement.Settle(o, profile, settled, now)
	if err != nil {
		return err
	}
	if earning != nil {
		if err = uow.EarningRepository().Add(ctx, earning); err != nil {
			return err
		}
	}
	if earning == nil && o.Status() == order.Delivered {
		return nil
	}
	return uow.RiderRepository().Update(ctx, profile)
}
