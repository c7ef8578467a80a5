package commands

import (
	"context"
	"time"
)

type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireDispatcher("cancel order"); err != nil {
		return err
	}

	return withUnitOfWork(ctx, h.uowFactory, func(uow UoW) error {
		o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		if err = o.Cancel(cmd.Actor().UserID(), cmd.Reason(), time.Now()); err != nil {
			return err
		}
		return uow.OrderRepository().Update(ctx, o)
	})
}
