package commands

import (
	"context"
	"time"
)

// SetOrderPaymentStatusCommandHandler changes only the payment status; the
// delivery lifecycle is untouched and no status log row is written.
type SetOrderPaymentStatusCommandHandler struct {
	uowFactory UoWFactory
}

func NewSetOrderPaymentStatusCommandHandler(uowFactory UoWFactory) SetOrderPaymentStatusCommandHandler {
	return SetOrderPaymentStatusCommandHandler{uowFactory: uowFactory}
}

func (h SetOrderPaymentStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderPaymentStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireDispatcher("set order payment status"); err != nil {
		return err
	}

	return withUnitOfWork(ctx, h.uowFactory, func(uow UoW) error {
		o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		if err = o.SetPaymentStatus(cmd.Status(), time.Now()); err != nil {
			return err
		}
		return uow.OrderRepository().Update(ctx, o)
	})
}
