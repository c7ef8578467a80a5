package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"
)

// UpdateRiderLocationCommandHandler appends a ping and moves the profile's
// current location in the same transaction.
type UpdateRiderLocationCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateRiderLocationCommandHandler(uowFactory UoWFactory) UpdateRiderLocationCommandHandler {
	return UpdateRiderLocationCommandHandler{uowFactory: uowFactory}
}

func (h UpdateRiderLocationCommandHandler) Handle(ctx context.Context, cmd UpdateRiderLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireRider("update location"); err != nil {
		return err
	}
	riderID := *cmd.Actor().UserID()
	in := cmd.Input()

	now := time.Now().UTC()
	ping, err := rider.NewLocationPing(riderID, cmd.Coordinates(), now)
	if err != nil {
		return err
	}
	if ping, err = ping.WithMotion(in.AccuracyM, in.SpeedKmh, in.Heading); err != nil {
		return err
	}
	ping.OrderID = in.OrderID

	return withUnitOfWork(ctx, h.uowFactory, func(uow UoW) error {
		if in.OrderID != nil {
			o, err := uow.OrderRepository().Get(ctx, *in.OrderID)
			if err != nil {
				return err
			}
			if !o.IsAssignedTo(riderID) {
				return errs.NewValueIsInvalidErrorWithCause("order",
					fmt.Errorf("order %s is not assigned to rider %s", o.Number(), riderID))
			}
		}

		p, err := uow.RiderRepository().GetForUpdate(ctx, riderID)
		if err != nil {
			return err
		}
		if err = p.UpdateLocation(ping.Coordinates, ping.RecordedAt); err != nil {
			return err
		}
		if err = uow.LocationRepository().Add(ctx, ping); err != nil {
			return err
		}
		return uow.RiderRepository().Update(ctx, p)
	})
}
