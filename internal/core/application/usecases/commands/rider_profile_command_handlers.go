package commands

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"
)

// SetRiderProfileStatusCommandHandler is the dispatcher-side profile control.
type SetRiderProfileStatusCommandHandler struct {
	uowFactory UoWFactory
}

func NewSetRiderProfileStatusCommandHandler(uowFactory UoWFactory) SetRiderProfileStatusCommandHandler {
	return SetRiderProfileStatusCommandHandler{uowFactory: uowFactory}
}

func (h SetRiderProfileStatusCommandHandler) Handle(ctx context.Context, cmd SetRiderProfileStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireDispatcher("set rider profile status"); err != nil {
		return err
	}
	return updateProfile(ctx, h.uowFactory, cmd.RiderID(), func(p *rider.Profile) error {
		return p.ChangeStatus(cmd.Status())
	})
}

type SetRiderAvailabilityCommandHandler struct {
	uowFactory UoWFactory
}

func NewSetRiderAvailabilityCommandHandler(uowFactory UoWFactory) SetRiderAvailabilityCommandHandler {
	return SetRiderAvailabilityCommandHandler{uowFactory: uowFactory}
}

func (h SetRiderAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetRiderAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireRider("set availability"); err != nil {
		return err
	}
	return updateProfile(ctx, h.uowFactory, *cmd.Actor().UserID(), func(p *rider.Profile) error {
		p.SetAvailability(cmd.Available())
		return nil
	})
}

type UpdateRiderVehicleCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateRiderVehicleCommandHandler(uowFactory UoWFactory) UpdateRiderVehicleCommandHandler {
	return UpdateRiderVehicleCommandHandler{uowFactory: uowFactory}
}

func (h UpdateRiderVehicleCommandHandler) Handle(ctx context.Context, cmd UpdateRiderVehicleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireRider("update vehicle"); err != nil {
		return err
	}
	return updateProfile(ctx, h.uowFactory, *cmd.Actor().UserID(), func(p *rider.Profile) error {
		return p.UpdateVehicle(cmd.Vehicle())
	})
}

func updateProfile(ctx context.Context, factory UoWFactory, riderID kernel.UUID, mutate func(p *rider.Profile) error) error {
	return withUnitOfWork(ctx, factory, func(uow UoW) error {
		p, err := uow.RiderRepository().GetForUpdate(ctx, riderID)
		if err != nil {
			return err
		}
		if err = mutate(p); err != nil {
			return err
		}
		return uow.RiderRepository().Update(ctx, p)
	})
}
