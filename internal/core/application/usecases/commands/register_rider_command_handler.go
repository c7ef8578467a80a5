package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"
)

type RegisterRiderCommandHandler struct {
	uowFactory UoWFactory
}

func NewRegisterRiderCommandHandler(uowFactory UoWFactory) RegisterRiderCommandHandler {
	return RegisterRiderCommandHandler{uowFactory: uowFactory}
}

func (h RegisterRiderCommandHandler) Handle(ctx context.Context, cmd RegisterRiderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	in := cmd.Input()

	u, err := identity.NewUser(kernel.NewUUID(), in.Email, in.Phone, in.FirstName, in.LastName, identity.Rider, time.Now())
	if err != nil {
		return kernel.UUID{}, err
	}
	p, err := rider.NewProfile(u.ID(), u.FullName(), u.Phone(), in.Vehicle)
	if err != nil {
		return kernel.UUID{}, err
	}

	err = withUnitOfWork(ctx, h.uowFactory, func(uow UoW) error {
		exists, err := uow.UserRepository().ExistsByEmail(ctx, u.Email())
		if err != nil {
			return err
		}
		if exists {
			return errs.NewValueIsInvalidError("email " + u.Email() + " is already registered")
		}
		if err = uow.UserRepository().Add(ctx, u); err != nil {
			return err
		}
		return uow.RiderRepository().Add(ctx, p)
	})
	if err != nil {
		return kernel.UUID{}, err
	}
	return u.ID(), nil
}
