package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

type RequestProofUploadCommandHandler struct {
	uowFactory UoWFactory
	storage    ports.ProofStorage
}

func NewRequestProofUploadCommandHandler(uowFactory UoWFactory, storage ports.ProofStorage) RequestProofUploadCommandHandler {
	return RequestProofUploadCommandHandler{uowFactory: uowFactory, storage: storage}
}

// Handle returns a presigned PUT URL. Nothing is written until the upload is confirmed.
func (h RequestProofUploadCommandHandler) Handle(ctx context.Context, cmd RequestProofUploadCommand) (ports.PresignedURL, error) {
	if err := cmd.Validate(); err != nil {
		return ports.PresignedURL{}, err
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return ports.PresignedURL{}, err
	}
	if err = requireAssignedOrDispatcher(cmd.Actor(), o, "access proof of order"); err != nil {
		return ports.PresignedURL{}, err
	}

	key := ProofKeyFor(o.ID()) + kernel.NewUUID().String() + "." + cmd.Extension()
	return h.storage.PresignUpload(ctx, key, cmd.ContentType())
}

type ConfirmProofUploadCommandHandler struct {
	uowFactory UoWFactory
	storage    ports.ProofStorage
}

func NewConfirmProofUploadCommandHandler(uowFactory UoWFactory, storage ports.ProofStorage) ConfirmProofUploadCommandHandler {
	return ConfirmProofUploadCommandHandler{uowFactory: uowFactory, storage: storage}
}

func (h ConfirmProofUploadCommandHandler) Handle(ctx context.Context, cmd ConfirmProofUploadCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	exists, err := h.storage.Exists(ctx, cmd.Key())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("proof", cmd.Key())
	}

	return withUnitOfWork(ctx, h.uowFactory, func(uow UoW) error {
		o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		if err = requireAssignedOrDispatcher(cmd.Actor(), o, "access proof of order"); err != nil {
			return err
		}
		if err = o.AttachProof(cmd.Key(), time.Now()); err != nil {
			return err
		}
		return uow.OrderRepository().Update(ctx, o)
	})
}

// requireAssignedOrDispatcher allows dispatchers and the rider the order is assigned to.
func requireAssignedOrDispatcher(actor identity.Actor, o *order.Order, action string) error {
	if actor.CanDispatch() {
		return nil
	}
	if rider := o.Rider(); rider != nil && actor.Is(*rider) {
		return nil
	}
	return errs.NewPermissionDeniedError(action + " " + o.Number())
}
