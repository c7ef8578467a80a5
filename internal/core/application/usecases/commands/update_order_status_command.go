package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
	ErrSetOrderPaymentStatusCommandIsNotConstructed = errors.New(
		"SetOrderPaymentStatusCommand must be created via NewSetOrderPaymentStatusCommand constructor",
	)
)

// UpdateOrderStatusCommand moves an order along the status table. Dispatchers
// may update any order, riders only the orders assigned to them.
type UpdateOrderStatusCommand struct {
	actor   identity.Actor
	orderID kernel.UUID
	status  order.Status
	notes   string
	guard   guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(
	actor identity.Actor,
	orderID kernel.UUID,
	status order.Status,
	notes string,
) (UpdateOrderStatusCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	return UpdateOrderStatusCommand{
		actor:   actor,
		orderID: orderID,
		status:  status,
		notes:   strings.TrimSpace(notes),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) Actor() identity.Actor { return c.actor }
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c UpdateOrderStatusCommand) Status() order.Status { return c.status }
func (c UpdateOrderStatusCommand) Notes() string { return c.notes }

// SetOrderPaymentStatusCommand is issued by dispatchers or by payment reconciliation.
type SetOrderPaymentStatusCommand struct {
	actor   identity.Actor
	orderID kernel.UUID
	status  order.PaymentStatus
	guard   guard.ConstructorGuard
}

func NewSetOrderPaymentStatusCommand(
	actor identity.Actor,
	orderID kernel.UUID,
	status order.PaymentStatus,
) (SetOrderPaymentStatusCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return SetOrderPaymentStatusCommand{}, err
	}
	return SetOrderPaymentStatusCommand{
		actor:   actor,
		orderID: orderID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetOrderPaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderPaymentStatusCommandIsNotConstructed)
}

func (c SetOrderPaymentStatusCommand) Actor() identity.Actor { return c.actor }
func (c SetOrderPaymentStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c SetOrderPaymentStatusCommand) Status() order.PaymentStatus { return c.status }
