package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"

	"github.com/shopspring/decimal"
)

type CreateOrderResult struct {
	ID          kernel.UUID
	Number      string
	DeliveryFee decimal.Decimal
	// DistanceKm is set when the fee was quoted from coordinates.
	DistanceKm *float64
}

// CreateOrderCommandHandler creates orders and emits NotifyOrderCreated after commit.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSink
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, notifier ports.NotificationSink) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}
	if err := cmd.Actor().RequireDispatcher("create order"); err != nil {
		return CreateOrderResult{}, err
	}

	var result CreateOrderResult
	if fee := cmd.DeliveryFee(); fee != nil {
		result.DeliveryFee = *fee
	} else {
		distance := cmd.Pickup().Coordinates().DistanceKm(*cmd.Delivery().Coordinates())
		result.DistanceKm = &distance
		result.DeliveryFee = services.DeliveryFee(distance)
	}

	now := time.Now().UTC()
	created, err := order.NewOrder(
		kernel.NewUUID(),
		order.GenerateNumber(now),
		cmd.Customer(),
		cmd.Pickup(),
		cmd.Delivery(),
		cmd.Package(),
		result.DeliveryFee,
		cmd.Actor().UserID(),
		now,
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	err = withUnitOfWork(ctx, h.uowFactory, func(uow UoW) error {
		return uow.OrderRepository().Add(ctx, created)
	})
	if err != nil {
		return CreateOrderResult{}, err
	}

	h.notifier.NotifyOrderCreated(ctx, created)

	result.ID = created.ID()
	result.Number = created.Number()
	return result, nil
}
