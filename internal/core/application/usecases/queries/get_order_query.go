// Package queries contains the read side. Handlers issue raw SQL through gorm
// and return flat read models; they never load aggregates.
package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its status history. Dispatchers see every
// order; riders see only orders assigned to them.
//
// Example:
//
//	query, err := queries.NewGetOrderQuery(actor, orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := queries.NewGetOrderQueryHandler(db).Handle(ctx, query)
type GetOrderQuery struct {
	actor   identity.Actor
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(actor identity.Actor, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Actor() identity.Actor { return q.actor }
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

type AddressView struct {
	Line      string
	Latitude  *float64
	Longitude *float64
}

// Coordinates returns nil unless both parts are present.
func (a AddressView) Coordinates() *kernel.Coordinates {
	c, err := kernel.OptionalCoordinates(a.Latitude, a.Longitude)
	if err != nil {
		return nil
	}
	return c
}

type StatusLogView struct {
	Status    order.Status
	ChangedBy *kernel.UUID
	Notes     string
	CreatedAt time.Time
}

type OrderView struct {
	ID                 kernel.UUID
	Number             string
	CustomerName       string
	CustomerPhone      string
	CustomerEmail      string
	Pickup             AddressView
	Delivery           AddressView
	PackageDescription string
	PackageWeightKg    *float64
	DeliveryFee        decimal.Decimal
	Status             order.Status
	PaymentStatus      order.PaymentStatus
	RiderID            *kernel.UUID
	RiderName          string
	HasProof           bool
	DeliveryNotes      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	AssignedAt         *time.Time
	PickedAt           *time.Time
	DeliveredAt        *time.Time
	// Logs are newest first.
	Logs []StatusLogView
}
