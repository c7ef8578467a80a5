package commands

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// AddressInput is an address line with optional coordinates. Latitude and
// longitude must be given together.
type AddressInput struct {
	Line      string
	Latitude  *float64
	Longitude *float64
}

type CreateOrderInput struct {
	CustomerName       string
	CustomerPhone      string
	CustomerEmail      string
	Pickup             AddressInput
	Delivery           AddressInput
	PackageDescription string
	PackageWeightKg    *float64
	// DeliveryFee is quoted from the coordinates when nil.
	DeliveryFee *decimal.Decimal
}

// CreateOrderCommand registers a new CREATED order.
//
// Example:
//
//	cmd, err := commands.NewCreateOrderCommand(actor, commands.CreateOrderInput{
//	    CustomerName:  "Ada Obi",
//	    CustomerPhone: "+2348012345678",
//	    Pickup:        commands.AddressInput{Line: "12 Allen Ave, Ikeja", Latitude: &lat1, Longitude: &lng1},
//	    Delivery:      commands.AddressInput{Line: "3 Admiralty Way, Lekki", Latitude: &lat2, Longitude: &lng2},
//	})
type CreateOrderCommand struct {
	actor    identity.Actor
	customer order.Customer
	pickup   order.Address
	delivery order.Address
	pkg      order.Package
	fee      *decimal.Decimal

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(actor identity.Actor, in CreateOrderInput) (CreateOrderCommand, error) {
	customer, customerErr := order.NewCustomer(in.CustomerName, in.CustomerPhone, in.CustomerEmail)
	pickup, pickupErr := newAddress("pickup", in.Pickup)
	delivery, deliveryErr := newAddress("delivery", in.Delivery)
	pkg, pkgErr := order.NewPackage(in.PackageDescription, in.PackageWeightKg)

	var feeErr error
	if in.DeliveryFee != nil && in.DeliveryFee.IsNegative() {
		feeErr = errs.NewValueIsInvalidErrorWithCause("delivery fee", fmt.Errorf("%s is negative", in.DeliveryFee))
	}
	if in.DeliveryFee == nil && (pickup.Coordinates() == nil || delivery.Coordinates() == nil) && pickupErr == nil && deliveryErr == nil {
		feeErr = errs.NewValueIsRequiredErrorWithCause("delivery fee",
			errors.New("no fee given and no pickup and delivery coordinates to quote from"))
	}

	if err := errors.Join(actor.Validate(), customerErr, pickupErr, deliveryErr, pkgErr, feeErr); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		actor:    actor,
		customer: customer,
		pickup:   pickup,
		delivery: delivery,
		pkg:      pkg,
		fee:      in.DeliveryFee,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() identity.Actor { return c.actor }
func (c CreateOrderCommand) Customer() order.Customer { return c.customer }
func (c CreateOrderCommand) Pickup() order.Address { return c.pickup }
func (c CreateOrderCommand) Delivery() order.Address { return c.delivery }
func (c CreateOrderCommand) Package() order.Package { return c.pkg }

// DeliveryFee is nil when the fee has to be quoted.
func (c CreateOrderCommand) DeliveryFee() *decimal.Decimal { return c.fee }

func newAddress(param string, in AddressInput) (order.Address, error) {
	coords, err := kernel.OptionalCoordinates(in.Latitude, in.Longitude)
	if err != nil {
		return order.Address{}, fmt.Errorf("%s: %w", param, err)
	}
	addr, err := order.NewAddress(in.Line, coords)
	if err != nil {
		return order.Address{}, fmt.Errorf("%s: %w", param, err)
	}
	return addr, nil
}
