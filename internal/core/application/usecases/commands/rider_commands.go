package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrRegisterRiderCommandIsNotConstructed = errors.New(
		"RegisterRiderCommand must be created via NewRegisterRiderCommand constructor",
	)
	ErrSetRiderProfileStatusCommandIsNotConstructed = errors.New(
		"SetRiderProfileStatusCommand must be created via NewSetRiderProfileStatusCommand constructor",
	)
	ErrSetRiderAvailabilityCommandIsNotConstructed = errors.New(
		"SetRiderAvailabilityCommand must be created via NewSetRiderAvailabilityCommand constructor",
	)
	ErrUpdateRiderVehicleCommandIsNotConstructed = errors.New(
		"UpdateRiderVehicleCommand must be created via NewUpdateRiderVehicleCommand constructor",
	)
	ErrUpdateRiderLocationCommandIsNotConstructed = errors.New(
		"UpdateRiderLocationCommand must be created via NewUpdateRiderLocationCommand constructor",
	)
)

type RegisterRiderInput struct {
	Email     string
	Phone     string
	FirstName string
	LastName  string
	Vehicle   rider.Vehicle
}

// RegisterRiderCommand creates a RIDER user and a PENDING profile.
type RegisterRiderCommand struct {
	input RegisterRiderInput
	guard guard.ConstructorGuard
}

func NewRegisterRiderCommand(in RegisterRiderInput) (RegisterRiderCommand, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	var errList []error
	if in.Email == "" {
		errList = append(errList, errs.NewValueIsRequiredError("email"))
	}
	if strings.TrimSpace(in.Phone) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("phone"))
	}
	if strings.TrimSpace(in.FirstName) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("first name"))
	}
	if in.Vehicle.Type != rider.UnknownVehicle {
		errList = append(errList, in.Vehicle.Type.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return RegisterRiderCommand{}, err
	}
	return RegisterRiderCommand{input: in, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterRiderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterRiderCommandIsNotConstructed)
}

func (c RegisterRiderCommand) Input() RegisterRiderInput { return c.input }

// SetRiderProfileStatusCommand activates, suspends or deactivates a rider. Dispatcher only.
type SetRiderProfileStatusCommand struct {
	actor   identity.Actor
	riderID kernel.UUID
	status  rider.Status
	guard   guard.ConstructorGuard
}

func NewSetRiderProfileStatusCommand(actor identity.Actor, riderID kernel.UUID, status rider.Status) (SetRiderProfileStatusCommand, error) {
	if err := errors.Join(actor.Validate(), riderID.Validate(), status.Validate()); err != nil {
		return SetRiderProfileStatusCommand{}, err
	}
	return SetRiderProfileStatusCommand{actor: actor, riderID: riderID, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (c SetRiderProfileStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderProfileStatusCommandIsNotConstructed)
}

func (c SetRiderProfileStatusCommand) Actor() identity.Actor { return c.actor }
func (c SetRiderProfileStatusCommand) RiderID() kernel.UUID { return c.riderID }
func (c SetRiderProfileStatusCommand) Status() rider.Status { return c.status }

// SetRiderAvailabilityCommand is issued by the rider for their own profile.
type SetRiderAvailabilityCommand struct {
	actor     identity.Actor
	available bool
	guard     guard.ConstructorGuard
}

func NewSetRiderAvailabilityCommand(actor identity.Actor, available bool) (SetRiderAvailabilityCommand, error) {
	if err := actor.Validate(); err != nil {
		return SetRiderAvailabilityCommand{}, err
	}
	return SetRiderAvailabilityCommand{actor: actor, available: available, guard: guard.NewConstructorGuard()}, nil
}

func (c SetRiderAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderAvailabilityCommandIsNotConstructed)
}

func (c SetRiderAvailabilityCommand) Actor() identity.Actor { return c.actor }
func (c SetRiderAvailabilityCommand) Available() bool { return c.available }

type UpdateRiderVehicleCommand struct {
	actor   identity.Actor
	vehicle rider.Vehicle
	guard   guard.ConstructorGuard
}

func NewUpdateRiderVehicleCommand(actor identity.Actor, vehicle rider.Vehicle) (UpdateRiderVehicleCommand, error) {
	if err := errors.Join(actor.Validate(), vehicle.Type.Validate()); err != nil {
		return UpdateRiderVehicleCommand{}, err
	}
	return UpdateRiderVehicleCommand{actor: actor, vehicle: vehicle, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateRiderVehicleCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRiderVehicleCommandIsNotConstructed)
}

func (c UpdateRiderVehicleCommand) Actor() identity.Actor { return c.actor }
func (c UpdateRiderVehicleCommand) Vehicle() rider.Vehicle { return c.vehicle }

type LocationInput struct {
	Latitude  float64
	Longitude float64
	AccuracyM *float64
	SpeedKmh  *float64
	Heading   *float64
	OrderID   *kernel.UUID
}

// UpdateRiderLocationCommand records a GPS ping from the acting rider.
type UpdateRiderLocationCommand struct {
	actor       identity.Actor
	coordinates kernel.Coordinates
	input       LocationInput
	guard       guard.ConstructorGuard
}

func NewUpdateRiderLocationCommand(actor identity.Actor, in LocationInput) (UpdateRiderLocationCommand, error) {
	coords, err := kernel.NewCoordinates(in.Latitude, in.Longitude)
	var orderErr error
	if in.OrderID != nil {
		orderErr = in.OrderID.Validate()
	}
	if err = errors.Join(actor.Validate(), err, orderErr); err != nil {
		return UpdateRiderLocationCommand{}, err
	}
	return UpdateRiderLocationCommand{actor: actor, coordinates: coords, input: in, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateRiderLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRiderLocationCommandIsNotConstructed)
}

func (c UpdateRiderLocationCommand) Actor() identity.Actor { return c.actor }
func (c UpdateRiderLocationCommand) Coordinates() kernel.Coordinates { return c.coordinates }
func (c UpdateRiderLocationCommand) Input() LocationInput { return c.input }
