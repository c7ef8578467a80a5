package order

import (
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrCustomerIsNotConstructed = errs.NewValueIsRequiredError("customer must be created via NewCustomer")
	ErrAddressIsNotConstructed  = errs.NewValueIsRequiredError("address must be created via NewAddress")
)

// Customer is the contact the rider hands the package to.
type Customer struct {
	name  string
	phone string
	email string
	guard guard.ConstructorGuard
}

func NewCustomer(name, phone, email string) (Customer, error) {
	name, phone, email = strings.TrimSpace(name), strings.TrimSpace(phone), strings.TrimSpace(email)
	if name == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer name")
	}
	if phone == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer phone")
	}
	return Customer{name: name, phone: phone, email: email, guard: guard.NewConstructorGuard()}, nil
}

func (c Customer) Name() string { return c.name }
func (c Customer) Phone() string { return c.phone }
func (c Customer) Email() string { return c.email }

func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// Address is a free-text address with optional coordinates.
type Address struct {
	line        string
	coordinates *kernel.Coordinates
	guard       guard.ConstructorGuard
}

func NewAddress(line string, coordinates *kernel.Coordinates) (Address, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}
	if coordinates != nil {
		if err := coordinates.Validate(); err != nil {
			return Address{}, err
		}
	}
	return Address{line: line, coordinates: coordinates, guard: guard.NewConstructorGuard()}, nil
}

func (a Address) Line() string { return a.line }
func (a Address) Coordinates() *kernel.Coordinates { return a.coordinates }

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Package describes the parcel. A zero value is a package without description or weight.
type Package struct {
	description string
	weightKg    *float64
}

func NewPackage(description string, weightKg *float64) (Package, error) {
	if weightKg != nil && *weightKg <= 0 {
		return Package{}, errs.NewValueIsInvalidErrorWithCause(
			"package weight", fmt.Errorf("%v is not greater than 0", *weightKg))
	}
	return Package{description: strings.TrimSpace(description), weightKg: weightKg}, nil
}

func (p Package) Description() string { return p.description }
func (p Package) WeightKg() *float64 { return p.weightKg }
