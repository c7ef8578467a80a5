package identity

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

// User is a directory entry. Riders additionally own a rider.Profile keyed by
// the same id.
type User struct {
	id        kernel.UUID
	email     string
	phone     string
	firstName string
	lastName  string
	role      Role
	isActive  bool
	createdAt time.Time
	guard     guard.ConstructorGuard
}

func NewUser(id kernel.UUID, email, phone, firstName, lastName string, role Role, now time.Time) (*User, error) {
	u := &User{
		isActive:  true,
		createdAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		u.setID(id),
		u.setEmail(email),
		u.setPhone(phone),
		u.setName(firstName, lastName),
		u.setRole(role),
	); err != nil {
		return nil, err
	}
	return u, nil
}

func RestoreUser(
	id kernel.UUID,
	email, phone, firstName, lastName string,
	role Role,
	isActive bool,
	createdAt time.Time,
) (*User, error) {
	u, err := NewUser(id, email, phone, firstName, lastName, role, createdAt)
	if err != nil {
		return nil, err
	}
	u.isActive = isActive
	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID { return u.id }
func (u *User) Email() string { return u.email }
func (u *User) Phone() string { return u.phone }
func (u *User) FirstName() string { return u.firstName }
func (u *User) LastName() string { return u.lastName }
func (u *User) Role() Role { return u.role }
func (u *User) IsActive() bool { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) FullName() string {
	return strings.TrimSpace(u.firstName + " " + u.lastName)
}

// Actor returns the identity this user acts under.
func (u *User) Actor() Actor {
	return Actor{userID: u.id, role: u.role, guard: guard.NewConstructorGuard()}
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	u.email = email
	return nil
}

func (u *User) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	u.phone = phone
	return nil
}

func (u *User) setName(first, last string) error {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if first == "" {
		return errs.NewValueIsRequiredError("first name")
	}
	if len(first) > 150 || len(last) > 150 {
		return errs.NewValueIsInvalidErrorWithCause("name", fmt.Errorf("name parts are limited to 150 characters"))
	}
	u.firstName, u.lastName = first, last
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
