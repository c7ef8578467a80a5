package identity

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor or SystemActor")

// Actor is the caller of a command. The engine checks capabilities itself
// instead of trusting the transport to have done so.
type Actor struct {
	userID kernel.UUID
	role   Role
	guard  guard.ConstructorGuard
}

func NewActor(userID kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{userID: userID, role: role, guard: guard.NewConstructorGuard()}, nil
}

// SystemActor is used by the payment bridge and scheduled jobs.
func SystemActor() Actor {
	return Actor{role: System, guard: guard.NewConstructorGuard()}
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) Role() Role { return a.role }

func (a Actor) IsSystem() bool { return a.role == System }

// UserID returns nil for the system actor. Status logs store it as changed_by.
func (a Actor) UserID() *kernel.UUID {
	if a.IsSystem() {
		return nil
	}
	id := a.userID
	return &id
}

func (a Actor) Is(userID kernel.UUID) bool {
	return !a.IsSystem() && a.userID.IsEqual(userID)
}

func (a Actor) CanDispatch() bool {
	return a.IsSystem() || a.role.IsDispatcher()
}

// RequireDispatcher fails with a PermissionDeniedError naming the action.
func (a Actor) RequireDispatcher(action string) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.CanDispatch() {
		return errs.NewPermissionDeniedError(action)
	}
	return nil
}

// RequireSelfOrDispatcher allows dispatchers and the user identified by userID.
func (a Actor) RequireSelfOrDispatcher(action string, userID kernel.UUID) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.CanDispatch() || a.Is(userID) {
		return nil
	}
	return errs.NewPermissionDeniedError(action)
}

// RequireRider allows only a rider acting on their own behalf.
func (a Actor) RequireRider(action string) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.role != Rider {
		return errs.NewPermissionDeniedError(action)
	}
	return nil
}
