package identity

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

type Role int

const (
	UnknownRole Role = iota
	Admin
	Manager
	Rider
	System
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "UNKNOWN",
		Admin:       "ADMIN",
		Manager:     "MANAGER",
		Rider:       "RIDER",
		System:      "SYSTEM",
	}
}

// ParseRole accepts the persisted names of user roles. SYSTEM is not a user role
// and is rejected.
func ParseRole(s string) (Role, error) {
	for r, name := range getRoleStrings() {
		if r != UnknownRole && r != System && strings.EqualFold(name, s) {
			return r, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "UNKNOWN"
}

func (r Role) Validate() error {
	if r != Admin && r != Manager && r != Rider {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// IsDispatcher reports whether the role may run order dispatch operations.
func (r Role) IsDispatcher() bool {
	return r == Admin || r == Manager
}
