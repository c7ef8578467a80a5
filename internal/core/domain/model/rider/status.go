package rider

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status is the administrative state of a rider profile.
type Status int

const (
	UnknownStatus Status = iota
	Pending
	Active
	Inactive
	Suspended
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "UNKNOWN",
		Pending:       "PENDING",
		Active:        "ACTIVE",
		Inactive:      "INACTIVE",
		Suspended:     "SUSPENDED",
	}
}

func ParseStatus(s string) (Status, error) {
	for st, name := range getStatusStrings() {
		if st != UnknownStatus && strings.EqualFold(name, s) {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("rider status", fmt.Errorf("%q is not a valid rider status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if s < Pending || s > Suspended {
		return errs.NewValueIsInvalidErrorWithCause("rider status", fmt.Errorf("%d is not a valid rider status", s))
	}
	return nil
}
