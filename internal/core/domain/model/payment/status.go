package payment

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

type Status int

const (
	UnknownStatus Status = iota
	Pending
	Success
	Failed
	Abandoned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "UNKNOWN",
		Pending:       "PENDING",
		Success:       "SUCCESS",
		Failed:        "FAILED",
		Abandoned:     "ABANDONED",
	}
}

func ParseStatus(s string) (Status, error) {
	for st, name := range getStatusStrings() {
		if st != UnknownStatus && strings.EqualFold(name, s) {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("transaction status", fmt.Errorf("%q is not a valid transaction status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if s < Pending || s > Abandoned {
		return errs.NewValueIsInvalidErrorWithCause("transaction status", fmt.Errorf("%d is not a valid transaction status", s))
	}
	return nil
}

func (s Status) IsFinal() bool {
	return s != Pending
}
