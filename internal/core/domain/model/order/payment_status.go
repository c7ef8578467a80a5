package order

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

type PaymentStatus int

const (
	UnknownPayment PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentFailed
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		UnknownPayment:  "UNKNOWN",
		PaymentPending:  "PENDING",
		PaymentPaid:     "PAID",
		PaymentFailed:   "FAILED",
		PaymentRefunded: "REFUNDED",
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for ps, name := range getPaymentStatusStrings() {
		if ps != UnknownPayment && strings.EqualFold(name, s) {
			return ps, nil
		}
	}
	return UnknownPayment, errs.NewValueIsInvalidErrorWithCause(
		"payment status", fmt.Errorf("%q is not a valid payment status", s))
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s PaymentStatus) Validate() error {
	if s < PaymentPending || s > PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}
