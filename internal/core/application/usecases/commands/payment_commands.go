package commands

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// DefaultAbandonBatch bounds how many transactions one unit of work abandons.
const DefaultAbandonBatch = 100

var (
	ErrInitializePaymentCommandIsNotConstructed = errors.New(
		"InitializePaymentCommand must be created via NewInitializePaymentCommand constructor",
	)
	ErrVerifyPaymentCommandIsNotConstructed = errors.New(
		"VerifyPaymentCommand must be created via NewVerifyPaymentCommand constructor",
	)
	ErrAbandonStaleTransactionsCommandIsNotConstructed = errors.New(
		"AbandonStaleTransactionsCommand must be created via NewAbandonStaleTransactionsCommand constructor",
	)
)

type InitializePaymentCommand struct {
	orderID     kernel.UUID
	email       string
	callbackURL string
	guard       guard.ConstructorGuard
}

func NewInitializePaymentCommand(orderID kernel.UUID, email, callbackURL string) (InitializePaymentCommand, error) {
	email = strings.TrimSpace(email)
	var emailErr error
	if email == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	} else if _, err := mail.ParseAddress(email); err != nil {
		emailErr = errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	if err := errors.Join(orderID.Validate(), emailErr); err != nil {
		return InitializePaymentCommand{}, err
	}
	return InitializePaymentCommand{
		orderID:     orderID,
		email:       email,
		callbackURL: strings.TrimSpace(callbackURL),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c InitializePaymentCommand) Validate() error {
	return c.guard.Validate(ErrInitializePaymentCommandIsNotConstructed)
}

func (c InitializePaymentCommand) OrderID() kernel.UUID { return c.orderID }
func (c InitializePaymentCommand) Email() string { return c.email }
func (c InitializePaymentCommand) CallbackURL() string { return c.callbackURL }

type VerifyPaymentCommand struct {
	reference string
	guard     guard.ConstructorGuard
}

func NewVerifyPaymentCommand(reference string) (VerifyPaymentCommand, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return VerifyPaymentCommand{}, errs.NewValueIsRequiredError("reference")
	}
	return VerifyPaymentCommand{reference: reference, guard: guard.NewConstructorGuard()}, nil
}

func (c VerifyPaymentCommand) Validate() error {
	return c.guard.Validate(ErrVerifyPaymentCommandIsNotConstructed)
}

func (c VerifyPaymentCommand) Reference() string { return c.reference }

type AbandonStaleTransactionsCommand struct {
	olderThan time.Duration
	batch     int
	guard     guard.ConstructorGuard
}

// NewAbandonStaleTransactionsCommand uses DefaultAbandonBatch when batch is not positive.
func NewAbandonStaleTransactionsCommand(olderThan time.Duration, batch int) (AbandonStaleTransactionsCommand, error) {
	if olderThan <= 0 {
		return AbandonStaleTransactionsCommand{}, errs.NewValueIsOutOfRangeError("older than", olderThan, "0s", "unbounded")
	}
	if batch <= 0 {
		batch = DefaultAbandonBatch
	}
	return AbandonStaleTransactionsCommand{olderThan: olderThan, batch: batch, guard: guard.NewConstructorGuard()}, nil
}

func (c AbandonStaleTransactionsCommand) Validate() error {
	return c.guard.Validate(ErrAbandonStaleTransactionsCommandIsNotConstructed)
}

func (c AbandonStaleTransactionsCommand) OlderThan() time.Duration { return c.olderThan }
func (c AbandonStaleTransactionsCommand) Batch() int { return c.batch }
