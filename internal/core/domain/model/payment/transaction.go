package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "NGN"

var ErrTransactionIsNotConstructed = errors.New("Transaction must be created via NewTransaction or RestoreTransaction")

// Checkout is what the gateway returns when a payment is initialized.
type Checkout struct {
	AuthorizationURL string
	AccessCode       string
	GatewayReference string
}

// Outcome is the verified result of a payment as reported by the gateway.
type Outcome struct {
	Succeeded        bool
	GatewayReference string
	Channel          string
	PaidAt           *time.Time
	// Metadata is the raw gateway payload, stored as-is.
	Metadata []byte
}

type Transaction struct {
	id         kernel.UUID
	orderID    kernel.UUID
	reference  string
	amount     decimal.Decimal
	currency   string
	status     Status
	gatewayRef string
	authURL    string
	accessCode string
	channel    string
	paidAt     *time.Time
	metadata   []byte
	createdAt  time.Time
	updatedAt  time.Time
	guard      guard.ConstructorGuard
}

func NewTransaction(id, orderID kernel.UUID, reference string, amount decimal.Decimal, now time.Time) (*Transaction, error) {
	now = now.UTC()
	t := &Transaction{
		currency:  DefaultCurrency,
		status:    Pending,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		t.setReference(reference),
		t.setAmount(amount),
	); err != nil {
		return nil, err
	}
	t.id = id
	t.orderID = orderID
	return t, nil
}

// TransactionState is the persisted shape of a transaction.
type TransactionState struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	Reference  string
	Amount     decimal.Decimal
	Currency   string
	Status     Status
	GatewayRef string
	AuthURL    string
	AccessCode string
	Channel    string
	PaidAt     *time.Time
	Metadata   []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func RestoreTransaction(s TransactionState) (*Transaction, error) {
	t, err := NewTransaction(s.ID, s.OrderID, s.Reference, s.Amount, s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := s.Status.Validate(); err != nil {
		return nil, err
	}
	if s.Currency != "" {
		t.currency = s.Currency
	}
	t.status = s.Status
	t.gatewayRef = s.GatewayRef
	t.authURL = s.AuthURL
	t.accessCode = s.AccessCode
	t.channel = s.Channel
	t.paidAt = s.PaidAt
	t.metadata = s.Metadata
	t.createdAt = s.CreatedAt
	t.updatedAt = s.UpdatedAt
	return t, nil
}

func (t *Transaction) Validate() error {
	if t == nil {
		return ErrTransactionIsNotConstructed
	}
	return t.guard.Validate(ErrTransactionIsNotConstructed)
}

func (t *Transaction) ID() kernel.UUID { return t.id }
func (t *Transaction) OrderID() kernel.UUID { return t.orderID }
func (t *Transaction) Reference() string { return t.reference }
func (t *Transaction) Amount() decimal.Decimal { return t.amount }
func (t *Transaction) Currency() string { return t.currency }
func (t *Transaction) Status() Status { return t.status }
func (t *Transaction) GatewayRef() string { return t.gatewayRef }
func (t *Transaction) AuthURL() string { return t.authURL }
func (t *Transaction) AccessCode() string { return t.accessCode }
func (t *Transaction) Channel() string { return t.channel }
func (t *Transaction) PaidAt() *time.Time { return t.paidAt }
func (t *Transaction) Metadata() []byte { return t.metadata }
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time { return t.updatedAt }

// AmountInKobo is the amount in the currency's minor unit, as gateways expect it.
func (t *Transaction) AmountInKobo() int64 {
	return t.amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// AttachCheckout stores the gateway's checkout details on a pending transaction.
func (t *Transaction) AttachCheckout(c Checkout, now time.Time) error {
	if err := t.requirePending(); err != nil {
		return err
	}
	t.authURL = c.AuthorizationURL
	t.accessCode = c.AccessCode
	if c.GatewayReference != "" {
		t.gatewayRef = c.GatewayReference
	}
	t.updatedAt = now.UTC()
	return nil
}

// Reconcile applies a verified gateway outcome. It reports whether the transaction
// changed; applying any outcome to a SUCCESS transaction is a no-op.
func (t *Transaction) Reconcile(o Outcome, now time.Time) (bool, error) {
	if t.status == Success {
		return false, nil
	}
	now = now.UTC()
	if o.GatewayReference != "" {
		t.gatewayRef = o.GatewayReference
	}
	if len(o.Metadata) > 0 {
		t.metadata = o.Metadata
	}
	t.updatedAt = now
	if !o.Succeeded {
		if t.status == Failed {
			return false, nil
		}
		t.status = Failed
		return true, nil
	}
	paidAt := now
	if o.PaidAt != nil {
		paidAt = o.PaidAt.UTC()
	}
	t.status = Success
	t.channel = o.Channel
	t.paidAt = &paidAt
	return true, nil
}

// Abandon marks a pending transaction as ABANDONED.
func (t *Transaction) Abandon(now time.Time) error {
	if err := t.requirePending(); err != nil {
		return err
	}
	t.status = Abandoned
	t.updatedAt = now.UTC()
	return nil
}

func (t *Transaction) requirePending() error {
	if t.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"transaction status", fmt.Errorf("transaction %s is %s, not PENDING", t.reference, t.status))
	}
	return nil
}

func (t *Transaction) setReference(reference string) error {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return errs.NewValueIsRequiredError("transaction reference")
	}
	t.reference = reference
	return nil
}

func (t *Transaction) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("transaction amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	t.amount = amount
	return nil
}
