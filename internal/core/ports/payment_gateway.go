package ports

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/payment"
)

// ChargeSuccessEvent is the only webhook event that moves a transaction.
const ChargeSuccessEvent = "charge.success"

// ErrPaymentGateway marks failures reported by or while reaching the gateway.
var ErrPaymentGateway = errors.New("payment gateway error")

type InitializePaymentRequest struct {
	Reference   string
	Email       string
	AmountKobo  int64
	Currency    string
	CallbackURL string
	Metadata    map[string]string
}

// WebhookEvent is a verified gateway callback.
type WebhookEvent struct {
	Event     string
	Reference string
	Outcome   payment.Outcome
}

// PaymentGateway is the external card/bank payment provider.
type PaymentGateway interface {
	Initialize(ctx context.Context, req InitializePaymentRequest) (payment.Checkout, error)
	Verify(ctx context.Context, reference string) (payment.Outcome, error)
	// ParseWebhook checks the signature over the raw payload before decoding it.
	ParseWebhook(payload []byte, signature string) (WebhookEvent, error)
}
