package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/payment"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PaymentResult describes a transaction after a payment command.
type PaymentResult struct {
	Reference        string
	OrderID          kernel.UUID
	Amount           decimal.Decimal
	Currency         string
	Status           payment.Status
	AuthorizationURL string
	AccessCode       string
	PaidAt           *time.Time
}

func newPaymentResult(tx *payment.Transaction) PaymentResult {
	return PaymentResult{
		Reference:        tx.Reference(),
		OrderID:          tx.OrderID(),
		Amount:           tx.Amount(),
		Currency:         tx.Currency(),
		Status:           tx.Status(),
		AuthorizationURL: tx.AuthURL(),
		AccessCode:       tx.AccessCode(),
		PaidAt:           tx.PaidAt(),
	}
}

// InitializePaymentCommandHandler opens a PENDING transaction for the order's
// delivery fee. The gateway is called between two units of work so no row lock
// is held during the HTTP round trip.
type InitializePaymentCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
}

func NewInitializePaymentCommandHandler(uowFactory UoWFactory, gateway ports.PaymentGateway) InitializePaymentCommandHandler {
	return InitializePaymentCommandHandler{uowFactory: uowFactory, gateway: gateway}
}

func (h InitializePaymentCommandHandler) Handle(ctx context.Context, cmd InitializePaymentCommand) (PaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return PaymentResult{}, err
	}

	var (
		tx          *payment.Transaction
		orderNumber string
	)
	err := withUnitOfWork(ctx, h.uowFactory, func(uow UoW) error {
		o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		if o.PaymentStatus() == order.PaymentPaid {
			return errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("order %s is already paid", o.Number()))
		}
		now := time.Now()
		tx, err = payment.NewTransaction(kernel.NewUUID(), o.ID(), payment.GenerateReference(now), o.DeliveryFee(), now)
		if err != nil {
			return err
		}
		orderNumber = o.Number()
		return uow.TransactionRepository().Add(ctx, tx)
	})
	if err != nil {
		return PaymentResult{}, err
	}

	checkout, err := h.gateway.Initialize(ctx, ports.InitializePaymentRequest{
		Reference:   tx.Reference(),
		Email:       cmd.Email(),
		AmountKobo:  tx.AmountInKobo(),
		Currency:    tx.Currency(),
		CallbackURL: cmd.CallbackURL(),
		Metadata:    map[string]string{"order_id": tx.OrderID().String(), "order_number": orderNumber},
	})
	if err != nil {
		return PaymentResult{}, err
	}

	err = withUnitOfWork(ctx, h.uowFactory, func(uow UoW) error {
		locked, err := uow.TransactionRepository().GetByReferenceForUpdate(ctx, tx.Reference())
		if err != nil {
			return err
		}
		if err = locked.AttachCheckout(checkout, time.Now()); err != nil {
			return err
		}
		tx = locked
		return uow.TransactionRepository().Update(ctx, locked)
	})
	if err != nil {
		return PaymentResult{}, err
	}
	return newPaymentResult(tx), nil
}

type VerifyPaymentCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
}

func NewVerifyPaymentCommandHandler(uowFactory UoWFactory, gateway ports.PaymentGateway) VerifyPaymentCommandHandler {
	return VerifyPaymentCommandHandler{uowFactory: uowFactory, gateway: gateway}
}

// Handle asks the gateway for the outcome unless the transaction already succeeded.
func (h VerifyPaymentCommandHandler) Handle(ctx context.Context, cmd VerifyPaymentCommand) (PaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return PaymentResult{}, err
	}

	tx, err := h.uowFactory.Create().TransactionRepository().GetByReference(ctx, cmd.Reference())
	if err != nil {
		return PaymentResult{}, err
	}
	if tx.Status() == payment.Success {
		return newPaymentResult(tx), nil
	}

	outcome, err := h.gateway.Verify(ctx, cmd.Reference())
	if err != nil {
		return PaymentResult{}, err
	}
	if tx, err = reconcilePayment(ctx, h.uowFactory, cmd.Reference(), outcome); err != nil {
		return PaymentResult{}, err
	}
	return newPaymentResult(tx), nil
}

type HandlePaymentWebhookCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
}

func NewHandlePaymentWebhookCommandHandler(uowFactory UoWFactory, gateway ports.PaymentGateway) HandlePaymentWebhookCommandHandler {
	return HandlePaymentWebhookCommandHandler{uowFactory: uowFactory, gateway: gateway}
}

// Handle verifies and applies a gateway callback. Events other than
// charge.success and unknown references are acknowledged without changes.
func (h HandlePaymentWebhookCommandHandler) Handle(ctx context.Context, payload []byte, signature string) error {
	event, err := h.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}
	if event.Event != ports.ChargeSuccessEvent || event.Reference == "" {
		return nil
	}

	_, err = reconcilePayment(ctx, h.uowFactory, event.Reference, event.Outcome)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	return err
}

// reconcilePayment applies a verified outcome under the transaction's row lock
// and marks the order PAID when the transaction first succeeds.
func reconcilePayment(ctx context.Context, factory UoWFactory, reference string, outcome payment.Outcome) (*payment.Transaction, error) {
	var tx *payment.Transaction
	err := withUnitOfWork(ctx, factory, func(uow UoW) error {
		var err error
		tx, err = uow.TransactionRepository().GetByReferenceForUpdate(ctx, reference)
		if err != nil {
			return err
		}
		now := time.Now()
		changed, err := tx.Reconcile(outcome, now)
		if err != nil || !changed {
			return err
		}
		if err = uow.TransactionRepository().Update(ctx, tx); err != nil {
			return err
		}
		if tx.Status() != payment.Success {
			return nil
		}

		o, err := uow.OrderRepository().GetForUpdate(ctx, tx.OrderID())
		if err != nil {
			return err
		}
		if err = o.SetPaymentStatus(order.PaymentPaid, now); err != nil {
			return err
		}
		return uow.OrderRepository().Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

type AbandonStaleTransactionsCommandHandler struct {
	uowFactory UoWFactory
}

func NewAbandonStaleTransactionsCommandHandler(uowFactory UoWFactory) AbandonStaleTransactionsCommandHandler {
	return AbandonStaleTransactionsCommandHandler{uowFactory: uowFactory}
}

// Handle abandons PENDING transactions older than the cutoff, one batch per
// unit of work, and returns how many it abandoned.
func (h AbandonStaleTransactionsCommandHandler) Handle(ctx context.Context, cmd AbandonStaleTransactionsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-cmd.OlderThan())
	total := 0
	for {
		n := 0
		err := withUnitOfWork(ctx, h.uowFactory, func(uow UoW) error {
			stale, err := uow.TransactionRepository().ListPendingBefore(ctx, cutoff, cmd.Batch())
			if err != nil {
				return err
			}
			now := time.Now()
			for _, tx := range stale {
				if err = tx.Abandon(now); err != nil {
					return err
				}
				if err = uow.TransactionRepository().Update(ctx, tx); err != nil {
					return err
				}
			}
			n = len(stale)
			return nil
		})
		if err != nil {
			return total, err
		}
		total += n
		if n < cmd.Batch() {
			return total, nil
		}
	}
}
