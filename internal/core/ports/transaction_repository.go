package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/payment"
)

type TransactionRepository interface {
	Add(ctx context.Context, tx *payment.Transaction) error
	Update(ctx context.Context, tx *payment.Transaction) error
	GetByReference(ctx context.Context, reference string) (*payment.Transaction, error)
	// GetByReferenceForUpdate locks the row so concurrent webhooks and verifications serialize.
	GetByReferenceForUpdate(ctx context.Context, reference string) (*payment.Transaction, error)
	// ListPendingBefore locks and returns at most limit PENDING transactions created
	// before cutoff, oldest first. Rows locked by another unit of work are skipped.
	ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]*payment.Transaction, error)
}
