// Package ports defines the contracts between the core and its adapters:
// repositories bound to a unit of work, and the outbound collaborators
// (notifications, proof storage, payment gateway) that are called outside it.
package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates together with their status log.
type OrderRepository interface {
	// Add inserts the order and its pending status changes.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order if its stored version still matches and appends
	// the pending status changes. A version mismatch is an errs.ConflictError.
	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads the order and locks its row until the unit of work ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	GetByNumber(ctx context.Context, number string) (*order.Order, error)
}
