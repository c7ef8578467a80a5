package ports

import (
	"context"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"
)

// NotificationSink receives fire-and-forget events after a commit. Implementations
// must not block the caller and handle their own delivery failures.
type NotificationSink interface {
	NotifyOrderCreated(ctx context.Context, o *order.Order)
	NotifyRiderAssigned(ctx context.Context, o *order.Order, r *rider.Profile)
}
