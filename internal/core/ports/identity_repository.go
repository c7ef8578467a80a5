package ports

import (
	"context"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"
)

type UserRepository interface {
	Add(ctx context.Context, user *identity.User) error
	Get(ctx context.Context, id kernel.UUID) (*identity.User, error)
	// ExistsByEmail is case-insensitive.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RiderRepository persists rider profiles, keyed by user id.
type RiderRepository interface {
	Add(ctx context.Context, profile *rider.Profile) error
	Update(ctx context.Context, profile *rider.Profile) error
	Get(ctx context.Context, userID kernel.UUID) (*rider.Profile, error)
	// GetForUpdate locks the profile row so concurrent settlements serialize.
	GetForUpdate(ctx context.Context, userID kernel.UUID) (*rider.Profile, error)
}

// EarningRepository stores settlement credits. At most one exists per order.
type EarningRepository interface {
	Add(ctx context.Context, earning *rider.Earning) error
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)
}

// LocationRepository appends rider GPS pings.
type LocationRepository interface {
	Add(ctx context.Context, ping rider.LocationPing) error
}
