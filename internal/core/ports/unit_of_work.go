package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one database transaction. Repositories obtained after Begin
// run inside it; Rollback after Commit is a harmless no-op error.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	UserRepository() UserRepository
	RiderRepository() RiderRepository
	EarningRepository() EarningRepository
	TransactionRepository() TransactionRepository
	LocationRepository() LocationRepository
}
