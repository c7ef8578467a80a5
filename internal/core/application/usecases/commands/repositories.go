// Package commands holds the write use cases. Every handler follows the same
// shape: validate the command, check the actor, open a unit of work, load with
// row locks, apply domain logic, persist, commit, then call outbound
// collaborators that must not run inside the transaction.
package commands

import (
	"context"

	"logistics/internal/core/ports"
)

type (
	// TxManager controls the transaction of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	IdentityRepoFactory interface {
		UserRepository() ports.UserRepository
		RiderRepository() ports.RiderRepository
	}

	SettlementRepoFactory interface {
		EarningRepository() ports.EarningRepository
	}

	PaymentRepoFactory interface {
		TransactionRepository() ports.TransactionRepository
	}

	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	// UoW exposes every repository bound to one transaction.
	UoW interface {
		TxManager
		OrderRepoFactory
		IdentityRepoFactory
		SettlementRepoFactory
		PaymentRepoFactory
		LocationRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// withUnitOfWork runs fn inside a fresh unit of work and commits when fn succeeds.
// The deferred rollback is a no-op after a successful commit.
func withUnitOfWork(ctx context.Context, factory UoWFactory, fn func(uow UoW) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
