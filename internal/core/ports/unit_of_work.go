package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command or delivery.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Events handed to repositories
// are stored with the aggregate and published only after Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when no transaction is active.
	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	// OrderRepository is bound to the transaction started by Begin.
	OrderRepository() OrderRepository

	// CartRepository is bound to the transaction started by Begin.
	CartRepository() CartRepository
}
