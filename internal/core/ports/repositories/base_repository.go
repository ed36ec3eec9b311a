package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for database transaction management.
// Repositories that compose multi-step writes (posting, year activation)
// expose it so services can keep the steps in one atomic unit.
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction; rolling back an already finished
	// transaction is a no-op
	Rollback(ctx context.Context, tx pgx.Tx) error
}
