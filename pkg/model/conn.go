package model

import (
	"context"
	"errors"
)

// Conn is the storage boundary a Table executes against.
// Implementations must hand out an exclusive connection per call or transaction;
// a Conn is shared by all requests.
type Conn interface {
	// Query runs a row-returning statement.
	Query(ctx context.Context, sql string, params Params) ([]Record, error)
	// Exec runs a statement and returns the number of affected rows.
	Exec(ctx context.Context, sql string, params Params) (int64, error)
	// Begin starts a transaction.
	Begin(ctx context.Context) (Tx, error)
	// Ping verifies the storage is reachable.
	Ping(ctx context.Context) error
}

// Tx is an open transaction.
type Tx interface {
	// Prepare compiles sql once for repeated execution inside the transaction.
	Prepare(ctx context.Context, sql string) (Stmt, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Stmt is a statement prepared within a Tx.
type Stmt interface {
	Exec(ctx context.Context, params Params) (int64, error)
	Close() error
}

// withTx executes fn within a transaction.
// If fn returns an error, the transaction is rolled back.
// If fn panics, the transaction is rolled back and the panic is re-raised.
// If fn succeeds, the transaction is committed.
func withTx(ctx context.Context, conn Conn, fn func(tx Tx) error) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}
