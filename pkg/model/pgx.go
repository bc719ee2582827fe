package model

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPgxConn adapts a pgx connection pool to Conn.
// Named parameters are passed as pgx.NamedArgs, which pgx rewrites to
// positional placeholders.
func NewPgxConn(pool *pgxpool.Pool) Conn {
	return &pgxConn{pool: pool}
}

type pgxConn struct {
	pool *pgxpool.Pool
}

func (c *pgxConn) Query(ctx context.Context, sql string, params Params) ([]Record, error) {
	rows, err := c.pool.Query(ctx, sql, pgx.NamedArgs(params))
	if err != nil {
		return nil, err
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	records := make([]Record, len(maps))
	for i, m := range maps {
		records[i] = Record(m)
	}
	return records, nil
}

func (c *pgxConn) Exec(ctx context.Context, sql string, params Params) (int64, error) {
	tag, err := c.pool.Exec(ctx, sql, pgx.NamedArgs(params))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (c *pgxConn) Begin(ctx context.Context) (Tx, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxTx{tx: tx}, nil
}

func (c *pgxConn) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

type pgxTx struct {
	tx pgx.Tx
}

// Prepare returns a statement bound to the transaction's connection.
// pgx prepares and caches the statement text on first execution, so every
// row of a batch reuses one server-side prepared statement.
func (t *pgxTx) Prepare(_ context.Context, sql string) (Stmt, error) {
	return &pgxStmt{tx: t.tx, sql: sql}, nil
}

func (t *pgxTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *pgxTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

type pgxStmt struct {
	tx  pgx.Tx
	sql string
}

func (s *pgxStmt) Exec(ctx context.Context, params Params) (int64, error) {
	tag, err := s.tx.Exec(ctx, s.sql, pgx.NamedArgs(params))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *pgxStmt) Close() error { return nil }
