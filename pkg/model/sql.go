package model

import (
	"context"
	"database/sql"
	"slices"
)

// NewSQLConn adapts a database/sql handle to Conn.
// The driver must understand @name placeholders (SQLite does).
func NewSQLConn(db *sql.DB) Conn {
	return &sqlConn{db: db}
}

type sqlConn struct {
	db *sql.DB
}

func (c *sqlConn) Query(ctx context.Context, query string, params Params) ([]Record, error) {
	rows, err := c.db.QueryContext(ctx, query, namedArgs(params)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (c *sqlConn) Exec(ctx context.Context, query string, params Params) (int64, error) {
	res, err := c.db.ExecContext(ctx, query, namedArgs(params)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (c *sqlConn) Begin(ctx context.Context) (Tx, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlTx{tx: tx}, nil
}

func (c *sqlConn) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) Prepare(ctx context.Context, query string) (Stmt, error) {
	stmt, err := t.tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return &sqlStmt{stmt: stmt}, nil
}

func (t *sqlTx) Commit(context.Context) error {
	return t.tx.Commit()
}

func (t *sqlTx) Rollback(context.Context) error {
	return t.tx.Rollback()
}

type sqlStmt struct {
	stmt *sql.Stmt
}

func (s *sqlStmt) Exec(ctx context.Context, params Params) (int64, error) {
	res, err := s.stmt.ExecContext(ctx, namedArgs(params)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *sqlStmt) Close() error {
	return s.stmt.Close()
}

// namedArgs converts params to sql.NamedArg values in a stable order.
func namedArgs(params Params) []any {
	if len(params) == 0 {
		return nil
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	slices.Sort(names)

	args := make([]any, len(names))
	for i, name := range names {
		args[i] = sql.Named(name, params[name])
	}
	return args
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var records []Record
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		rec := make(Record, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				rec[col] = string(b)
				continue
			}
			rec[col] = values[i]
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
