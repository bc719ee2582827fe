package model

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/kiln/pkg/logger"
)

// DefaultKey is the where key Update and UpdateMany use when none is given.
const DefaultKey = "id"

// Table is a generic data access object for one relational table.
// Only whitelisted columns are ever written; all values are bound parameters.
// A Table is safe for concurrent use when its Conn is.
type Table struct {
	conn    Conn
	logger  *slog.Logger
	allowed map[string]struct{}
	name    string
	columns []string
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger used for statement tracing and failures.
func WithLogger(l *slog.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates a Table named name whose writable columns are columns, in order.
//
// Example:
//
//	interests := model.New(conn, "team_interests",
//	    []string{"description", "active", "deleted"},
//	)
func New(conn Conn, name string, columns []string, opts ...Option) *Table {
	t := &Table{
		conn:    conn,
		logger:  logger.NewNope(),
		name:    name,
		columns: append([]string(nil), columns...),
		allowed: make(map[string]struct{}, len(columns)),
	}
	for _, col := range columns {
		t.allowed[col] = struct{}{}
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Columns returns a copy of the column whitelist.
func (t *Table) Columns() []string { return append([]string(nil), t.columns...) }

// Conn returns the connection the table executes against.
func (t *Table) Conn() Conn { return t.conn }

type selectConfig struct {
	where  Record
	fields []string
	limit  int
}

// SelectOption configures Select.
type SelectOption func(*selectConfig)

// Fields restricts the selected columns. Defaults to *.
func Fields(fields ...string) SelectOption {
	return func(c *selectConfig) {
		c.fields = fields
	}
}

// Where filters rows by column equality. An empty record means no filter.
func Where(rec Record) SelectOption {
	return func(c *selectConfig) {
		c.where = rec
	}
}

// Limit caps the number of returned rows.
func Limit(n int) SelectOption {
	return func(c *selectConfig) {
		c.limit = n
	}
}

// Select returns every row matching the options.
func (t *Table) Select(ctx context.Context, opts ...SelectOption) ([]Record, error) {
	const op = "select"

	cfg := &selectConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	stmt, err := Query{
		Action:  ActionSelect,
		Table:   t.name,
		Columns: cfg.fields,
		Where:   cfg.where.Keys(),
		Limit:   cfg.limit,
	}.Build()
	if err != nil {
		return nil, t.fail(ctx, KindValidation, op, "build statement", err)
	}
	params, err := stmt.Bind(cfg.where)
	if err != nil {
		return nil, t.fail(ctx, KindValidation, op, "bind where", err)
	}

	t.trace(ctx, op, stmt)
	rows, err := t.conn.Query(ctx, stmt.SQL, params)
	if err != nil {
		return nil, t.fail(ctx, KindStorage, op, "query", err)
	}
	return rows, nil
}

// SelectOne returns the first matching row. An empty result is a storage-kind
// ExecutionError wrapping ErrNoRows.
func (t *Table) SelectOne(ctx context.Context, opts ...SelectOption) (Record, error) {
	rows, err := t.Select(ctx, append(opts, Limit(1))...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, t.wrap(KindStorage, "select_one", "no rows", ErrNoRows)
	}
	return rows[0], nil
}

// SelectAll returns every row of the table.
func (t *Table) SelectAll(ctx context.Context) ([]Record, error) {
	return t.Select(ctx)
}

// Insert writes the whitelisted columns of rec as one row.
func (t *Table) Insert(ctx context.Context, rec Record) error {
	const op = "insert"

	stmt, params, err := t.insertStatement(rec, nil)
	if err != nil {
		return t.fail(ctx, KindValidation, op, "build statement", err)
	}

	t.trace(ctx, op, stmt)
	if _, err := t.conn.Exec(ctx, stmt.SQL, params); err != nil {
		return t.fail(ctx, KindStorage, op, "exec", err)
	}
	return nil
}

// InsertReturning inserts rec and returns the value of column from the new row,
// typically a generated primary key.
func (t *Table) InsertReturning(ctx context.Context, rec Record, column string) (any, error) {
	const op = "insert_returning"

	stmt, params, err := t.insertStatement(rec, []string{column})
	if err != nil {
		return nil, t.fail(ctx, KindValidation, op, "build statement", err)
	}

	t.trace(ctx, op, stmt)
	rows, err := t.conn.Query(ctx, stmt.SQL, params)
	if err != nil {
		return nil, t.fail(ctx, KindStorage, op, "query", err)
	}
	if len(rows) == 0 {
		return nil, t.fail(ctx, KindStorage, op, "no row returned", ErrNoRows)
	}
	return rows[0][column], nil
}

func (t *Table) insertStatement(rec Record, returning []string) (Statement, Params, error) {
	cols := t.whitelisted(rec)
	if len(cols) == 0 {
		return Statement{}, nil, ErrNoColumns
	}
	stmt, err := Query{
		Action:    ActionInsert,
		Table:     t.name,
		Columns:   cols,
		Returning: returning,
	}.Build()
	if err != nil {
		return Statement{}, nil, err
	}
	params, err := stmt.Bind(rec)
	if err != nil {
		return Statement{}, nil, err
	}
	return stmt, params, nil
}

// InsertMany inserts all records in one transaction using a single prepared statement.
// The column list comes from the first record only: keys that later records add
// are ignored, and a later record lacking one of those columns fails the batch.
// Any failure rolls back every row.
func (t *Table) InsertMany(ctx context.Context, records []Record) error {
	const op = "insert_many"

	if len(records) == 0 {
		return t.fail(ctx, KindValidation, op, "empty batch", ErrNoColumns)
	}
	cols := t.whitelisted(records[0])
	if len(cols) == 0 {
		return t.fail(ctx, KindValidation, op, "first record has no whitelisted columns", ErrNoColumns)
	}
	stmt, err := Query{Action: ActionInsert, Table: t.name, Columns: cols}.Build()
	if err != nil {
		return t.fail(ctx, KindValidation, op, "build statement", err)
	}

	t.trace(ctx, op, stmt, slog.Int("rows", len(records)))
	return t.execBatch(ctx, op, stmt, records)
}

// Update sets the whitelisted columns of rec on the rows identified by whereKeys.
// The WHERE clause uses the keys of rec that appear in whereKeys; whereKeys
// defaults to DefaultKey and need not be whitelisted.
func (t *Table) Update(ctx context.Context, rec Record, whereKeys ...string) error {
	const op = "update"

	stmt, err := t.updateStatement(rec, whereKeys)
	if err != nil {
		return t.fail(ctx, KindValidation, op, "build statement", err)
	}
	params, err := stmt.Bind(rec)
	if err != nil {
		return t.fail(ctx, KindValidation, op, "bind record", err)
	}

	t.trace(ctx, op, stmt)
	if _, err := t.conn.Exec(ctx, stmt.SQL, params); err != nil {
		return t.fail(ctx, KindStorage, op, "exec", err)
	}
	return nil
}

// UpdateMany applies Update to every record in one transaction.
// The statement shape comes from the first record; any failure rolls back the batch.
func (t *Table) UpdateMany(ctx context.Context, records []Record, whereKeys ...string) error {
	const op = "update_many"

	if len(records) == 0 {
		return t.fail(ctx, KindValidation, op, "empty batch", ErrNoColumns)
	}
	stmt, err := t.updateStatement(records[0], whereKeys)
	if err != nil {
		return t.fail(ctx, KindValidation, op, "build statement", err)
	}

	t.trace(ctx, op, stmt, slog.Int("rows", len(records)))
	return t.execBatch(ctx, op, stmt, records)
}

func (t *Table) updateStatement(rec Record, whereKeys []string) (Statement, error) {
	if len(whereKeys) == 0 {
		whereKeys = []string{DefaultKey}
	}
	set := t.whitelisted(rec)
	if len(set) == 0 {
		return Statement{}, ErrNoColumns
	}
	var where []string
	for _, key := range whereKeys {
		if _, ok := rec[key]; ok {
			where = appendName(where, key)
		}
	}
	if len(where) == 0 {
		return Statement{}, ErrNoPredicates
	}
	return Query{Action: ActionUpdate, Table: t.name, Columns: set, Where: where}.Build()
}

// Delete removes the rows matching every key of where. An empty filter is
// rejected rather than treated as "delete all".
func (t *Table) Delete(ctx context.Context, where Record) error {
	const op = "delete"

	if len(where) == 0 {
		return t.fail(ctx, KindValidation, op, "refusing to delete without a filter", ErrNoPredicates)
	}
	stmt, err := Query{Action: ActionDelete, Table: t.name, Where: where.Keys()}.Build()
	if err != nil {
		return t.fail(ctx, KindValidation, op, "build statement", err)
	}

	t.trace(ctx, op, stmt)
	return t.execBatch(ctx, op, stmt, []Record{where})
}

// Exists probes the table with a lightweight read. When the probe fails and
// create is true, def is applied and its outcome returned.
func (t *Table) Exists(ctx context.Context, create bool, def Definition) (bool, error) {
	const op = "exists"

	stmt, err := Query{Action: ActionCount, Table: t.name}.Build()
	if err != nil {
		return false, t.fail(ctx, KindValidation, op, "build statement", err)
	}
	if _, err := t.conn.Query(ctx, stmt.SQL, nil); err == nil {
		return true, nil
	}
	if !create || def == nil {
		return false, nil
	}

	t.logger.InfoContext(ctx, "creating table", slog.String("table", t.name))
	if err := def.Create(ctx, t.conn); err != nil {
		return false, t.fail(ctx, KindStorage, op, "create table", err)
	}
	return true, nil
}

// execBatch runs stmt once per record inside a single transaction.
func (t *Table) execBatch(ctx context.Context, op string, stmt Statement, records []Record) error {
	err := withTx(ctx, t.conn, func(tx Tx) error {
		prepared, err := tx.Prepare(ctx, stmt.SQL)
		if err != nil {
			return t.wrap(KindStorage, op, "prepare", err)
		}
		defer prepared.Close()

		for i, rec := range records {
			params, err := stmt.Bind(rec)
			if err != nil {
				return t.wrap(KindValidation, op, fmt.Sprintf("record %d", i), err)
			}
			if _, err := prepared.Exec(ctx, params); err != nil {
				return t.wrap(KindStorage, op, fmt.Sprintf("record %d", i), err)
			}
		}
		return nil
	})
	if err == nil {
		return nil
	}

	ee, ok := AsExecutionError(err)
	if !ok {
		// begin or commit failed
		ee = t.wrap(KindStorage, op, "transaction", err)
	}
	t.logger.WarnContext(ctx, "batch rolled back",
		slog.String("table", t.name),
		slog.String("op", op),
		slog.String("kind", ee.Kind.String()),
		slog.String("error", ee.Error()),
	)
	return ee
}

// whitelisted returns the keys of rec that are whitelisted, in whitelist order.
func (t *Table) whitelisted(rec Record) []string {
	cols := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		if _, ok := rec[col]; ok {
			cols = append(cols, col)
		}
	}
	return cols
}

func (t *Table) wrap(kind Kind, op, msg string, err error) *ExecutionError {
	return &ExecutionError{Kind: kind, Op: op, Table: t.name, Message: msg, Err: err}
}

func (t *Table) fail(ctx context.Context, kind Kind, op, msg string, err error) *ExecutionError {
	ee := t.wrap(kind, op, msg, err)
	t.logger.WarnContext(ctx, "table operation failed",
		slog.String("table", t.name),
		slog.String("op", op),
		slog.String("kind", kind.String()),
		slog.String("error", ee.Error()),
	)
	return ee
}

func (t *Table) trace(ctx context.Context, op string, stmt Statement, attrs ...slog.Attr) {
	if !t.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	args := []any{
		slog.String("table", t.name),
		slog.String("op", op),
		slog.String("sql", stmt.SQL),
	}
	for _, a := range attrs {
		args = append(args, a)
	}
	t.logger.DebugContext(ctx, "executing statement", args...)
}
