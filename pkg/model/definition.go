package model

import "context"

// Definition creates a missing table. See Table.Exists.
type Definition interface {
	Create(ctx context.Context, conn Conn) error
}

// Schema is a raw DDL statement used as a Definition.
type Schema string

// Create executes the DDL statement.
func (s Schema) Create(ctx context.Context, conn Conn) error {
	_, err := conn.Exec(ctx, string(s), nil)
	return err
}

// CreateFunc is a caller-supplied creation routine used as a Definition.
type CreateFunc func(ctx context.Context) error

// Create calls f.
func (f CreateFunc) Create(ctx context.Context, _ Conn) error {
	return f(ctx)
}
