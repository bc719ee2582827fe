// Package model provides a generic data access layer for single relational tables.
//
// A [Table] is declared by name and an ordered column whitelist. Every operation
// compiles a typed [Query] into a [Statement] whose values travel only as named
// parameters (@column); identifiers are validated and double-quoted. Columns a
// caller submits outside the whitelist are dropped before SQL is generated.
//
// # Usage
//
//	conn := model.NewPgxConn(pool)
//	interests := model.New(conn, "team_interests",
//	    []string{"description", "active", "deleted"},
//	)
//
//	err := interests.InsertMany(ctx, []model.Record{
//	    {"description": "Motorsports", "active": 1, "deleted": 0},
//	    {"description": "Movies", "active": 1, "deleted": 0},
//	})
//
//	rows, err := interests.Select(ctx,
//	    model.Fields("id", "description"),
//	    model.Where(model.Record{"active": 1}),
//	)
//
// # Transactions
//
// InsertMany, UpdateMany and Delete run inside one transaction and share a single
// prepared statement. A failing row rolls back the whole batch before the error
// is returned. The statement's columns come from the first record of a batch.
//
// # Storage
//
// Tables execute against a [Conn]. Two adapters are provided:
//
//   - [NewPgxConn] wraps a pgx connection pool (PostgreSQL)
//   - [NewSQLConn] wraps a database/sql handle (SQLite via modernc.org/sqlite)
//
// # Error Handling
//
// Failed operations return an [*ExecutionError] with a [Kind]:
//
//   - [KindValidation] - input rejected before storage was touched
//   - [KindStorage] - the storage engine failed
//
// Use [IsValidation], [IsStorage] or errors.Is with [ErrValidation] and
// [ErrStorage]. [Table.SelectOne] returns [ErrNoRows] when nothing matches.
package model
